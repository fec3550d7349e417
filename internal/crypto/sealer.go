package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// Sealer 提问原文的静态加密接口
// 分诊结果与密文分开存放：明文只在提交处理的同步路径内存在
type Sealer interface {
	// Seal 加密明文，返回可直接入库的字符串
	Seal(plain string) (string, error)
	// Open 解密（仅供人工审核通道使用）
	Open(sealed string) (string, error)
}

const (
	keyLen     = 32    // AES-256
	pbkdf2Iter = 10000 // 密钥派生迭代次数
)

// AESSealer AES-256-GCM 实现
// 密钥由 PBKDF2-SHA256 从配置密钥+盐派生；每次加密使用随机 nonce，
// nonce 前置拼接后整体 base64 编码
type AESSealer struct {
	aead cipher.AEAD
}

// NewAESSealer 创建加密器
func NewAESSealer(secret, salt string) (*AESSealer, error) {
	if secret == "" {
		return nil, fmt.Errorf("encryption secret is empty")
	}

	key := pbkdf2.Key([]byte(secret), []byte(salt), pbkdf2Iter, keyLen, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESSealer{aead: aead}, nil
}

// Seal 加密明文
func (s *AESSealer) Seal(plain string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := s.aead.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open 解密
func (s *AESSealer) Open(sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	nonceSize := s.aead.NonceSize()
	if len(raw) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}

	plain, err := s.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}

	return string(plain), nil
}
