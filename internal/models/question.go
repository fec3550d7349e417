package models

import (
	"time"
)

// TriggerFlag 匿名提问的审核标记（各类别独立检测，可同时命中多个）
type TriggerFlag string

const (
	FlagCrisis  TriggerFlag = "crisis"  // 危机信号
	FlagPII     TriggerFlag = "pii"     // 个人身份信息
	FlagMedical TriggerFlag = "medical" // 医疗类请求（诊断/用药/治疗）
)

// QuestionStatus 匿名提问的审核状态
type QuestionStatus string

const (
	QuestionPending  QuestionStatus = "pending"  // 无标记，常规队列
	QuestionFlagged  QuestionStatus = "flagged"  // 有标记，优先人工审核
	QuestionApproved QuestionStatus = "approved" // 审核通过
	QuestionRejected QuestionStatus = "rejected" // 审核拒绝
)

// TriageResult 提问分诊结果（值对象，不含原文）
type TriageResult struct {
	Flags  []TriggerFlag  `json:"flags"`
	Status QuestionStatus `json:"status"`
}

// HasFlag 检查分诊结果是否含有某个标记
func (r TriageResult) HasFlag(flag TriggerFlag) bool {
	for _, f := range r.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// DeriveStatus 从标记集合推导初始审核状态
// 有任意标记 → flagged，否则 pending
func DeriveStatus(flags []TriggerFlag) QuestionStatus {
	if len(flags) > 0 {
		return QuestionFlagged
	}
	return QuestionPending
}

// Question 匿名提问（对应 questions 表）
// 原文只以密文形式存储，表中没有明文列
type Question struct {
	QuestionID       string         `json:"question_id" db:"question_id"`
	ContentEncrypted string         `json:"-" db:"content_encrypted"` // 密文不对外输出
	TriggerFlags     []TriggerFlag  `json:"trigger_flags" db:"trigger_flags"` // JSONB
	Status           QuestionStatus `json:"status" db:"status"`
	CreatedAt        time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at" db:"updated_at"`
}

// SafetyEvaluation 安全评估审计记录（对应 safety_evaluations 表）
// 表结构上就没有文本列，隐私约束由 schema 保证
type SafetyEvaluation struct {
	EvaluationID  string        `json:"evaluation_id" db:"evaluation_id"`
	Surface       Surface       `json:"surface" db:"surface"`
	Status        SafetyStatus  `json:"status" db:"status"`
	RefusalReason *RefusalReason `json:"refusal_reason,omitempty" db:"refusal_reason"`
	CrisisTrigger *CrisisTrigger `json:"crisis_trigger,omitempty" db:"crisis_trigger"`
	EvaluatedAt   time.Time     `json:"evaluated_at" db:"evaluated_at"`
}
