package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"opora-safety/internal/config"
	"opora-safety/internal/consumer"
	"opora-safety/internal/crypto"
	"opora-safety/internal/database"
	httpapi "opora-safety/internal/http"
	"opora-safety/internal/logger"
	"opora-safety/internal/notifier"
	"opora-safety/internal/policy"
	redisx "opora-safety/internal/redis"
	"opora-safety/internal/repository"
	"opora-safety/internal/rules"
	"opora-safety/internal/service"
	"opora-safety/internal/triage"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. 初始化日志
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "opora-safety")
	if err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer log.Sync()

	// 3. 加载关键词表（内置 + 可选 YAML 覆盖）
	table, err := rules.LoadTable(cfg.Safety.KeywordsFile)
	if err != nil {
		log.Fatal("Failed to load keyword table",
			zap.String("keywords_file", cfg.Safety.KeywordsFile),
			zap.Error(err),
		)
	}

	// 4. 连接数据库与 Redis
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database",
			zap.Error(err),
		)
	}
	defer database.Close(db)

	redisClient := redisx.NewClient(&cfg.Redis)
	defer redisx.Close(redisClient)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := redisx.Ping(ctx, redisClient); err != nil {
		log.Fatal("Failed to ping redis",
			zap.Error(err),
		)
	}

	// 5. 创建各层组件
	sealer, err := crypto.NewAESSealer(cfg.Safety.EncryptionKey, cfg.Safety.EncryptionSalt)
	if err != nil {
		log.Fatal("Failed to create sealer",
			zap.Error(err),
		)
	}

	questionRepo := repository.NewQuestionRepository(db, log)
	auditRepo := repository.NewSafetyAuditRepository(db, log)
	queue := consumer.NewModerationQueue(cfg, redisClient, log)
	if err := queue.EnsureConsumerGroup(ctx, "moderation-workers"); err != nil {
		log.Fatal("Failed to create moderation consumer group",
			zap.String("stream", cfg.Safety.ModerationStream),
			zap.Error(err),
		)
	}
	crisisNotifier := notifier.NewCrisisNotifier(cfg.Safety.CrisisWebhookURL, log)

	engine := policy.NewEngine(table)
	classifier := triage.NewClassifier(table)

	gateService := service.NewGateService(engine, auditRepo, crisisNotifier, log)
	questionService := service.NewQuestionService(classifier, sealer, questionRepo, queue, log)

	// 6. 注册路由
	router := httpapi.NewRouter(log)
	router.RegisterSafetyRoutes(
		httpapi.NewSafetyHandler(gateService, log),
		httpapi.NewQuestionHandler(questionService, log),
	)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: router,
	}

	// 7. 启动 HTTP 服务（在 goroutine 中）
	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Safety service listening",
			zap.String("addr", cfg.HTTP.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	// 8. 等待信号（优雅关闭）
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info("Received signal, shutting down",
			zap.String("signal", sig.String()),
		)
	case err := <-serverErrChan:
		log.Fatal("Server error",
			zap.Error(err),
		)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shutdown server gracefully",
			zap.Error(err),
		)
	}

	log.Info("Safety service stopped")
}
