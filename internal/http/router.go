package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterSafetyRoutes 注册安全闸门与提问审核路由
func (r *Router) RegisterSafetyRoutes(s *SafetyHandler, q *QuestionHandler) {
	// AI 入口安全评估
	r.Handle("/safety/api/v1/evaluate", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		s.Evaluate(w, req)
	})

	// 匿名提问提交
	r.Handle("/safety/api/v1/questions", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		q.Submit(w, req)
	})

	// 审核队列
	r.Handle("/safety/api/v1/questions/flagged", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		q.ListFlagged(w, req)
	})

	// 审核导出（xlsx）
	r.Handle("/safety/api/v1/questions/export", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		q.Export(w, req)
	})

	// 审核动作 /safety/api/v1/questions/{id}/status
	r.Handle("/safety/api/v1/questions/", func(w http.ResponseWriter, req *http.Request) {
		path := strings.TrimPrefix(req.URL.Path, "/safety/api/v1/questions/")
		if strings.HasSuffix(path, "/status") {
			if req.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			id := strings.TrimSuffix(path, "/status")
			if id == "" || strings.Contains(id, "/") {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			q.UpdateStatus(w, req, id)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	// 健康检查
	r.Handle("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
