package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	v1 "healingstat/internal/api/v1"
	"healingstat/internal/config"
	"healingstat/internal/logger"
	"healingstat/internal/service/report"
	"healingstat/internal/store"
)

// Server HTTP 서버
type Server struct {
	cfg    *config.AppConfig
	router *gin.Engine
	store  *store.Store
	log    *logger.Logger
	http   *http.Server
}

// NewServer 서버 생성. dataDir 아래 uploads/exports 를 가져오기/내보내기 위치로 쓴다
func NewServer(cfg *config.AppConfig, st *store.Store, dataDir string, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	reports := report.NewService(st, log.With("component", "report"), cfg.Report.RetryWait())
	handler := v1.NewHandler(st, reports, log.With("component", "api"), v1.Options{
		UploadDir: filepath.Join(dataDir, "uploads"),
		ExportDir: filepath.Join(dataDir, "exports"),
		ExportTTL: cfg.Report.ExportTTL(),
	})

	s := &Server{
		cfg:    cfg,
		router: gin.New(),
		store:  st,
		log:    log,
	}
	s.setupRoutes(handler)
	return s
}

// setupRoutes 미들웨어와 경로 설정
func (s *Server) setupRoutes(handler *v1.Handler) {
	s.router.Use(gin.Recovery(), requestLogger(s.log))
	s.router.Use(cors.New(corsConfig(s.cfg.Server.AllowOrigins)))

	s.router.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	{
		handler.RegisterRoutes(api)
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

// requestLogger 요청 한 건마다 zap 으로 기록
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		kv := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("request", kv...)
		case c.Writer.Status() >= http.StatusBadRequest:
			log.Warn("request", kv...)
		default:
			log.Debug("request", kv...)
		}
	}
}

// Handler 테스트와 내장 용도로 gin 엔진을 노출
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 서버 시작. Shutdown 으로 멈추면 nil 을 돌려준다
func (s *Server) Run(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("server listening", "addr", addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return nil
}

// Shutdown 진행 중인 요청을 마치고 종료
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// GetStore 저장소 (테스트용)
func (s *Server) GetStore() *store.Store {
	return s.store
}
