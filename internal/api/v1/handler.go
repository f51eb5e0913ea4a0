package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"healingstat/internal/exporter"
	"healingstat/internal/importer"
	"healingstat/internal/logger"
	"healingstat/internal/service/report"
	"healingstat/internal/store"
)

// Options 핸들러 부가 설정
type Options struct {
	UploadDir string        // 가져오기 임시 파일 위치 (비어 있으면 os.TempDir)
	ExportDir string        // 내보내기 파일 위치 (비어 있으면 os.TempDir)
	ExportTTL time.Duration // 내보내기 다운로드 유효 시간
}

// Handler API 처리기
type Handler struct {
	store     *store.Store
	reports   *report.Service
	importer  *importer.Coordinator
	exporter  *exporter.Exporter
	log       *logger.Logger
	opts      Options
	downloads *exportDownloadStore
}

// NewHandler API 처리기 생성
func NewHandler(st *store.Store, reports *report.Service, log *logger.Logger, opts Options) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	if opts.ExportTTL <= 0 {
		opts.ExportTTL = 10 * time.Minute
	}
	return &Handler{
		store:     st,
		reports:   reports,
		importer:  importer.NewCoordinator(st, log.With("component", "importer")),
		exporter:  exporter.NewExporter(log.With("component", "exporter")),
		log:       log,
		opts:      opts,
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes API 경로 등록
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 시스템 상태
	router.GET("/status", h.GetStatus)
	router.GET("/config", h.GetConfig)

	// 데이터 입력
	router.POST("/scores", h.CreateScores)
	router.POST("/programs", h.CreateProgram)
	router.POST("/import", h.Import)
	router.GET("/import/logs", h.ListImportLogs)
	router.GET("/import/logs/:id", h.GetImportLog)

	// 응답자별 영역 평균
	router.GET("/effects/:service", h.GetEffects)

	// 보고서
	router.GET("/reports/program-result", h.GetProgramResult)
	router.GET("/reports/year-month", h.GetYearMonth)
	router.GET("/reports/search", h.Search)

	// 내보내기
	router.POST("/export", h.Export)
	router.POST("/export/stream", h.ExportStream)
	router.GET("/export/download/:token", h.DownloadExport)
}
