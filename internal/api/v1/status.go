package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healingstat/internal/model"
	"healingstat/internal/store"
)

// StatusResponse 시스템 상태 응답
type StatusResponse struct {
	Initialized    bool                      `json:"initialized"`    // 저장된 데이터가 있는지
	TotalScores    int                       `json:"totalScores"`    // 평가지 전체 건수
	ScoreCounts    map[model.ServiceType]int `json:"scoreCounts"`    // 평가지 종류별 건수
	ProgramCount   int                       `json:"programCount"`   // 프로그램 결과 건수
	LastImportTime string                    `json:"lastImportTime"` // 마지막 가져오기 시각
}

// GetStatus 시스템 상태 조회
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	ctx := c.Request.Context()

	counts, err := h.store.CountScoreRecords(ctx)
	if err != nil {
		h.log.Error("count score records failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "상태를 조회하지 못했습니다"})
		return
	}
	programs, err := h.store.CountPrograms(ctx)
	if err != nil {
		h.log.Error("count programs failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "상태를 조회하지 못했습니다"})
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	lastImport, _ := h.store.GetConfig(store.ConfigLastImportAt)

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:    total > 0 || programs > 0,
		TotalScores:    total,
		ScoreCounts:    counts,
		ProgramCount:   programs,
		LastImportTime: lastImport,
	})
}

// GetConfig 저장된 설정 값 조회
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	values, err := h.store.GetAllConfig()
	if err != nil {
		h.log.Error("read config failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "설정을 조회하지 못했습니다"})
		return
	}
	c.JSON(http.StatusOK, values)
}
