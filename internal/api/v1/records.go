package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"healingstat/internal/model"
	"healingstat/internal/store"
)

// ScoresRequest 평가지 입력 요청
type ScoresRequest struct {
	Service model.ServiceType    `json:"service"` // 행에 SERVICE 가 없을 때 쓰는 종류
	Records []*model.ScoreRecord `json:"records"`
}

// CreateScores 평가지 행 저장
// POST /api/scores
func (h *Handler) CreateScores(c *gin.Context) {
	var req ScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 형식이 올바르지 않습니다"})
		return
	}
	if len(req.Records) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "저장할 평가지가 없습니다"})
		return
	}

	for i, rec := range req.Records {
		if rec == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%d번째 행이 비어 있습니다", i+1)})
			return
		}
		if rec.Service == "" {
			rec.Service = req.Service
		}
		if err := validateRecord(rec); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%d번째 행: %v", i+1, err)})
			return
		}
	}

	batchID := uuid.NewString()
	if err := h.store.InsertScoreRecords(c.Request.Context(), req.Records, batchID); err != nil {
		h.log.Error("insert score records failed", "batch", batchID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "평가지를 저장하지 못했습니다"})
		return
	}

	ids := make([]int64, len(req.Records))
	for i, rec := range req.Records {
		ids[i] = rec.ID
	}
	c.JSON(http.StatusCreated, gin.H{
		"batchId": batchID,
		"count":   len(ids),
		"ids":     ids,
	})
}

func validateRecord(rec *model.ScoreRecord) error {
	if !rec.Service.IsValid() {
		return fmt.Errorf("알 수 없는 평가지 종류 %q", rec.Service)
	}
	if strings.TrimSpace(rec.Name) == "" {
		return errors.New("이름이 없습니다")
	}
	if _, ok := model.ParseTiming(string(rec.PV)); !ok {
		return fmt.Errorf("구분 %q 는 사전/사후가 아닙니다", rec.PV)
	}
	if len(rec.Scores) > model.MaxScoreItems {
		return fmt.Errorf("문항은 최대 %d개입니다", model.MaxScoreItems)
	}
	return nil
}

// CreateProgram 프로그램 결과와 분야 만족도/지출/수입 저장
// POST /api/programs
func (h *Handler) CreateProgram(c *gin.Context) {
	var req store.ProgramInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 형식이 올바르지 않습니다"})
		return
	}
	if strings.TrimSpace(req.Program.OpenDay) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "시작일(openDay)이 필요합니다"})
		return
	}
	for _, e := range req.Bunya {
		if !model.IsCategory(e.Bunya) {
			h.log.Warn("unknown bunya category stored", "bunya", e.Bunya)
		}
	}

	id, err := h.store.InsertProgram(c.Request.Context(), req)
	if err != nil {
		h.log.Error("insert program failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "프로그램 결과를 저장하지 못했습니다"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}
