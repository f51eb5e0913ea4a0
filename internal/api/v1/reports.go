package v1

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"healingstat/internal/model"
	"healingstat/internal/service/report"
	"healingstat/internal/stats"
)

const dayLayout = "2006-01-02"

// parsePeriod start/end 쿼리 읽기. required 면 둘 다 있어야 한다
func parsePeriod(c *gin.Context, required bool) (stats.Period, error) {
	p := stats.Period{
		Start: strings.TrimSpace(c.Query("start")),
		End:   strings.TrimSpace(c.Query("end")),
	}
	if required && (p.Start == "" || p.End == "") {
		return p, errors.New("시작일(start)과 종료일(end)이 필요합니다")
	}
	for _, d := range []string{p.Start, p.End} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dayLayout, d); err != nil {
			return p, errors.New("날짜는 YYYY-MM-DD 형식이어야 합니다")
		}
	}
	if p.Start != "" && p.End != "" && p.Start > p.End {
		return p, errors.New("시작일이 종료일보다 늦습니다")
	}
	return p, nil
}

func parseProgramID(c *gin.Context) (int64, error) {
	raw := strings.TrimSpace(c.Query("programId"))
	if raw == "" {
		return 0, errors.New("programId 가 필요합니다")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("programId 는 양의 정수여야 합니다")
	}
	return id, nil
}

// writeReportError 보고서 서비스 오류를 상태 코드로 변환
func (h *Handler) writeReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, report.ErrProgramNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": report.ErrProgramNotFound.Error()})
	case errors.Is(err, report.ErrFetchFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"error": report.ErrFetchFailed.Error()})
	default:
		h.log.Error("report request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "보고서를 만들지 못했습니다"})
	}
}

// GetEffects 평가지 종류별 응답자 영역 평균
// GET /api/effects/:service?start=&end=
func (h *Handler) GetEffects(c *gin.Context) {
	service := model.ServiceType(c.Param("service"))
	def, ok := stats.Definition(service)
	if !service.IsValid() || !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "알 수 없는 평가지 종류입니다"})
		return
	}
	period, err := parsePeriod(c, false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.reports.Effects(c.Request.Context(), service, period)
	if err != nil {
		h.writeReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"service": service,
		"label":   service.Label(),
		"domains": def.Names(),
		"rows":    rows,
	})
}

// GetProgramResult 프로그램 결과 보고서
// GET /api/reports/program-result?programId=
func (h *Handler) GetProgramResult(c *gin.Context) {
	id, err := parseProgramID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rep, err := h.reports.ProgramResult(c.Request.Context(), id)
	if err != nil {
		h.writeReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GetYearMonth 기간 보고서
// GET /api/reports/year-month?start=&end=
func (h *Handler) GetYearMonth(c *gin.Context) {
	period, err := parsePeriod(c, true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rep, err := h.reports.YearMonth(c.Request.Context(), period)
	if err != nil {
		h.writeReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// Search 키워드 검색 보고서
// GET /api/reports/search?target=&keyword0=&keyword1=&keyword2=&start=&end=
func (h *Handler) Search(c *gin.Context) {
	period, err := parsePeriod(c, false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var keywords stats.Keywords
	for i := range keywords {
		keywords[i] = strings.TrimSpace(c.Query("keyword" + strconv.Itoa(i)))
	}

	rep, err := h.reports.Search(c.Request.Context(), report.SearchRequest{
		Target:   stats.ParseSearchTarget(c.Query("target")),
		Keywords: keywords,
		Period:   period,
	})
	if err != nil {
		h.writeReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}
