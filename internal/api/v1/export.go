package v1

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"healingstat/internal/exporter"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// errBadExportRequest 요청 파라미터 오류 (400)
type errBadExportRequest struct{ msg string }

func (e errBadExportRequest) Error() string { return e.msg }

// buildWorkbook kind 에 맞는 보고서를 만들어 엑셀로 작성, 다운로드 파일 이름(확장자 제외)도 돌려준다
func (h *Handler) buildWorkbook(c *gin.Context, progress func(exporter.ProgressEvent)) (*excelize.File, exporter.Kind, string, error) {
	kind, ok := exporter.ParseKind(c.Query("kind"))
	if !ok {
		return nil, "", "", errBadExportRequest{"kind 는 program-result 또는 year-month 여야 합니다"}
	}

	switch kind {
	case exporter.KindProgramResult:
		id, err := parseProgramID(c)
		if err != nil {
			return nil, kind, "", errBadExportRequest{err.Error()}
		}
		rep, err := h.reports.ProgramResult(c.Request.Context(), id)
		if err != nil {
			return nil, kind, "", err
		}
		title := fmt.Sprintf("프로그램 %d", id)
		f, err := h.exporter.ExportProgramResult(title, rep, progress)
		return f, kind, fmt.Sprintf("프로그램결과-%d", id), err
	default:
		period, err := parsePeriod(c, true)
		if err != nil {
			return nil, kind, "", errBadExportRequest{err.Error()}
		}
		rep, err := h.reports.YearMonth(c.Request.Context(), period)
		if err != nil {
			return nil, kind, "", err
		}
		f, err := h.exporter.ExportYearMonth(rep, progress)
		return f, kind, fmt.Sprintf("연월보고서-%s-%s", period.Start, period.End), err
	}
}

func (h *Handler) writeExportError(c *gin.Context, err error) {
	var bad errBadExportRequest
	if errors.As(err, &bad) {
		c.JSON(http.StatusBadRequest, gin.H{"error": bad.msg})
		return
	}
	h.writeReportError(c, err)
}

// Export 보고서 엑셀을 바로 내려준다
// POST /api/export?kind=program-result&programId= | kind=year-month&start=&end=
func (h *Handler) Export(c *gin.Context) {
	file, kind, name, err := h.buildWorkbook(c, nil)
	if err != nil {
		h.writeExportError(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", buildExportContentDisposition(kind, name))
	c.Header("Content-Type", xlsxContentType)
	if err := file.Write(c.Writer); err != nil {
		h.log.Error("write export failed", "kind", kind, "error", err)
	}
}

type exportProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// ExportStream 보고서 엑셀 작성 (SSE 진행 + 완료 후 다운로드 주소)
// POST /api/export/stream?kind=...
func (h *Handler) ExportStream(c *gin.Context) {
	sse, ok := startSSE(c)
	if !ok {
		return
	}
	sse.send(exportProgressEvent{Type: "start", Message: "내보내기를 시작합니다", Data: map[string]any{}, Timestamp: time.Now()})

	fail := func(msg string) {
		sse.send(exportProgressEvent{Type: "error", Message: msg, Data: map[string]any{}, Timestamp: time.Now()})
	}

	lastPercent := -1
	file, kind, name, err := h.buildWorkbook(c, func(p exporter.ProgressEvent) {
		if p.Percent == lastPercent {
			return
		}
		lastPercent = p.Percent
		sse.send(exportProgressEvent{
			Type:      "progress",
			Message:   p.Stage,
			Data:      map[string]any{"percent": p.Percent},
			Timestamp: time.Now(),
		})
	})
	if err != nil {
		fail("내보내기 실패: " + err.Error())
		return
	}
	defer file.Close()

	dir := h.exportDir()
	if n, err := exporter.CleanupExpired(dir, h.opts.ExportTTL, time.Now()); err == nil && n > 0 {
		h.log.Debug("expired exports removed", "count", n)
	}
	path, err := exporter.SaveToDir(file, dir, kind)
	if err != nil {
		h.log.Error("save export failed", "kind", kind, "error", err)
		fail("내보내기 파일을 저장하지 못했습니다")
		return
	}

	token := h.downloads.put(path, kind, name, h.opts.ExportTTL)
	sse.send(exportProgressEvent{
		Type:    "done",
		Message: "내보내기 완료",
		Data: map[string]any{
			"percent":     100,
			"downloadUrl": "/api/export/download/" + token,
		},
		Timestamp: time.Now(),
	})
}

func (h *Handler) exportDir() string {
	if h.opts.ExportDir != "" {
		return h.opts.ExportDir
	}
	return os.TempDir()
}

// DownloadExport 내보낸 엑셀 내려받기 (한 번만)
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "다운로드 링크가 만료되었습니다"})
		return
	}
	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "내보내기 파일이 없습니다"})
		return
	}

	c.Header("Content-Disposition", buildExportContentDisposition(item.kind, item.name))
	c.Header("Content-Type", xlsxContentType)
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}

// buildExportContentDisposition ASCII 파일명과 UTF-8 파일명을 함께 넣는다
func buildExportContentDisposition(kind exporter.Kind, name string) string {
	return fmt.Sprintf("attachment; filename=\"%s.xlsx\"; filename*=UTF-8''%s.xlsx", kind, url.PathEscape(name))
}
