package v1

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"healingstat/internal/importer"
	"healingstat/internal/model"
	"healingstat/internal/store"
)

// Import 평가지 엑셀 가져오기 (SSE 진행 스트림)
// POST /api/import
//
// 폼 필드: file (필수), service, programId, agency, openDay
func (h *Handler) Import(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "잘못된 폼 데이터입니다"})
		return
	}
	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "업로드된 파일이 없습니다"})
		return
	}
	uploaded := files[0]
	if !strings.EqualFold(filepath.Ext(uploaded.Filename), ".xlsx") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "xlsx 파일만 가져올 수 있습니다"})
		return
	}

	service := model.ServiceType(strings.TrimSpace(c.PostForm("service")))
	if service != "" && !service.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("알 수 없는 평가지 종류: %s", service)})
		return
	}

	dir := h.opts.UploadDir
	if dir == "" {
		dir = os.TempDir()
	}
	tempPath := filepath.Join(dir, fmt.Sprintf("import_%s.xlsx", uuid.NewString()))
	if err := c.SaveUploadedFile(uploaded, tempPath); err != nil {
		h.log.Error("save uploaded file failed", "file", uploaded.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "파일을 저장하지 못했습니다"})
		return
	}
	defer os.Remove(tempPath)

	sse, ok := startSSE(c)
	if !ok {
		return
	}

	progress := h.importer.Import(c.Request.Context(), importer.ImportOptions{
		FilePath:         tempPath,
		OriginalFilename: uploaded.Filename,
		Service:          service,
		ProgramID:        strings.TrimSpace(c.PostForm("programId")),
		Agency:           strings.TrimSpace(c.PostForm("agency")),
		OpenDay:          strings.TrimSpace(c.PostForm("openDay")),
	})
	for event := range progress {
		sse.send(event)
	}
}

// ListImportLogs 배치의 시트별 가져오기 기록
// GET /api/import/logs?batchId=
func (h *Handler) ListImportLogs(c *gin.Context) {
	batchID := strings.TrimSpace(c.Query("batchId"))
	if batchID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "batchId 가 필요합니다"})
		return
	}
	logs, err := h.store.ListImportLogs(batchID)
	if err != nil {
		h.log.Error("list import logs failed", "batch", batchID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "가져오기 기록을 조회하지 못했습니다"})
		return
	}
	if logs == nil {
		logs = []store.ImportLog{}
	}
	c.JSON(http.StatusOK, gin.H{"batchId": batchID, "logs": logs})
}

// GetImportLog 가져오기 기록 한 건
// GET /api/import/logs/:id
func (h *Handler) GetImportLog(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "잘못된 기록 번호입니다"})
		return
	}
	l, err := h.store.GetImportLog(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "가져오기 기록이 없습니다"})
			return
		}
		h.log.Error("get import log failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "가져오기 기록을 조회하지 못했습니다"})
		return
	}
	c.JSON(http.StatusOK, l)
}
