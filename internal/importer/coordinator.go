package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"healingstat/internal/logger"
	"healingstat/internal/model"
	"healingstat/internal/parser"
	"healingstat/internal/store"
)

// Coordinator 평가지 엑셀 가져오기 조정기
type Coordinator struct {
	store      *store.Store
	recognizer *parser.SheetRecognizer
	log        *logger.Logger
}

// NewCoordinator 가져오기 조정기 생성
func NewCoordinator(st *store.Store, log *logger.Logger) *Coordinator {
	if log == nil {
		log = logger.Nop()
	}
	return &Coordinator{
		store:      st,
		recognizer: parser.NewSheetRecognizer(),
		log:        log,
	}
}

// ImportOptions 가져오기 옵션
type ImportOptions struct {
	FilePath         string
	OriginalFilename string            // 업로드 원래 파일명 (없으면 FilePath 의 이름)
	Service          model.ServiceType // 비어 있으면 시트마다 자동 인식
	ProgramID        string            // 행에 값이 없을 때 쓰는 공통 값
	Agency           string
	OpenDay          string
}

// ProgressEvent 진행 이벤트
type ProgressEvent struct {
	Type      string      `json:"type"`    // start/info/sheet_start/sheet_done/done/error
	Message   string      `json:"message"` // 이벤트 메시지
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// importContext 가져오기 한 번의 상태
type importContext struct {
	ctx          context.Context
	file         *excelize.File
	batchID      string
	filename     string
	report       *parser.ImportReport
	progressChan chan ProgressEvent
}

// Import 가져오기를 시작하고 진행 채널을 돌려준다. 채널은 done 또는 error 뒤에 닫힌다
func (c *Coordinator) Import(ctx context.Context, opts ImportOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doImport(ctx, opts, progressChan)
	}()

	return progressChan
}

func (c *Coordinator) doImport(ctx context.Context, opts ImportOptions, progressChan chan ProgressEvent) {
	startTime := time.Now()
	filename := opts.OriginalFilename
	if filename == "" {
		filename = filepath.Base(opts.FilePath)
	}
	if opts.Service != "" && !opts.Service.IsValid() {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("알 수 없는 평가지 종류: %s", opts.Service),
			Timestamp: time.Now(),
		})
		return
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "start",
		Message:   "엑셀 파일 가져오기를 시작합니다",
		Data:      map[string]string{"filename": filename},
		Timestamp: time.Now(),
	})

	file, err := excelize.OpenFile(opts.FilePath)
	if err != nil {
		c.log.Warn("open import file failed", "file", filename, "error", err)
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "error",
			Message:   fmt.Sprintf("파일을 열 수 없습니다: %v", err),
			Timestamp: time.Now(),
		})
		return
	}
	defer file.Close()

	ic := &importContext{
		ctx:          ctx,
		file:         file,
		batchID:      uuid.NewString(),
		filename:     filename,
		progressChan: progressChan,
	}
	sheetList := file.GetSheetList()
	ic.report = &parser.ImportReport{
		BatchID:     ic.batchID,
		Filename:    filename,
		TotalSheets: len(sheetList),
		Sheets:      []parser.ParseResult{},
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "info",
		Message:   fmt.Sprintf("시트 %d개를 찾았습니다", len(sheetList)),
		Data:      map[string]interface{}{"total_sheets": len(sheetList)},
		Timestamp: time.Now(),
	})

	for _, sheetName := range sheetList {
		if err := ctx.Err(); err != nil {
			c.sendProgress(progressChan, ProgressEvent{
				Type:      "error",
				Message:   "가져오기가 취소되었습니다",
				Timestamp: time.Now(),
			})
			return
		}
		c.processSheet(ic, sheetName, opts)
	}

	if ic.report.ImportedRows > 0 {
		if err := c.store.SetConfig(store.ConfigLastImportAt, time.Now().Format(time.RFC3339)); err != nil {
			c.log.Warn("update last import time failed", "error", err)
		}
	}

	ic.report.Duration = time.Since(startTime)
	c.log.Info("import finished",
		"batch", ic.batchID,
		"file", filename,
		"sheets", ic.report.TotalSheets,
		"imported_rows", ic.report.ImportedRows,
		"error_rows", ic.report.ErrorRows,
	)

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "done",
		Message:   "가져오기 완료",
		Data:      ic.report,
		Timestamp: time.Now(),
	})
}

// processSheet 시트 한 장 처리
func (c *Coordinator) processSheet(ic *importContext, sheetName string, opts ImportOptions) {
	sheetStart := time.Now()

	c.sendProgress(ic.progressChan, ProgressEvent{
		Type:      "sheet_start",
		Message:   fmt.Sprintf("시트 처리 중: %s", sheetName),
		Data:      map[string]string{"sheet_name": sheetName},
		Timestamp: time.Now(),
	})

	rows, err := ic.file.GetRows(sheetName)
	if err != nil || len(rows) < 1 {
		msg := "빈 시트"
		if err != nil {
			msg = fmt.Sprintf("시트를 읽을 수 없습니다: %v", err)
		}
		c.recordSheetResult(ic, parser.ParseResult{
			SheetName: sheetName,
			Status:    "skipped",
			Errors:    []string{msg},
			Duration:  time.Since(sheetStart),
		})
		return
	}

	recognition := c.recognizer.Recognize(sheetName, rows[0])
	service := model.ServiceType(recognition.Service)
	if opts.Service != "" && recognition.ScoreItems > 0 {
		service = opts.Service
	}

	c.sendProgress(ic.progressChan, ProgressEvent{
		Type:    "info",
		Message: fmt.Sprintf("시트 \"%s\" 인식 결과: %s (신뢰도 %.2f)", sheetName, service, recognition.Confidence),
		Data: map[string]interface{}{
			"sheet_name": sheetName,
			"service":    string(service),
			"confidence": recognition.Confidence,
		},
		Timestamp: time.Now(),
	})

	if service == "" {
		c.recordSheetResult(ic, parser.ParseResult{
			SheetName: sheetName,
			Status:    "skipped",
			Duration:  time.Since(sheetStart),
		})
		return
	}

	result := c.importRows(ic, sheetName, service, rows, opts)
	result.Duration = time.Since(sheetStart)
	c.recordSheetResult(ic, result)
}

// importRows 행을 평가 기록으로 바꿔 저장하고 import_logs 에 남긴다
func (c *Coordinator) importRows(ic *importContext, sheetName string, service model.ServiceType, rows [][]string, opts ImportOptions) parser.ParseResult {
	result := parser.ParseResult{SheetName: sheetName, Service: string(service)}

	logID, err := c.store.CreateImportLog(ic.batchID, ic.filename+"#"+sheetName, string(service))
	if err != nil {
		c.log.Warn("create import log failed", "sheet", sheetName, "error", err)
	}

	records, rowErrs := parser.ParseRows(rows, parser.RowDefaults{
		Service:   service,
		ProgramID: opts.ProgramID,
		Agency:    opts.Agency,
		OpenDay:   parser.NormalizeDay(opts.OpenDay),
	})
	result.TotalRows = len(records) + len(rowErrs)
	result.ErrorRows = len(rowErrs)
	result.Errors = rowErrs

	status := "imported"
	errMsg := strings.Join(rowErrs, "; ")
	if len(records) == 0 {
		status = "skipped"
	} else if err := c.store.InsertScoreRecords(ic.ctx, records, ic.batchID); err != nil {
		c.log.Error("insert score records failed", "sheet", sheetName, "error", err)
		status = "error"
		errMsg = err.Error()
		result.ErrorRows = result.TotalRows
		result.Errors = append(result.Errors, fmt.Sprintf("저장 실패: %v", err))
	} else {
		result.ImportedRows = len(records)
	}
	result.Status = status

	if logID > 0 {
		if err := c.store.UpdateImportLog(logID, result.TotalRows, result.ImportedRows, result.ErrorRows, status, errMsg); err != nil {
			c.log.Warn("update import log failed", "sheet", sheetName, "error", err)
		}
	}

	c.sendProgress(ic.progressChan, ProgressEvent{
		Type:    "sheet_done",
		Message: fmt.Sprintf("시트 \"%s\": %d건 저장", sheetName, result.ImportedRows),
		Data: map[string]interface{}{
			"sheet_name":    sheetName,
			"imported_rows": result.ImportedRows,
			"error_rows":    result.ErrorRows,
		},
		Timestamp: time.Now(),
	})
	return result
}

// recordSheetResult 시트 결과를 보고서에 합산
func (c *Coordinator) recordSheetResult(ic *importContext, result parser.ParseResult) {
	ic.report.Sheets = append(ic.report.Sheets, result)

	switch result.Status {
	case "imported":
		ic.report.ImportedSheets++
		ic.report.ImportedRows += result.ImportedRows
	case "skipped":
		ic.report.SkippedSheets++
	}
	ic.report.ErrorRows += result.ErrorRows
	ic.report.TotalRows += result.TotalRows
}

// sendProgress 진행 이벤트 전송
// 중간 이벤트는 채널이 가득 차면 버리고, done/error 는 반드시 전달한다
func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	if event.Type == "done" || event.Type == "error" {
		ch <- event
		return
	}
	select {
	case ch <- event:
	default:
	}
}
