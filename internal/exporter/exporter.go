package exporter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"healingstat/internal/logger"
	"healingstat/internal/model"
	"healingstat/internal/stats"
)

// 시트 이름
const (
	SheetOverview     = "개요"
	SheetManage       = "프로그램운영"
	SheetBunya        = "분야만족도"
	SheetEffect       = "효과성"
	SheetSatisfaction = "만족도"
	SheetExpend       = "지출"
	SheetIncome       = "수입"
)

// Kind 내보낼 보고서 종류
type Kind string

const (
	KindProgramResult Kind = "program-result"
	KindYearMonth     Kind = "year-month"
)

// ParseKind 문자열을 보고서 종류로 변환
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.TrimSpace(s)) {
	case KindProgramResult:
		return KindProgramResult, true
	case KindYearMonth:
		return KindYearMonth, true
	}
	return "", false
}

// Exporter 보고서 엑셀 내보내기
//
// 표마다 시트 한 장을 쓰고, 열 순서는 stats 의 고정 순서를 그대로 따른다.
type Exporter struct {
	log *logger.Logger
	now func() time.Time
}

// NewExporter 내보내기 생성
func NewExporter(log *logger.Logger) *Exporter {
	if log == nil {
		log = logger.Nop()
	}
	return &Exporter{log: log, now: time.Now}
}

// ExportProgramResult 프로그램 결과 보고서를 엑셀로 작성
func (e *Exporter) ExportProgramResult(title string, report *stats.ProgramResultReport, progress func(ProgressEvent)) (*excelize.File, error) {
	overview := [][]interface{}{
		{"보고서", "프로그램 결과"},
		{"대상", title},
	}
	return e.export(overview, report, progress)
}

// ExportYearMonth 연월 보고서를 엑셀로 작성
func (e *Exporter) ExportYearMonth(report *stats.YearMonthReport, progress func(ProgressEvent)) (*excelize.File, error) {
	overview := [][]interface{}{
		{"보고서", "연월 보고서"},
		{"시작일", report.Period.Start},
		{"종료일", report.Period.End},
	}
	return e.export(overview, &report.ProgramResultReport, progress)
}

func (e *Exporter) export(overview [][]interface{}, report *stats.ProgramResultReport, progress func(ProgressEvent)) (*excelize.File, error) {
	if report == nil {
		return nil, fmt.Errorf("보고서가 비어 있습니다")
	}
	f := excelize.NewFile()

	styles, err := newSheetStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	overview = append(overview, []interface{}{"작성시각", e.now().Format("2006-01-02 15:04:05")})
	steps := []struct {
		stage string
		fill  func() error
	}{
		{SheetOverview, func() error { return writeTable(f, SheetOverview, []string{"항목", "값"}, overview, styles) }},
		{SheetManage, func() error { return writePivot(f, SheetManage, report.Manage, styles) }},
		{SheetBunya, func() error { return writePivot(f, SheetBunya, report.Bunya, styles) }},
		{SheetEffect, func() error { return writeEffects(f, report.ProgramEffect, styles) }},
		{SheetSatisfaction, func() error { return writeSatisfaction(f, report.SerList, styles) }},
		{SheetExpend, func() error { return writeFinance(f, SheetExpend, expendRows(), report.Expend, report.Extra, styles) }},
		{SheetIncome, func() error { return writeFinance(f, SheetIncome, incomeRows(), report.Income, nil, styles) }},
	}

	for i, step := range steps {
		reportProgress(progress, i*100/len(steps), step.stage)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", step.stage); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("시트 이름 변경 실패: %w", err)
			}
		} else if _, err := f.NewSheet(step.stage); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("%s 시트 생성 실패: %w", step.stage, err)
		}
		if err := step.fill(); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("%s 작성 실패: %w", step.stage, err)
		}
	}
	reportProgress(progress, 100, "완료")
	e.log.Debug("report workbook written", "sheets", len(steps))

	f.SetActiveSheet(0)
	return f, nil
}

// pivotHeaders 피벗 표 머리글 (구분 + 8개 분야 + 합계)
func pivotHeaders() []string {
	headers := []string{"구분"}
	headers = append(headers, model.Categories...)
	return append(headers, stats.ColumnTotal)
}

func writePivot(f *excelize.File, sheet string, rows []stats.PivotRow, styles sheetStyles) error {
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		line := []interface{}{r.Type}
		for _, c := range model.Categories {
			line = append(line, r.Cell(c))
		}
		data = append(data, append(line, r.Total))
	}
	return writeTable(f, sheet, pivotHeaders(), data, styles)
}

func writeEffects(f *excelize.File, effects []stats.ServiceEffect, styles sheetStyles) error {
	var data [][]interface{}
	for _, eff := range effects {
		for _, row := range eff.Rows {
			data = append(data, []interface{}{eff.Label, eff.Respondents, row.Domain, cellValue(row.Pre), cellValue(row.Post)})
		}
	}
	return writeTable(f, SheetEffect, []string{"평가지", "응답자", "영역", "사전", "사후"}, data, styles)
}

func writeSatisfaction(f *excelize.File, list []stats.SatisfactionSummary, styles sheetStyles) error {
	var data [][]interface{}
	for _, s := range list {
		for _, avg := range s.Averages {
			data = append(data, []interface{}{s.Label, s.Count, avg.Domain, cellValue(avg.Value)})
		}
	}
	return writeTable(f, SheetSatisfaction, []string{"평가지", "응답수", "영역", "평균"}, data, styles)
}

// expendRows 지출 시트 행 순서: 16개 항목, 예비비, 합계
func expendRows() []string {
	rows := append([]string(nil), stats.ExpendTypes...)
	return append(rows, stats.ExpendContingency, stats.ColumnTotal)
}

// incomeRows 수입 시트 행 순서: 6개 항목, 합계
func incomeRows() []string {
	rows := append([]string(nil), stats.IncomeTypes...)
	return append(rows, stats.ColumnTotal)
}

func writeFinance(f *excelize.File, sheet string, order []string, values, extra map[string]int64, styles sheetStyles) error {
	data := make([][]interface{}, 0, len(order)+len(extra))
	for _, typ := range order {
		data = append(data, []interface{}{typ, values[typ]})
	}
	// 고정 항목 밖의 type 은 합계 아래에 따로 둔다
	for _, typ := range sortedKeys(extra) {
		data = append(data, []interface{}{typ + " (기타)", extra[typ]})
	}
	return writeTable(f, sheet, []string{"항목", "금액"}, data, styles)
}

// cellValue 숫자로 읽히는 평균은 숫자로, "-" 같은 표기는 문자열 그대로
func cellValue(v string) interface{} {
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		return n
	}
	return v
}
