package importer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"healingstat/internal/model"
	"healingstat/internal/parser"
	"healingstat/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "healingstat.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// writeWorkbook 시트 이름 -> 행 목록으로 엑셀 파일 생성
func writeWorkbook(t *testing.T, sheets map[string][][]interface{}, order []string) string {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	for i, name := range order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
		for r, row := range sheets[name] {
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "evaluation.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func drain(t *testing.T, ch <-chan ProgressEvent) *parser.ImportReport {
	t.Helper()
	var report *parser.ImportReport
	for evt := range ch {
		if evt.Type == "error" {
			t.Fatalf("import error event: %s", evt.Message)
		}
		if evt.Type == "done" {
			r, ok := evt.Data.(*parser.ImportReport)
			if !ok {
				t.Fatalf("unexpected report type: %T", evt.Data)
			}
			report = r
		}
	}
	if report == nil {
		t.Fatalf("missing done report")
	}
	return report
}

func TestImport_RecognizesSheetsAndStoresRows(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	path := writeWorkbook(t, map[string][][]interface{}{
		"예방교육": {
			{"이름", "구분", "성별", "SCORE1", "SCORE2", "SCORE3", "SCORE4"},
			{"김", "사전", "여", 3, 3, 3, 3},
			{"김", "사후", "여", 5, 5, 5, 5},
			{"박", "모름", "남", 1, 1, 1, 1},
		},
		"메모": {
			{"비고"},
			{"참고용"},
		},
	}, []string{"예방교육", "메모"})

	c := NewCoordinator(st, nil)
	report := drain(t, c.Import(context.Background(), ImportOptions{
		FilePath:         path,
		OriginalFilename: "4월 평가.xlsx",
		Agency:           "숲학교",
		OpenDay:          "2024.4.3",
	}))

	if report.TotalSheets != 2 || report.ImportedSheets != 1 || report.SkippedSheets != 1 {
		t.Fatalf("sheet counts: %+v", report)
	}
	if report.ImportedRows != 2 || report.ErrorRows != 1 {
		t.Fatalf("row counts: imported=%d errors=%d", report.ImportedRows, report.ErrorRows)
	}
	if report.BatchID == "" {
		t.Fatalf("missing batch id")
	}

	recs, err := st.ListScoreRecords(context.Background(), store.ScoreQueryOptions{
		Services: []model.ServiceType{model.ServicePrevent},
	})
	if err != nil {
		t.Fatalf("list records: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("stored records = %d, want 2", len(recs))
	}
	for _, r := range recs {
		if r.Agency != "숲학교" || r.OpenDay != "2024-04-03" {
			t.Fatalf("defaults not applied: %+v", r)
		}
		if len(r.Scores) != 4 {
			t.Fatalf("scores = %v", r.Scores)
		}
	}

	if v, err := st.GetConfig(store.ConfigLastImportAt); err != nil || v == "" {
		t.Fatalf("last import time not recorded: %q %v", v, err)
	}
}

func TestImport_ServiceOverride(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	path := writeWorkbook(t, map[string][][]interface{}{
		"Sheet": {
			{"NAME", "PV", "문항1", "문항2"},
			{"이", "pre", 4, 4},
		},
	}, []string{"Sheet"})

	report := drain(t, NewCoordinator(st, nil).Import(context.Background(), ImportOptions{
		FilePath: path,
		Service:  model.ServiceHealing,
	}))
	if report.ImportedRows != 1 || report.Sheets[0].Service != string(model.ServiceHealing) {
		t.Fatalf("unexpected report: %+v", report.Sheets)
	}

	counts, err := st.CountScoreRecords(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts[model.ServiceHealing] != 1 {
		t.Fatalf("counts = %v", counts)
	}
}

func TestImport_MissingFile(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	var sawError bool
	for evt := range NewCoordinator(st, nil).Import(context.Background(), ImportOptions{FilePath: filepath.Join(t.TempDir(), "none.xlsx")}) {
		if evt.Type == "error" {
			sawError = true
		}
		if evt.Type == "done" {
			t.Fatalf("unexpected done event")
		}
	}
	if !sawError {
		t.Fatalf("expected error event")
	}
}
