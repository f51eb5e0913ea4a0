package stats

import (
	"encoding/json"
	"strings"
	"testing"

	"healingstat/internal/model"
)

func rowByType(rows []PivotRow, typ string) (PivotRow, bool) {
	for _, r := range rows {
		if r.Type == typ {
			return r, true
		}
	}
	return PivotRow{}, false
}

func TestBuildProgramManagePivot_SingleProgram(t *testing.T) {
	t.Parallel()

	pivot := BuildProgramManagePivot([]model.ProgramResult{{ProgramInOut2: "1,산림교육,x,2,3"}}, nil, PivotOptions{})

	tests := []struct {
		row  string
		want float64
	}{
		{RowProgramCount, 1},
		{RowInternalInstructors, 2},
		{RowExternalInstructors, 3},
	}
	for _, tt := range tests {
		r, ok := rowByType(pivot.Manage, tt.row)
		if !ok {
			t.Fatalf("missing row %s", tt.row)
		}
		if got := r.Cell(model.CategoryForestEducation); got != tt.want {
			t.Fatalf("%s.산림교육=%v, want %v", tt.row, got, tt.want)
		}
		if r.Total != tt.want {
			t.Fatalf("%s.합계=%v, want %v", tt.row, r.Total, tt.want)
		}
	}
}

func TestBuildProgramManagePivot_UnknownCategoryIgnored(t *testing.T) {
	t.Parallel()

	programs := []model.ProgramResult{
		{ProgramInOut2: "1,산림교육,x,1,1,2,요가,x,5,5,3,쿠킹,x,0,2"},
	}
	pivot := BuildProgramManagePivot(programs, nil, PivotOptions{})

	count, _ := rowByType(pivot.Manage, RowProgramCount)
	if count.Total != 2 {
		t.Fatalf("program count total=%v, want 2", count.Total)
	}
	if _, ok := count.Cells["요가"]; ok {
		t.Fatalf("unknown category must not become a column")
	}
	internal, _ := rowByType(pivot.Manage, RowInternalInstructors)
	if internal.Total != 1 {
		t.Fatalf("internal total=%v, want 1", internal.Total)
	}
	external, _ := rowByType(pivot.Manage, RowExternalInstructors)
	if external.Total != 3 {
		t.Fatalf("external total=%v, want 3", external.Total)
	}
}

func TestBuildProgramManagePivot_ShortStrideCountsAsZero(t *testing.T) {
	t.Parallel()

	programs := []model.ProgramResult{{ProgramInOut2: "1,아트,x,2,1,2,릴렉싱,x"}}
	pivot := BuildProgramManagePivot(programs, nil, PivotOptions{})

	count, _ := rowByType(pivot.Manage, RowProgramCount)
	if count.Cell(model.CategoryRelaxing) != 1 {
		t.Fatalf("릴렉싱 count=%v, want 1", count.Cell(model.CategoryRelaxing))
	}
	internal, _ := rowByType(pivot.Manage, RowInternalInstructors)
	if internal.Cell(model.CategoryRelaxing) != 0 || internal.Total != 2 {
		t.Fatalf("internal=%v total=%v", internal.Cell(model.CategoryRelaxing), internal.Total)
	}
}

func TestBuildProgramManagePivot_ManageTotalsMatchColumnSums(t *testing.T) {
	t.Parallel()

	programs := []model.ProgramResult{
		{ProgramInOut2: "1,산림교육,x,2,3,2,예방교육,x,1,0"},
		{ProgramInOut2: "3,이벤트,x,4,1,4,산림교육,x,n/a,2"},
	}
	pivot := BuildProgramManagePivot(programs, nil, PivotOptions{})
	for _, r := range pivot.Manage {
		var sum float64
		for _, c := range model.Categories {
			sum += r.Cell(c)
		}
		if sum != r.Total {
			t.Fatalf("%s column sum=%v, 합계=%v", r.Type, sum, r.Total)
		}
	}
}

func TestBuildProgramManagePivot_BunyaRows(t *testing.T) {
	t.Parallel()

	bunya := []model.BunyaSatisfactionEntry{
		{Bunya: model.CategoryForestEducation, Program: 4, Content: 5, Effect: 3, Cnt: 10},
		{Bunya: model.CategoryForestEducation, Program: 5, Content: 4, Effect: 4, Cnt: 5},
		{Bunya: model.CategoryArt, Program: 3, Content: 3, Effect: 3, Cnt: 7},
		{Bunya: "요가", Program: 1, Content: 1, Effect: 1, Cnt: 100},
	}

	plain := BuildProgramManagePivot(nil, bunya, PivotOptions{})
	if len(plain.Bunya) != 4 {
		t.Fatalf("bunya rows=%d, want 4", len(plain.Bunya))
	}

	pivot := BuildProgramManagePivot(nil, bunya, PivotOptions{IncludeHeadcount: true})
	wantOrder := []string{RowInstructor, RowContent, RowEffect, RowHeadcount, RowAverage}
	if len(pivot.Bunya) != len(wantOrder) {
		t.Fatalf("bunya rows=%d, want %d", len(pivot.Bunya), len(wantOrder))
	}
	for i, typ := range wantOrder {
		if pivot.Bunya[i].Type != typ {
			t.Fatalf("row %d=%s, want %s", i, pivot.Bunya[i].Type, typ)
		}
	}

	instructor := pivot.Bunya[0]
	if got := instructor.Cell(model.CategoryForestEducation); got != 4.5 {
		t.Fatalf("강사.산림교육=%v, want 4.5", got)
	}
	if got := instructor.Cell(model.CategoryCooking); got != 0 {
		t.Fatalf("강사.쿠킹=%v, want 0", got)
	}
	// (4.5 + 3) / 8
	if instructor.Total != 0.94 {
		t.Fatalf("강사.합계=%v, want 0.94", instructor.Total)
	}

	headcount := pivot.Bunya[3]
	if headcount.Cell(model.CategoryForestEducation) != 15 || headcount.Total != 22 {
		t.Fatalf("참여인원 산림교육=%v 합계=%v", headcount.Cell(model.CategoryForestEducation), headcount.Total)
	}

	average := pivot.Bunya[4]
	// (4+5+3+5+4+4) / 6
	if got := average.Cell(model.CategoryForestEducation); got != 4.17 {
		t.Fatalf("평균.산림교육=%v, want 4.17", got)
	}
	if got := average.Cell(model.CategoryArt); got != 3 {
		t.Fatalf("평균.아트=%v, want 3", got)
	}
}

func TestPivotRow_MarshalJSON_FixedColumns(t *testing.T) {
	t.Parallel()

	pivot := BuildProgramManagePivot(nil, nil, PivotOptions{})
	b, err := json.Marshal(pivot.Manage[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(b)
	want := `{"type":"프로그램(개)","산림교육":0,"예방교육":0,"산림치유":0,"아트":0,"릴렉싱":0,"에너제틱":0,"쿠킹":0,"이벤트":0,"합계":0}`
	if got != want {
		t.Fatalf("json=%s\nwant=%s", got, want)
	}
	if strings.Contains(got, "null") {
		t.Fatalf("unexpected null in %s", got)
	}
}

func TestParseProgramInOut(t *testing.T) {
	t.Parallel()

	entries := ParseProgramInOut("7, 쿠킹 ,비고,1,2")
	if len(entries) != 1 {
		t.Fatalf("entries=%d", len(entries))
	}
	e := entries[0]
	if e.ProgramID != "7" || e.Category != model.CategoryCooking || e.Internal != 1 || e.External != 2 {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if got := ParseProgramInOut(""); got != nil {
		t.Fatalf("empty input should give nil, got %v", got)
	}
}
