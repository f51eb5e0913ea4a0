package stats

import (
	"encoding/json"
	"testing"

	"healingstat/internal/model"
)

func TestAssembleProgramResult_Shape(t *testing.T) {
	t.Parallel()

	in := ReportInput{
		Scores: []*model.ScoreRecord{
			{Name: "Kim", PV: model.TimingPre, Service: model.ServicePrevent, Scores: scores("2", "4", "2", "4")},
			{Name: "Kim", PV: model.TimingPost, Service: model.ServicePrevent, Scores: scores("4", "6", "4", "6")},
			{Name: "Lee", PV: model.TimingPre, Service: model.ServicePrevent, Scores: scores("1", "1", "1", "1")},
			{Name: "Park", Service: model.ServiceProgram, Scores: scores("5", "4", "3")},
		},
		Programs: []model.ProgramResult{{ProgramInOut2: "1,산림교육,x,2,3"}},
		Bunya:    []model.BunyaSatisfactionEntry{{Bunya: model.CategoryForestEducation, Program: 4, Content: 4, Effect: 4}},
		Expend:   []model.FinancialLineItem{{Type: ExpendPlannedInstructorFee, Price1: "10000,20000"}},
		Income:   []model.FinancialLineItem{{Type: IncomeProgram, Price1: "5000"}},
	}

	r := AssembleProgramResult(in)

	if len(r.Manage) != 3 || len(r.Bunya) != 4 {
		t.Fatalf("manage=%d bunya=%d", len(r.Manage), len(r.Bunya))
	}
	if len(r.ProgramEffect) != 5 || len(r.SerList) != 2 {
		t.Fatalf("programEffect=%d serList=%d", len(r.ProgramEffect), len(r.SerList))
	}

	prevent := r.ProgramEffect[0]
	if prevent.Service != model.ServicePrevent || prevent.Respondents != 1 {
		t.Fatalf("unexpected prevent effect: %+v", prevent)
	}
	if prevent.Rows[0].Pre != "3.0" || prevent.Rows[0].Post != "5.0" {
		t.Fatalf("중독특징이해 pre=%s post=%s", prevent.Rows[0].Pre, prevent.Rows[0].Post)
	}

	counsel := r.ProgramEffect[2]
	for _, row := range counsel.Rows {
		if row.Pre != NoData || row.Post != NoData {
			t.Fatalf("empty service should be '-': %+v", row)
		}
	}

	program := r.SerList[0]
	if got, _ := program.Averages.Get("강사"); got != "4.0" {
		t.Fatalf("serList 강사=%q", got)
	}

	if r.Expend[ExpendPlannedInstructorFee] != 30000 || r.Income[ColumnTotal] != 5000 {
		t.Fatalf("finance: expend=%v income=%v", r.Expend, r.Income)
	}

	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"manage", "bunya", "serList", "programEffect", "expend", "income"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("missing key %s in %s", key, b)
		}
	}
}

func TestAssembleYearMonth_IncludesHeadcountAndPeriod(t *testing.T) {
	t.Parallel()

	r := AssembleYearMonth(Period{Start: "2024-01-01", End: "2024-01-31"}, ReportInput{
		Bunya: []model.BunyaSatisfactionEntry{{Bunya: model.CategoryArt, Program: 5, Content: 5, Effect: 5, Cnt: 12}},
	})
	if len(r.Bunya) != 5 {
		t.Fatalf("bunya rows=%d, want 5", len(r.Bunya))
	}
	if r.Bunya[3].Type != RowHeadcount || r.Bunya[3].Total != 12 {
		t.Fatalf("headcount row=%+v", r.Bunya[3])
	}

	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["period"]; !ok {
		t.Fatalf("missing period")
	}
	if _, ok := decoded["manage"]; !ok {
		t.Fatalf("embedded report fields must be inlined")
	}
}

func TestBuildRespondentAverages(t *testing.T) {
	t.Parallel()

	records := []*model.ScoreRecord{
		{Name: "나", PV: model.TimingPost, Scores: scores("1", "2", "3", "4", "5", "6", "7", "8")},
		{Name: "가", PV: model.TimingPre, Scores: scores("1")},
		{Name: "나", PV: model.TimingPre, Scores: scores("2")},
	}
	rows := BuildRespondentAverages(model.ServiceHRV, records)
	if len(rows) != 2 {
		t.Fatalf("rows=%d, want 2", len(rows))
	}
	if rows[0].Record.PV != model.TimingPre {
		t.Fatalf("pre row should come first")
	}
	if got, _ := rows[1].Averages.Get("이상심박동수"); got != "8.0" {
		t.Fatalf("이상심박동수=%q", got)
	}

	satisfaction := BuildRespondentAverages(model.ServiceFacility, records)
	if len(satisfaction) != 3 {
		t.Fatalf("satisfaction rows=%d, want 3", len(satisfaction))
	}
}
