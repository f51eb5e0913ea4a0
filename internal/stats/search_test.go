package stats

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"healingstat/internal/model"
)

func scores(values ...string) []string { return values }

func TestParseSearchTarget(t *testing.T) {
	t.Parallel()

	tests := map[string]SearchTarget{
		"program":  TargetProgram,
		"facility": TargetFacility,
		"prevent":  TargetPrevent,
		"counsel":  TargetHealing,
		"":         TargetHealing,
	}
	for in, want := range tests {
		if got := ParseSearchTarget(in); got != want {
			t.Fatalf("ParseSearchTarget(%q)=%s, want %s", in, got, want)
		}
	}
}

func TestAssembleSearch_ColumnsPerTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target SearchTarget
		want   []string
	}{
		{TargetProgram, []string{"강사", "내용구성", "효과성", "전체"}},
		{TargetFacility, []string{"숙소", "식당", "프로그램장소", "숲환경", "운영"}},
		{TargetPrevent, []string{"중독특징이해", "핵심증상이해", "문제대응방법", "활용역량"}},
		{TargetHealing, []string{"sum1", "sum2", "sum3", "sum4", "sum5", "sum6", "sum7"}},
	}
	for _, tt := range tests {
		got := AssembleSearch(tt.target, Keywords{}, nil).Columns
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("%s columns (-want +got):\n%s", tt.target, diff)
		}
	}
}

func TestAssembleSearch_ProgramAttachesKeywords(t *testing.T) {
	t.Parallel()

	records := []*model.ScoreRecord{
		{Name: "김", Service: model.ServiceProgram, Scores: scores("5", "5", "5", "4", "4", "4", "", "", "")},
	}
	kw := Keywords{"숲", "2024", "기관A"}
	report := AssembleSearch(TargetProgram, kw, records)
	if len(report.Rows) != 1 {
		t.Fatalf("rows=%d", len(report.Rows))
	}
	row := report.Rows[0]
	want := map[string]string{"강사": "5.0", "내용구성": "4.0", "효과성": "-", "전체": "4.50"}
	for col, v := range want {
		if got, _ := row.Sum(col); got != v {
			t.Fatalf("%s=%q, want %q", col, got, v)
		}
	}

	b, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, frag := range []string{`"keyword0":"숲"`, `"keyword1":"2024"`, `"keyword2":"기관A"`, `"NAME":"김"`} {
		if !strings.Contains(string(b), frag) {
			t.Fatalf("json %s missing %s", b, frag)
		}
	}
}

func TestAssembleSearch_PreventPairsByID(t *testing.T) {
	t.Parallel()

	records := []*model.ScoreRecord{
		{ID: 4, Name: "김", PV: model.TimingPost, Service: model.ServicePrevent, Scores: scores("4", "4", "4", "4")},
		{ID: 2, Name: "김", PV: model.TimingPre, Service: model.ServicePrevent, Scores: scores("2", "2", "2", "2")},
		{ID: 3, Name: "이", PV: model.TimingPre, Service: model.ServicePrevent, Scores: scores("1")},
	}
	report := AssembleSearch(TargetPrevent, Keywords{}, records)
	if len(report.Rows) != 2 {
		t.Fatalf("rows=%d, want 2", len(report.Rows))
	}
	if report.Rows[0].Record.ID != 2 || report.Rows[1].Record.ID != 4 {
		t.Fatalf("unexpected order: %d %d", report.Rows[0].Record.ID, report.Rows[1].Record.ID)
	}
	if got, _ := report.Rows[0].Sum("중독특징이해"); got != "2.0" {
		t.Fatalf("pre 중독특징이해=%q", got)
	}
	if got, _ := report.Rows[0].Sum("활용역량"); got != NoData {
		t.Fatalf("pre 활용역량=%q, want -", got)
	}
}

func TestAssembleSearch_HealingUsesServiceDefinition(t *testing.T) {
	t.Parallel()

	healing := make([]string, 22)
	for i := range healing {
		healing[i] = "3"
	}
	healing[0], healing[1], healing[2] = "5", "5", "5"

	records := []*model.ScoreRecord{
		{Name: "김", PV: model.TimingPre, Service: model.ServiceHealing, Scores: healing},
		{Name: "김", PV: model.TimingPost, Service: model.ServiceHealing, Scores: healing},
		{Name: "박", PV: model.TimingPre, Service: model.ServiceCounsel, Scores: scores("1", "1")},
	}
	report := AssembleSearch(ParseSearchTarget("anything"), Keywords{}, records)
	if report.Target != TargetHealing {
		t.Fatalf("target=%s", report.Target)
	}
	if len(report.Rows) != 2 {
		t.Fatalf("rows=%d, want 2", len(report.Rows))
	}
	if got, _ := report.Rows[0].Sum("sum1"); got != "5.0" {
		t.Fatalf("sum1=%q, want 5.0", got)
	}
	if got, _ := report.Rows[0].Sum("sum7"); got != "3.0" {
		t.Fatalf("sum7=%q, want 3.0", got)
	}
}

func TestAssembleSearch_HealingPairsWithinEachForm(t *testing.T) {
	t.Parallel()

	records := []*model.ScoreRecord{
		{ID: 1, Name: "김", PV: model.TimingPre, Service: model.ServiceCounsel, Scores: scores("3")},
		{ID: 2, Name: "김", PV: model.TimingPost, Service: model.ServiceHealing, Scores: scores("4")},
	}
	report := AssembleSearch(ParseSearchTarget("counsel"), Keywords{}, records)
	if len(report.Rows) != 0 {
		t.Fatalf("rows=%d, want 0 (pre and post are on different forms)", len(report.Rows))
	}

	records = append(records,
		&model.ScoreRecord{ID: 3, Name: "김", PV: model.TimingPost, Service: model.ServiceCounsel, Scores: scores("5")},
		&model.ScoreRecord{ID: 4, Name: "가", PV: model.TimingPre, Service: model.ServiceHealing, Scores: scores("2")},
		&model.ScoreRecord{ID: 5, Name: "가", PV: model.TimingPost, Service: model.ServiceHealing, Scores: scores("2")},
	)
	report = AssembleSearch(TargetHealing, Keywords{}, records)
	var got []string
	for _, row := range report.Rows {
		got = append(got, string(row.Record.Service)+"/"+row.Record.Name+"/"+string(row.Record.PV))
	}
	want := []string{"counsel/김/사전", "counsel/김/사후", "healing/가/사전", "healing/가/사후"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}
