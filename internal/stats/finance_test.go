package stats

import (
	"strconv"
	"testing"

	"healingstat/internal/model"
)

func TestSumPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int64
	}{
		{"10000,20000", 30000},
		{"1000.4,0.2", 1001},
		{"1000.5", 1001},
		{"", 0},
		{"abc,500", 500},
	}
	for _, tt := range tests {
		if got := SumPrice(tt.in); got != tt.want {
			t.Fatalf("SumPrice(%q)=%d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRollupExpensesAndIncome_Scenario(t *testing.T) {
	t.Parallel()

	r := RollupExpensesAndIncome([]model.FinancialLineItem{
		{Type: ExpendPlannedInstructorFee, Price1: "10000,20000"},
	}, nil)
	if got := r.Expend[ExpendPlannedInstructorFee]; got != 30000 {
		t.Fatalf("강사예정강사비=%d, want 30000", got)
	}
}

func TestRollupExpensesAndIncome_Totals(t *testing.T) {
	t.Parallel()

	var expend []model.FinancialLineItem
	for i, typ := range ExpendTypes {
		expend = append(expend, model.FinancialLineItem{Type: typ, Price1: strconv.Itoa((i + 1) * 1000)})
	}
	expend = append(expend, model.FinancialLineItem{Type: "기념품", Price1: "999"})

	income := []model.FinancialLineItem{
		{Type: IncomeProgram, Price1: "100"},
		{Type: IncomeLodging, Price1: "200"},
		{Type: IncomeMeal, Price1: "300"},
		{Type: IncomeMaterial, Price1: "400"},
		{Type: IncomeEtc, Price1: "500"},
		{Type: IncomeDiscount, Price1: "10"},
	}

	r := RollupExpensesAndIncome(expend, income)

	var total int64
	for _, typ := range ExpendTotalTypes() {
		total += r.Expend[typ]
	}
	if r.Expend[ColumnTotal] != total {
		t.Fatalf("expend 합계=%d, constituents=%d", r.Expend[ColumnTotal], total)
	}

	var contingency int64
	for _, typ := range ContingencyTypes() {
		contingency += r.Expend[typ]
	}
	if r.Expend[ExpendContingency] != contingency {
		t.Fatalf("예비비=%d, want %d", r.Expend[ExpendContingency], contingency)
	}
	if r.Expend[ExpendContingency] == r.Expend[ColumnTotal] {
		t.Fatalf("예비비 and 합계 use different category sets and should differ here")
	}

	if r.Income[ColumnTotal] != 1500 {
		t.Fatalf("income 합계=%d, want 1500", r.Income[ColumnTotal])
	}
	if r.Income[IncomeDiscount] != 10 {
		t.Fatalf("할인율=%d, want 10", r.Income[IncomeDiscount])
	}

	if r.Extra["기념품"] != 999 {
		t.Fatalf("extra=%v", r.Extra)
	}
}

func TestRollupExpensesAndIncome_EmptyIsZeroFilled(t *testing.T) {
	t.Parallel()

	r := RollupExpensesAndIncome(nil, nil)
	for _, typ := range ExpendTypes {
		if v, ok := r.Expend[typ]; !ok || v != 0 {
			t.Fatalf("%s=%d,%v", typ, v, ok)
		}
	}
	if _, ok := r.Income[IncomeDiscount]; !ok {
		t.Fatalf("할인율 row missing")
	}
	if r.Extra != nil {
		t.Fatalf("extra should be nil, got %v", r.Extra)
	}
}
