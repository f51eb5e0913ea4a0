package stats

import (
	"strings"

	"healingstat/internal/model"
)

// 지출 항목 (예정 8개 + 집행 8개)
const (
	ExpendPlannedInstructorFee    = "강사예정강사비"
	ExpendPlannedInstructorTravel = "강사예정교통비"
	ExpendPlannedInstructorMeal   = "강사예정식비"
	ExpendPlannedAssistantFee     = "강사예정보조강사비"
	ExpendPlannedLodging          = "고객예정숙박비"
	ExpendPlannedMeal             = "고객예정식비"
	ExpendPlannedMaterial         = "고객예정재료비"
	ExpendPlannedEtc              = "고객예정기타비"

	ExpendActualInstructorFee    = "강사집행강사비"
	ExpendActualInstructorTravel = "강사집행교통비"
	ExpendActualInstructorMeal   = "강사집행식비"
	ExpendActualAssistantFee     = "강사집행보조강사비"
	ExpendActualLodging          = "고객집행숙박비"
	ExpendActualMeal             = "고객집행식비"
	ExpendActualMaterial         = "고객집행재료비"
	ExpendActualEtc              = "고객집행기타비"

	// ExpendContingency 예비비 (예정 항목 소계)
	ExpendContingency = "예비비"
)

// 수입 항목
const (
	IncomeProgram  = "프로그램"
	IncomeLodging  = "숙박"
	IncomeMeal     = "식사"
	IncomeMaterial = "재료비"
	IncomeEtc      = "기타"
	IncomeDiscount = "할인율"
)

// ExpendTypes 지출 표 행 순서 (예비비, 합계 제외)
var ExpendTypes = []string{
	ExpendPlannedInstructorFee,
	ExpendPlannedInstructorTravel,
	ExpendPlannedInstructorMeal,
	ExpendPlannedAssistantFee,
	ExpendPlannedLodging,
	ExpendPlannedMeal,
	ExpendPlannedMaterial,
	ExpendPlannedEtc,
	ExpendActualInstructorFee,
	ExpendActualInstructorTravel,
	ExpendActualInstructorMeal,
	ExpendActualAssistantFee,
	ExpendActualLodging,
	ExpendActualMeal,
	ExpendActualMaterial,
	ExpendActualEtc,
}

// IncomeTypes 수입 표 행 순서 (합계 제외)
var IncomeTypes = []string{
	IncomeProgram,
	IncomeLodging,
	IncomeMeal,
	IncomeMaterial,
	IncomeEtc,
	IncomeDiscount,
}

// contingencyTypes 예비비 = 예정 항목 8개 합
var contingencyTypes = []string{
	ExpendPlannedInstructorFee,
	ExpendPlannedInstructorTravel,
	ExpendPlannedInstructorMeal,
	ExpendPlannedAssistantFee,
	ExpendPlannedLodging,
	ExpendPlannedMeal,
	ExpendPlannedMaterial,
	ExpendPlannedEtc,
}

// expendTotalTypes 지출 합계 = 강사 예정 4개 + 고객 집행 4개
// 예비비와 겹치지만 같은 집합이 아니다
var expendTotalTypes = []string{
	ExpendPlannedInstructorFee,
	ExpendPlannedInstructorTravel,
	ExpendPlannedInstructorMeal,
	ExpendPlannedAssistantFee,
	ExpendActualLodging,
	ExpendActualMeal,
	ExpendActualMaterial,
	ExpendActualEtc,
}

// incomeTotalTypes 수입 합계 (할인율 제외)
var incomeTotalTypes = []string{
	IncomeProgram,
	IncomeLodging,
	IncomeMeal,
	IncomeMaterial,
	IncomeEtc,
}

// ExpendTotalTypes 지출 합계 구성 항목 사본
func ExpendTotalTypes() []string {
	return append([]string(nil), expendTotalTypes...)
}

// ContingencyTypes 예비비 구성 항목 사본
func ContingencyTypes() []string {
	return append([]string(nil), contingencyTypes...)
}

// IncomeTotalTypes 수입 합계 구성 항목 사본
func IncomeTotalTypes() []string {
	return append([]string(nil), incomeTotalTypes...)
}

// FinanceRollup 지출/수입 집계
type FinanceRollup struct {
	Expend map[string]int64 `json:"expend"`
	Income map[string]int64 `json:"income"`
	// Extra 고정 항목에 없는 type (합계에 넣지 않음)
	Extra map[string]int64 `json:"extra,omitempty"`
}

// SumPrice price1 의 쉼표 구분 금액을 더해 원 단위로 반올림
// 숫자로 읽을 수 없는 토큰은 건너뛴다
func SumPrice(price1 string) int64 {
	var sum float64
	for _, tok := range strings.Split(price1, ",") {
		if v, ok := parseLeadingFloat(tok); ok {
			sum += v
		}
	}
	return roundInt(sum)
}

func sumOf(values map[string]int64, keys []string) int64 {
	var total int64
	for _, k := range keys {
		total += values[k]
	}
	return total
}

// rollupLines 고정 항목은 out 에, 나머지는 extra 에 기록 (같은 type 은 나중 행이 덮어쓴다)
func rollupLines(lines []model.FinancialLineItem, known []string, out, extra map[string]int64) {
	isKnown := make(map[string]bool, len(known))
	for _, k := range known {
		isKnown[k] = true
		out[k] = 0
	}
	for _, line := range lines {
		typ := strings.TrimSpace(line.Type)
		if isKnown[typ] {
			out[typ] = SumPrice(line.Price1)
			continue
		}
		extra[typ] = SumPrice(line.Price1)
	}
}

// RollupExpensesAndIncome 지출/수입 항목 집계
func RollupExpensesAndIncome(expend, income []model.FinancialLineItem) FinanceRollup {
	r := FinanceRollup{
		Expend: make(map[string]int64, len(ExpendTypes)+2),
		Income: make(map[string]int64, len(IncomeTypes)+1),
		Extra:  make(map[string]int64),
	}

	rollupLines(expend, ExpendTypes, r.Expend, r.Extra)
	r.Expend[ExpendContingency] = sumOf(r.Expend, contingencyTypes)
	r.Expend[ColumnTotal] = sumOf(r.Expend, expendTotalTypes)

	rollupLines(income, IncomeTypes, r.Income, r.Extra)
	r.Income[ColumnTotal] = sumOf(r.Income, incomeTotalTypes)

	if len(r.Extra) == 0 {
		r.Extra = nil
	}
	return r
}
