package stats

import (
	"healingstat/internal/model"
)

// ReportInput 보고서 한 건을 만드는 데 필요한 조회 결과
type ReportInput struct {
	Scores   []*model.ScoreRecord
	Programs []model.ProgramResult
	Bunya    []model.BunyaSatisfactionEntry
	Expend   []model.FinancialLineItem
	Income   []model.FinancialLineItem
}

// EffectRow 영역별 사전/사후 평균
type EffectRow struct {
	Domain string `json:"domain"`
	Pre    string `json:"pre"`
	Post   string `json:"post"`
}

// ServiceEffect 효과 평가지 한 종류의 사전/사후 비교
type ServiceEffect struct {
	Service     model.ServiceType `json:"service"`
	Label       string            `json:"label"`
	Respondents int               `json:"respondents"`
	Rows        []EffectRow       `json:"rows"`
}

// SatisfactionSummary 만족도 평가지 한 종류의 영역별 평균
type SatisfactionSummary struct {
	Service  model.ServiceType `json:"service"`
	Label    string            `json:"label"`
	Count    int               `json:"count"`
	Averages DomainAverages    `json:"averages"`
}

// ProgramResultReport 프로그램 결과 보고서
type ProgramResultReport struct {
	Manage        []PivotRow            `json:"manage"`
	Bunya         []PivotRow            `json:"bunya"`
	SerList       []SatisfactionSummary `json:"serList"`
	ProgramEffect []ServiceEffect       `json:"programEffect"`
	Expend        map[string]int64      `json:"expend"`
	Income        map[string]int64      `json:"income"`
	Extra         map[string]int64      `json:"extra,omitempty"`
}

// Period 연월 보고서 조회 기간
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// YearMonthReport 연월 보고서 (분야 피벗에 참여인원 행 포함)
type YearMonthReport struct {
	Period Period `json:"period"`
	ProgramResultReport
}

// effectServices 사전/사후 비교 표 순서
var effectServices = []model.ServiceType{
	model.ServicePrevent,
	model.ServicePreventExt,
	model.ServiceCounsel,
	model.ServiceHealing,
	model.ServiceHRV,
}

// satisfactionServices 만족도 표 순서
var satisfactionServices = []model.ServiceType{
	model.ServiceProgram,
	model.ServiceFacility,
}

// groupByService 평가지 종류별 분류
func groupByService(records []*model.ScoreRecord) map[model.ServiceType][]*model.ScoreRecord {
	out := make(map[model.ServiceType][]*model.ScoreRecord)
	for _, rec := range records {
		out[rec.Service] = append(out[rec.Service], rec)
	}
	return out
}

// BuildServiceEffect 사전/사후 쌍이 있는 응답자만으로 영역별 평균 비교
func BuildServiceEffect(service model.ServiceType, records []*model.ScoreRecord) ServiceEffect {
	def := MustDefinition(service)
	paired := PairAndFilter(records, SortByName)
	pre, post := SplitByTiming(paired)

	preAvg := PooledDomainAverages(pre, def)
	postAvg := PooledDomainAverages(post, def)

	rows := make([]EffectRow, len(def.Domains))
	for i, dm := range def.Domains {
		rows[i] = EffectRow{
			Domain: dm.Name,
			Pre:    preAvg[i].Value,
			Post:   postAvg[i].Value,
		}
	}
	return ServiceEffect{
		Service:     service,
		Label:       service.Label(),
		Respondents: CountRespondents(paired),
		Rows:        rows,
	}
}

// BuildSatisfaction 만족도 평가지 영역별 평균
func BuildSatisfaction(service model.ServiceType, records []*model.ScoreRecord) SatisfactionSummary {
	return SatisfactionSummary{
		Service:  service,
		Label:    service.Label(),
		Count:    len(records),
		Averages: PooledDomainAverages(records, MustDefinition(service)),
	}
}

func assemble(in ReportInput, opts PivotOptions) ProgramResultReport {
	pivot := BuildProgramManagePivot(in.Programs, in.Bunya, opts)
	finance := RollupExpensesAndIncome(in.Expend, in.Income)
	byService := groupByService(in.Scores)

	serList := make([]SatisfactionSummary, 0, len(satisfactionServices))
	for _, s := range satisfactionServices {
		serList = append(serList, BuildSatisfaction(s, byService[s]))
	}

	effects := make([]ServiceEffect, 0, len(effectServices))
	for _, s := range effectServices {
		effects = append(effects, BuildServiceEffect(s, byService[s]))
	}

	return ProgramResultReport{
		Manage:        pivot.Manage,
		Bunya:         pivot.Bunya,
		SerList:       serList,
		ProgramEffect: effects,
		Expend:        finance.Expend,
		Income:        finance.Income,
		Extra:         finance.Extra,
	}
}

// AssembleProgramResult 프로그램 결과 보고서 조립
func AssembleProgramResult(in ReportInput) *ProgramResultReport {
	r := assemble(in, PivotOptions{})
	return &r
}

// AssembleYearMonth 연월 보고서 조립
func AssembleYearMonth(period Period, in ReportInput) *YearMonthReport {
	return &YearMonthReport{
		Period:              period,
		ProgramResultReport: assemble(in, PivotOptions{IncludeHeadcount: true}),
	}
}

// RespondentAverages 응답자 한 건의 영역별 평균 (효과 조회 화면)
type RespondentAverages struct {
	Record   *model.ScoreRecord `json:"record"`
	Averages DomainAverages     `json:"averages"`
}

// BuildRespondentAverages 평가지 종류별 응답자 목록
// 효과 평가지는 사전/사후 쌍이 있는 응답자만, 만족도 평가지는 이름 순 전체
func BuildRespondentAverages(service model.ServiceType, records []*model.ScoreRecord) []RespondentAverages {
	def := MustDefinition(service)
	var rows []*model.ScoreRecord
	if service.IsEffect() {
		rows = PairAndFilter(records, SortByName)
	} else {
		rows = SortRecords(records, SortByName)
	}
	out := make([]RespondentAverages, 0, len(rows))
	for _, rec := range rows {
		out = append(out, RespondentAverages{
			Record:   rec,
			Averages: ComputeDomainAverages(rec, def),
		})
	}
	return out
}
