package stats

import (
	"fmt"

	"healingstat/internal/model"
)

// SearchTarget 키워드 검색 보고서의 평가 대상
type SearchTarget string

const (
	TargetProgram  SearchTarget = "program"
	TargetFacility SearchTarget = "facility"
	TargetPrevent  SearchTarget = "prevent"
	// TargetHealing 그 밖의 값 (상담/힐링 7개 영역)
	TargetHealing SearchTarget = "healing"
)

// ParseSearchTarget 알 수 없는 값은 상담/힐링 계산식으로 처리
func ParseSearchTarget(s string) SearchTarget {
	switch SearchTarget(s) {
	case TargetProgram, TargetFacility, TargetPrevent:
		return SearchTarget(s)
	}
	return TargetHealing
}

// searchFormula 검색 대상별 계산식
// 대상마다 영역 묶음과 결과 열 개수가 달라 하나의 함수로 합치지 않는다
type searchFormula interface {
	target() SearchTarget
	columns() []string
	// prepare 계산 전 행 선택/정렬
	prepare(records []*model.ScoreRecord) []*model.ScoreRecord
	sums(rec *model.ScoreRecord) []string
}

// programFormula 강사/내용구성/효과성 3개 + 전체 평균
type programFormula struct{ def DomainDefinition }

func (f programFormula) target() SearchTarget { return TargetProgram }

func (f programFormula) columns() []string {
	return append(f.def.Names(), "전체")
}

func (f programFormula) prepare(records []*model.ScoreRecord) []*model.ScoreRecord {
	return SortRecords(records, SortByName)
}

func (f programFormula) sums(rec *model.ScoreRecord) []string {
	out := make([]string, 0, len(f.def.Domains)+1)
	var all []float64
	for _, dm := range f.def.Domains {
		values := collect(rec, dm.Items, nil)
		all = append(all, values...)
		out = append(out, DashAverage(values))
	}
	return append(out, DashAverage(all))
}

// facilityFormula 시설 5개 영역, 전체 평균 없음
type facilityFormula struct{ def DomainDefinition }

func (f facilityFormula) target() SearchTarget { return TargetFacility }

func (f facilityFormula) columns() []string { return f.def.Names() }

func (f facilityFormula) prepare(records []*model.ScoreRecord) []*model.ScoreRecord {
	return SortRecords(records, SortByName)
}

func (f facilityFormula) sums(rec *model.ScoreRecord) []string {
	out := make([]string, 0, len(f.def.Domains))
	for _, dm := range f.def.Domains {
		out = append(out, DashAverage(collect(rec, dm.Items, nil)))
	}
	return out
}

// preventFormula 예방 4개 영역, 사전/사후 쌍만 ID 순으로
type preventFormula struct{ def DomainDefinition }

func (f preventFormula) target() SearchTarget { return TargetPrevent }

func (f preventFormula) columns() []string { return f.def.Names() }

func (f preventFormula) prepare(records []*model.ScoreRecord) []*model.ScoreRecord {
	return PairAndFilter(records, SortByID)
}

func (f preventFormula) sums(rec *model.ScoreRecord) []string {
	avgs := ComputeDomainAverages(rec, f.def)
	out := make([]string, len(avgs))
	for i, a := range avgs {
		out[i] = a.Value
	}
	return out
}

// healingFormula 상담/힐링 7개 영역, 사전/사후 쌍만 이름 순으로
// 평가지 종류에 맞는 정의를 쓰되 열 이름은 sum1..sum7 로 통일
type healingFormula struct {
	counsel DomainDefinition
	healing DomainDefinition
}

const healingSums = 7

func (f healingFormula) target() SearchTarget { return TargetHealing }

func (f healingFormula) columns() []string {
	out := make([]string, healingSums)
	for i := range out {
		out[i] = fmt.Sprintf("sum%d", i+1)
	}
	return out
}

// prepare 평가지 종류별로 따로 짝을 지은 뒤 상담, 힐링 순으로 잇는다
func (f healingFormula) prepare(records []*model.ScoreRecord) []*model.ScoreRecord {
	byService := groupByService(records)
	out := make([]*model.ScoreRecord, 0, len(records))
	for _, svc := range []model.ServiceType{model.ServiceCounsel, model.ServiceHealing} {
		out = append(out, PairAndFilter(byService[svc], SortByName)...)
	}
	return out
}

func (f healingFormula) sums(rec *model.ScoreRecord) []string {
	def := f.counsel
	if rec.Service == model.ServiceHealing {
		def = f.healing
	}
	out := make([]string, healingSums)
	for i := range out {
		out[i] = NoData
	}
	for i, a := range ComputeDomainAverages(rec, def) {
		if i < healingSums {
			out[i] = a.Value
		}
	}
	return out
}

// formulaFor 검색 대상에 맞는 계산식 (보고서 생성 시 한 번만 결정)
func formulaFor(target SearchTarget) searchFormula {
	switch target {
	case TargetProgram:
		return programFormula{def: MustDefinition(model.ServiceProgram)}
	case TargetFacility:
		return facilityFormula{def: MustDefinition(model.ServiceFacility)}
	case TargetPrevent:
		return preventFormula{def: MustDefinition(model.ServicePrevent)}
	}
	return healingFormula{
		counsel: MustDefinition(model.ServiceCounsel),
		healing: MustDefinition(model.ServiceHealing),
	}
}

// Keywords 검색어 3개 (결과 행마다 그대로 붙는다)
type Keywords [3]string

// SearchRow 키워드 검색 결과 한 행
type SearchRow struct {
	Record   *model.ScoreRecord
	Columns  []string
	Sums     []string
	Keywords Keywords
}

// Sum 열 이름으로 값 조회
func (r SearchRow) Sum(column string) (string, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Sums[i], true
		}
	}
	return "", false
}

// MarshalJSON 응답자 정보, 영역 평균, keyword0..2 순서
func (r SearchRow) MarshalJSON() ([]byte, error) {
	keys := []string{"ID", "NAME", "PV", "SEX", "AGE", "RESIDENCE", "JOB"}
	values := []any{r.Record.ID, r.Record.Name, string(r.Record.PV), r.Record.Sex, r.Record.Age, r.Record.Residence, r.Record.Job}
	for i, c := range r.Columns {
		keys = append(keys, c)
		values = append(values, r.Sums[i])
	}
	for i, kw := range r.Keywords {
		keys = append(keys, fmt.Sprintf("keyword%d", i))
		values = append(values, kw)
	}
	return marshalOrdered(keys, values)
}

// SearchReport 키워드 검색 보고서
type SearchReport struct {
	Target  SearchTarget `json:"target"`
	Columns []string     `json:"columns"`
	Rows    []SearchRow  `json:"rows"`
}

// AssembleSearch 검색 대상별 계산식으로 행마다 영역 평균을 구하고 검색어를 붙인다
func AssembleSearch(target SearchTarget, keywords Keywords, records []*model.ScoreRecord) *SearchReport {
	f := formulaFor(target)
	columns := f.columns()

	selected := f.prepare(records)
	rows := make([]SearchRow, 0, len(selected))
	for _, rec := range selected {
		rows = append(rows, SearchRow{
			Record:   rec,
			Columns:  columns,
			Sums:     f.sums(rec),
			Keywords: keywords,
		})
	}
	return &SearchReport{
		Target:  f.target(),
		Columns: columns,
		Rows:    rows,
	}
}

// SearchService 검색 대상이 조회할 평가지 종류
func SearchService(target SearchTarget) []model.ServiceType {
	switch target {
	case TargetProgram:
		return []model.ServiceType{model.ServiceProgram}
	case TargetFacility:
		return []model.ServiceType{model.ServiceFacility}
	case TargetPrevent:
		return []model.ServiceType{model.ServicePrevent}
	}
	return []model.ServiceType{model.ServiceCounsel, model.ServiceHealing}
}
