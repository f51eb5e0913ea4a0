package stats

import (
	"healingstat/internal/model"
)

// Domain 심리측정 하위 영역 (문항 번호는 1부터)
type Domain struct {
	Name  string
	Items []int
}

// DomainDefinition 평가지 종류별 영역 구성
type DomainDefinition struct {
	Service model.ServiceType
	Domains []Domain
}

// Names 영역 이름 (정의 순서)
func (d DomainDefinition) Names() []string {
	out := make([]string, 0, len(d.Domains))
	for _, dm := range d.Domains {
		out = append(out, dm.Name)
	}
	return out
}

func span(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// 평가지별 영역 정의
// 힐링 평가지는 11, 12번 문항이 자기존중과 관계회복 두 영역에 함께 들어간다
var domainDefinitions = map[model.ServiceType]DomainDefinition{
	model.ServicePrevent: {
		Service: model.ServicePrevent,
		Domains: []Domain{
			{Name: "중독특징이해", Items: span(1, 4)},
			{Name: "핵심증상이해", Items: span(5, 8)},
			{Name: "문제대응방법", Items: span(9, 11)},
			{Name: "활용역량", Items: span(12, 14)},
		},
	},
	model.ServicePreventExt: {
		Service: model.ServicePreventExt,
		Domains: []Domain{
			{Name: "중독특징이해", Items: span(1, 4)},
			{Name: "핵심증상이해", Items: span(5, 8)},
			{Name: "문제대응방법", Items: span(9, 11)},
			{Name: "활용역량", Items: span(12, 14)},
			{Name: "자기조절", Items: span(15, 17)},
			{Name: "회복지지", Items: span(18, 20)},
		},
	},
	model.ServiceCounsel: {
		Service: model.ServiceCounsel,
		Domains: []Domain{
			{Name: "변화동기", Items: span(1, 8)},
			{Name: "자기효능감", Items: span(9, 16)},
			{Name: "문제해결", Items: span(17, 26)},
			{Name: "대인관계", Items: span(27, 36)},
			{Name: "정서조절", Items: span(37, 46)},
			{Name: "스트레스대처", Items: span(47, 54)},
			{Name: "삶의질", Items: span(55, 62)},
		},
	},
	model.ServiceHealing: {
		Service: model.ServiceHealing,
		Domains: []Domain{
			{Name: "신체적건강", Items: span(1, 3)},
			{Name: "정서적안정", Items: span(4, 6)},
			{Name: "인지적명료", Items: span(7, 10)},
			{Name: "자기존중", Items: span(11, 14)},
			{Name: "관계회복", Items: []int{11, 12, 15, 16}},
			{Name: "영적성장", Items: span(17, 19)},
			{Name: "삶의만족", Items: span(20, 22)},
		},
	},
	model.ServiceHRV: {
		Service: model.ServiceHRV,
		Domains: []Domain{
			{Name: "자율신경활성도", Items: []int{1}},
			{Name: "자율신경균형도", Items: []int{2}},
			{Name: "스트레스저항도", Items: []int{3}},
			{Name: "스트레스지수", Items: []int{4}},
			{Name: "피로도지수", Items: []int{5}},
			{Name: "평균심박동수", Items: []int{6}},
			{Name: "심장안정도", Items: []int{7}},
			{Name: "이상심박동수", Items: []int{8}},
		},
	},
	model.ServiceProgram: {
		Service: model.ServiceProgram,
		Domains: []Domain{
			{Name: "강사", Items: span(1, 3)},
			{Name: "내용구성", Items: span(4, 6)},
			{Name: "효과성", Items: span(7, 9)},
		},
	},
	model.ServiceFacility: {
		Service: model.ServiceFacility,
		Domains: []Domain{
			{Name: "숙소", Items: span(1, 3)},
			{Name: "식당", Items: span(4, 6)},
			{Name: "프로그램장소", Items: span(7, 8)},
			{Name: "숲환경", Items: span(9, 10)},
			{Name: "운영", Items: span(11, 12)},
		},
	},
}

// Definition 평가지 종류의 영역 정의 조회
func Definition(service model.ServiceType) (DomainDefinition, bool) {
	def, ok := domainDefinitions[service]
	return def, ok
}

// MustDefinition 고정 정의 조회 (알 수 없는 종류면 panic)
func MustDefinition(service model.ServiceType) DomainDefinition {
	def, ok := domainDefinitions[service]
	if !ok {
		panic("stats: unknown service type " + string(service))
	}
	return def
}

// DomainAverage 영역 하나의 평균 표기
type DomainAverage struct {
	Domain string
	Value  string
}

// DomainAverages 영역 순서를 유지하는 평균 목록 (JSON 은 영역 이름을 키로 하는 객체)
type DomainAverages []DomainAverage

// Get 영역 이름으로 조회
func (d DomainAverages) Get(domain string) (string, bool) {
	for _, it := range d {
		if it.Domain == domain {
			return it.Value, true
		}
	}
	return "", false
}

// MarshalJSON {"중독특징이해":"3.0",...}
func (d DomainAverages) MarshalJSON() ([]byte, error) {
	keys := make([]string, len(d))
	values := make([]any, len(d))
	for i, it := range d {
		keys[i] = it.Domain
		values[i] = it.Value
	}
	return marshalOrdered(keys, values)
}

// collect 문항 번호 목록에서 유효 점수만 모은다
func collect(rec *model.ScoreRecord, items []int, dst []float64) []float64 {
	for _, idx := range items {
		if v, ok := parseScore(rec.Score(idx)); ok {
			dst = append(dst, v)
		}
	}
	return dst
}

// ComputeDomainAverages 평가지 한 건의 영역별 평균
func ComputeDomainAverages(rec *model.ScoreRecord, def DomainDefinition) DomainAverages {
	out := make(DomainAverages, 0, len(def.Domains))
	for _, dm := range def.Domains {
		values := collect(rec, dm.Items, nil)
		out = append(out, DomainAverage{Domain: dm.Name, Value: DashAverage(values)})
	}
	return out
}

// CalculateAverage 원시 값 목록의 평균 표기 (유효 값이 없으면 "-")
func CalculateAverage(values []string) string {
	nums := make([]float64, 0, len(values))
	for _, raw := range values {
		if v, ok := parseScore(raw); ok {
			nums = append(nums, v)
		}
	}
	return DashAverage(nums)
}

// PooledDomainAverages 여러 평가지의 영역별 평균 (모든 유효 문항을 합쳐 평균)
func PooledDomainAverages(records []*model.ScoreRecord, def DomainDefinition) DomainAverages {
	out := make(DomainAverages, 0, len(def.Domains))
	for _, dm := range def.Domains {
		var values []float64
		for _, rec := range records {
			values = collect(rec, dm.Items, values)
		}
		out = append(out, DomainAverage{Domain: dm.Name, Value: DashAverage(values)})
	}
	return out
}
