package model

// ServiceType 평가지 종류
type ServiceType string

const (
	ServicePrevent    ServiceType = "prevent"     // 예방교육 효과 (14문항)
	ServicePreventExt ServiceType = "prevent_ext" // 예방교육 효과 확장형 (20문항)
	ServiceCounsel    ServiceType = "counsel"     // 상담/치유 효과 (62문항)
	ServiceHealing    ServiceType = "healing"     // 힐링 효과 (22문항)
	ServiceHRV        ServiceType = "hrv"         // HRV 생체지표 (8문항)
	ServiceProgram    ServiceType = "program"     // 프로그램 만족도 (9문항)
	ServiceFacility   ServiceType = "facility"    // 시설 만족도 (12문항)
)

// AllServiceTypes 보고서 표시 순서
var AllServiceTypes = []ServiceType{
	ServicePrevent,
	ServicePreventExt,
	ServiceCounsel,
	ServiceHealing,
	ServiceHRV,
	ServiceProgram,
	ServiceFacility,
}

// IsValid 알려진 평가지 종류인지 확인
func (s ServiceType) IsValid() bool {
	for _, it := range AllServiceTypes {
		if it == s {
			return true
		}
	}
	return false
}

// IsEffect 사전/사후 비교가 필요한 효과 평가지인지 확인
func (s ServiceType) IsEffect() bool {
	switch s {
	case ServicePrevent, ServicePreventExt, ServiceCounsel, ServiceHealing, ServiceHRV:
		return true
	}
	return false
}

// Label 화면 표기
func (s ServiceType) Label() string {
	switch s {
	case ServicePrevent:
		return "예방서비스"
	case ServicePreventExt:
		return "예방서비스(확장)"
	case ServiceCounsel:
		return "상담치유서비스"
	case ServiceHealing:
		return "힐링서비스"
	case ServiceHRV:
		return "HRV"
	case ServiceProgram:
		return "프로그램만족도"
	case ServiceFacility:
		return "시설만족도"
	}
	return string(s)
}
