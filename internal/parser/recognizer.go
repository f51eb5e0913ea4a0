package parser

import (
	"strings"

	"healingstat/internal/model"
)

// SheetRecognizer 평가지 시트 종류 인식기
type SheetRecognizer struct{}

// NewSheetRecognizer 인식기 생성
func NewSheetRecognizer() *SheetRecognizer {
	return &SheetRecognizer{}
}

// 시트 이름 키워드 -> 서비스 (앞에서부터 먼저 맞는 것)
var sheetKeywords = []struct {
	keywords []string
	service  model.ServiceType
}{
	{[]string{"HRV", "심박"}, model.ServiceHRV},
	{[]string{"예방"}, model.ServicePrevent},
	{[]string{"상담"}, model.ServiceCounsel},
	{[]string{"힐링", "치유"}, model.ServiceHealing},
	{[]string{"시설"}, model.ServiceFacility},
	{[]string{"프로그램", "만족"}, model.ServiceProgram},
}

// 문항 수 -> 서비스
var itemCountServices = map[int]model.ServiceType{
	62: model.ServiceCounsel,
	22: model.ServiceHealing,
	20: model.ServicePreventExt,
	14: model.ServicePrevent,
	12: model.ServiceFacility,
	9:  model.ServiceProgram,
	8:  model.ServiceHRV,
}

// Recognize 시트 이름과 머리글로 서비스 종류를 추정
func (r *SheetRecognizer) Recognize(sheetName string, headers []string) SheetRecognitionResult {
	mappings := MapHeader(headers)
	items := CountScoreColumns(mappings)
	result := SheetRecognitionResult{SheetName: sheetName, ScoreItems: items}

	// 이름 열과 문항 열이 없으면 평가지가 아니다
	if items == 0 || !HasKind(mappings, FieldName) {
		return result
	}

	name := strings.ToUpper(strings.TrimSpace(sheetName))
	for _, entry := range sheetKeywords {
		if !ContainsAny(name, entry.keywords) {
			continue
		}
		svc := entry.service
		// 예방 확장형은 문항 수로 구분
		if svc == model.ServicePrevent && items > 14 {
			svc = model.ServicePreventExt
		}
		result.Service = string(svc)
		result.Confidence = 0.9
		return result
	}

	if svc, ok := itemCountServices[items]; ok {
		result.Service = string(svc)
		result.Confidence = 0.6
	}
	return result
}
