package parser

import (
	"regexp"
	"strings"
)

var (
	spaceRe = regexp.MustCompile(`\s+`)
	dateRe  = regexp.MustCompile(`^(\d{4})[-./년\s]*0?(\d{1,2})[-./월\s]*0?(\d{1,2})일?$`)
)

// NormalizeColumnName 열 이름 정규화 (공백/개행 제거, 대문자)
func NormalizeColumnName(name string) string {
	name = strings.TrimSpace(name)
	name = spaceRe.ReplaceAllString(name, "")
	return strings.ToUpper(name)
}

// ContainsAny 키워드 중 하나라도 포함하는지
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// NormalizeDay "2024.3.2", "2024년 3월 2일" 같은 값을 2024-03-02 로 맞춘다
// 인식할 수 없으면 원래 값을 그대로 돌려준다
func NormalizeDay(text string) string {
	s := strings.TrimSpace(text)
	m := dateRe.FindStringSubmatch(s)
	if len(m) != 4 {
		return s
	}
	pad := func(v string) string {
		if len(v) == 1 {
			return "0" + v
		}
		return v
	}
	return m[1] + "-" + pad(m[2]) + "-" + pad(m[3])
}
