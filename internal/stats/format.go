package stats

import (
	"math"
	"strconv"
	"strings"
)

// NoData 평균을 낼 값이 없을 때 개인별/영역별 표에 쓰는 표기
const NoData = "-"

// parseScore 원시 문항 값을 숫자로 변환
// 빈 값, 숫자가 아닌 값, 0 이하 값은 응답 없음으로 본다
func parseScore(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v <= 0 {
		return 0, false
	}
	return v, true
}

// mean 유효 값 평균, 값이 없으면 NaN
func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// FormatAverage 평균값 표기: 정수면 소수 1자리, 아니면 2자리, NaN 이면 "-"
func FormatAverage(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NoData
	}
	places := 2
	if math.Mod(v, 1) == 0 {
		places = 1
	}
	return strconv.FormatFloat(roundHalfUp(v, places), 'f', places, 64)
}

// DashAverage 개인별/영역별 평균 규칙 ("-" 표기)
func DashAverage(values []float64) string {
	return FormatAverage(mean(values))
}

// ZeroAverage 분야 피벗 평균 규칙 (자료가 없으면 0, 소수 2자리 반올림)
func ZeroAverage(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return round2(sum / float64(n))
}

// roundHalfUp 소수 places 자리에서 반올림 (0.5 는 올림)
func roundHalfUp(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(v*p+0.5) / p
}

func round2(v float64) float64 {
	return roundHalfUp(v, 2)
}

// roundInt 원 단위 반올림
func roundInt(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// parseLeadingInt 앞부분 정수만 읽는다 ("3명" -> 3), 읽을 수 없으면 ok=false
func parseLeadingInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseLeadingFloat 앞부분 실수만 읽는다 ("1,000" 처럼 쉼표가 섞인 값은 호출 측에서 분리)
func parseLeadingFloat(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			end++
			continue
		}
		break
	}
	if end == start || (end == start+1 && seenDot) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
