package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MaxScoreItems 평가지 한 장에 담길 수 있는 최대 문항 수 (SCORE1..SCORE62)
const MaxScoreItems = 62

// Unspecified 인구통계 항목 미기재 표기
const Unspecified = "미기재"

// Timing 사전/사후 구분
type Timing string

const (
	TimingPre  Timing = "사전" // 프로그램 참여 전
	TimingPost Timing = "사후" // 프로그램 참여 후
)

// ParseTiming 입력 문자열을 사전/사후 구분으로 변환 (pre/post 영문 표기 허용)
func ParseTiming(s string) (Timing, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "사전", "pre":
		return TimingPre, true
	case "사후", "post":
		return TimingPost, true
	}
	return "", false
}

// ScoreRecord 평가지 한 건
type ScoreRecord struct {
	ID        int64
	Service   ServiceType
	ProgramID string
	Agency    string
	OpenDay   string

	Name string
	PV   Timing

	Sex       string
	Age       string
	Residence string
	Job       string

	// Scores 는 문항 순서를 그대로 유지한 원시 값 (빈 문자열 허용)
	Scores []string
}

// Score 1부터 시작하는 문항 번호로 원시 값 조회, 범위를 벗어나면 빈 문자열
func (r *ScoreRecord) Score(index int) string {
	if index < 1 || index > len(r.Scores) {
		return ""
	}
	return r.Scores[index-1]
}

// scoreKey SCORE 열 이름
func scoreKey(index int) string {
	return "SCORE" + strconv.Itoa(index)
}

// MarshalJSON 저장 스키마와 같은 대문자 키로 직렬화
func (r ScoreRecord) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"NAME":       r.Name,
		"PV":         string(r.PV),
		"SEX":        r.Sex,
		"AGE":        r.Age,
		"RESIDENCE":  r.Residence,
		"JOB":        r.Job,
		"PROGRAM_ID": r.ProgramID,
		"AGENCY":     r.Agency,
		"OPENDAY":    r.OpenDay,
		"SERVICE":    string(r.Service),
	}
	if r.ID != 0 {
		out["ID"] = r.ID
	}
	for i, v := range r.Scores {
		out[scoreKey(i+1)] = v
	}
	return json.Marshal(out)
}

// UnmarshalJSON 대문자 키(NAME, PV, SCORE1..SCORE62) 행을 읽는다
// 숫자로 들어온 점수도 문자열로 보존한다
func (r *ScoreRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	str := func(key string) (string, error) {
		v, ok := raw[key]
		if !ok {
			return "", nil
		}
		return rawToString(v)
	}

	var rec ScoreRecord
	var err error
	fields := []struct {
		key string
		dst *string
	}{
		{"NAME", &rec.Name},
		{"SEX", &rec.Sex},
		{"AGE", &rec.Age},
		{"RESIDENCE", &rec.Residence},
		{"JOB", &rec.Job},
		{"PROGRAM_ID", &rec.ProgramID},
		{"AGENCY", &rec.Agency},
		{"OPENDAY", &rec.OpenDay},
	}
	for _, f := range fields {
		if *f.dst, err = str(f.key); err != nil {
			return fmt.Errorf("field %s: %w", f.key, err)
		}
	}

	pv, err := str("PV")
	if err != nil {
		return fmt.Errorf("field PV: %w", err)
	}
	if t, ok := ParseTiming(pv); ok {
		rec.PV = t
	} else {
		rec.PV = Timing(pv)
	}

	service, err := str("SERVICE")
	if err != nil {
		return fmt.Errorf("field SERVICE: %w", err)
	}
	rec.Service = ServiceType(service)

	if id, err := str("ID"); err != nil {
		return fmt.Errorf("field ID: %w", err)
	} else if id != "" {
		if rec.ID, err = strconv.ParseInt(id, 10, 64); err != nil {
			return fmt.Errorf("field ID: %w", err)
		}
	}

	last := 0
	scores := make([]string, MaxScoreItems)
	for i := 1; i <= MaxScoreItems; i++ {
		v, err := str(scoreKey(i))
		if err != nil {
			return fmt.Errorf("field %s: %w", scoreKey(i), err)
		}
		scores[i-1] = v
		if _, ok := raw[scoreKey(i)]; ok {
			last = i
		}
	}
	rec.Scores = scores[:last]

	*r = rec
	return nil
}

// rawToString 문자열/숫자/null 을 문자열로 통일
func rawToString(v json.RawMessage) (string, error) {
	s := strings.TrimSpace(string(v))
	if s == "" || s == "null" {
		return "", nil
	}
	if strings.HasPrefix(s, `"`) {
		var out string
		if err := json.Unmarshal(v, &out); err != nil {
			return "", err
		}
		return out, nil
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err != nil {
		return "", fmt.Errorf("unsupported value %s", s)
	}
	return n.String(), nil
}
