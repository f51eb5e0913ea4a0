package parser

import (
	"regexp"
	"strconv"
)

var scoreColumnRe = regexp.MustCompile(`^(?:SCORE|문항|Q)0*(\d{1,2})$`)

// columnAliases 정규화된 열 이름 -> 열 종류
var columnAliases = map[string]FieldKind{
	"ID":         FieldID,
	"번호":         FieldID,
	"NAME":       FieldName,
	"이름":         FieldName,
	"성명":         FieldName,
	"PV":         FieldPV,
	"구분":         FieldPV,
	"사전사후":       FieldPV,
	"사전/사후":      FieldPV,
	"SEX":        FieldSex,
	"성별":         FieldSex,
	"AGE":        FieldAge,
	"연령":         FieldAge,
	"나이":         FieldAge,
	"RESIDENCE":  FieldResidence,
	"거주지":        FieldResidence,
	"JOB":        FieldJob,
	"직업":         FieldJob,
	"AGENCY":     FieldAgency,
	"기관":         FieldAgency,
	"기관명":        FieldAgency,
	"PROGRAM_ID": FieldProgramID,
	"프로그램":       FieldProgramID,
	"OPENDAY":    FieldOpenDay,
	"시작일":        FieldOpenDay,
	"실시일":        FieldOpenDay,
}

// MapHeader 머리글 행을 열 매핑으로 변환 (알 수 없는 열은 빠진다)
func MapHeader(headers []string) map[int]FieldMapping {
	mappings := make(map[int]FieldMapping)
	for idx, raw := range headers {
		col := NormalizeColumnName(raw)
		if col == "" {
			continue
		}
		if kind, ok := columnAliases[col]; ok {
			mappings[idx] = FieldMapping{ColumnIndex: idx, ColumnName: raw, Kind: kind}
			continue
		}
		if m := scoreColumnRe.FindStringSubmatch(col); len(m) == 2 {
			n, err := strconv.Atoi(m[1])
			if err != nil || n < 1 || n > 62 {
				continue
			}
			mappings[idx] = FieldMapping{ColumnIndex: idx, ColumnName: raw, Kind: FieldScore, ScoreIndex: n}
		}
	}
	return mappings
}

// CountScoreColumns 매핑 중 문항 열 수 (가장 큰 문항 번호)
func CountScoreColumns(mappings map[int]FieldMapping) int {
	maxIdx := 0
	for _, m := range mappings {
		if m.Kind == FieldScore && m.ScoreIndex > maxIdx {
			maxIdx = m.ScoreIndex
		}
	}
	return maxIdx
}

// HasKind 특정 종류 열이 있는지
func HasKind(mappings map[int]FieldMapping, kind FieldKind) bool {
	for _, m := range mappings {
		if m.Kind == kind {
			return true
		}
	}
	return false
}
