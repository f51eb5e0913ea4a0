package parser

import (
	"fmt"
	"strconv"
	"strings"

	"healingstat/internal/model"
)

// RowDefaults 행에 값이 없을 때 채울 공통 값
type RowDefaults struct {
	Service   model.ServiceType
	ProgramID string
	Agency    string
	OpenDay   string
}

// ParseRows 머리글 다음 행들을 평가 기록으로 변환
// rows[0] 은 머리글이다. 이름이 빈 행은 건너뛰고, 구분(사전/사후)을 읽을 수 없는 행은 오류로 센다
func ParseRows(rows [][]string, defaults RowDefaults) ([]*model.ScoreRecord, []string) {
	if len(rows) == 0 {
		return nil, nil
	}
	mappings := MapHeader(rows[0])

	var (
		records []*model.ScoreRecord
		errs    []string
	)
	for i, row := range rows[1:] {
		rowNo := i + 2 // 엑셀 행 번호
		if isBlankRow(row) {
			continue
		}
		rec, err := parseRow(row, mappings, defaults)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%d행: %v", rowNo, err))
			continue
		}
		if rec == nil {
			continue
		}
		records = append(records, rec)
	}
	return records, errs
}

func parseRow(row []string, mappings map[int]FieldMapping, defaults RowDefaults) (*model.ScoreRecord, error) {
	rec := &model.ScoreRecord{
		Service:   defaults.Service,
		ProgramID: defaults.ProgramID,
		Agency:    defaults.Agency,
		OpenDay:   defaults.OpenDay,
	}
	var scores [model.MaxScoreItems]string
	maxScore := 0
	pvText := ""

	for idx, m := range mappings {
		if idx >= len(row) {
			continue
		}
		val := strings.TrimSpace(row[idx])
		switch m.Kind {
		case FieldID:
			if val != "" {
				id, err := strconv.ParseInt(val, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("번호 %q 를 읽을 수 없습니다", val)
				}
				rec.ID = id
			}
		case FieldName:
			rec.Name = val
		case FieldPV:
			pvText = val
		case FieldSex:
			rec.Sex = val
		case FieldAge:
			rec.Age = val
		case FieldResidence:
			rec.Residence = val
		case FieldJob:
			rec.Job = val
		case FieldAgency:
			if val != "" {
				rec.Agency = val
			}
		case FieldProgramID:
			if val != "" {
				rec.ProgramID = val
			}
		case FieldOpenDay:
			if val != "" {
				rec.OpenDay = NormalizeDay(val)
			}
		case FieldScore:
			scores[m.ScoreIndex-1] = val
			if val != "" && m.ScoreIndex > maxScore {
				maxScore = m.ScoreIndex
			}
		}
	}

	if rec.Name == "" {
		return nil, nil
	}
	pv, ok := model.ParseTiming(pvText)
	if !ok {
		return nil, fmt.Errorf("%s: 구분 %q 는 사전/사후가 아닙니다", rec.Name, pvText)
	}
	rec.PV = pv
	rec.Scores = append([]string(nil), scores[:maxScore]...)
	fillUnspecified(rec)
	return rec, nil
}

// fillUnspecified 빈 인적 사항은 미기재로 채운다
func fillUnspecified(rec *model.ScoreRecord) {
	for _, p := range []*string{&rec.Sex, &rec.Age, &rec.Residence, &rec.Job} {
		if *p == "" {
			*p = model.Unspecified
		}
	}
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
