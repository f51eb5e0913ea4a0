package stats

import (
	"strings"

	"healingstat/internal/model"
)

// 피벗 행 이름
const (
	RowProgramCount        = "프로그램(개)"
	RowInternalInstructors = "내부강사(명)"
	RowExternalInstructors = "외부강사(명)"

	RowInstructor = "강사"
	RowContent    = "내용구성"
	RowEffect     = "효과성"
	RowHeadcount  = "참여인원"
	RowAverage    = "평균"

	// ColumnTotal 행 합계 열
	ColumnTotal = "합계"
)

// programStride PROGRAM_IN_OUT2 한 프로그램의 필드 수
const programStride = 5

// PivotRow 분야별 피벗 한 행
type PivotRow struct {
	Type  string
	Cells map[string]float64
	Total float64
}

func newPivotRow(typ string) PivotRow {
	cells := make(map[string]float64, len(model.Categories))
	for _, c := range model.Categories {
		cells[c] = 0
	}
	return PivotRow{Type: typ, Cells: cells}
}

// Cell 분야 값 조회
func (r PivotRow) Cell(category string) float64 {
	return r.Cells[category]
}

// MarshalJSON {"type":"강사","산림교육":4.5,...,"합계":3.2} 순서 고정
func (r PivotRow) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(model.Categories)+2)
	values := make([]any, 0, len(model.Categories)+2)
	keys = append(keys, "type")
	values = append(values, r.Type)
	for _, c := range model.Categories {
		keys = append(keys, c)
		values = append(values, r.Cells[c])
	}
	keys = append(keys, ColumnTotal)
	values = append(values, r.Total)
	return marshalOrdered(keys, values)
}

// sumCells 고정 분야 열의 합
func (r PivotRow) sumCells() float64 {
	var sum float64
	for _, c := range model.Categories {
		sum += r.Cells[c]
	}
	return sum
}

// ProgramPivot 프로그램 운영/분야 만족도 피벗
type ProgramPivot struct {
	Manage []PivotRow `json:"manage"`
	Bunya  []PivotRow `json:"bunya"`
}

// PivotOptions 피벗 생성 옵션
type PivotOptions struct {
	// IncludeHeadcount 연월 보고서용 참여인원 행 포함
	IncludeHeadcount bool
}

// ParseProgramInOut PROGRAM_IN_OUT2 를 5개 필드 단위로 나눈다
// 필드가 모자란 마지막 묶음도 분야 필드가 있으면 읽고, 빠지거나 숫자가 아닌 강사 수는 0 으로 본다
func ParseProgramInOut(raw string) []model.CategoryProgramEntry {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	at := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}

	var out []model.CategoryProgramEntry
	for i := 0; i+1 < len(parts); i += programStride {
		internal, _ := parseLeadingInt(at(i + 3))
		external, _ := parseLeadingInt(at(i + 4))
		out = append(out, model.CategoryProgramEntry{
			ProgramID: at(i),
			Category:  at(i + 1),
			Note:      at(i + 2),
			Internal:  internal,
			External:  external,
		})
	}
	return out
}

// BuildProgramManagePivot 프로그램 수/강사 수 피벗과 분야별 만족도 피벗 생성
func BuildProgramManagePivot(programs []model.ProgramResult, bunya []model.BunyaSatisfactionEntry, opts PivotOptions) ProgramPivot {
	return ProgramPivot{
		Manage: buildManageRows(programs),
		Bunya:  buildBunyaRows(bunya, opts),
	}
}

func buildManageRows(programs []model.ProgramResult) []PivotRow {
	count := newPivotRow(RowProgramCount)
	internal := newPivotRow(RowInternalInstructors)
	external := newPivotRow(RowExternalInstructors)

	for _, p := range programs {
		for _, e := range ParseProgramInOut(p.ProgramInOut2) {
			if !model.IsCategory(e.Category) {
				continue
			}
			count.Cells[e.Category]++
			internal.Cells[e.Category] += float64(e.Internal)
			external.Cells[e.Category] += float64(e.External)
		}
	}

	rows := []PivotRow{count, internal, external}
	for i := range rows {
		rows[i].Total = rows[i].sumCells()
	}
	return rows
}

func buildBunyaRows(entries []model.BunyaSatisfactionEntry, opts PivotOptions) []PivotRow {
	instructor := newPivotRow(RowInstructor)
	content := newPivotRow(RowContent)
	effect := newPivotRow(RowEffect)
	headcount := newPivotRow(RowHeadcount)
	average := newPivotRow(RowAverage)

	for _, c := range model.Categories {
		var n int
		var sumProgram, sumContent, sumEffect, sumCnt float64
		for _, e := range entries {
			if e.Bunya != c {
				continue
			}
			n++
			sumProgram += e.Program
			sumContent += e.Content
			sumEffect += e.Effect
			sumCnt += e.Cnt
		}

		instructor.Cells[c] = ZeroAverage(sumProgram, n)
		content.Cells[c] = ZeroAverage(sumContent, n)
		effect.Cells[c] = ZeroAverage(sumEffect, n)
		headcount.Cells[c] = sumCnt
		average.Cells[c] = ZeroAverage(sumProgram+sumContent+sumEffect, 3*n)
	}

	rows := []PivotRow{instructor, content, effect}
	if opts.IncludeHeadcount {
		rows = append(rows, headcount)
	}
	rows = append(rows, average)

	for i := range rows {
		if rows[i].Type == RowHeadcount {
			rows[i].Total = rows[i].sumCells()
			continue
		}
		rows[i].Total = round2(rows[i].sumCells() / float64(len(model.Categories)))
	}
	return rows
}
