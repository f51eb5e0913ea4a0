package exporter

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

type sheetStyles struct {
	header int
	body   int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "A6A6A6", Style: 1},
		{Type: "right", Color: "A6A6A6", Style: 1},
		{Type: "top", Color: "A6A6A6", Style: 1},
		{Type: "bottom", Color: "A6A6A6", Style: 1},
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E2EFDA"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return sheetStyles{}, fmt.Errorf("머리글 스타일 생성 실패: %w", err)
	}
	body, err := f.NewStyle(&excelize.Style{Border: border})
	if err != nil {
		return sheetStyles{}, fmt.Errorf("본문 스타일 생성 실패: %w", err)
	}
	return sheetStyles{header: header, body: body}, nil
}

// writeTable 1행 머리글, 2행부터 데이터를 쓰고 열 너비를 맞춘다
func writeTable(f *excelize.File, sheet string, headers []string, rows [][]interface{}, styles sheetStyles) error {
	widths := make([]int, len(headers))
	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
		widths[i] = displayWidth(h)
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		line := row
		if err := f.SetSheetRow(sheet, cell, &line); err != nil {
			return err
		}
		for c, v := range row {
			if c < len(widths) {
				if w := displayWidth(fmt.Sprint(v)); w > widths[c] {
					widths[c] = w
				}
			}
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", styles.header); err != nil {
		return err
	}
	if len(rows) > 0 {
		end := fmt.Sprintf("%s%d", lastCol, len(rows)+1)
		if err := f.SetCellStyle(sheet, "A2", end, styles.body); err != nil {
			return err
		}
	}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, float64(w+2)); err != nil {
			return err
		}
	}
	return nil
}

// displayWidth 한글은 두 칸으로 센다
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		if utf8.RuneLen(r) > 1 {
			w += 2
		} else {
			w++
		}
	}
	return w
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
