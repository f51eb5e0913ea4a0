package parser

import "time"

// FieldKind 평가지 열 종류
type FieldKind string

const (
	FieldID        FieldKind = "ID"
	FieldName      FieldKind = "NAME"
	FieldPV        FieldKind = "PV"
	FieldSex       FieldKind = "SEX"
	FieldAge       FieldKind = "AGE"
	FieldResidence FieldKind = "RESIDENCE"
	FieldJob       FieldKind = "JOB"
	FieldAgency    FieldKind = "AGENCY"
	FieldProgramID FieldKind = "PROGRAM_ID"
	FieldOpenDay   FieldKind = "OPENDAY"
	FieldScore     FieldKind = "SCORE"
)

// FieldMapping 열 매핑 결과
type FieldMapping struct {
	ColumnIndex int       `json:"columnIndex"` // 엑셀 열 번호 (0부터)
	ColumnName  string    `json:"columnName"`  // 엑셀 열 이름
	Kind        FieldKind `json:"kind"`
	ScoreIndex  int       `json:"scoreIndex,omitempty"` // SCORE 열이면 문항 번호 (1부터)
}

// SheetRecognitionResult 시트 인식 결과
type SheetRecognitionResult struct {
	SheetName  string  `json:"sheetName"`
	Service    string  `json:"service"`
	Confidence float64 `json:"confidence"` // 0-1
	ScoreItems int     `json:"scoreItems"` // 인식된 문항 열 수
}

// ParseResult 시트 한 장 처리 결과
type ParseResult struct {
	SheetName    string        `json:"sheetName"`
	Service      string        `json:"service"`
	Status       string        `json:"status"` // imported/skipped/error
	TotalRows    int           `json:"totalRows"`
	ImportedRows int           `json:"importedRows"`
	ErrorRows    int           `json:"errorRows"`
	Errors       []string      `json:"errors,omitempty"`
	Duration     time.Duration `json:"duration"`
}

// ImportReport 가져오기 결과 요약
type ImportReport struct {
	BatchID        string        `json:"batchId"`
	Filename       string        `json:"filename"`
	TotalSheets    int           `json:"totalSheets"`
	ImportedSheets int           `json:"importedSheets"`
	SkippedSheets  int           `json:"skippedSheets"`
	TotalRows      int           `json:"totalRows"`
	ImportedRows   int           `json:"importedRows"`
	ErrorRows      int           `json:"errorRows"`
	Duration       time.Duration `json:"duration"`
	Sheets         []ParseResult `json:"sheets"`
}
