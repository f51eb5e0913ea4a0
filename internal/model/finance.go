package model

// FinanceKind 지출/수입 구분
type FinanceKind string

const (
	FinanceExpend FinanceKind = "expend"
	FinanceIncome FinanceKind = "income"
)

// FinancialLineItem 항목별 금액 (price1 은 쉼표로 이어진 금액 목록)
type FinancialLineItem struct {
	ProgramID int64       `json:"programId,omitempty"`
	Kind      FinanceKind `json:"kind,omitempty"`
	Type      string      `json:"type"`
	Price1    string      `json:"price1"`
}
