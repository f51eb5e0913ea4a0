package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"healingstat/internal/model"
)

// ProgramInput 프로그램 결과와 딸린 분야 만족도/지출/수입
type ProgramInput struct {
	Program model.ProgramResult            `json:"program"`
	Bunya   []model.BunyaSatisfactionEntry `json:"bunya"`
	Expend  []model.FinancialLineItem      `json:"expend"`
	Income  []model.FinancialLineItem      `json:"income"`
}

// InsertProgram 프로그램 결과 한 건 저장, 새 id 반환
func (s *Store) InsertProgram(ctx context.Context, in ProgramInput) (int64, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO program_results (agency, open_day, end_day, program_in_out2)
			VALUES (?, ?, ?, ?)
		`, in.Program.Agency, in.Program.OpenDay, in.Program.EndDay, in.Program.ProgramInOut2)
		if err != nil {
			return fmt.Errorf("failed to insert program result: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("failed to get program id: %w", err)
		}

		for _, b := range in.Bunya {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO bunya_satisfaction (program_id, bunya, program, content, effect, cnt)
				VALUES (?, ?, ?, ?, ?, ?)
			`, id, b.Bunya, b.Program, b.Content, b.Effect, b.Cnt); err != nil {
				return fmt.Errorf("failed to insert bunya satisfaction: %w", err)
			}
		}

		lines := []struct {
			kind  model.FinanceKind
			items []model.FinancialLineItem
		}{
			{model.FinanceExpend, in.Expend},
			{model.FinanceIncome, in.Income},
		}
		for _, group := range lines {
			for _, item := range group.items {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO finance_lines (program_id, kind, type, price1)
					VALUES (?, ?, ?, ?)
				`, id, string(group.kind), item.Type, item.Price1); err != nil {
					return fmt.Errorf("failed to insert finance line: %w", err)
				}
			}
		}
		return nil
	})
	return id, err
}

// ProgramQueryOptions 프로그램 결과 조회 조건
type ProgramQueryOptions struct {
	ID       *int64
	Agency   string
	StartDay string
	EndDay   string
}

func (o ProgramQueryOptions) where(alias string) (string, []interface{}) {
	col := func(name string) string {
		if alias == "" {
			return name
		}
		return alias + "." + name
	}
	clauses := []string{"1=1"}
	args := []interface{}{}
	if o.ID != nil {
		clauses = append(clauses, col("id")+" = ?")
		args = append(args, *o.ID)
	}
	if o.Agency != "" {
		clauses = append(clauses, col("agency")+" = ?")
		args = append(args, o.Agency)
	}
	if o.StartDay != "" {
		clauses = append(clauses, col("open_day")+" >= ?")
		args = append(args, o.StartDay)
	}
	if o.EndDay != "" {
		clauses = append(clauses, col("open_day")+" <= ?")
		args = append(args, o.EndDay)
	}
	return strings.Join(clauses, " AND "), args
}

// ListPrograms 프로그램 결과 목록
func (s *Store) ListPrograms(ctx context.Context, opts ProgramQueryOptions) ([]model.ProgramResult, error) {
	where, args := opts.where("")
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, agency, open_day, end_day, program_in_out2
		FROM program_results
		WHERE `+where+`
		ORDER BY open_day, id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query program results: %w", err)
	}
	defer rows.Close()

	var out []model.ProgramResult
	for rows.Next() {
		var p model.ProgramResult
		if err := rows.Scan(&p.ID, &p.Agency, &p.OpenDay, &p.EndDay, &p.ProgramInOut2); err != nil {
			return nil, fmt.Errorf("failed to scan program result: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate program results: %w", err)
	}
	return out, nil
}

// ListBunya 조건에 맞는 프로그램의 분야별 만족도
func (s *Store) ListBunya(ctx context.Context, opts ProgramQueryOptions) ([]model.BunyaSatisfactionEntry, error) {
	where, args := opts.where("p")
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.program_id, b.bunya, b.program, b.content, b.effect, b.cnt
		FROM bunya_satisfaction b
		JOIN program_results p ON p.id = b.program_id
		WHERE `+where+`
		ORDER BY b.id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bunya satisfaction: %w", err)
	}
	defer rows.Close()

	var out []model.BunyaSatisfactionEntry
	for rows.Next() {
		var b model.BunyaSatisfactionEntry
		if err := rows.Scan(&b.ProgramID, &b.Bunya, &b.Program, &b.Content, &b.Effect, &b.Cnt); err != nil {
			return nil, fmt.Errorf("failed to scan bunya satisfaction: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bunya satisfaction: %w", err)
	}
	return out, nil
}

// ListFinance 조건에 맞는 프로그램의 지출/수입 항목
func (s *Store) ListFinance(ctx context.Context, opts ProgramQueryOptions) (expend, income []model.FinancialLineItem, err error) {
	where, args := opts.where("p")
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.program_id, f.kind, f.type, f.price1
		FROM finance_lines f
		JOIN program_results p ON p.id = f.program_id
		WHERE `+where+`
		ORDER BY f.id
	`, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query finance lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.FinancialLineItem
		var kind string
		if err := rows.Scan(&item.ProgramID, &kind, &item.Type, &item.Price1); err != nil {
			return nil, nil, fmt.Errorf("failed to scan finance line: %w", err)
		}
		item.Kind = model.FinanceKind(kind)
		if item.Kind == model.FinanceIncome {
			income = append(income, item)
		} else {
			expend = append(expend, item)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate finance lines: %w", err)
	}
	return expend, income, nil
}

// CountPrograms 프로그램 결과 건수
func (s *Store) CountPrograms(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM program_results`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count program results: %w", err)
	}
	return n, nil
}
