package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"healingstat/internal/model"
)

// InsertScoreRecords 평가지 일괄 저장
func (s *Store) InsertScoreRecords(ctx context.Context, records []*model.ScoreRecord, batchID string) error {
	if len(records) == 0 {
		return nil
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO score_records (
				service, program_id, agency, open_day,
				name, pv, sex, age, residence, job,
				scores_json, import_batch
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, r := range records {
			scores := r.Scores
			if scores == nil {
				scores = []string{}
			}
			scoresJSON, err := json.Marshal(scores)
			if err != nil {
				return fmt.Errorf("failed to encode scores: %w", err)
			}
			res, err := stmt.ExecContext(ctx,
				string(r.Service), r.ProgramID, r.Agency, r.OpenDay,
				r.Name, string(r.PV), r.Sex, r.Age, r.Residence, r.Job,
				string(scoresJSON), batchID,
			)
			if err != nil {
				return fmt.Errorf("failed to insert score record: %w", err)
			}
			if id, err := res.LastInsertId(); err == nil {
				r.ID = id
			}
		}
		return nil
	})
}

// ScoreQueryOptions 평가지 조회 조건
type ScoreQueryOptions struct {
	Services  []model.ServiceType
	ProgramID string
	Agency    string
	StartDay  string // YYYY-MM-DD, 포함
	EndDay    string // YYYY-MM-DD, 포함
	// Keywords 비어 있지 않은 검색어는 모두 기관명/프로그램/이름 중 하나에 포함되어야 한다
	Keywords []string
}

func (o ScoreQueryOptions) where() (string, []interface{}) {
	clauses := []string{"1=1"}
	args := []interface{}{}

	if len(o.Services) > 0 {
		marks := make([]string, len(o.Services))
		for i, svc := range o.Services {
			marks[i] = "?"
			args = append(args, string(svc))
		}
		clauses = append(clauses, "service IN ("+strings.Join(marks, ",")+")")
	}
	if o.ProgramID != "" {
		clauses = append(clauses, "program_id = ?")
		args = append(args, o.ProgramID)
	}
	if o.Agency != "" {
		clauses = append(clauses, "agency = ?")
		args = append(args, o.Agency)
	}
	if o.StartDay != "" {
		clauses = append(clauses, "open_day >= ?")
		args = append(args, o.StartDay)
	}
	if o.EndDay != "" {
		clauses = append(clauses, "open_day <= ?")
		args = append(args, o.EndDay)
	}
	for _, kw := range o.Keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		like := "%" + escapeLike(kw) + "%"
		clauses = append(clauses, `(agency LIKE ? ESCAPE '\' OR program_id LIKE ? ESCAPE '\' OR name LIKE ? ESCAPE '\')`)
		args = append(args, like, like, like)
	}
	return strings.Join(clauses, " AND "), args
}

// likeEscaper LIKE 패턴 문자를 글자 그대로 찾도록 이스케이프
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ListScoreRecords 조건에 맞는 평가지 (id 순)
func (s *Store) ListScoreRecords(ctx context.Context, opts ScoreQueryOptions) ([]*model.ScoreRecord, error) {
	where, args := opts.where()
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, service, program_id, agency, open_day,
			name, pv, sex, age, residence, job, scores_json
		FROM score_records
		WHERE `+where+`
		ORDER BY id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query score records: %w", err)
	}
	defer rows.Close()

	var out []*model.ScoreRecord
	for rows.Next() {
		var r model.ScoreRecord
		var service, pv, scoresJSON string
		if err := rows.Scan(
			&r.ID, &service, &r.ProgramID, &r.Agency, &r.OpenDay,
			&r.Name, &pv, &r.Sex, &r.Age, &r.Residence, &r.Job, &scoresJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan score record: %w", err)
		}
		r.Service = model.ServiceType(service)
		r.PV = model.Timing(pv)
		if err := json.Unmarshal([]byte(scoresJSON), &r.Scores); err != nil {
			return nil, fmt.Errorf("failed to decode scores of record %d: %w", r.ID, err)
		}
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate score records: %w", err)
	}
	return out, nil
}

// CountScoreRecords 평가지 종류별 건수
func (s *Store) CountScoreRecords(ctx context.Context) (map[model.ServiceType]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT service, COUNT(1) FROM score_records GROUP BY service`)
	if err != nil {
		return nil, fmt.Errorf("failed to count score records: %w", err)
	}
	defer rows.Close()

	out := make(map[model.ServiceType]int)
	for rows.Next() {
		var service string
		var n int
		if err := rows.Scan(&service, &n); err != nil {
			return nil, fmt.Errorf("failed to scan score count: %w", err)
		}
		out[model.ServiceType(service)] = n
	}
	return out, rows.Err()
}
