package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"healingstat/internal/logger"
	"healingstat/internal/model"
	"healingstat/internal/stats"
	"healingstat/internal/store"
)

var (
	// ErrFetchFailed 보고서 원천 데이터 조회 실패
	ErrFetchFailed = errors.New("보고서 데이터를 불러오지 못했습니다")
	// ErrProgramNotFound 프로그램 결과 없음
	ErrProgramNotFound = errors.New("프로그램 결과를 찾을 수 없습니다")
)

// Source 보고서가 읽는 조회 기능 (store.Store 가 구현)
type Source interface {
	ListScoreRecords(ctx context.Context, opts store.ScoreQueryOptions) ([]*model.ScoreRecord, error)
	ListPrograms(ctx context.Context, opts store.ProgramQueryOptions) ([]model.ProgramResult, error)
	ListBunya(ctx context.Context, opts store.ProgramQueryOptions) ([]model.BunyaSatisfactionEntry, error)
	ListFinance(ctx context.Context, opts store.ProgramQueryOptions) (expend, income []model.FinancialLineItem, err error)
}

// Service 보고서 조회/조립
type Service struct {
	src       Source
	log       *logger.Logger
	retryWait time.Duration
}

// NewService 보고서 서비스 생성
func NewService(src Source, log *logger.Logger, retryWait time.Duration) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{src: src, log: log, retryWait: retryWait}
}

// withRetry 연결 과다 오류면 retryWait 만큼 기다렸다가 한 번 더 시도
func (s *Service) withRetry(ctx context.Context, what string, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if err == nil || !store.IsTooManyConnections(err) {
		return err
	}

	s.log.Warn("transient fetch failure, retrying once", "fetch", what, "wait", s.retryWait, "error", err)
	timer := time.NewTimer(s.retryWait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	return fn(ctx)
}

// fetch 평가지/프로그램/지출수입 세 가지를 동시에 조회
func (s *Service) fetch(ctx context.Context, scoreOpts store.ScoreQueryOptions, programOpts store.ProgramQueryOptions) (stats.ReportInput, error) {
	var in stats.ReportInput
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.withRetry(gctx, "scores", func(ctx context.Context) error {
			rows, err := s.src.ListScoreRecords(ctx, scoreOpts)
			in.Scores = rows
			return err
		})
	})
	g.Go(func() error {
		return s.withRetry(gctx, "programs", func(ctx context.Context) error {
			programs, err := s.src.ListPrograms(ctx, programOpts)
			if err != nil {
				return err
			}
			bunya, err := s.src.ListBunya(ctx, programOpts)
			in.Programs, in.Bunya = programs, bunya
			return err
		})
	})
	g.Go(func() error {
		return s.withRetry(gctx, "finance", func(ctx context.Context) error {
			expend, income, err := s.src.ListFinance(ctx, programOpts)
			in.Expend, in.Income = expend, income
			return err
		})
	})

	if err := g.Wait(); err != nil {
		return stats.ReportInput{}, err
	}
	return in, nil
}

// ProgramResult 프로그램 한 건의 결과 보고서
func (s *Service) ProgramResult(ctx context.Context, programID int64) (*stats.ProgramResultReport, error) {
	log := s.log.With("report", "program-result", "programId", programID)

	programs, err := s.src.ListPrograms(ctx, store.ProgramQueryOptions{ID: &programID})
	if err != nil {
		log.Error("program lookup failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if len(programs) == 0 {
		return nil, ErrProgramNotFound
	}
	p := programs[0]

	in, err := s.fetch(ctx,
		store.ScoreQueryOptions{Agency: p.Agency, StartDay: p.OpenDay, EndDay: endOrOpen(p)},
		store.ProgramQueryOptions{ID: &programID},
	)
	if err != nil {
		log.Error("report fetch failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return stats.AssembleProgramResult(in), nil
}

func endOrOpen(p model.ProgramResult) string {
	if p.EndDay != "" {
		return p.EndDay
	}
	return p.OpenDay
}

// YearMonth 기간 보고서
func (s *Service) YearMonth(ctx context.Context, period stats.Period) (*stats.YearMonthReport, error) {
	in, err := s.fetch(ctx,
		store.ScoreQueryOptions{StartDay: period.Start, EndDay: period.End},
		store.ProgramQueryOptions{StartDay: period.Start, EndDay: period.End},
	)
	if err != nil {
		s.log.Error("report fetch failed", "report", "year-month", "start", period.Start, "end", period.End, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return stats.AssembleYearMonth(period, in), nil
}

// SearchRequest 키워드 검색 조건
type SearchRequest struct {
	Target   stats.SearchTarget
	Keywords stats.Keywords
	Period   stats.Period
}

// Search 키워드 검색 보고서
func (s *Service) Search(ctx context.Context, req SearchRequest) (*stats.SearchReport, error) {
	var records []*model.ScoreRecord
	err := s.withRetry(ctx, "search", func(ctx context.Context) error {
		rows, err := s.src.ListScoreRecords(ctx, store.ScoreQueryOptions{
			Services: stats.SearchService(req.Target),
			StartDay: req.Period.Start,
			EndDay:   req.Period.End,
			Keywords: req.Keywords[:],
		})
		records = rows
		return err
	})
	if err != nil {
		s.log.Error("search fetch failed", "target", req.Target, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return stats.AssembleSearch(req.Target, req.Keywords, records), nil
}

// Effects 평가지 종류별 응답자 영역 평균
func (s *Service) Effects(ctx context.Context, service model.ServiceType, period stats.Period) ([]stats.RespondentAverages, error) {
	var records []*model.ScoreRecord
	err := s.withRetry(ctx, "effects", func(ctx context.Context) error {
		rows, err := s.src.ListScoreRecords(ctx, store.ScoreQueryOptions{
			Services: []model.ServiceType{service},
			StartDay: period.Start,
			EndDay:   period.End,
		})
		records = rows
		return err
	})
	if err != nil {
		s.log.Error("effects fetch failed", "service", service, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return stats.BuildRespondentAverages(service, records), nil
}
