package casesearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-crossroads/internal/common/models"
	"go-crossroads/internal/config"
	"go-crossroads/internal/connectors"

	"go.uber.org/zap"
)

type CaseSearchService interface {
	Search(ctx context.Context, session models.Session, query string) ([]connectors.CaseSummary, error)
	// NewSearcher starts a debounced search session that hands results to deliver.
	NewSearcher(session models.Session, deliver func(Result)) *Searcher
}

type CaseSearchServiceImpl struct {
	Backend  connectors.Backend
	Debounce time.Duration
	Logger   *zap.Logger
}

func NewCaseSearchService(backend connectors.Backend, cfg *config.Config, logger *zap.Logger) CaseSearchService {
	return &CaseSearchServiceImpl{
		Backend:  backend,
		Debounce: cfg.CaseSearchDebounce,
		Logger:   logger.Named("casesearch"),
	}
}

func (s *CaseSearchServiceImpl) Search(ctx context.Context, session models.Session, query string) ([]connectors.CaseSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []connectors.CaseSummary{}, nil
	}

	cases, err := s.Backend.SearchCases(ctx, session, query)
	if err != nil {
		return nil, fmt.Errorf("search cases: %w", err)
	}
	if cases == nil {
		cases = []connectors.CaseSummary{}
	}
	return cases, nil
}

func (s *CaseSearchServiceImpl) NewSearcher(session models.Session, deliver func(Result)) *Searcher {
	return &Searcher{
		service:  s,
		session:  session,
		debounce: NewDebouncer(s.Debounce),
		deliver:  deliver,
		logger:   s.Logger,
	}
}

// Searcher runs the queries of one client. Only the answer to the last
// submitted query is delivered; earlier answers are dropped when they land.
type Searcher struct {
	service  CaseSearchService
	session  models.Session
	debounce *Debouncer
	deliver  func(Result)
	logger   *zap.Logger
}

func (s *Searcher) Submit(ctx context.Context, query string) uint64 {
	query = strings.TrimSpace(query)
	return s.debounce.Trigger(func(seq uint64) {
		cases, err := s.service.Search(ctx, s.session, query)
		if !s.debounce.IsLatest(seq) {
			s.logger.Debug("stale case search dropped", zap.Uint64("seq", seq), zap.String("query", query))
			return
		}

		result := Result{Seq: seq, Query: query, Results: cases}
		if err != nil {
			s.logger.Warn("case search failed",
				zap.String("user_id", s.session.UserID),
				zap.String("query", query),
				zap.Error(err),
			)
			result.Results = []connectors.CaseSummary{}
			result.Error = "Failed to search cases"
		}
		s.deliver(result)
	})
}

func (s *Searcher) Close() {
	s.debounce.Stop()
}
