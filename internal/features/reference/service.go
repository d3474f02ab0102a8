package reference

import (
	"context"
	"fmt"

	"go-crossroads/internal/common/models"
	"go-crossroads/internal/connectors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxParallelFetches = 6

type ReferenceService interface {
	// GetList fails only for an unknown kind. Upstream failures come back as
	// an empty, unavailable list.
	GetList(ctx context.Context, session models.Session, kind models.ReferenceKind) (List, error)
	// LoadLists fetches kinds in parallel. Each failure is independent and
	// yields one notification.
	LoadLists(ctx context.Context, session models.Session, kinds []models.ReferenceKind) (map[models.ReferenceKind]List, []models.Notification)
}

type ReferenceServiceImpl struct {
	Backend connectors.Backend
	Logger  *zap.Logger
}

func NewReferenceService(backend connectors.Backend, logger *zap.Logger) ReferenceService {
	return &ReferenceServiceImpl{
		Backend: backend,
		Logger:  logger.Named("reference"),
	}
}

func (s *ReferenceServiceImpl) GetList(ctx context.Context, session models.Session, kind models.ReferenceKind) (List, error) {
	if !models.IsReferenceKind(string(kind)) {
		return List{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	list, _ := s.fetch(ctx, session, kind)
	return list, nil
}

func (s *ReferenceServiceImpl) LoadLists(ctx context.Context, session models.Session, kinds []models.ReferenceKind) (map[models.ReferenceKind]List, []models.Notification) {
	results := make([]List, len(kinds))
	failed := make([]bool, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFetches)
	for i, kind := range kinds {
		g.Go(func() error {
			list, ok := s.fetch(gctx, session, kind)
			results[i] = list
			failed[i] = !ok
			// never cancel the siblings
			return nil
		})
	}
	_ = g.Wait()

	lists := make(map[models.ReferenceKind]List, len(kinds))
	var notifications []models.Notification
	for i, kind := range kinds {
		lists[kind] = results[i]
		if failed[i] {
			notifications = append(notifications, models.Notification{
				Level:   "error",
				Message: fmt.Sprintf("Failed to load %s", Label(kind)),
				Source:  string(kind),
			})
		}
	}
	return lists, notifications
}

func (s *ReferenceServiceImpl) fetch(ctx context.Context, session models.Session, kind models.ReferenceKind) (List, bool) {
	items, err := s.Backend.ListReference(ctx, session, kind)
	if err != nil {
		s.Logger.Warn("reference list unavailable",
			zap.String("kind", string(kind)),
			zap.String("user_id", session.UserID),
			zap.Error(err),
		)
		return List{Kind: kind, Items: []models.ReferenceItem{}, Unavailable: true}, false
	}
	if items == nil {
		items = []models.ReferenceItem{}
	}
	return List{Kind: kind, Items: items}, true
}
