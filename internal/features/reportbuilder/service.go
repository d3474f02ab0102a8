package reportbuilder

import (
	"context"
	"fmt"

	"go-crossroads/internal/common/models"
	"go-crossroads/internal/features/reference"
	"go-crossroads/internal/features/reportconfig"

	"go.uber.org/zap"
)

type BuilderService interface {
	Open(ctx context.Context, session models.Session, reportType reportconfig.ReportType) (*OpenResult, error)
	Dispatch(reportType reportconfig.ReportType, state State, action Action) (*DispatchResult, error)
}

type BuilderServiceImpl struct {
	References reference.ReferenceService
	Codec      *reportconfig.Codec
	Logger     *zap.Logger
}

func NewBuilderService(references reference.ReferenceService, codec *reportconfig.Codec, logger *zap.Logger) BuilderService {
	return &BuilderServiceImpl{
		References: references,
		Codec:      codec,
		Logger:     logger.Named("report_builder"),
	}
}

// Open resets the wizard and loads every reference list the report type's
// dropdowns need. Failed lists come back empty with a notification each.
func (s *BuilderServiceImpl) Open(ctx context.Context, session models.Session, reportType reportconfig.ReportType) (*OpenResult, error) {
	schema, err := reportconfig.Lookup(reportType)
	if err != nil {
		return nil, err
	}
	state, err := NewState(reportType)
	if err != nil {
		return nil, err
	}

	lists, notifications := s.References.LoadLists(ctx, session, schema.ReferenceLists())
	if notifications == nil {
		notifications = []models.Notification{}
	}

	return &OpenResult{
		State:         state,
		Form:          BuildForm(schema, s.Codec),
		Visibility:    VisibleGroups(state),
		References:    lists,
		Notifications: notifications,
	}, nil
}

func (s *BuilderServiceImpl) Dispatch(reportType reportconfig.ReportType, state State, action Action) (*DispatchResult, error) {
	if _, err := reportconfig.Lookup(reportType); err != nil {
		return nil, err
	}
	if state.ReportType == "" {
		state.ReportType = reportType
	}
	if state.ReportType != reportType {
		return nil, fmt.Errorf("%w: %q", ErrReportTypeMismatch, state.ReportType)
	}

	next, err := Reduce(s.Codec, state, action)
	if err != nil {
		s.Logger.Debug("builder action rejected",
			zap.String("report_type", string(reportType)),
			zap.String("action", string(action.Type)),
			zap.Error(err),
		)
		return &DispatchResult{State: state, Visibility: VisibleGroups(state)}, err
	}

	if next.Result != nil {
		s.Logger.Info("report generated",
			zap.String("report_type", string(reportType)),
			zap.String("encoding", string(s.Codec.EncodingFor(reportconfig.MustSchema(reportType)))),
			zap.Int("filters", len(state.Filters)),
		)
	}
	return &DispatchResult{State: next, Visibility: VisibleGroups(next)}, nil
}
