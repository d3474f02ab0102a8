package reportviewer

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go-crossroads/internal/common/models"
	"go-crossroads/internal/connectors"
	"go-crossroads/internal/features/reportconfig"

	"go.uber.org/zap"
)

type ViewerService interface {
	Load(ctx context.Context, session models.Session, reportType reportconfig.ReportType, query url.Values) (*CanonicalReportResult, error)
	View(ctx context.Context, session models.Session, reportType reportconfig.ReportType, query url.Values) (*RenderedReport, error)
	Print(ctx context.Context, session models.Session, reportType reportconfig.ReportType, query url.Values) ([]byte, error)
	Export(ctx context.Context, session models.Session, reportType reportconfig.ReportType, query url.Values, format ExportFormat) (*ExportFile, error)
}

type ViewerServiceImpl struct {
	Backend connectors.Backend
	Codec   *reportconfig.Codec
	Logger  *zap.Logger
	Now     func() time.Time
}

func NewViewerService(backend connectors.Backend, codec *reportconfig.Codec, logger *zap.Logger) ViewerService {
	return &ViewerServiceImpl{
		Backend: backend,
		Codec:   codec,
		Logger:  logger.Named("report_viewer"),
		Now:     time.Now,
	}
}

// Load decodes the link, fetches the report and normalizes it. Any failure
// means no result at all; a half-populated report is never returned.
func (s *ViewerServiceImpl) Load(ctx context.Context, session models.Session, reportType reportconfig.ReportType, query url.Values) (*CanonicalReportResult, error) {
	schema, err := reportconfig.Lookup(reportType)
	if err != nil {
		return nil, err
	}

	filters, selection := s.Codec.Decode(schema, query)
	selection = EffectiveSelection(reportType, selection)

	raw, err := s.Backend.FetchReport(ctx, session, schema.UpstreamPath, connectors.ReportRequest{
		Filters:        filters,
		FieldSelection: selection,
	})
	if err != nil {
		s.Logger.Error("report fetch failed",
			zap.String("report_type", string(reportType)),
			zap.String("user_id", session.UserID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("fetch %s report: %w", reportType, err)
	}

	summary, records, userInfo, err := Normalize(schema, raw)
	if err != nil {
		s.Logger.Warn("report payload has no records array",
			zap.String("report_type", string(reportType)),
			zap.Int("payload_bytes", len(raw)),
			zap.Error(err),
		)
		return nil, err
	}

	return &CanonicalReportResult{
		ReportType:     reportType,
		Summary:        summary,
		Records:        records,
		Filters:        filters,
		FieldSelection: selection,
		UserInfo:       userInfo,
	}, nil
}

func (s *ViewerServiceImpl) View(ctx context.Context, session models.Session, reportType reportconfig.ReportType, query url.Values) (*RenderedReport, error) {
	result, err := s.Load(ctx, session, reportType, query)
	if err != nil {
		return nil, err
	}
	return Render(reportconfig.MustSchema(reportType), result), nil
}

func (s *ViewerServiceImpl) Print(ctx context.Context, session models.Session, reportType reportconfig.ReportType, query url.Values) ([]byte, error) {
	report, err := s.View(ctx, session, reportType, query)
	if err != nil {
		return nil, err
	}
	return RenderPrint(report, s.Now())
}

func (s *ViewerServiceImpl) Export(ctx context.Context, session models.Session, reportType reportconfig.ReportType, query url.Values, format ExportFormat) (*ExportFile, error) {
	if format != ExportCSV && format != ExportXLSX {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	report, err := s.View(ctx, session, reportType, query)
	if err != nil {
		return nil, err
	}
	return Export(report, format, s.Now())
}
