package connectors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-crossroads/internal/common/models"
)

var (
	// ErrUpstreamUnavailable marks failures worth retrying: transport errors,
	// timeouts and 5xx answers.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUpstreamRejected    = errors.New("upstream rejected request")
)

// UpstreamError carries the status and body of a non-2xx upstream answer.
type UpstreamError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

func (e *UpstreamError) Unwrap() error {
	if e.Status >= 500 {
		return ErrUpstreamUnavailable
	}
	return ErrUpstreamRejected
}

// ReportRequest is the body of an enhanced report call. Filters and
// FieldSelection are sent as the builder produced them.
type ReportRequest struct {
	Filters        any    `json:"filters"`
	FieldSelection any    `json:"fieldSelection"`
	UserID         string `json:"userId"`
	ActiveLocation string `json:"activeLocation"`
}

type CaseSummary struct {
	ID         string `json:"_id"`
	FullName   string `json:"fullName"`
	CaseNumber string `json:"caseNumber,omitempty"`
	Email      string `json:"email,omitempty"`
}

// Backend is the upstream case-management API. Every call takes the
// session explicitly; nothing is read from ambient state.
type Backend interface {
	ListReference(ctx context.Context, session models.Session, kind models.ReferenceKind) ([]models.ReferenceItem, error)
	FetchReport(ctx context.Context, session models.Session, path string, req ReportRequest) (json.RawMessage, error)
	SearchCases(ctx context.Context, session models.Session, query string) ([]CaseSummary, error)
	CreateAssistanceRequest(ctx context.Context, session models.Session, body any) (json.RawMessage, error)
	Ping(ctx context.Context) error
}
