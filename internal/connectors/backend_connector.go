package connectors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go-crossroads/internal/common/models"
	"go-crossroads/internal/config"

	"go.uber.org/zap"
)

const maxErrorBody = 2048

type HTTPBackend struct {
	BaseURL    string
	HttpClient *http.Client
	Logger     *zap.Logger
}

func NewHTTPBackend(cfg *config.Config, logger *zap.Logger) Backend {
	return &HTTPBackend{
		BaseURL: cfg.UpstreamBaseURL,
		HttpClient: &http.Client{
			Timeout: cfg.UpstreamTimeout,
		},
		Logger: logger.Named("upstream"),
	}
}

func (b *HTTPBackend) ListReference(ctx context.Context, session models.Session, kind models.ReferenceKind) ([]models.ReferenceItem, error) {
	if !models.IsReferenceKind(string(kind)) {
		return nil, fmt.Errorf("unknown reference list %q", kind)
	}

	raw, err := b.do(ctx, session, http.MethodGet, "/"+string(kind), sessionQuery(session), nil)
	if err != nil {
		return nil, err
	}

	items, err := decodeReferenceItems(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	return items, nil
}

func (b *HTTPBackend) FetchReport(ctx context.Context, session models.Session, path string, req ReportRequest) (json.RawMessage, error) {
	req.UserID = session.UserID
	req.ActiveLocation = session.ActiveLocation
	return b.do(ctx, session, http.MethodPost, path, nil, req)
}

func (b *HTTPBackend) SearchCases(ctx context.Context, session models.Session, query string) ([]CaseSummary, error) {
	q := sessionQuery(session)
	q.Set("q", query)

	raw, err := b.do(ctx, session, http.MethodGet, "/cases/search", q, nil)
	if err != nil {
		return nil, err
	}

	list, err := unwrapList(raw)
	if err != nil {
		return nil, fmt.Errorf("decode case search: %w", err)
	}

	cases := make([]CaseSummary, 0, len(list))
	for _, item := range list {
		var c struct {
			ID         string `json:"_id"`
			AltID      string `json:"id"`
			FullName   string `json:"fullName"`
			FirstName  string `json:"firstName"`
			LastName   string `json:"lastName"`
			CaseNumber string `json:"caseNumber"`
			Email      string `json:"email"`
		}
		if err := json.Unmarshal(item, &c); err != nil {
			continue
		}
		summary := CaseSummary{
			ID:         firstNonEmpty(c.ID, c.AltID),
			FullName:   firstNonEmpty(c.FullName, strings.TrimSpace(c.FirstName+" "+c.LastName)),
			CaseNumber: c.CaseNumber,
			Email:      c.Email,
		}
		if summary.ID == "" {
			continue
		}
		cases = append(cases, summary)
	}
	return cases, nil
}

func (b *HTTPBackend) CreateAssistanceRequest(ctx context.Context, session models.Session, body any) (json.RawMessage, error) {
	payload := map[string]any{
		"request":        body,
		"userId":         session.UserID,
		"activeLocation": session.ActiveLocation,
	}
	return b.do(ctx, session, http.MethodPost, "/assistance-requests", nil, payload)
}

func (b *HTTPBackend) Ping(ctx context.Context) error {
	_, err := b.do(ctx, models.Session{}, http.MethodGet, "/health", nil, nil)
	return err
}

func (b *HTTPBackend) do(ctx context.Context, session models.Session, method, path string, query url.Values, body any) (json.RawMessage, error) {
	if b.BaseURL == "" {
		return nil, fmt.Errorf("%w: no upstream base url configured", ErrUpstreamUnavailable)
	}

	target := b.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Crossroads-Reports")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := b.HttpClient.Do(req)
	if err != nil {
		b.Logger.Warn("upstream call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUpstreamUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUpstreamUnavailable, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		upstreamErr := &UpstreamError{Method: method, Path: path, Status: resp.StatusCode, Body: truncate(string(raw), maxErrorBody)}
		b.Logger.Warn("upstream returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, upstreamErr
	}

	return raw, nil
}

func sessionQuery(session models.Session) url.Values {
	q := url.Values{}
	if session.UserID != "" {
		q.Set("userId", session.UserID)
	}
	if session.ActiveLocation != "" {
		q.Set("locationId", session.ActiveLocation)
	}
	return q
}

// unwrapList accepts a bare array or an envelope holding one under
// "data" or "items".
func unwrapList(raw []byte) ([]json.RawMessage, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}
	for _, candidate := range []json.RawMessage{envelope.Data, envelope.Items} {
		if len(candidate) == 0 {
			continue
		}
		if err := json.Unmarshal(candidate, &list); err == nil {
			return list, nil
		}
	}
	return nil, errors.New("response holds no list")
}

type rawReferenceItem struct {
	ID        string          `json:"_id"`
	AltID     string          `json:"id"`
	Name      string          `json:"name"`
	Title     string          `json:"title"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	SectionID string          `json:"sectionId"`
	Section   json.RawMessage `json:"section"`
}

func decodeReferenceItems(raw []byte) ([]models.ReferenceItem, error) {
	list, err := unwrapList(raw)
	if err != nil {
		return nil, err
	}

	items := make([]models.ReferenceItem, 0, len(list))
	for _, entry := range list {
		var r rawReferenceItem
		if err := json.Unmarshal(entry, &r); err != nil {
			continue
		}
		item := models.ReferenceItem{
			ID:        firstNonEmpty(r.ID, r.AltID),
			Name:      firstNonEmpty(r.Name, r.Title, strings.TrimSpace(r.FirstName+" "+r.LastName)),
			SectionID: r.SectionID,
		}
		if item.ID == "" {
			continue
		}

		// section is either an id string or a populated {_id, name} document
		if len(r.Section) > 0 {
			var sectionID string
			var section struct {
				ID   string `json:"_id"`
				Name string `json:"name"`
			}
			if err := json.Unmarshal(r.Section, &sectionID); err == nil {
				item.SectionID = firstNonEmpty(item.SectionID, sectionID)
			} else if err := json.Unmarshal(r.Section, &section); err == nil {
				item.SectionID = firstNonEmpty(item.SectionID, section.ID)
				item.SectionName = section.Name
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
