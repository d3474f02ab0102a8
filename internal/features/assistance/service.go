package assistance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-crossroads/internal/common/models"
	"go-crossroads/internal/connectors"

	"go.uber.org/zap"
)

var ErrInvalidForm = errors.New("assistance request is invalid")

type AssistanceService interface {
	Validate(form AssistanceRequestForm) ErrorMap
	// Submit forwards a valid form upstream. An invalid form is never sent and
	// comes back as ErrInvalidForm with the field messages.
	Submit(ctx context.Context, session models.Session, form AssistanceRequestForm) (json.RawMessage, ErrorMap, error)
}

type AssistanceServiceImpl struct {
	Backend connectors.Backend
	Logger  *zap.Logger
}

func NewAssistanceService(backend connectors.Backend, logger *zap.Logger) AssistanceService {
	return &AssistanceServiceImpl{
		Backend: backend,
		Logger:  logger.Named("assistance"),
	}
}

func (s *AssistanceServiceImpl) Validate(form AssistanceRequestForm) ErrorMap {
	return Validate(form)
}

func (s *AssistanceServiceImpl) Submit(ctx context.Context, session models.Session, form AssistanceRequestForm) (json.RawMessage, ErrorMap, error) {
	if errs := Validate(form); !errs.Ok() {
		return nil, errs, ErrInvalidForm
	}

	created, err := s.Backend.CreateAssistanceRequest(ctx, session, form)
	if err != nil {
		s.Logger.Error("assistance request not created",
			zap.String("user_id", session.UserID),
			zap.String("case_id", form.CaseID),
			zap.Error(err),
		)
		return nil, nil, fmt.Errorf("create assistance request: %w", err)
	}

	s.Logger.Info("assistance request created",
		zap.String("user_id", session.UserID),
		zap.String("case_id", form.CaseID),
	)
	return created, nil, nil
}
