package assistance

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrUnknownField = errors.New("unknown form field")

// AssistanceRequestForm is the add-assistance-request modal.
type AssistanceRequestForm struct {
	CaseID      string  `json:"caseId" validate:"required"`
	CategoryID  string  `json:"categoryId" validate:"required"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	UnitID      string  `json:"unitId"`
	RequestDate string  `json:"requestDate" validate:"required,datetime=2006-01-02"`
	Description string  `json:"description" validate:"max=1000"`
	StatusID    string  `json:"statusId"`
}

// ErrorMap maps a json field name to its message. Empty means submittable.
type ErrorMap map[string]string

type ActionType string

const (
	ActionSet   ActionType = "set"
	ActionReset ActionType = "reset"
)

type FormAction struct {
	Type  ActionType `json:"type"`
	Field string     `json:"field,omitempty"`
	Value any        `json:"value,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var fieldLabels = map[string]string{
	"caseId":      "Case",
	"categoryId":  "Category",
	"amount":      "Amount",
	"unitId":      "Unit",
	"requestDate": "Request date",
	"description": "Description",
	"statusId":    "Status",
}

// Validate returns one message per invalid field.
func Validate(form AssistanceRequestForm) ErrorMap {
	errs := ErrorMap{}
	err := validate.Struct(form)
	if err == nil {
		return errs
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["form"] = err.Error()
		return errs
	}
	for _, fe := range validationErrors {
		errs[fe.Field()] = message(fe)
	}
	return errs
}

func (e ErrorMap) Ok() bool {
	return len(e) == 0
}

func message(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "datetime":
		return label + " must be a date (YYYY-MM-DD)"
	}
	return label + " is invalid"
}

// Reduce applies one field edit. Editing one field never touches another.
func Reduce(form AssistanceRequestForm, action FormAction) (AssistanceRequestForm, error) {
	if action.Type == ActionReset {
		return AssistanceRequestForm{}, nil
	}
	if action.Type != ActionSet {
		return form, fmt.Errorf("unknown form action %q", action.Type)
	}

	next := form
	switch action.Field {
	case "caseId":
		next.CaseID = text(action.Value)
	case "categoryId":
		next.CategoryID = text(action.Value)
	case "unitId":
		next.UnitID = text(action.Value)
	case "requestDate":
		next.RequestDate = text(action.Value)
	case "description":
		next.Description = text(action.Value)
	case "statusId":
		next.StatusID = text(action.Value)
	case "amount":
		amount, err := number(action.Value)
		if err != nil {
			return form, fmt.Errorf("amount: %w", err)
		}
		next.Amount = amount
	default:
		return form, fmt.Errorf("%w: %q", ErrUnknownField, action.Field)
	}
	return next, nil
}

func text(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// number reads an amount input; an empty input clears it.
func number(v any) (float64, error) {
	switch val := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, nil
		}
		return strconv.ParseFloat(s, 64)
	}
	return 0, fmt.Errorf("unsupported %T", v)
}
