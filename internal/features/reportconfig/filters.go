package reportconfig

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SetFilter sets one leaf of a filter. sub names the range bound
// ("startDate", "maxAmount", ...) and is empty for scalar filters. A nil or
// empty value removes the leaf, and a range left without bounds is removed
// entirely, so absent always means "no constraint".
func SetFilter(schema *Schema, filters FilterSet, key, sub string, value any) (FilterSet, error) {
	spec, ok := schema.Filter(key)
	if !ok {
		return filters, fmt.Errorf("%w: %q", ErrUnknownFilter, key)
	}

	lower, upper, isRange := spec.Kind.Bounds()
	if (isRange && sub != lower && sub != upper) || (!isRange && sub != "") {
		return filters, fmt.Errorf("%w: %q has no %q", ErrUnknownFilter, key, sub)
	}

	normalized, present, err := normalizeFilterValue(spec.Kind, value)
	if err != nil {
		return filters, fmt.Errorf("%s: %w", key, err)
	}

	out := filters.Clone()
	if out == nil {
		out = FilterSet{}
	}

	if !isRange {
		if !present {
			delete(out, key)
			return out, nil
		}
		out[key] = normalized
		return out, nil
	}

	rng, _ := out[key].(map[string]any)
	if rng == nil {
		rng = map[string]any{}
	}
	if present {
		rng[sub] = normalized
	} else {
		delete(rng, sub)
	}

	if lo, hasLo := rng[lower]; hasLo {
		if hi, hasHi := rng[upper]; hasHi && compareBounds(spec.Kind, lo, hi) > 0 {
			return filters, fmt.Errorf("%s: %w", key, ErrInvertedRange)
		}
	}

	if len(rng) == 0 {
		delete(out, key)
	} else {
		out[key] = rng
	}
	return out, nil
}

func ClearFilter(schema *Schema, filters FilterSet, key string) (FilterSet, error) {
	if _, ok := schema.Filter(key); !ok {
		return filters, fmt.Errorf("%w: %q", ErrUnknownFilter, key)
	}
	out := filters.Clone()
	delete(out, key)
	return out, nil
}

func normalizeFilterValue(kind FilterKind, value any) (any, bool, error) {
	if value == nil {
		return nil, false, nil
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return nil, false, nil
	}

	if kind.IsNumeric() {
		n, ok := toNumber(value)
		if !ok {
			return nil, false, fmt.Errorf("%w: %v is not a number", ErrInvalidFilter, value)
		}
		return n, true, nil
	}

	if kind == FilterDateRange {
		s, ok := value.(string)
		if !ok {
			return nil, false, fmt.Errorf("%w: %v is not a date", ErrInvalidFilter, value)
		}
		s = strings.TrimSpace(s)
		if _, ok := parseDate(s); !ok {
			return nil, false, fmt.Errorf("%w: %q is not a date", ErrInvalidFilter, s)
		}
		return s, true, nil
	}

	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v), true, nil
	case float64, int, int64, json.Number, bool:
		return fmt.Sprint(v), true, nil
	}
	return nil, false, fmt.Errorf("%w: unsupported %T", ErrInvalidFilter, value)
}

func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04"}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func compareBounds(kind FilterKind, lo, hi any) int {
	if kind.IsNumeric() {
		a, okA := toNumber(lo)
		b, okB := toNumber(hi)
		if !okA || !okB {
			return 0
		}
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	}
	as, bs := fmt.Sprint(lo), fmt.Sprint(hi)
	if a, ok := parseDate(as); ok {
		if b, ok := parseDate(bs); ok {
			return a.Compare(b)
		}
	}
	return strings.Compare(as, bs)
}
