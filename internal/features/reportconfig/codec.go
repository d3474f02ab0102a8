package reportconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"go-crossroads/internal/config"

	"go.uber.org/zap"
)

const (
	BlobFiltersKey        = "filters"
	BlobFieldSelectionKey = "fieldSelection"
)

// EncodeFlat writes every present filter leaf under its fixed parameter name,
// then every declared field toggle as key=true|false, then the order keys.
func EncodeFlat(schema *Schema, filters FilterSet, selection FieldSelection) Query {
	var q Query
	for _, spec := range schema.Filters {
		for _, p := range spec.Params {
			v, ok := filterLeaf(filters, spec.Key, p.Sub)
			if !ok {
				continue
			}
			q.Add(p.Name, formatLeaf(spec.Kind, v))
		}
	}
	for _, f := range schema.Fields {
		v, ok := selection.Fields[f.Key]
		if !ok {
			continue
		}
		q.Add(string(f.Key), strconv.FormatBool(v))
	}
	if selection.OrderBy != "" {
		q.Add(KeyOrderBy, selection.OrderBy)
	}
	if selection.OrderDirection != "" {
		q.Add(KeyOrderDirection, string(selection.OrderDirection))
	}
	return q
}

// DecodeFlat is the inverse of EncodeFlat. Keys missing from values stay
// absent. A numeric parameter that does not parse is dropped and reported in
// the returned error; the decoded values are usable either way.
func DecodeFlat(schema *Schema, values url.Values) (FilterSet, FieldSelection, error) {
	filters := FilterSet{}
	var errs []error

	for _, spec := range schema.Filters {
		for _, p := range spec.Params {
			raw := values.Get(p.Name)
			if raw == "" {
				continue
			}
			var v any = raw
			if spec.Kind.IsNumeric() {
				n, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					errs = append(errs, fmt.Errorf("parameter %s: %w", p.Name, err))
					continue
				}
				v = n
			}
			if p.Sub == "" {
				filters[spec.Key] = v
				continue
			}
			rng, _ := filters[spec.Key].(map[string]any)
			if rng == nil {
				rng = map[string]any{}
				filters[spec.Key] = rng
			}
			rng[p.Sub] = v
		}
	}

	var selection FieldSelection
	for _, f := range schema.Fields {
		if _, ok := values[string(f.Key)]; !ok {
			continue
		}
		if selection.Fields == nil {
			selection.Fields = make(map[FieldKey]bool)
		}
		selection.Fields[f.Key] = values.Get(string(f.Key)) == "true"
	}
	selection.OrderBy = values.Get(KeyOrderBy)
	selection.OrderDirection = OrderDirection(values.Get(KeyOrderDirection))

	return filters, selection, errors.Join(errs...)
}

// EncodeBlob stores the JSON of both objects under "filters" and
// "fieldSelection".
func EncodeBlob(filters FilterSet, selection FieldSelection) (Query, error) {
	if filters == nil {
		filters = FilterSet{}
	}
	fj, err := json.Marshal(filters)
	if err != nil {
		return nil, fmt.Errorf("encode filters: %w", err)
	}
	sj, err := json.Marshal(selection)
	if err != nil {
		return nil, fmt.Errorf("encode field selection: %w", err)
	}
	return Query{
		{Key: BlobFiltersKey, Value: string(fj)},
		{Key: BlobFieldSelectionKey, Value: string(sj)},
	}, nil
}

// DecodeBlob parses both blobs. A blob that is missing or malformed decodes
// to an empty object; parse failures are returned for logging only.
func DecodeBlob(values url.Values) (FilterSet, FieldSelection, error) {
	filters := FilterSet{}
	var selection FieldSelection
	var errs []error

	if raw, ok := blobValue(values, BlobFiltersKey); ok {
		var f FilterSet
		if err := json.Unmarshal(raw, &f); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", BlobFiltersKey, err))
		} else if f != nil {
			filters = f
		}
	}
	if raw, ok := blobValue(values, BlobFieldSelectionKey); ok {
		var s FieldSelection
		if err := json.Unmarshal(raw, &s); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", BlobFieldSelectionKey, err))
		} else {
			selection = s
		}
	}
	return filters, selection, errors.Join(errs...)
}

// blobValue tolerates one extra layer of percent-encoding, which links built
// by hand with encodeURIComponent inside a URLSearchParams carry.
func blobValue(values url.Values, key string) ([]byte, bool) {
	if _, ok := values[key]; !ok {
		return nil, false
	}
	raw := values.Get(key)
	if !json.Valid([]byte(raw)) {
		if unescaped, err := url.QueryUnescape(raw); err == nil {
			raw = unescaped
		}
	}
	return []byte(raw), true
}

func IsBlob(values url.Values) bool {
	_, f := values[BlobFiltersKey]
	_, s := values[BlobFieldSelectionKey]
	return f || s
}

func filterLeaf(filters FilterSet, key, sub string) (any, bool) {
	v, ok := filters[key]
	if !ok || v == nil {
		return nil, false
	}
	if sub == "" {
		if s, isStr := v.(string); isStr && s == "" {
			return nil, false
		}
		return v, true
	}
	rng, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	leaf, ok := rng[sub]
	if !ok || leaf == nil {
		return nil, false
	}
	if s, isStr := leaf.(string); isStr && s == "" {
		return nil, false
	}
	return leaf, true
}

func formatLeaf(kind FilterKind, v any) string {
	if kind.IsNumeric() {
		if n, ok := toNumber(v); ok {
			return formatNumber(n)
		}
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Codec picks the encoding per report type and logs decode problems
// instead of surfacing them: a malformed link degrades to "no filters".
type Codec struct {
	logger        *zap.Logger
	canonicalBlob bool
}

func NewCodec(cfg *config.Config, logger *zap.Logger) *Codec {
	return &Codec{
		logger:        logger.Named("report_codec"),
		canonicalBlob: cfg.ReportCanonicalBlob,
	}
}

func (c *Codec) EncodingFor(schema *Schema) Encoding {
	if c.canonicalBlob {
		return EncodingBlob
	}
	return schema.Encoding
}

func (c *Codec) Encode(schema *Schema, filters FilterSet, selection FieldSelection) (Query, error) {
	if c.EncodingFor(schema) == EncodingBlob {
		return EncodeBlob(filters, selection)
	}
	return EncodeFlat(schema, filters, selection), nil
}

// Decode reads a blob-encoded link whenever the blob keys are present, so
// links keep opening across a switch of the configured encoding.
func (c *Codec) Decode(schema *Schema, values url.Values) (FilterSet, FieldSelection) {
	var (
		filters   FilterSet
		selection FieldSelection
		err       error
	)
	if IsBlob(values) || schema.Encoding == EncodingBlob {
		filters, selection, err = DecodeBlob(values)
	} else {
		filters, selection, err = DecodeFlat(schema, values)
	}
	if err != nil {
		c.logger.Warn("malformed report parameters ignored",
			zap.String("report_type", string(schema.Type)),
			zap.Error(err),
		)
	}
	return filters, selection
}
