package reportviewer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"go-crossroads/internal/features/reportconfig"
)

type member struct {
	key   string
	value json.RawMessage
}

// Normalize maps a raw upstream payload onto the schema's summary and
// record keys. Records are taken from data.data, else from the first
// array-valued top-level key in document order, else from a bare top-level
// array. Only a payload with no array at all is an error.
func Normalize(schema *reportconfig.Schema, raw []byte) (Summary, []ReportRecord, map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil, nil, ErrInvalidDataFormat
	}

	if trimmed[0] == '[' {
		var rows []any
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, nil, nil, fmt.Errorf("%w: %v", ErrInvalidDataFormat, err)
		}
		return nil, mapRecords(schema, rows), nil, nil
	}

	members, err := orderedMembers(trimmed)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrInvalidDataFormat, err)
	}

	root := make(map[string]any, len(members))
	for _, m := range members {
		var v any
		if err := json.Unmarshal(m.value, &v); err == nil {
			root[m.key] = v
		}
	}

	rows, ok := locateRecords(root, members)
	if !ok {
		return nil, nil, nil, ErrInvalidDataFormat
	}

	return buildSummary(schema, root), mapRecords(schema, rows), userInfo(root), nil
}

func locateRecords(root map[string]any, members []member) ([]any, bool) {
	if data, ok := root["data"].(map[string]any); ok {
		if rows, ok := data["data"].([]any); ok {
			return rows, true
		}
	}
	for _, m := range members {
		if rows, ok := root[m.key].([]any); ok {
			return rows, true
		}
	}
	return nil, false
}

// orderedMembers lists the top-level members of a JSON object in document
// order; decoding into a map would lose it.
func orderedMembers(raw []byte) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("payload is not an object or array")
	}

	var members []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		members = append(members, member{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return members, nil
}

// summaryContainers lists where summary values may live, most specific
// first.
func summaryContainers(root map[string]any) []map[string]any {
	var out []map[string]any
	data, _ := root["data"].(map[string]any)
	if data != nil {
		if s, ok := data["summary"].(map[string]any); ok {
			out = append(out, s)
		}
	}
	if s, ok := root["summary"].(map[string]any); ok {
		out = append(out, s)
	}
	if data != nil {
		out = append(out, data)
	}
	return append(out, root)
}

// buildSummary returns nil when the payload carries no summary at all.
func buildSummary(schema *reportconfig.Schema, root map[string]any) Summary {
	containers := summaryContainers(root)
	summary := Summary{}
	for _, f := range schema.FieldsIn(reportconfig.GroupSummary) {
		if v, ok := resolveFirst(f.Sources, containers...); ok {
			summary[f.Key] = v
		}
	}

	_, hasNested := root["summary"]
	if data, ok := root["data"].(map[string]any); ok {
		if _, ok := data["summary"]; ok {
			hasNested = true
		}
	}
	if len(summary) == 0 && !hasNested {
		return nil
	}
	return summary
}

func mapRecords(schema *reportconfig.Schema, rows []any) []ReportRecord {
	fields := schema.FieldsIn(reportconfig.GroupRecords)
	records := make([]ReportRecord, 0, len(rows))
	for _, row := range rows {
		obj, _ := row.(map[string]any)
		rec := ReportRecord{}
		for _, f := range fields {
			if v, ok := resolveFirst(f.Sources, obj); ok {
				rec[f.Key] = v
			}
		}
		records = append(records, rec)
	}
	return records
}

func userInfo(root map[string]any) map[string]any {
	if u, ok := root["userInfo"].(map[string]any); ok {
		return u
	}
	if data, ok := root["data"].(map[string]any); ok {
		if u, ok := data["userInfo"].(map[string]any); ok {
			return u
		}
	}
	return nil
}

// resolveFirst tries each source path against each container and returns
// the first non-null hit. Path order wins over container order.
func resolveFirst(paths []string, containers ...map[string]any) (any, bool) {
	for _, p := range paths {
		for _, c := range containers {
			if v, ok := lookupPath(c, p); ok {
				return v, true
			}
		}
	}
	return nil, false
}

func lookupPath(obj map[string]any, path string) (any, bool) {
	if obj == nil {
		return nil, false
	}
	var cur any = obj
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}
