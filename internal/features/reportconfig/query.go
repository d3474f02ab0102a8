package reportconfig

import (
	"net/url"
	"strings"
)

type QueryParam struct {
	Key   string
	Value string
}

// Query is an insertion-ordered query string. url.Values sorts keys on
// Encode, which would break the parameter order the viewer links use.
type Query []QueryParam

func (q *Query) Add(key, value string) {
	*q = append(*q, QueryParam{Key: key, Value: value})
}

func (q Query) Get(key string) (string, bool) {
	for _, p := range q {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

func (q Query) Encode() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escapeComponent(p.Key))
		b.WriteByte('=')
		b.WriteString(escapeComponent(p.Value))
	}
	return b.String()
}

// componentUnescaper restores the characters encodeURIComponent leaves alone.
var componentUnescaper = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

// escapeComponent matches the browser's encodeURIComponent, so links read back
// with decodeURIComponent keep spaces as spaces.
func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

func (q Query) Values() url.Values {
	v := make(url.Values, len(q))
	for _, p := range q {
		v.Add(p.Key, p.Value)
	}
	return v
}

// ViewerURL joins the viewer route of the schema with an encoded query.
func ViewerURL(schema *Schema, q Query) string {
	if len(q) == 0 {
		return schema.ViewerPath
	}
	return schema.ViewerPath + "?" + q.Encode()
}
