// Package query filters exported catalog records with JSONPath.
package query

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/efermi/coolreader/api"
	"github.com/efermi/coolreader/internal/catalog"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// ErrBadExpression is returned for JSONPath expressions that do not parse.
var ErrBadExpression = errors.New("invalid jsonpath")

// posKey tags each record object with its position while a query runs.
const posKey = "_pos"

// Records flattens the subtree below root into records without parent or
// children, in walk order. root itself is not included.
func Records(root *catalog.Entry) []api.EntryRecord {
	var out []api.EntryRecord
	root.Walk(func(e *catalog.Entry) bool {
		if e != root {
			r := catalog.ToRecord(e)
			r.Parent, r.Files, r.Dirs = nil, nil, nil
			out = append(out, r)
		}
		return true
	})
	return out
}

// Compile parses a JSONPath expression.
func Compile(expr string) (jp.Expr, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %v", ErrBadExpression, expr, err)
	}
	return x, nil
}

// Select evaluates expr against the array of records and returns the
// records whose objects it matched, in input order. Matches that are not
// whole records (e.g. "$[*].title") are ignored; use Values for those.
func Select(records []api.EntryRecord, expr string) ([]api.EntryRecord, error) {
	x, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	data, err := decompose(records)
	if err != nil {
		return nil, err
	}

	hit := make([]bool, len(records))
	for _, r := range x.Get(data) {
		m, ok := r.(map[string]any)
		if !ok {
			continue
		}
		if pos, ok := m[posKey].(int64); ok && pos >= 0 && int(pos) < len(hit) {
			hit[pos] = true
		}
	}
	var out []api.EntryRecord
	for i, ok := range hit {
		if ok {
			out = append(out, records[i])
		}
	}
	return out, nil
}

// Values evaluates expr against the array of records and returns the raw
// matches.
func Values(records []api.EntryRecord, expr string) ([]any, error) {
	x, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	data, err := decompose(records)
	if err != nil {
		return nil, err
	}
	results := x.Get(data)
	for i, r := range results {
		if m, ok := r.(map[string]any); ok {
			delete(m, posKey)
			results[i] = m
		}
	}
	return results, nil
}

// decompose turns records into generic JSON values, tagging each object
// with its position.
func decompose(records []api.EntryRecord) ([]any, error) {
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	v, err := oj.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	list, _ := v.([]any)
	for i, item := range list {
		if m, ok := item.(map[string]any); ok {
			m[posKey] = int64(i)
		}
	}
	return list, nil
}
