// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ads builds and runs searches against the NASA Astrophysics Data
// System (ADS) search API.
package ads

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/ciera-report/pkg/types"
)

// MaxRows is the largest row count ADS accepts in a single request.
const MaxRows = 2000

const monthFmt = "2006-01"

// Query holds the encoded parameters of one ADS search request.
type Query struct {
	// Q is the Solr-style query string, e.g.
	// aff:(*CIERA* OR "*Center for ...*") AND pubdate:[2016-09-00 TO 2017-08-00].
	Q string

	// Fields is the field list (fl). It always contains bibcode.
	Fields []string

	// Sort is the sort expression, e.g. "citation_count desc".
	Sort string

	// Rows is the row cap; zero omits the parameter.
	Rows int
}

// Values returns the URL query parameters for the request.
func (q Query) Values() url.Values {
	v := url.Values{
		"q":    {q.Q},
		"fl":   {strings.Join(q.Fields, ",")},
		"sort": {q.Sort},
	}
	if q.Rows > 0 {
		v.Set("rows", strconv.Itoa(q.Rows))
	}
	return v
}

// BuildQuery validates cfg and assembles the ADS request parameters.
func BuildQuery(cfg types.QueryConfig) (Query, error) {
	aff := affiliationClause(cfg.Affiliations)
	if aff == "" {
		return Query{}, fmt.Errorf("no affiliation patterns configured")
	}

	pubdate, err := pubdateClause(cfg.From, cfg.To)
	if err != nil {
		return Query{}, err
	}

	if cfg.Rows < 0 {
		return Query{}, fmt.Errorf("rows must not be negative, got %d", cfg.Rows)
	}
	if cfg.Rows > MaxRows {
		return Query{}, fmt.Errorf("rows %d exceeds the ADS maximum of %d", cfg.Rows, MaxRows)
	}

	sort, err := normalizeSort(cfg.Sort)
	if err != nil {
		return Query{}, err
	}

	return Query{
		Q:      aff + " AND " + pubdate,
		Fields: fieldList(cfg.Fields),
		Sort:   sort,
		Rows:   cfg.Rows,
	}, nil
}

// affiliationClause ORs the patterns into one aff:(...) clause. Patterns
// with whitespace are quoted; bare patterns keep ADS wildcard matching.
func affiliationClause(patterns []string) string {
	var terms []string
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if strings.ContainsAny(p, " \t") {
			p = `"` + strings.ReplaceAll(p, `"`, `\"`) + `"`
		}
		terms = append(terms, p)
	}
	if len(terms) == 0 {
		return ""
	}
	return "aff:(" + strings.Join(terms, " OR ") + ")"
}

// pubdateClause renders the month window as pubdate:[YYYY-MM-00 TO YYYY-MM-00].
func pubdateClause(from, to string) (string, error) {
	start, err := parseMonth(from)
	if err != nil {
		return "", fmt.Errorf("invalid from %q: %w", from, err)
	}
	end, err := parseMonth(to)
	if err != nil {
		return "", fmt.Errorf("invalid to %q: %w", to, err)
	}
	if end.Before(start) {
		return "", fmt.Errorf("date range ends (%s) before it starts (%s)", to, from)
	}
	return fmt.Sprintf("pubdate:[%s-00 TO %s-00]", start.Format(monthFmt), end.Format(monthFmt)), nil
}

// parseMonth accepts "YYYY-MM" and the ADS form "YYYY-MM-00".
func parseMonth(s string) (time.Time, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "-00")
	if s == "" {
		return time.Time{}, fmt.Errorf("empty month")
	}
	return time.Parse(monthFmt, s)
}

// normalizeSort accepts "field dir" and the URL-encoded "field+dir" form.
func normalizeSort(s string) (string, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "+", " "))
	if s == "" {
		return types.DefaultSort, nil
	}
	parts := strings.Fields(s)
	switch len(parts) {
	case 1:
		return parts[0] + " desc", nil
	case 2:
		dir := strings.ToLower(parts[1])
		if dir != "asc" && dir != "desc" {
			return "", fmt.Errorf("invalid sort direction %q: use asc or desc", parts[1])
		}
		return parts[0] + " " + dir, nil
	default:
		return "", fmt.Errorf("invalid sort expression %q", s)
	}
}

// fieldList returns the requested fields, deduplicated, with bibcode
// first. An empty list falls back to the default report fields.
func fieldList(fields []string) []string {
	if len(fields) == 0 {
		fields = types.DefaultFields
	}
	out := []string{"bibcode"}
	seen := map[string]bool{"bibcode": true}
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
