// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ciera-report/internal/ads"
	"github.com/pdiddy/ciera-report/pkg/types"
)

// executeRoot runs the CLI with args and returns what it wrote to stdout.
// Flag values persist across calls in one process, so each test passes
// every flag it depends on.
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootWritesReport(t *testing.T) {
	var gotQuery, gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"response": {"numFound": 3, "docs": [
			{"bibcode": "b", "title": ["Second"], "author": ["Lee", "Park"], "year": "2017", "pub": "ApJ", "issue": "2", "citation_count": 40},
			{"bibcode": "a", "title": ["First"], "author": ["Smith"], "year": "2017", "pub": "PRL", "issue": "16", "page": ["161101"], "citation_count": 90},
			{"bibcode": "c", "title": ["Third"], "author": ["Kim", "Lee", "Park", "Smith"], "year": "2016", "pub": "MNRAS", "citation_count": 1}
		]}}`)
	}))
	defer ts.Close()
	t.Setenv("CIERA_REPORT_HTTP_BASE_URL", ts.URL)

	outPath := filepath.Join(t.TempDir(), "ciera-papers.txt")
	stdout, err := executeRoot(t,
		"--token", "tok-test",
		"--output", outPath,
		"--from", "2016-09",
		"--to", "2017-08",
		"--rows", "3")
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-test", gotAuth)
	assert.Contains(t, gotQuery, "pubdate:[2016-09-00 TO 2017-08-00]")

	want := "\nFirst\nSmith\n2017, PRL, 16, 161101\n" +
		"\nSecond\nLee and Park\n2017, ApJ, 2\n" +
		"\nThird\nKim et al.\n2016, MNRAS\n"
	assert.Equal(t, want, stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}

func TestRootRejectsBadWindow(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "ciera-papers.txt")
	_, err := executeRoot(t,
		"--token", "tok-test",
		"--output", outPath,
		"--from", "2017-08",
		"--to", "2016-09",
		"--rows", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before")

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr), "no output file on a rejected query")
}

func TestConfigCommand(t *testing.T) {
	stdout, err := executeRoot(t, "config")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "tok-test")

	var cfg types.ReportConfig
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &cfg))
	assert.Equal(t, types.DefaultAffiliations, cfg.Query.Affiliations)
	assert.Equal(t, types.DefaultFields, cfg.Query.Fields)
	assert.Equal(t, types.DefaultSort, cfg.Query.Sort)
	assert.Equal(t, types.DefaultTimeout, cfg.HTTP.Timeout)
	assert.True(t, strings.HasPrefix(cfg.HTTP.UserAgent, "ciera-report/"))
}

func TestVersionCommand(t *testing.T) {
	stdout, err := executeRoot(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "ciera-report dev\n", stdout)
}

// resetFlags restores the named root flags to their defaults once the test
// ends.
func resetFlags(t *testing.T, names ...string) {
	t.Helper()
	t.Cleanup(func() {
		for _, name := range names {
			f := rootCmd.PersistentFlags().Lookup(name)
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				_ = sv.Replace(types.DefaultAffiliations)
			} else {
				_ = f.Value.Set(f.DefValue)
			}
			f.Changed = false
		}
	})
}

func configFromCLI(t *testing.T, args ...string) types.ReportConfig {
	t.Helper()
	stdout, err := executeRoot(t, append([]string{"config"}, args...)...)
	require.NoError(t, err)
	var cfg types.ReportConfig
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &cfg))
	return cfg
}

func TestConfigAffiliationFlagKeepsCommas(t *testing.T) {
	resetFlags(t, "affiliation")

	cfg := configFromCLI(t,
		"--affiliation", "*Northwestern University, Evanston*",
		"--affiliation", "*CIERA*")
	assert.Equal(t, []string{"*Northwestern University, Evanston*", "*CIERA*"}, cfg.Query.Affiliations)

	q, err := ads.BuildQuery(cfg.Query)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(q.Q, `aff:("*Northwestern University, Evanston*" OR *CIERA*)`), "q = %s", q.Q)
}

func TestConfigAffiliationEnvKeepsSpaces(t *testing.T) {
	t.Setenv("CIERA_REPORT_QUERY_AFFILIATIONS", "*Center for Interdisciplinary Exploration*; *CIERA*")

	cfg := configFromCLI(t)
	assert.Equal(t, []string{"*Center for Interdisciplinary Exploration*", "*CIERA*"}, cfg.Query.Affiliations)
}

func TestConfigAcceptsReportFlags(t *testing.T) {
	resetFlags(t, "rows", "from", "to")
	cfg := configFromCLI(t, "--rows", "500", "--from", "2017-09", "--to", "2018-08")
	assert.Equal(t, 500, cfg.Query.Rows)
	assert.Equal(t, "2017-09", cfg.Query.From)
	assert.Equal(t, "2018-08", cfg.Query.To)
}

func TestPatternList(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"string slice kept whole", []string{"*a, b*", " *c d* "}, []string{"*a, b*", "*c d*"}},
		{"yaml list", []any{"*Center for Astrophysics*", "*CIERA*"}, []string{"*Center for Astrophysics*", "*CIERA*"}},
		{"single string", "*Center for Astrophysics*", []string{"*Center for Astrophysics*"}},
		{"semicolons and newlines", "*a b*;*c*\n*d, e*;;", []string{"*a b*", "*c*", "*d, e*"}},
		{"nil", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, patternList(tt.in))
		})
	}
}
