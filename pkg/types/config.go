// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds settings for the outbound HTTP client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "ciera-report/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// BaseURL is the ADS API root (default "https://api.adsabs.harvard.edu").
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// QueryConfig describes the ADS search request. One QueryConfig replaces
// the per-year script variants: row cap, field list and date window are
// values here rather than separate programs.
type QueryConfig struct {
	// Affiliations are wildcard patterns matched against the aff field.
	Affiliations []string `json:"affiliations" yaml:"affiliations"`

	// Fields is the ADS field list (fl) to retrieve.
	Fields []string `json:"fields" yaml:"fields"`

	// From is the first month of the publication window, "YYYY-MM".
	From string `json:"from" yaml:"from"`

	// To is the last month of the publication window, "YYYY-MM".
	To string `json:"to" yaml:"to"`

	// Sort is the ADS sort expression (default "citation_count desc").
	Sort string `json:"sort" yaml:"sort"`

	// Rows caps the number of results. Zero leaves the provider default.
	Rows int `json:"rows" yaml:"rows"`
}

// ReportConfig groups everything a report run needs.
type ReportConfig struct {
	Query QueryConfig `json:"query" yaml:"query"`
	HTTP  HTTPConfig  `json:"http" yaml:"http"`

	// OutputPath is the text file the report is written to. It is
	// truncated on every run.
	OutputPath string `json:"output" yaml:"output"`
}

// Default values for a report run.
const (
	DefaultBaseURL    = "https://api.adsabs.harvard.edu"
	DefaultSort       = "citation_count desc"
	DefaultRows       = 300
	DefaultOutputPath = "ciera-papers.txt"
	DefaultTimeout    = 60 * time.Second
)

// DefaultAffiliations match papers from CIERA and Northwestern.
var DefaultAffiliations = []string{
	"*northwestern*",
	"*CIERA*",
	"*Center for Interdisciplinary Exploration and Research in Astrophysics*",
}

// DefaultFields is the field list the report formatter reads.
var DefaultFields = []string{"aff", "citation_count", "title", "author", "year", "issue", "pub", "page"}

// DefaultReportConfig returns the configuration for the 2016-2017 report
// year: September 2016 through August 2017, top 300 by citations.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		Query: QueryConfig{
			Affiliations: append([]string(nil), DefaultAffiliations...),
			Fields:       append([]string(nil), DefaultFields...),
			From:         "2016-09",
			To:           "2017-08",
			Sort:         DefaultSort,
			Rows:         DefaultRows,
		},
		HTTP: HTTPConfig{
			Timeout:   DefaultTimeout,
			UserAgent: "ciera-report/dev",
			BaseURL:   DefaultBaseURL,
		},
		OutputPath: DefaultOutputPath,
	}
}
