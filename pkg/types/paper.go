// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for ciera-report.
// Paper is the record returned by the ADS search API; the config types
// describe the query and the report output.
package types

// Paper holds the bibliographic metadata of one ADS search result.
// Fields the service did not return are left at their zero value.
type Paper struct {
	// Bibcode is the ADS identifier (e.g. "2017PhRvL.119p1101A").
	Bibcode string `json:"bibcode" yaml:"bibcode"`

	// Title is the first element of the title list returned by ADS.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year as returned by ADS (a string, e.g. "2017").
	Year string `json:"year" yaml:"year"`

	// Publication is the venue name (journal, proceedings, preprint server).
	Publication string `json:"pub" yaml:"pub"`

	// Issue is the issue identifier.
	Issue string `json:"issue" yaml:"issue"`

	// Page is the first element of the page list, or empty when ADS has none.
	Page string `json:"page,omitempty" yaml:"page,omitempty"`

	// CitationCount is the number of citations, used as the sort key.
	CitationCount int `json:"citation_count" yaml:"citation_count"`

	// Affiliations lists author affiliations in author order.
	Affiliations []string `json:"aff,omitempty" yaml:"aff,omitempty"`
}
