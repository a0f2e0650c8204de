// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation renders ADS papers as plain-text entries for the
// annual report: title, author line, then year, venue, issue and page.
package citation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/ciera-report/pkg/types"
)

var (
	// ErrNoAuthors is returned for a paper with an empty author list.
	ErrNoAuthors = errors.New("paper has no authors")

	// ErrNoTitle is returned for a paper without a title.
	ErrNoTitle = errors.New("paper has no title")
)

// FormatAuthors renders an author list in report style:
//
//	[A]          -> "A"
//	[A B]        -> "A and B"
//	[A B C]      -> "A, B, and C"
//	[A B C D...] -> "A et al."
func FormatAuthors(authors []string) (string, error) {
	switch len(authors) {
	case 0:
		return "", ErrNoAuthors
	case 1:
		return authors[0], nil
	case 2:
		return authors[0] + " and " + authors[1], nil
	case 3:
		return authors[0] + ", " + authors[1] + ", and " + authors[2], nil
	default:
		return authors[0] + " et al.", nil
	}
}

// FormatPaper renders one report entry:
//
//	<blank line>
//	title
//	authors
//	year, venue, issue, page
//
// Each segment of the last line appears only when the paper has it.
func FormatPaper(p types.Paper) (string, error) {
	if strings.TrimSpace(p.Title) == "" {
		return "", fmt.Errorf("%s: %w", paperRef(p), ErrNoTitle)
	}
	authors, err := FormatAuthors(p.Authors)
	if err != nil {
		return "", fmt.Errorf("%s: %w", paperRef(p), err)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(p.Title)
	b.WriteString("\n")
	b.WriteString(authors)
	b.WriteString("\n")
	b.WriteString(sourceLine(p))
	b.WriteString("\n")
	return b.String(), nil
}

// sourceLine joins the present year, venue, issue and page with ", ".
func sourceLine(p types.Paper) string {
	var parts []string
	for _, s := range []string{p.Year, p.Publication, p.Issue, p.Page} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func paperRef(p types.Paper) string {
	if p.Bibcode != "" {
		return p.Bibcode
	}
	return "paper"
}
