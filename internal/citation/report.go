// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"fmt"
	"io"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/pdiddy/ciera-report/pkg/types"
)

// SortByCitations orders papers by descending citation count. The sort
// is stable, so provider order is kept among equal counts and input the
// service already sorted is left unchanged.
func SortByCitations(papers []types.Paper) {
	sort.SliceStable(papers, func(i, j int) bool {
		return papers[i].CitationCount > papers[j].CitationCount
	})
}

// Write formats each paper in order and writes the entries to w. It stops
// at the first paper that cannot be formatted and returns the number of
// entries written before it.
func Write(papers []types.Paper, w io.Writer) (int, error) {
	for i, p := range papers {
		entry, err := FormatPaper(p)
		if err != nil {
			return i, err
		}
		if _, err := io.WriteString(w, entry); err != nil {
			return i, fmt.Errorf("writing entry %d: %w", i+1, err)
		}
	}
	return len(papers), nil
}

// Report writes the citation list to a file and mirrors it to a console
// writer.
type Report struct {
	// OutputPath is created or truncated on each run.
	OutputPath string

	// Console receives the same bytes as the file. Nil disables mirroring.
	Console io.Writer

	Logger *zap.Logger
}

// Run writes a citation-sorted copy of papers. The output file is
// closed on every path; a close error is reported when nothing else failed.
func (r Report) Run(papers []types.Paper) (err error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	f, err := os.Create(r.OutputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()

	var w io.Writer = f
	if r.Console != nil {
		w = io.MultiWriter(r.Console, f)
	}

	sorted := append([]types.Paper(nil), papers...)
	SortByCitations(sorted)
	n, err := Write(sorted, w)
	if err != nil {
		logger.Error("report incomplete",
			zap.String("output", r.OutputPath),
			zap.Int("written", n),
			zap.Int("total", len(papers)),
			zap.Error(err))
		return err
	}

	logger.Info("report written",
		zap.String("output", r.OutputPath),
		zap.Int("entries", n))
	return nil
}
