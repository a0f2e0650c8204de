// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/ciera-report/internal/ads"
	"github.com/pdiddy/ciera-report/internal/citation"
	"github.com/pdiddy/ciera-report/internal/httputil"
	"github.com/pdiddy/ciera-report/internal/secrets"
)

// runReport builds the query, fetches the papers and writes the report.
// Any failure aborts the run.
func runReport(cmd *cobra.Command, args []string) error {
	cfg := loadReportConfig()

	q, err := ads.BuildQuery(cfg.Query)
	if err != nil {
		return err
	}

	token, err := secrets.ResolveToken(secrets.DefaultSources(viper.GetString("token")), logger)
	if err != nil {
		return err
	}

	client := ads.NewClient(token,
		ads.WithBaseURL(cfg.HTTP.BaseURL),
		ads.WithHTTPClient(httputil.NewClient(cfg.HTTP)),
		ads.WithLogger(logger))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	res, err := client.Search(ctx, q)
	if err != nil {
		return err
	}

	logger.Info("papers fetched",
		zap.Int("count", len(res.Papers)),
		zap.Int("num_found", res.NumFound))
	if res.NumFound > len(res.Papers) {
		logger.Warn("row cap reached; less cited papers were not fetched",
			zap.Int("rows", q.Rows),
			zap.Int("num_found", res.NumFound))
	}

	return citation.Report{
		OutputPath: cfg.OutputPath,
		Console:    cmd.OutOrStdout(),
		Logger:     logger,
	}.Run(res.Papers)
}
