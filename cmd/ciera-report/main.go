// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ciera-report CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/ciera-report/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is replaced in PersistentPreRunE once flags are parsed.
var logger = zap.NewNop()

// rootCmd fetches the papers and writes the report.
var rootCmd = &cobra.Command{
	Use:   "ciera-report",
	Short: "Build the annual-report paper list from ADS",
	Long: `ciera-report queries the NASA Astrophysics Data System for papers with a
CIERA or Northwestern affiliation published in the report window, and writes
them, most cited first, as a plain-text citation list.

The list is printed to stdout and written to the output file
(ciera-papers.txt by default), which is overwritten on every run. Filter it by
hand afterwards to pick the papers for the report.

The ADS API token is read from --token, .secrets/ads-api-token,
ADS_API_TOKEN or ADS_DEV_KEY (a .env file is honored), or ~/.ads/dev_key.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(viper.GetBool("verbose"))
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		logger = l
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Info("using config file", zap.String("path", used))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.RunE = runReport
	cobra.OnInitialize(initConfig)
	setDefaults()

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./ciera-report.yaml or ~/.config/ciera-report/ciera-report.yaml)")
	pf.BoolP("verbose", "v", false, "human-readable debug logging on stderr")

	def := types.DefaultReportConfig()
	f := rootCmd.PersistentFlags()
	f.StringP("output", "o", def.OutputPath, "report file, overwritten on each run")
	f.String("from", def.Query.From, "first publication month (YYYY-MM)")
	f.String("to", def.Query.To, "last publication month (YYYY-MM)")
	f.Int("rows", def.Query.Rows, "maximum number of papers (0 = ADS default)")
	f.String("sort", def.Query.Sort, "ADS sort expression")
	f.StringArray("affiliation", def.Query.Affiliations, "affiliation wildcard pattern, kept whole (repeatable)")
	f.String("token", "", "ADS API token")
	f.Duration("timeout", def.HTTP.Timeout, "HTTP request timeout")

	bindFlag("verbose", pf, "verbose")
	bindFlag("output", f, "output")
	bindFlag("query.from", f, "from")
	bindFlag("query.to", f, "to")
	bindFlag("query.rows", f, "rows")
	bindFlag("query.sort", f, "sort")
	bindFlag("query.affiliations", f, "affiliation")
	bindFlag("token", f, "token")
	bindFlag("http.timeout", f, "timeout")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ciera-report")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ciera-report"))
		}
	}

	viper.SetEnvPrefix("CIERA_REPORT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintln(os.Stderr, "warning: reading config:", err)
		}
	}
}

// newLogger builds a JSON logger at info level, or a console logger at
// debug level when verbose is set. Both write to stderr so stdout carries
// only the report.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.Sampling = nil
	return cfg.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
