// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ciera-report/pkg/types"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective report configuration as YAML",
	Long: `Config prints the configuration a report run would use after merging
defaults, the config file, CIERA_REPORT_* environment variables and flags.
CIERA_REPORT_QUERY_AFFILIATIONS takes patterns separated by ";".
The output is a valid ciera-report.yaml. The API token is never printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(loadReportConfig())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// setDefaults registers the default report configuration with viper.
func setDefaults() {
	def := types.DefaultReportConfig()
	viper.SetDefault("output", def.OutputPath)
	viper.SetDefault("query.affiliations", def.Query.Affiliations)
	viper.SetDefault("query.fields", def.Query.Fields)
	viper.SetDefault("query.from", def.Query.From)
	viper.SetDefault("query.to", def.Query.To)
	viper.SetDefault("query.sort", def.Query.Sort)
	viper.SetDefault("query.rows", def.Query.Rows)
	viper.SetDefault("http.timeout", def.HTTP.Timeout)
	viper.SetDefault("http.user_agent", "ciera-report/"+version)
	viper.SetDefault("http.base_url", def.HTTP.BaseURL)
}

// bindFlag binds a flag to a viper key so flags override config and env.
func bindFlag(key string, fs *pflag.FlagSet, name string) {
	if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
		panic(err)
	}
}

// loadReportConfig reads the merged configuration from viper.
func loadReportConfig() types.ReportConfig {
	return types.ReportConfig{
		Query: types.QueryConfig{
			Affiliations: affiliations(),
			Fields:       viper.GetStringSlice("query.fields"),
			From:         viper.GetString("query.from"),
			To:           viper.GetString("query.to"),
			Sort:         viper.GetString("query.sort"),
			Rows:         viper.GetInt("query.rows"),
		},
		HTTP: types.HTTPConfig{
			Timeout:   viper.GetDuration("http.timeout"),
			UserAgent: viper.GetString("http.user_agent"),
			BaseURL:   viper.GetString("http.base_url"),
		},
		OutputPath: viper.GetString("output"),
	}
}

// affiliations returns the --affiliation values when the flag was given,
// else the merged config or environment value.
func affiliations() []string {
	if f := rootCmd.PersistentFlags().Lookup("affiliation"); f != nil && f.Changed {
		vals, _ := rootCmd.PersistentFlags().GetStringArray("affiliation")
		return patternList(vals)
	}
	return patternList(viper.Get("query.affiliations"))
}

// patternList reads a list of affiliation patterns without splitting a
// pattern on spaces or commas. A list from the config file or a flag is
// kept element for element; a single string (an environment variable) is
// split on ";" and newlines only.
func patternList(v any) []string {
	var raw []string
	if s, ok := v.(string); ok {
		raw = strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '\n' })
	} else {
		raw = cast.ToStringSlice(v)
	}
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
