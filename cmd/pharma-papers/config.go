package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

const defaultUserAgent = "pharma-papers/0.1"

// classifierConfig starts from the built-in marker lists and applies any
// overrides from the config file. An override replaces the whole list so
// markers can be removed as well as added.
func classifierConfig() types.ClassifierConfig {
	cfg := types.DefaultClassifierConfig()
	if v := viper.GetStringSlice("classifier.academic_markers"); len(v) > 0 {
		cfg.AcademicMarkers = v
	}
	if v := viper.GetStringSlice("classifier.company_markers"); len(v) > 0 {
		cfg.CompanyMarkers = v
	}
	if v := viper.GetStringSlice("classifier.company_marker_guards"); len(v) > 0 {
		cfg.CompanyMarkerGuards = v
	}
	return cfg
}

// pubmedConfig assembles the client settings from flags, config file, and
// .secrets/ fallbacks.
func pubmedConfig(timeout time.Duration, batchSize int) types.PubMedConfig {
	return types.PubMedConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		APIKey:            secretDefault("ncbi-api-key", viper.GetString("pubmed.api_key")),
		Email:             secretDefault("ncbi-email", viper.GetString("pubmed.email")),
		Tool:              secretDefault("ncbi-tool", viper.GetString("pubmed.tool")),
		BatchSize:         batchSize,
		RequestsPerSecond: viper.GetFloat64("pubmed.requests_per_second"),
		MaxRetries:        viper.GetInt("pubmed.max_retries"),
	}
}
