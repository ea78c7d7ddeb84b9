package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pharma-papers/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// PubMedConfig holds settings for the PubMed E-utilities client.
type PubMedConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is an optional NCBI API key. With a key NCBI allows 10
	// requests per second instead of 3.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Email is sent as the eutils email parameter so NCBI can reach the
	// operator about problematic request patterns.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// Tool is the eutils tool parameter identifying this client.
	Tool string `json:"tool,omitempty" yaml:"tool,omitempty"`

	// BatchSize caps how many PMIDs are fetched per efetch call
	// (default 200, the eutils GET limit).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// RequestsPerSecond overrides the rate limit derived from APIKey.
	RequestsPerSecond float64 `json:"requests_per_second,omitempty" yaml:"requests_per_second,omitempty"`

	// MaxRetries is the number of retry attempts on throttled or
	// transient upstream failures (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ClassifierConfig holds the marker lists the affiliation classifier
// matches against. Markers are matched case-insensitively as substrings
// of the normalized affiliation text.
type ClassifierConfig struct {
	// AcademicMarkers are tokens that signal a university, hospital, or
	// other academic institution.
	AcademicMarkers []string `json:"academic_markers" yaml:"academic_markers"`

	// CompanyMarkers are tokens that signal a for-profit pharmaceutical
	// or biotech organization. A company marker beats any academic
	// marker in the same string.
	CompanyMarkers []string `json:"company_markers" yaml:"company_markers"`

	// CompanyMarkerGuards lists phrases that neutralize a company marker
	// when present (e.g. "national laboratory" neutralizes "laboratories").
	CompanyMarkerGuards []string `json:"company_marker_guards,omitempty" yaml:"company_marker_guards,omitempty"`
}

// DefaultClassifierConfig returns the built-in marker lists. Callers may
// replace or extend the lists via the config file before constructing a
// classifier.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		AcademicMarkers: []string{
			"university",
			"institute of technology",
			"hospital",
			"school of medicine",
			"medical school",
			"department of",
			"faculty of",
			"college",
			"national laboratory",
			"academy of",
			".edu",
			".ac.",
		},
		CompanyMarkers: []string{
			"pharmaceutical",
			"pharmaceuticals",
			"pharma",
			"biotech",
			"biotechnology",
			"biosciences",
			"therapeutics",
			"laboratories",
			"inc",
			"inc.",
			"incorporated",
			"corp",
			"corp.",
			"corporation",
			"ltd",
			"ltd.",
			"limited",
			"llc",
			"gmbh",
			"co.",
			"company",
		},
		CompanyMarkerGuards: []string{
			"national laboratory",
			"national laboratories",
		},
	}
}
