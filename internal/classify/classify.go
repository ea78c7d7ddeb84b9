// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify screens author affiliation strings for pharmaceutical
// and biotech company signals and assembles qualifying papers into output
// records. All functions here are pure: they share no state and are safe
// to call concurrently.
package classify

import (
	"strings"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// Judgment is the classifier's verdict on a single affiliation string.
type Judgment struct {
	// IsCompany reports whether the affiliation matched a company marker.
	IsCompany bool

	// Organization is the extracted company name. Set if and only if
	// IsCompany is true.
	Organization string

	// Email is an address embedded in the affiliation string, verbatim
	// apart from trimming, or empty.
	Email string
}

// Classifier matches affiliation strings against configured marker lists.
// Construct with New; the zero value matches nothing.
type Classifier struct {
	academic []string
	company  []string
	guards   []string
}

// New builds a Classifier from the given marker configuration. The config
// is copied; later mutation of cfg does not affect the classifier.
func New(cfg types.ClassifierConfig) *Classifier {
	c := &Classifier{
		academic: make([]string, len(cfg.AcademicMarkers)),
		company:  make([]string, len(cfg.CompanyMarkers)),
		guards:   make([]string, len(cfg.CompanyMarkerGuards)),
	}
	for i, m := range cfg.AcademicMarkers {
		c.academic[i] = strings.ToLower(strings.TrimSpace(m))
	}
	for i, m := range cfg.CompanyMarkers {
		c.company[i] = strings.ToLower(strings.TrimSpace(m))
	}
	for i, m := range cfg.CompanyMarkerGuards {
		c.guards[i] = strings.ToLower(strings.TrimSpace(m))
	}
	return c
}

// Classify judges one affiliation string. Empty or whitespace-only input
// is non-company with no organization. The input is never mutated and the
// same input always yields the same judgment.
//
// When both academic and company markers appear in the same string the
// company marker wins: joint industry/academic appointments and company
// departments named "Department of X" are exactly the cases this tool
// exists to find.
func (c *Classifier) Classify(affiliation string) Judgment {
	text, email := extractEmail(affiliation)

	norm := normalize(text)
	if norm == "" {
		return Judgment{Email: email}
	}

	if !c.matchesCompany(norm) {
		return Judgment{Email: email}
	}

	return Judgment{
		IsCompany:    true,
		Organization: c.organization(text),
		Email:        email,
	}
}

// IsAcademic reports whether the affiliation carries an academic marker.
// Company markers are not consulted: a joint appointment is both academic
// and company, and Classify lets the company signal win.
func (c *Classifier) IsAcademic(affiliation string) bool {
	text, _ := extractEmail(affiliation)
	norm := normalize(text)
	for _, m := range c.academic {
		if matchMarker(norm, m) {
			return true
		}
	}
	return false
}

// matchesCompany reports whether the normalized text carries a company
// marker, after neutralizing guard phrases ("national laboratories" must
// not trip "laboratories").
func (c *Classifier) matchesCompany(norm string) bool {
	for _, g := range c.guards {
		norm = strings.ReplaceAll(norm, g, " ")
	}
	for _, m := range c.company {
		if matchMarker(norm, m) {
			return true
		}
	}
	return false
}

// organization extracts the company name from the original, unnormalized
// text: the first comma- or semicolon-separated segment that itself
// matches a company marker. A leading academic segment like
// "Dept. of Oncology" in "Dept. of Oncology, Example Pharmaceuticals Inc."
// is skipped in favor of the segment carrying the signal. Falls back to
// the first segment when no single segment matches (marker spans a
// segment boundary).
func (c *Classifier) organization(text string) string {
	segments := splitSegments(text)
	for _, seg := range segments {
		if c.matchesCompany(normalize(seg)) {
			return seg
		}
	}
	if len(segments) > 0 {
		return segments[0]
	}
	return strings.TrimSpace(text)
}

// splitSegments splits on commas and semicolons and trims each piece,
// dropping empties. A segment that is nothing but a corporate designator
// is reattached to its predecessor so "Acme Biotech, Inc." survives as
// one organization name instead of splitting at the internal comma.
func splitSegments(s string) []string {
	var segments []string
	for _, seg := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	}) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if len(segments) > 0 && isDesignator(seg) {
			segments[len(segments)-1] += ", " + seg
			continue
		}
		segments = append(segments, seg)
	}
	return segments
}

// corporate designators that legally trail a company name after a comma.
var designators = map[string]bool{
	"inc": true, "incorporated": true,
	"ltd": true, "limited": true,
	"llc": true, "llp": true,
	"corp": true, "corporation": true,
	"co": true, "gmbh": true, "ag": true, "sa": true, "plc": true,
}

func isDesignator(seg string) bool {
	return designators[strings.TrimSuffix(strings.ToLower(seg), ".")]
}

// normalize lowercases and collapses runs of whitespace so marker
// matching is insensitive to case and spacing. Punctuation is kept:
// markers like "inc." and ".edu" depend on it.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// matchMarker reports whether normalized text contains the marker.
// Multi-word markers ("department of") and domain fragments (".edu")
// match as substrings. Single-token markers must match a whole token,
// ignoring a trailing period, so "inc" fires on "Inc." but not on
// "Princeton" and "co." does not fire on "Mexico.".
func matchMarker(norm, marker string) bool {
	if marker == "" {
		return false
	}
	if strings.ContainsRune(marker, ' ') || strings.HasPrefix(marker, ".") {
		return strings.Contains(norm, marker)
	}
	want := strings.TrimSuffix(marker, ".")
	for _, tok := range strings.Fields(norm) {
		tok = strings.Trim(tok, ",;:()[]<>\"'")
		if strings.TrimSuffix(tok, ".") == want {
			return true
		}
	}
	return false
}

// extractEmail finds the first token containing "@" with non-whitespace
// on both sides, strips it from the returned text, and returns it with
// surrounding punctuation trimmed. PubMed affiliation strings commonly
// end with "Electronic address: name@example.com.".
func extractEmail(s string) (text, email string) {
	fields := strings.Fields(s)
	for i, tok := range fields {
		at := strings.Index(tok, "@")
		if at <= 0 || at == len(tok)-1 {
			continue
		}
		candidate := strings.Trim(tok, ".,;:()<>[]\"'")
		if !plausibleEmail(candidate) {
			continue
		}
		rest := append(append([]string{}, fields[:i]...), fields[i+1:]...)
		return strings.Join(rest, " "), candidate
	}
	return s, ""
}

// plausibleEmail checks for exactly one "@" with a dotted domain after it.
func plausibleEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") {
		return false
	}
	domain := s[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
