// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import "github.com/pdiddy/pharma-papers/pkg/types"

// Aggregate is the paper-level rollup of per-affiliation judgments.
type Aggregate struct {
	// NonAcademicAuthors lists authors with at least one company
	// affiliation, once each, in original author order.
	NonAcademicAuthors []string

	// CompanyAffiliations lists distinct organization names in
	// first-seen order. Dedup is by exact string equality; near-duplicate
	// institution names are deliberately not canonicalized.
	CompanyAffiliations []string

	// CorrespondingEmail is the first email seen while scanning authors
	// in order, or empty.
	CorrespondingEmail string
}

// AggregateAuthors classifies every affiliation of every author and rolls
// the judgments up to paper level. An author with no affiliations
// contributes nothing.
func (c *Classifier) AggregateAuthors(authors []types.Author) Aggregate {
	var agg Aggregate
	seen := make(map[string]bool)

	for _, author := range authors {
		isCompany := false
		for _, aff := range author.Affiliations {
			j := c.Classify(aff)
			if agg.CorrespondingEmail == "" && j.Email != "" {
				agg.CorrespondingEmail = j.Email
			}
			if !j.IsCompany {
				continue
			}
			isCompany = true
			if !seen[j.Organization] {
				seen[j.Organization] = true
				agg.CompanyAffiliations = append(agg.CompanyAffiliations, j.Organization)
			}
		}
		if isCompany && author.Name != "" {
			agg.NonAcademicAuthors = append(agg.NonAcademicAuthors, author.Name)
		}
	}
	return agg
}
