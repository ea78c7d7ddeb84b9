// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"time"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// Metadata carries the bibliographic fields of one PubMed record. A zero
// Date means the record had no parseable publication date; that is valid
// and does not block assembly.
type Metadata struct {
	PubmedID string
	Title    string
	Date     time.Time
}

// Assemble combines record metadata with the aggregate into an output
// paper. It returns ok=false when the paper has no company-affiliated
// author; this is the sole filtering criterion of the whole pipeline, and
// a dropped paper produces no partial record.
func Assemble(meta Metadata, agg Aggregate) (types.Paper, bool) {
	if len(agg.NonAcademicAuthors) == 0 {
		return types.Paper{}, false
	}
	return types.Paper{
		PubmedID:            meta.PubmedID,
		Title:               meta.Title,
		PublicationDate:     meta.Date,
		NonAcademicAuthors:  agg.NonAcademicAuthors,
		CompanyAffiliations: agg.CompanyAffiliations,
		CorrespondingEmail:  agg.CorrespondingEmail,
	}, true
}
