// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Author holds one author parsed from a PubMed record, with the raw
// affiliation strings exactly as the record carries them. Authors exist
// only while their paper is being screened; they are never persisted.
type Author struct {
	// Name is "LastName ForeName" as listed in the record.
	Name string `json:"name" yaml:"name"`

	// Affiliations lists the author's affiliation strings in record order.
	// May be empty.
	Affiliations []string `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`
}

// Paper is a screened paper with at least one company-affiliated author.
// This is the only value that survives past a single record's processing;
// it is handed whole to the console or CSV formatter.
type Paper struct {
	// PubmedID is the PMID assigned by PubMed.
	PubmedID string `json:"pubmed_id" yaml:"pubmed_id"`

	// Title is the article title, verbatim from the record.
	Title string `json:"title" yaml:"title"`

	// PublicationDate is the article's publication date. The zero value
	// means the record carried no parseable date.
	PublicationDate time.Time `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`

	// NonAcademicAuthors lists authors with at least one company
	// affiliation, once each, in original author order.
	NonAcademicAuthors []string `json:"non_academic_authors" yaml:"non_academic_authors"`

	// CompanyAffiliations lists distinct company organization names in
	// first-seen order.
	CompanyAffiliations []string `json:"company_affiliations" yaml:"company_affiliations"`

	// CorrespondingEmail is the first email found while scanning authors
	// in order, or empty if none was found.
	CorrespondingEmail string `json:"corresponding_email,omitempty" yaml:"corresponding_email,omitempty"`
}
