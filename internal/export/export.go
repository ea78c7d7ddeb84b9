// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders screened papers for the console or as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// Header is the fixed CSV column set, in output order.
var Header = []string{
	"PubmedID",
	"Title",
	"Publication Date",
	"Non-academic Author(s)",
	"Company Affiliation(s)",
	"Corresponding Author Email",
}

const dateLayout = "2006-01-02"

// listSeparator joins list-valued fields inside one quoted CSV cell and
// one console line.
const listSeparator = ", "

// formatDate renders the publication date, or empty for a dateless record.
func formatDate(p types.Paper) string {
	if p.PublicationDate.IsZero() {
		return ""
	}
	return p.PublicationDate.Format(dateLayout)
}

// WriteBlock writes one human-readable block per paper to w.
func WriteBlock(w io.Writer, p types.Paper) {
	email := p.CorrespondingEmail
	if email == "" {
		email = "N/A"
	}
	fmt.Fprintln(w, "Paper Details:")
	fmt.Fprintf(w, "PubMed ID: %s\n", p.PubmedID)
	fmt.Fprintf(w, "Title: %s\n", p.Title)
	fmt.Fprintf(w, "Publication Date: %s\n", formatDate(p))
	fmt.Fprintf(w, "Non-academic Authors: %s\n", strings.Join(p.NonAcademicAuthors, listSeparator))
	fmt.Fprintf(w, "Company Affiliations: %s\n", strings.Join(p.CompanyAffiliations, listSeparator))
	fmt.Fprintf(w, "Corresponding Author Email: %s\n", email)
	fmt.Fprintln(w, strings.Repeat("-", 80))
}

// CSVWriter streams papers as CSV rows under the fixed Header. Rows are
// written as papers arrive; nothing is buffered beyond the one record in
// flight, so a cancelled run leaves every already-written row complete.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter writes the header row and returns a writer for the records.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	return &CSVWriter{w: cw}, nil
}

// Write appends one paper as a row.
func (c *CSVWriter) Write(p types.Paper) error {
	row := []string{
		p.PubmedID,
		p.Title,
		formatDate(p),
		strings.Join(p.NonAcademicAuthors, listSeparator),
		strings.Join(p.CompanyAffiliations, listSeparator),
		p.CorrespondingEmail,
	}
	if err := c.w.Write(row); err != nil {
		return fmt.Errorf("writing CSV row for %s: %w", p.PubmedID, err)
	}
	return nil
}

// Flush drains buffered rows to the underlying writer.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}
