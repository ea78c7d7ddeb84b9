// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

func testClassifier() *Classifier {
	return New(types.DefaultClassifierConfig())
}

// --- Classify ---

func TestClassifyCompanySignals(t *testing.T) {
	c := testClassifier()
	tests := []struct {
		name        string
		affiliation string
		wantOrg     string
	}{
		{"inc suffix", "Acme Biotech, Inc., Cambridge, MA", "Acme Biotech, Inc."},
		{"pharmaceuticals", "Example Pharmaceuticals, Boston, MA", "Example Pharmaceuticals"},
		{"gmbh", "Boehringer Ingelheim Pharma GmbH, Ingelheim, Germany", "Boehringer Ingelheim Pharma GmbH"},
		{"llc", "Vertex Research LLC, San Diego, CA", "Vertex Research LLC"},
		{"therapeutics", "Moonshot Therapeutics, South San Francisco, CA", "Moonshot Therapeutics"},
		{"ltd", "Hutchison MediPharma Ltd, Shanghai, China", "Hutchison MediPharma Ltd"},
		{"laboratories", "Abbott Laboratories, Abbott Park, IL", "Abbott Laboratories"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := c.Classify(tt.affiliation)
			if !j.IsCompany {
				t.Fatalf("Classify(%q).IsCompany = false, want true", tt.affiliation)
			}
			if j.Organization != tt.wantOrg {
				t.Errorf("Organization = %q, want %q", j.Organization, tt.wantOrg)
			}
		})
	}
}

func TestClassifyNonCompany(t *testing.T) {
	c := testClassifier()
	tests := []struct {
		name        string
		affiliation string
	}{
		{"university", "Department of Biology, State University"},
		{"hospital", "Massachusetts General Hospital, Boston, MA"},
		{"school of medicine", "Stanford School of Medicine, Stanford, CA"},
		{"national laboratory", "Oak Ridge National Laboratory, Oak Ridge, TN"},
		{"national laboratories plural", "Sandia National Laboratories, Albuquerque, NM"},
		{"no markers at all", "Independent researcher, Lisbon, Portugal"},
		{"empty", ""},
		{"whitespace only", "   \t "},
		{"inc inside a word", "Princeton Neuroscience Program, Princeton, NJ"},
		{"co. inside a word", "Universidad Nacional, Mexico City, Mexico."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := c.Classify(tt.affiliation)
			if j.IsCompany {
				t.Fatalf("Classify(%q).IsCompany = true, want false", tt.affiliation)
			}
			if j.Organization != "" {
				t.Errorf("Organization = %q, want empty for non-company", j.Organization)
			}
		})
	}
}

// Company beats academic when both markers appear in one string.
func TestClassifyCompanyPrecedence(t *testing.T) {
	c := testClassifier()
	aff := "Dept. of Oncology, Example Pharmaceuticals Inc., Boston, MA"

	j := c.Classify(aff)
	if !j.IsCompany {
		t.Fatalf("Classify(%q).IsCompany = false, want true", aff)
	}
	if !strings.Contains(j.Organization, "Example Pharmaceuticals Inc") {
		t.Errorf("Organization = %q, want the company segment, not the department", j.Organization)
	}
}

func TestClassifyJointAppointment(t *testing.T) {
	c := testClassifier()
	aff := "Genentech Inc. and University of California, San Francisco, CA"

	if j := c.Classify(aff); !j.IsCompany {
		t.Errorf("joint appointment should classify as company, got %+v", j)
	}
}

func TestClassifyEmailExtraction(t *testing.T) {
	c := testClassifier()
	tests := []struct {
		name        string
		affiliation string
		wantEmail   string
		wantCompany bool
	}{
		{
			name:        "electronic address suffix",
			affiliation: "Acme Biotech, Inc., Cambridge, MA. Electronic address: jdoe@acmebio.com.",
			wantEmail:   "jdoe@acmebio.com",
			wantCompany: true,
		},
		{
			name:        "academic email",
			affiliation: "Department of Biology, State University. smith@state.edu",
			wantEmail:   "smith@state.edu",
			wantCompany: false,
		},
		{
			name:        "no email",
			affiliation: "Acme Biotech, Inc., Cambridge, MA",
			wantEmail:   "",
			wantCompany: true,
		},
		{
			name:        "bare at sign is not an email",
			affiliation: "Lab @ Building 7, State University",
			wantEmail:   "",
			wantCompany: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := c.Classify(tt.affiliation)
			if j.Email != tt.wantEmail {
				t.Errorf("Email = %q, want %q", j.Email, tt.wantEmail)
			}
			if j.IsCompany != tt.wantCompany {
				t.Errorf("IsCompany = %v, want %v", j.IsCompany, tt.wantCompany)
			}
		})
	}
}

// The ".edu" fragment in an email must not make the email's own string
// academic after the email is stripped, and stripping must not change the
// company verdict.
func TestClassifyStripsEmailBeforeMatching(t *testing.T) {
	c := testClassifier()
	aff := "Acme Therapeutics. info@acme.edu"

	j := c.Classify(aff)
	if !j.IsCompany {
		t.Errorf("IsCompany = false, want true after email stripping")
	}
	if j.Email != "info@acme.edu" {
		t.Errorf("Email = %q, want %q", j.Email, "info@acme.edu")
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := testClassifier()
	aff := "Dept. of Oncology, Example Pharmaceuticals Inc., Boston, MA. jdoe@example.com"

	first := c.Classify(aff)
	for i := 0; i < 5; i++ {
		if got := c.Classify(aff); got != first {
			t.Fatalf("Classify not deterministic: %+v != %+v", got, first)
		}
	}
}

func TestIsAcademic(t *testing.T) {
	c := testClassifier()
	tests := []struct {
		affiliation string
		want        bool
	}{
		{"Department of Biology, State University", true},
		{"Acme Biotech, Inc.", false},
		{"Dept. of Oncology, Example Pharmaceuticals Inc.", true},
		{"Oak Ridge National Laboratory", true},
	}
	for _, tt := range tests {
		if got := c.IsAcademic(tt.affiliation); got != tt.want {
			t.Errorf("IsAcademic(%q) = %v, want %v", tt.affiliation, got, tt.want)
		}
	}
}

func TestCustomMarkers(t *testing.T) {
	c := New(types.ClassifierConfig{
		CompanyMarkers: []string{"skunkworks"},
	})

	if j := c.Classify("Apex Skunkworks, Reno, NV"); !j.IsCompany {
		t.Errorf("custom marker did not match: %+v", j)
	}
	if j := c.Classify("Acme Biotech, Inc."); j.IsCompany {
		t.Errorf("default markers should not apply to a custom config: %+v", j)
	}
}

// --- AggregateAuthors ---

func TestAggregateAuthors(t *testing.T) {
	c := testClassifier()
	authors := []types.Author{
		{Name: "Smith Jane", Affiliations: []string{"Department of Biology, State University"}},
		{Name: "Doe John", Affiliations: []string{"Acme Biotech, Inc., Cambridge, MA. Electronic address: jdoe@acmebio.com."}},
		{Name: "Roe Richard", Affiliations: []string{"Acme Biotech, Inc., Cambridge, MA"}},
		{Name: "Moe Mary", Affiliations: nil},
	}

	agg := c.AggregateAuthors(authors)

	wantAuthors := []string{"Doe John", "Roe Richard"}
	if !reflect.DeepEqual(agg.NonAcademicAuthors, wantAuthors) {
		t.Errorf("NonAcademicAuthors = %v, want %v", agg.NonAcademicAuthors, wantAuthors)
	}
	wantAffs := []string{"Acme Biotech, Inc."}
	if !reflect.DeepEqual(agg.CompanyAffiliations, wantAffs) {
		t.Errorf("CompanyAffiliations = %v, want %v", agg.CompanyAffiliations, wantAffs)
	}
	if agg.CorrespondingEmail != "jdoe@acmebio.com" {
		t.Errorf("CorrespondingEmail = %q, want %q", agg.CorrespondingEmail, "jdoe@acmebio.com")
	}
}

func TestAggregateAuthorRecordedOnce(t *testing.T) {
	c := testClassifier()
	authors := []types.Author{
		{Name: "Doe John", Affiliations: []string{
			"Acme Biotech, Inc., Cambridge, MA",
			"Moonshot Therapeutics, South San Francisco, CA",
		}},
	}

	agg := c.AggregateAuthors(authors)

	if len(agg.NonAcademicAuthors) != 1 {
		t.Errorf("NonAcademicAuthors = %v, want one entry", agg.NonAcademicAuthors)
	}
	wantAffs := []string{"Acme Biotech, Inc.", "Moonshot Therapeutics"}
	if !reflect.DeepEqual(agg.CompanyAffiliations, wantAffs) {
		t.Errorf("CompanyAffiliations = %v, want %v", agg.CompanyAffiliations, wantAffs)
	}
}

func TestAggregateFirstEmailWins(t *testing.T) {
	c := testClassifier()
	authors := []types.Author{
		{Name: "Smith Jane", Affiliations: []string{"State University. smith@state.edu"}},
		{Name: "Doe John", Affiliations: []string{"Acme Biotech, Inc. jdoe@acmebio.com"}},
	}

	agg := c.AggregateAuthors(authors)
	if agg.CorrespondingEmail != "smith@state.edu" {
		t.Errorf("CorrespondingEmail = %q, want first seen in author order", agg.CorrespondingEmail)
	}
}

func TestAggregateEmpty(t *testing.T) {
	c := testClassifier()
	agg := c.AggregateAuthors(nil)
	if len(agg.NonAcademicAuthors) != 0 || len(agg.CompanyAffiliations) != 0 || agg.CorrespondingEmail != "" {
		t.Errorf("aggregate of no authors should be empty, got %+v", agg)
	}
}

// --- Assemble ---

func TestAssembleDropsAllAcademicPapers(t *testing.T) {
	meta := Metadata{PubmedID: "100", Title: "Something scholarly"}

	if _, ok := Assemble(meta, Aggregate{}); ok {
		t.Error("Assemble produced a record for a paper with no company authors")
	}
}

func TestAssembleQualifyingPaper(t *testing.T) {
	meta := Metadata{PubmedID: "100", Title: "Something industrial"}
	agg := Aggregate{
		NonAcademicAuthors:  []string{"Doe John"},
		CompanyAffiliations: []string{"Acme Biotech"},
		CorrespondingEmail:  "jdoe@acmebio.com",
	}

	p, ok := Assemble(meta, agg)
	if !ok {
		t.Fatal("Assemble dropped a qualifying paper")
	}
	if p.PubmedID != "100" || p.Title != "Something industrial" {
		t.Errorf("metadata not carried over: %+v", p)
	}
	if !reflect.DeepEqual(p.NonAcademicAuthors, agg.NonAcademicAuthors) {
		t.Errorf("NonAcademicAuthors = %v, want %v", p.NonAcademicAuthors, agg.NonAcademicAuthors)
	}
	if !p.PublicationDate.IsZero() {
		t.Errorf("PublicationDate = %v, want zero for a dateless record", p.PublicationDate)
	}
}
