// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

// Record is one article as returned by efetch, reduced to the fields the
// screening pipeline consumes.
type Record struct {
	PMID    string
	Title   string
	Date    time.Time
	Authors []types.Author
}

// parseRecords decodes a PubmedArticleSet document. Articles missing a
// PMID are dropped; a missing or unparseable date leaves the zero time,
// which downstream treats as "no date".
func parseRecords(r io.Reader) ([]Record, error) {
	var set pubmedArticleSet
	if err := xml.NewDecoder(r).Decode(&set); err != nil {
		return nil, err
	}

	var records []Record
	for _, a := range set.Articles {
		pmid := strings.TrimSpace(a.Citation.PMID)
		if pmid == "" {
			continue
		}
		rec := Record{
			PMID:  pmid,
			Title: strings.TrimSpace(a.Citation.Article.Title),
			Date:  parsePubDate(a.Citation.Article.Journal.Issue.PubDate),
		}
		for _, au := range a.Citation.Article.AuthorList.Authors {
			author := types.Author{Name: authorName(au)}
			for _, info := range au.AffiliationInfo {
				if aff := strings.TrimSpace(info.Affiliation); aff != "" {
					author.Affiliations = append(author.Affiliations, aff)
				}
			}
			if author.Name == "" && len(author.Affiliations) == 0 {
				continue
			}
			rec.Authors = append(rec.Authors, author)
		}
		records = append(records, rec)
	}
	return records, nil
}

// authorName joins the name parts the way PubMed lists them. Collective
// names (consortia) come through CollectiveName instead.
func authorName(au pubmedAuthor) string {
	var parts []string
	if au.LastName != "" {
		parts = append(parts, au.LastName)
	}
	if au.ForeName != "" {
		parts = append(parts, au.ForeName)
	}
	if len(parts) == 0 && au.CollectiveName != "" {
		return strings.TrimSpace(au.CollectiveName)
	}
	return strings.Join(parts, " ")
}

// monthNumbers maps the month spellings PubDate uses. PubMed emits both
// "1" and "Jan".
var monthNumbers = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// parsePubDate builds a date from PubDate's Year/Month/Day children,
// defaulting missing parts to January 1. Records with no year at all fall
// back to MedlineDate ("2023 Nov-Dec"), of which only the leading year is
// trusted. Anything unparseable yields the zero time.
func parsePubDate(d pubDate) time.Time {
	year := 0
	if y, err := strconv.Atoi(strings.TrimSpace(d.Year)); err == nil {
		year = y
	} else if md := strings.TrimSpace(d.MedlineDate); len(md) >= 4 {
		if y, err := strconv.Atoi(md[:4]); err == nil {
			year = y
		}
	}
	if year == 0 {
		return time.Time{}
	}

	month := time.January
	ms := strings.ToLower(strings.TrimSpace(d.Month))
	if m, ok := monthNumbers[ms]; ok {
		month = m
	} else if n, err := strconv.Atoi(ms); err == nil && n >= 1 && n <= 12 {
		month = time.Month(n)
	}

	day := 1
	if n, err := strconv.Atoi(strings.TrimSpace(d.Day)); err == nil && n >= 1 && n <= 31 {
		day = n
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// efetch XML structures (PubmedArticleSet subset).
type pubmedArticleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID    string            `xml:"PMID"`
	Article pubmedArticleInfo `xml:"Article"`
}

type pubmedArticleInfo struct {
	Title      string           `xml:"ArticleTitle"`
	Journal    pubmedJournal    `xml:"Journal"`
	AuthorList pubmedAuthorList `xml:"AuthorList"`
}

type pubmedJournal struct {
	Issue pubmedJournalIssue `xml:"JournalIssue"`
}

type pubmedJournalIssue struct {
	PubDate pubDate `xml:"PubDate"`
}

type pubDate struct {
	Year        string `xml:"Year"`
	Month       string `xml:"Month"`
	Day         string `xml:"Day"`
	MedlineDate string `xml:"MedlineDate"`
}

type pubmedAuthorList struct {
	Authors []pubmedAuthor `xml:"Author"`
}

type pubmedAuthor struct {
	LastName        string                  `xml:"LastName"`
	ForeName        string                  `xml:"ForeName"`
	CollectiveName  string                  `xml:"CollectiveName"`
	AffiliationInfo []pubmedAffiliationInfo `xml:"AffiliationInfo"`
}

type pubmedAffiliationInfo struct {
	Affiliation string `xml:"Affiliation"`
}
