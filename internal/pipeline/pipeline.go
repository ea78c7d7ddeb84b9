// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates a screening run: search PubMed for PMIDs,
// fetch records in batches, classify affiliations, and stream out papers
// with company-affiliated authors.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/pharma-papers/internal/classify"
	"github.com/pdiddy/pharma-papers/internal/pubmed"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

// MaxResultsLimit bounds the max-results parameter; PubMed queries beyond
// this are rejected up front.
const MaxResultsLimit = 1000

// ErrInvalidParameter means the run was misconfigured (empty query,
// max-results out of range). No network call has been made when it is
// returned.
var ErrInvalidParameter = errors.New("invalid parameter")

// Fetcher is the upstream collaborator the pipeline drives. *pubmed.Client
// satisfies it; tests substitute a mock.
type Fetcher interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
	FetchBatch(ctx context.Context, pmids []string) ([]pubmed.Record, error)
}

// Options tune a run. The zero value is usable.
type Options struct {
	// BatchSize caps PMIDs per efetch call (default and maximum
	// pubmed.MaxBatchSize).
	BatchSize int

	// Log receives progress and debug lines (default discard).
	Log io.Writer

	// Debug enables per-affiliation classification logging.
	Debug bool
}

// Stats summarizes a completed (or abandoned) run.
type Stats struct {
	// Searched is how many PMIDs the query matched, after truncation to
	// max-results.
	Searched int

	// Screened is how many full records were classified.
	Screened int

	// Matched is how many papers were emitted.
	Matched int

	// Skipped counts PMIDs that produced no classifiable record:
	// unresolved identifiers and records too mangled to parse. Skips are
	// never fatal to the run.
	Skipped int
}

// Run validates parameters, submits the search, and returns a Stream of
// qualifying papers. Per-record and per-batch shortfalls are absorbed into
// Stats; only parameter errors and exhausted-retry upstream failures
// surface as errors, from Run or from Stream.Err.
func Run(ctx context.Context, f Fetcher, c *classify.Classifier, query string, maxResults int, opts Options) (*Stream, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query must not be empty", ErrInvalidParameter)
	}
	if maxResults < 1 || maxResults > MaxResultsLimit {
		return nil, fmt.Errorf("%w: max results %d outside [1, %d]", ErrInvalidParameter, maxResults, MaxResultsLimit)
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 || batchSize > pubmed.MaxBatchSize {
		batchSize = pubmed.MaxBatchSize
	}
	log := opts.Log
	if log == nil {
		log = io.Discard
	}

	fmt.Fprintf(log, "searching PubMed: %s\n", query)
	pmids, err := f.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	if len(pmids) > maxResults {
		pmids = pmids[:maxResults]
	}
	fmt.Fprintf(log, "found %d record(s)\n", len(pmids))

	return &Stream{
		ctx:        ctx,
		fetcher:    f,
		classifier: c,
		pending:    pmids,
		batchSize:  batchSize,
		log:        log,
		debug:      opts.Debug,
		stats:      Stats{Searched: len(pmids)},
	}, nil
}

// Stream produces qualifying papers on demand, in the order of the
// original PMID list. It is finite and single-traversal: once Next returns
// false the stream is exhausted (check Err) and cannot be restarted.
type Stream struct {
	ctx        context.Context
	fetcher    Fetcher
	classifier *classify.Classifier
	pending    []string
	batchSize  int
	buffered   []types.Paper
	log        io.Writer
	debug      bool
	stats      Stats
	err        error
}

// Next returns the next qualifying paper. ok is false when the stream is
// exhausted or a fatal error occurred; the caller distinguishes the two
// via Err.
func (s *Stream) Next() (p types.Paper, ok bool) {
	for {
		if s.err != nil {
			return types.Paper{}, false
		}
		if len(s.buffered) > 0 {
			p = s.buffered[0]
			s.buffered = s.buffered[1:]
			s.stats.Matched++
			return p, true
		}
		if len(s.pending) == 0 {
			return types.Paper{}, false
		}
		s.fetchNextBatch()
	}
}

// Err reports the fatal error that stopped the stream, if any. Skipped
// records are not errors; see Stats.
func (s *Stream) Err() error {
	return s.err
}

// Stats returns the running counters. Final once Next has returned false.
func (s *Stream) Stats() Stats {
	return s.stats
}

// fetchNextBatch pulls one batch, screens it, and buffers the survivors
// in request order.
func (s *Stream) fetchNextBatch() {
	n := min(s.batchSize, len(s.pending))
	batch := s.pending[:n]
	s.pending = s.pending[n:]

	fmt.Fprintf(s.log, "fetching batch of %d record(s)\n", n)
	records, err := s.fetcher.FetchBatch(s.ctx, batch)
	if err != nil {
		s.err = err
		return
	}

	// Unresolved PMIDs and unparseable records are missing from the
	// response. They are skipped, not fatal.
	if missing := n - len(records); missing > 0 {
		s.stats.Skipped += missing
		fmt.Fprintf(s.log, "skipped %d unresolved record(s)\n", missing)
	}

	for _, rec := range records {
		s.stats.Screened++
		if s.debug {
			s.logJudgments(rec)
		}
		agg := s.classifier.AggregateAuthors(rec.Authors)
		paper, ok := classify.Assemble(classify.Metadata{
			PubmedID: rec.PMID,
			Title:    rec.Title,
			Date:     rec.Date,
		}, agg)
		if !ok {
			continue
		}
		s.buffered = append(s.buffered, paper)
	}
}

// logJudgments writes one debug line per affiliation.
func (s *Stream) logJudgments(rec pubmed.Record) {
	for _, author := range rec.Authors {
		for _, aff := range author.Affiliations {
			label := "other"
			if j := s.classifier.Classify(aff); j.IsCompany {
				label = "company"
			} else if s.classifier.IsAcademic(aff) {
				label = "academic"
			}
			fmt.Fprintf(s.log, "  [%s] %s: %s\n", label, author.Name, aff)
		}
	}
}
