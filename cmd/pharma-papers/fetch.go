package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pharma-papers/internal/classify"
	"github.com/pdiddy/pharma-papers/internal/export"
	"github.com/pdiddy/pharma-papers/internal/pipeline"
	"github.com/pdiddy/pharma-papers/internal/pubmed"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxResults = 100
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <query>",
	Short: "Search PubMed and report company-affiliated papers",
	Long: `Fetch runs a PubMed query, retrieves the matching records in batches,
classifies every author affiliation, and reports the papers where at least
one author is affiliated with a pharmaceutical or biotech company.

Results stream to the console as they are found, or to a CSV file with -f.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringP("file", "f", "", "output file path (CSV); prints to console when omitted")
	fetchCmd.Flags().BoolP("debug", "d", false, "log per-affiliation classification to stderr")
	fetchCmd.Flags().IntP("max-results", "m", defaultMaxResults, "maximum number of results [1, 1000]")
	fetchCmd.Flags().Int("batch-size", 0, "PMIDs per efetch call (default 200)")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	query := args[0]
	outPath, _ := cmd.Flags().GetString("file")
	debug, _ := cmd.Flags().GetBool("debug")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	// An interrupt abandons in-flight retrievals; rows already written
	// stay valid since each record is complete on its own.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	client := pubmed.NewClient(&http.Client{Timeout: timeout}, pubmedConfig(timeout, batchSize))
	classifier := classify.New(classifierConfig())

	var log io.Writer = io.Discard
	if debug {
		log = os.Stderr
	}

	stream, err := pipeline.Run(ctx, client, classifier, query, maxResults, pipeline.Options{
		BatchSize: batchSize,
		Log:       log,
		Debug:     debug,
	})
	if err != nil {
		return err
	}

	if outPath != "" {
		err = writeCSV(outPath, stream)
	} else {
		err = writeConsole(os.Stdout, stream)
	}
	if err != nil {
		return err
	}
	if stream.Err() != nil {
		return stream.Err()
	}

	stats := stream.Stats()
	if stats.Skipped > 0 {
		fmt.Fprintf(os.Stderr, "skipped %d record(s)\n", stats.Skipped)
	}
	if stats.Matched == 0 {
		return fmt.Errorf("no papers found matching the criteria")
	}
	if outPath != "" {
		fmt.Fprintf(os.Stderr, "Results saved to %s (%d paper(s))\n", outPath, stats.Matched)
	}
	return nil
}

// writeConsole renders one block per paper as it is produced.
func writeConsole(w io.Writer, stream *pipeline.Stream) error {
	for {
		p, ok := stream.Next()
		if !ok {
			return nil
		}
		export.WriteBlock(w, p)
	}
}

// writeCSV streams papers into a CSV file row by row.
func writeCSV(path string, stream *pipeline.Stream) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	cw, err := export.NewCSVWriter(f)
	if err != nil {
		return err
	}
	for {
		p, ok := stream.Next()
		if !ok {
			break
		}
		if err := cw.Write(p); err != nil {
			return err
		}
	}
	if err := cw.Flush(); err != nil {
		return err
	}
	return f.Close()
}
