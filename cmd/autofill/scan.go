package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/autofill-core/internal/dom"
	"github.com/jonathan/autofill-core/internal/observability"
	"github.com/jonathan/autofill-core/internal/platform"
	"github.com/jonathan/autofill-core/internal/question"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var scanCmd = &cobra.Command{
	Use:   "scan URL...",
	Short: "Extract and classify the questions on application pages",
	Long:  "Scan loads each page (concurrently), picks the adapter for its platform, extracts the form questions and classifies each one by answering strategy.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScan,
}

var (
	scanBrowser     bool
	scanStatic      bool
	scanJSON        bool
	scanConcurrency int
)

func init() {
	scanCmd.Flags().BoolVar(&scanBrowser, "browser", false, "Always render pages in headless Chrome")
	scanCmd.Flags().BoolVar(&scanStatic, "static", false, "Never fall back to headless Chrome")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Print results as JSON")
	scanCmd.Flags().IntVar(&scanConcurrency, "concurrency", 4, "Maximum pages loaded at once")
	rootCmd.AddCommand(scanCmd)
}

// scannedQuestion is the printable form of a classified question.
type scannedQuestion struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
	Category string   `json:"category"`
}

type pageScan struct {
	URL       string            `json:"url"`
	Platform  string            `json:"platform"`
	Adapter   string            `json:"adapter"`
	Step      platform.Step     `json:"step"`
	Questions []scannedQuestion `json:"questions"`
	Error     string            `json:"error,omitempty"`

	questions []*question.Question
}

func runScan(cmd *cobra.Command, args []string) error {
	if scanBrowser && scanStatic {
		return fmt.Errorf("--browser and --static are mutually exclusive")
	}

	results := make([]pageScan, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	if scanConcurrency > 0 {
		g.SetLimit(scanConcurrency)
	}
	for i, u := range args {
		g.Go(func() error {
			// Per-page failures are reported, not fatal to the batch.
			results[i] = scanPage(ctx, u)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if scanJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	printer := observability.NewPrinter(cmd.OutOrStdout())
	for _, r := range results {
		if r.Error != "" {
			printer.PrintPageError(r.URL, r.Error)
			continue
		}
		printer.PrintPage(r.URL, r.Adapter, r.Step, r.questions)
	}
	return nil
}

func scanPage(ctx context.Context, u string) pageScan {
	result := pageScan{URL: u}
	doc, err := loadPage(ctx, u, scanBrowser, scanStatic)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	defer doc.Release()

	registry := platform.NewDefaultRegistry(doc, logger)
	adapter, err := registry.GetAdapter()
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Platform = string(registry.DetectPlatform())
	result.Adapter = adapter.PlatformName()
	result.Step = adapter.DetectStep(doc)

	questions, err := adapter.ExtractQuestions(doc)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.questions = questions
	for _, q := range questions {
		result.Questions = append(result.Questions, scannedQuestion{
			ID:       q.ID(),
			Text:     q.RawText(),
			Type:     string(q.InputType()),
			Required: q.Required(),
			Options:  q.Options(),
			Category: string(question.Classify(q)),
		})
	}
	logger.Info("Scanned page",
		zap.String("url", u),
		zap.String("adapter", result.Adapter),
		zap.Int("questions", len(result.Questions)))
	return result
}

func loadPage(ctx context.Context, u string, forceBrowser, staticOnly bool) (*dom.Document, error) {
	if staticOnly {
		opts := dom.DefaultFetchOptions()
		opts.Timeout = cfg.FetchTimeout()
		return dom.Fetch(ctx, u, opts)
	}
	return dom.Load(ctx, u, forceBrowser || cfg.UseBrowser, logger)
}
