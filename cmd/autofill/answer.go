package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jonathan/autofill-core/internal/answer"
	"github.com/jonathan/autofill-core/internal/llm"
	"github.com/jonathan/autofill-core/internal/observability"
	"github.com/jonathan/autofill-core/internal/platform"
	"github.com/jonathan/autofill-core/internal/schemas"
	rootschemas "github.com/jonathan/autofill-core/schemas"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var answerCmd = &cobra.Command{
	Use:   "answer URL",
	Short: "Answer the questions on an application page",
	Long: `Answer extracts the questions on an application page and answers them:
contact fields from the profile, yes/no questions from the profile's
policy answers, EEO questions with a decline option, and open-ended
questions from the answer cache or, with GEMINI_API_KEY set, the model.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnswer,
}

var (
	answerCompany         string
	answerTitle           string
	answerProfile         string
	answerDescriptionFile string
	answerOut             string
	answerStatic          bool
)

func init() {
	answerCmd.Flags().StringVar(&answerCompany, "company", "", "Company name (required)")
	answerCmd.Flags().StringVar(&answerTitle, "title", "", "Job title (required)")
	answerCmd.Flags().StringVarP(&answerProfile, "profile", "p", "", "Applicant profile JSON (defaults to config profile)")
	answerCmd.Flags().StringVar(&answerDescriptionFile, "description-file", "", "File with the job description")
	answerCmd.Flags().StringVarP(&answerOut, "out", "o", "", "Write the page with answers filled in to this file")
	answerCmd.Flags().BoolVar(&answerStatic, "static", false, "Never fall back to headless Chrome")
	_ = answerCmd.MarkFlagRequired("company")
	_ = answerCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(answerCmd)
}

func runAnswer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	profilePath := answerProfile
	if profilePath == "" {
		profilePath = cfg.Profile
	}
	if profilePath == "" {
		return fmt.Errorf("a profile is required (--profile or \"profile\" in config)")
	}
	profileJSON, err := os.ReadFile(profilePath)
	if err != nil {
		return fmt.Errorf("failed to read profile: %w", err)
	}
	if err := schemas.Validate(rootschemas.Profile, profileJSON); err != nil {
		return err
	}
	profile, err := answer.LoadProfile(profilePath)
	if err != nil {
		return err
	}

	job := answer.JobContext{Company: answerCompany, Title: answerTitle}
	if answerDescriptionFile != "" {
		desc, err := os.ReadFile(answerDescriptionFile)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		job.Description = string(desc)
	}

	doc, err := loadPage(ctx, args[0], false, answerStatic)
	if err != nil {
		return err
	}
	defer doc.Release()

	adapter, err := platform.NewDefaultRegistry(doc, logger).GetAdapter()
	if err != nil {
		return err
	}
	questions, err := adapter.ExtractQuestions(doc)
	if err != nil {
		return err
	}

	store, c, err := openCache(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	var generator answer.Generator
	if cfg.APIKey != "" {
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer client.Close()
		generator = llm.NewAnswerGenerator(client, logger)
	} else {
		logger.Info("GEMINI_API_KEY not set; open-ended questions are answered from cache only")
	}

	results, err := answer.NewService(profile, c, generator, logger).Answer(ctx, questions, job)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tSOURCE\tQUESTION\tANSWER")
	for _, r := range results {
		ans := r.Answer
		if r.Err != nil {
			ans = "error: " + r.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Category, r.Source, r.Question.RawText(), llm.TrimToLength(ans, 80))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintAnswers(results)
	}

	if answerOut == "" {
		return nil
	}
	for _, r := range results {
		if r.Answer == "" {
			continue
		}
		if err := adapter.FillField(doc, r.Question, r.Answer); err != nil {
			logger.Warn("Could not fill field", zap.String("question", r.Question.RawText()), zap.Error(err))
		}
	}
	html, err := doc.HTML()
	if err != nil {
		return fmt.Errorf("failed to render filled page: %w", err)
	}
	if err := os.WriteFile(answerOut, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", answerOut, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", answerOut)
	return nil
}
