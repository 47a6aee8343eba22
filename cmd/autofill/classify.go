package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jonathan/autofill-core/internal/platform"
	"github.com/jonathan/autofill-core/internal/question"
	"github.com/jonathan/autofill-core/internal/schemas"
	"github.com/jonathan/autofill-core/internal/selectors"
	rootschemas "github.com/jonathan/autofill-core/schemas"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Canonicalize and classify questions from a JSON file",
	Long:  "Classify reads raw questions (raw_questions.schema.json), builds canonical questions and reports the answering strategy for each.",
	RunE:  runClassify,
}

var classifyFile string

func init() {
	classifyCmd.Flags().StringVarP(&classifyFile, "file", "f", "", "Path to raw questions JSON (required)")
	_ = classifyCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(classifyCmd)
}

type rawQuestionsFile struct {
	URL       string `json:"url"`
	Questions []struct {
		ID        string   `json:"id"`
		Text      string   `json:"text"`
		Type      string   `json:"type"`
		Options   []string `json:"options"`
		Required  bool     `json:"required"`
		Platform  string   `json:"platform"`
		MaxLength int      `json:"maxLength"`
	} `json:"questions"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(classifyFile)
	if err != nil {
		return fmt.Errorf("failed to read questions file: %w", err)
	}
	if err := schemas.Validate(rootschemas.RawQuestions, content); err != nil {
		return err
	}

	var in rawQuestionsFile
	if err := json.Unmarshal(content, &in); err != nil {
		return fmt.Errorf("failed to parse questions file: %w", err)
	}

	detected := platform.Detect(in.URL)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tCATEGORY\tQUESTION")
	for i, rq := range in.Questions {
		p := selectors.PlatformID(rq.Platform)
		if p == "" {
			p = detected
		}
		q, err := question.New(question.Raw{
			ID:       rq.ID,
			Text:     rq.Text,
			Type:     rq.Type,
			Options:  rq.Options,
			Required: rq.Required,
			Platform: p,
			Metadata: question.Metadata{MaxLength: rq.MaxLength},
		})
		if err != nil {
			logger.Warn("Skipping invalid question", zap.Int("index", i), zap.Error(err))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", q.ID(), q.InputType(), question.Classify(q), q.RawText())
	}
	return w.Flush()
}
