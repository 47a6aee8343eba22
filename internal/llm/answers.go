package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/autofill-core/internal/prompts"
	"go.uber.org/zap"
)

// QuestionPrompt is one open-ended question to answer.
type QuestionPrompt struct {
	Text      string
	MaxLength int
}

// AnswerRequest carries everything the model sees for one application.
type AnswerRequest struct {
	Company        string
	Title          string
	JobDescription string
	// Applicant is a plain-text summary of the applicant's background.
	Applicant string
	Questions []QuestionPrompt
}

// AnswerGenerator writes answers to essay-style application questions.
type AnswerGenerator struct {
	client Client
	logger *zap.Logger
}

// NewAnswerGenerator creates a generator on top of client.
func NewAnswerGenerator(client Client, logger *zap.Logger) *AnswerGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnswerGenerator{client: client, logger: logger.Named("llm")}
}

type answersResponse struct {
	Answers []string `json:"answers"`
}

// Generate answers every question in req with a single model call. The
// result is index-aligned with req.Questions.
func (g *AnswerGenerator) Generate(ctx context.Context, req AnswerRequest) ([]string, error) {
	if len(req.Questions) == 0 {
		return nil, nil
	}

	tier := TierLite
	for _, q := range req.Questions {
		if t := TierForLength(q.MaxLength); tierRank(t) > tierRank(tier) {
			tier = t
		}
	}

	g.logger.Debug("Generating answers",
		zap.String("company", req.Company),
		zap.Int("questions", len(req.Questions)),
		zap.String("tier", string(tier)))

	text, err := g.client.GenerateJSON(ctx, BuildAnswerPrompt(req), tier)
	if err != nil {
		return nil, fmt.Errorf("failed to generate answers: %w", err)
	}

	var resp answersResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse answers: %w", err)
	}
	if len(resp.Answers) != len(req.Questions) {
		return nil, fmt.Errorf("expected %d answers, got %d", len(req.Questions), len(resp.Answers))
	}

	out := make([]string, len(resp.Answers))
	for i, a := range resp.Answers {
		out[i] = TrimToLength(a, req.Questions[i].MaxLength)
	}
	return out, nil
}

func tierRank(t ModelTier) int {
	switch t {
	case TierAdvanced:
		return 2
	case TierStandard:
		return 1
	default:
		return 0
	}
}

// BuildAnswerPrompt renders the prompt for req.
func BuildAnswerPrompt(req AnswerRequest) string {
	var sb strings.Builder

	sb.WriteString(prompts.Format(prompts.MustGet(prompts.Answers, "answer-intro"), map[string]string{
		"Company": orUnknown(req.Company),
		"Role":    orUnknown(req.Title),
	}))
	if desc := strings.TrimSpace(req.JobDescription); desc != "" {
		sb.WriteString(prompts.Format(prompts.MustGet(prompts.Answers, "answer-job-description"), map[string]string{"Description": desc}))
	}
	if applicant := strings.TrimSpace(req.Applicant); applicant != "" {
		sb.WriteString(prompts.Format(prompts.MustGet(prompts.Answers, "answer-applicant"), map[string]string{"Applicant": applicant}))
	}

	sb.WriteString("\nQuestions:\n")
	for i, q := range req.Questions {
		sb.WriteString(fmt.Sprintf("%d. %s", i+1, strings.TrimSpace(q.Text)))
		if q.MaxLength > 0 {
			sb.WriteString(fmt.Sprintf(" (at most %d characters)", q.MaxLength))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(prompts.MustGet(prompts.Answers, "answer-format"))
	return sb.String()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(not specified)"
	}
	return strings.TrimSpace(s)
}
