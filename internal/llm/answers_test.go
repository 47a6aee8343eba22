package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	response string
	err      error
	prompts  []string
	tiers    []ModelTier
}

func (s *stubClient) GenerateContent(_ context.Context, prompt string, tier ModelTier) (string, error) {
	return s.GenerateJSON(context.Background(), prompt, tier)
}

func (s *stubClient) GenerateJSON(_ context.Context, prompt string, tier ModelTier) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.tiers = append(s.tiers, tier)
	return s.response, s.err
}

func (s *stubClient) Close() error { return nil }

func TestAnswerGenerator_Generate(t *testing.T) {
	client := &stubClient{response: `{"answers": ["I like distributed systems.", "At Initech I rebuilt billing."]}`}
	g := NewAnswerGenerator(client, nil)

	answers, err := g.Generate(context.Background(), AnswerRequest{
		Company:   "Acme",
		Title:     "Backend Engineer",
		Applicant: "Eight years of Go.",
		Questions: []QuestionPrompt{
			{Text: "Why do you want to work here?", MaxLength: 200},
			{Text: "Describe a project you led."},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"I like distributed systems.", "At Initech I rebuilt billing."}, answers)

	require.Len(t, client.prompts, 1)
	assert.Equal(t, TierStandard, client.tiers[0])
	assert.Contains(t, client.prompts[0], "Company: Acme")
	assert.Contains(t, client.prompts[0], "1. Why do you want to work here? (at most 200 characters)")
	assert.Contains(t, client.prompts[0], "2. Describe a project you led.")
	assert.Contains(t, client.prompts[0], "Eight years of Go.")
}

func TestAnswerGenerator_TrimsToMaxLength(t *testing.T) {
	client := &stubClient{response: `{"answers": ["Short first. Then a much longer tail that will not fit."]}`}
	g := NewAnswerGenerator(client, nil)

	answers, err := g.Generate(context.Background(), AnswerRequest{
		Questions: []QuestionPrompt{{Text: "Why us?", MaxLength: 20}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Short first."}, answers)
	assert.Equal(t, TierLite, client.tiers[0])
}

func TestAnswerGenerator_Errors(t *testing.T) {
	req := AnswerRequest{Questions: []QuestionPrompt{{Text: "Why?"}, {Text: "How?"}}}

	tests := []struct {
		name   string
		client *stubClient
	}{
		{"client error", &stubClient{err: errors.New("quota")}},
		{"bad json", &stubClient{response: "not json"}},
		{"count mismatch", &stubClient{response: `{"answers": ["only one"]}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAnswerGenerator(tt.client, nil).Generate(context.Background(), req)
			assert.Error(t, err)
		})
	}
}

func TestAnswerGenerator_NoQuestions(t *testing.T) {
	client := &stubClient{}
	answers, err := NewAnswerGenerator(client, nil).Generate(context.Background(), AnswerRequest{})
	require.NoError(t, err)
	assert.Nil(t, answers)
	assert.Empty(t, client.prompts)
}

func TestBuildAnswerPrompt_UnknownContext(t *testing.T) {
	prompt := BuildAnswerPrompt(AnswerRequest{Questions: []QuestionPrompt{{Text: "Why?"}}})
	assert.Contains(t, prompt, "Company: (not specified)")
	assert.NotContains(t, prompt, "Job description")
	assert.Contains(t, prompt, `{"answers": ["..."]}`)
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), nil, "")
	assert.Error(t, err)

	_, err = NewClient(context.Background(), &Config{Provider: "openai"}, "key")
	assert.Error(t, err)
}
