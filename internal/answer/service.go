package answer

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonathan/autofill-core/internal/cache"
	"github.com/jonathan/autofill-core/internal/llm"
	"github.com/jonathan/autofill-core/internal/question"
	"go.uber.org/zap"
)

// Source records where an answer came from.
type Source string

const (
	SourceProfile Source = "profile"
	SourcePolicy  Source = "policy"
	SourceCache   Source = "cache"
	SourceAI      Source = "ai"
	// SourceNone means the question is left for the applicant.
	SourceNone Source = "none"
)

// JobContext identifies the posting answers are written for.
type JobContext struct {
	Company     string
	Title       string
	Description string
}

// Result is the outcome for one question.
type Result struct {
	Question *question.Question
	Category question.Category
	Answer   string
	Source   Source
	// Err is set when an answer could not be produced; the rest of the
	// batch is unaffected.
	Err error
}

// Generator writes answers for open-ended questions, index-aligned with
// req.Questions. *llm.AnswerGenerator implements it.
type Generator interface {
	Generate(ctx context.Context, req llm.AnswerRequest) ([]string, error)
}

// Service answers canonical questions.
type Service struct {
	profile   *Profile
	cache     *cache.Cache
	generator Generator
	logger    *zap.Logger
}

// NewService creates a service. cache and generator may be nil, in which
// case open-ended questions go uncached or unanswered.
func NewService(profile *Profile, c *cache.Cache, generator Generator, logger *zap.Logger) *Service {
	if profile == nil {
		profile = &Profile{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{profile: profile, cache: c, generator: generator, logger: logger.Named("answer")}
}

// Answer classifies each question and fills in what can be answered. Results
// are index-aligned with questions. Cache failures never fail the call.
func (s *Service) Answer(ctx context.Context, questions []*question.Question, job JobContext) ([]Result, error) {
	results := make([]Result, len(questions))
	var aiIndexes []int

	for i, q := range questions {
		r := Result{Question: q, Category: question.Classify(q), Source: SourceNone}
		switch r.Category {
		case question.CategorySimple:
			if field, ok := q.SimpleField(); ok {
				if v := s.profile.Field(field); v != "" {
					r.Answer, r.Source = v, SourceProfile
				}
			}
		case question.CategoryYesNo:
			if v, ok := s.yesNo(q); ok {
				r.Answer, r.Source = v, SourcePolicy
			}
		case question.CategoryEEO:
			if v, ok := declineOption(q.Options()); ok {
				r.Answer, r.Source = v, SourcePolicy
			}
		case question.CategoryAI:
			aiIndexes = append(aiIndexes, i)
		}
		results[i] = r
	}

	if len(aiIndexes) > 0 {
		if err := s.answerOpenEnded(ctx, results, aiIndexes, job); err != nil {
			return results, err
		}
	}
	return results, nil
}

func (s *Service) answerOpenEnded(ctx context.Context, results []Result, indexes []int, job JobContext) error {
	texts := make([]string, len(indexes))
	for i, idx := range indexes {
		texts[i] = results[idx].Question.RawText()
	}

	// Every text starts as a miss; the cache narrows that down.
	misses := make([]cache.Pending, len(texts))
	for i, t := range texts {
		misses[i] = cache.Pending{Index: i, Question: t}
	}
	if s.cache != nil {
		batch, err := s.cache.BatchGet(ctx, texts, job.Company, job.Title)
		if err != nil {
			s.logger.Warn("Answer cache unavailable, generating all", zap.Error(err))
		}
		for i, answer := range batch.Cached {
			r := &results[indexes[i]]
			r.Answer, r.Source = answer, SourceCache
		}
		misses = batch.NotCached
	}
	if len(misses) == 0 {
		return nil
	}

	if s.generator == nil {
		s.logger.Debug("No answer generator configured", zap.Int("unanswered", len(misses)))
		return nil
	}

	req := llm.AnswerRequest{
		Company:        job.Company,
		Title:          job.Title,
		JobDescription: job.Description,
		Applicant:      s.profile.Background(),
	}
	for _, m := range misses {
		q := results[indexes[m.Index]].Question
		req.Questions = append(req.Questions, llm.QuestionPrompt{Text: m.Question, MaxLength: q.Metadata().MaxLength})
	}

	answers, err := s.generator.Generate(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Warn("Answer generation failed", zap.Int("questions", len(misses)), zap.Error(err))
		for _, m := range misses {
			results[indexes[m.Index]].Err = err
		}
		return nil
	}

	pairs := make([]cache.Pair, 0, len(misses))
	for i, m := range misses {
		if i >= len(answers) || strings.TrimSpace(answers[i]) == "" {
			continue
		}
		r := &results[indexes[m.Index]]
		r.Answer, r.Source = answers[i], SourceAI
		pairs = append(pairs, cache.Pair{Question: m.Question, Answer: answers[i]})
	}

	if s.cache != nil {
		// A failed write only costs a future regeneration.
		if err := s.cache.BatchSet(ctx, pairs, job.Company, job.Title); err != nil {
			s.logger.Warn("Failed to cache generated answers", zap.Error(err))
		}
	}
	return nil
}

var (
	sponsorshipPattern = regexp.MustCompile(`(?i)\b(sponsor|sponsorship|visa)\b`)
	authorizedPattern  = regexp.MustCompile(`(?i)\b(authori[sz]ed|eligible|legally|right to work)\b`)
	relocatePattern    = regexp.MustCompile(`(?i)\breloca`)
	adultPattern       = regexp.MustCompile(`(?i)\b(18|eighteen)\b.*\b(years|older|age)\b|\blegal age\b`)
	declinePattern     = regexp.MustCompile(`(?i)decline|prefer not|don'?t wish|do not wish|not to (say|disclose|answer|self.identify)|rather not`)
)

// yesNo answers eligibility questions from the profile. Sponsorship is
// checked first because those questions often also say "authorized".
func (s *Service) yesNo(q *question.Question) (string, bool) {
	text := q.RawText()
	var yes bool
	switch {
	case sponsorshipPattern.MatchString(text):
		yes = s.profile.NeedsSponsorship
	case authorizedPattern.MatchString(text):
		yes = s.profile.WorkAuthorized
	case relocatePattern.MatchString(text):
		yes = s.profile.WillingToRelocate
	case adultPattern.MatchString(text):
		yes = true
	default:
		return "", false
	}
	return pickYesNo(q.Options(), yes), true
}

func pickYesNo(options []string, yes bool) string {
	want := "no"
	if yes {
		want = "yes"
	}
	for _, opt := range options {
		lower := strings.ToLower(strings.TrimSpace(opt))
		if lower == want || strings.HasPrefix(lower, want+",") || strings.HasPrefix(lower, want+" ") {
			return opt
		}
	}
	if yes {
		return "Yes"
	}
	return "No"
}

func declineOption(options []string) (string, bool) {
	for _, opt := range options {
		if declinePattern.MatchString(opt) {
			return opt, true
		}
	}
	return "", false
}
