// Package cache stores AI-generated answers keyed by question text and
// employer context so the same question is never paid for twice.
package cache

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/jonathan/autofill-core/internal/hashkey"
	"github.com/jonathan/autofill-core/internal/storage"
	"go.uber.org/zap"
)

const (
	// DefaultPrefix namespaces cache entries inside a shared store.
	DefaultPrefix = "ai_cache_"
	// DefaultMaxAge is how long an answer stays usable.
	DefaultMaxAge = 7 * 24 * time.Hour
	// DefaultPreviewLength bounds the question copy kept for inspection.
	DefaultPreviewLength = 100
)

// Config holds cache settings.
type Config struct {
	Prefix        string
	MaxAge        time.Duration
	PreviewLength int
	// Now is the clock; tests replace it.
	Now func() time.Time
}

// DefaultConfig returns the standard cache settings.
func DefaultConfig() *Config {
	return &Config{
		Prefix:        DefaultPrefix,
		MaxAge:        DefaultMaxAge,
		PreviewLength: DefaultPreviewLength,
		Now:           time.Now,
	}
}

// Entry is the persisted form of one cached answer.
type Entry struct {
	Key             string `json:"key"`
	Answer          string `json:"answer"`
	Timestamp       int64  `json:"timestamp"` // unix milliseconds
	QuestionPreview string `json:"questionPreview"`
}

// Pending is a batch question that still needs an answer.
type Pending struct {
	Index    int
	Question string
}

// BatchResult partitions a batch lookup by original index.
type BatchResult struct {
	Cached    map[int]string
	NotCached []Pending
}

// Pair is a question with its generated answer.
type Pair struct {
	Question string
	Answer   string
}

// Stats summarizes what the cache currently holds.
type Stats struct {
	Count        int
	ApproxSizeKB float64
}

// Cache is a TTL answer cache over a storage.Store.
type Cache struct {
	store         storage.Store
	prefix        string
	maxAge        time.Duration
	previewLength int
	now           func() time.Time
	logger        *zap.Logger
}

// New creates a cache. A nil config uses DefaultConfig; zero fields are
// filled from the defaults.
func New(store storage.Store, config *Config, logger *zap.Logger) *Cache {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Cache{
		store:         store,
		prefix:        config.Prefix,
		maxAge:        config.MaxAge,
		previewLength: config.PreviewLength,
		now:           config.Now,
		logger:        logger.Named("cache"),
	}
	if c.prefix == "" {
		c.prefix = DefaultPrefix
	}
	if c.maxAge <= 0 {
		c.maxAge = DefaultMaxAge
	}
	if c.previewLength <= 0 {
		c.previewLength = DefaultPreviewLength
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Prefix returns the key namespace of this cache.
func (c *Cache) Prefix() string { return c.prefix }

// GenerateKey derives the storage key for a (question, company, title)
// triple. Case and surrounding whitespace of the question are ignored.
func (c *Cache) GenerateKey(question, company, title string) string {
	return GenerateKey(c.prefix, question, company, title)
}

// GenerateKey is the key derivation used by Cache, exposed for tooling.
func GenerateKey(prefix, question, company, title string) string {
	material := strings.ToLower(strings.TrimSpace(question)) + "|" +
		strings.ToLower(strings.TrimSpace(company)) + "|" +
		strings.ToLower(strings.TrimSpace(title))
	return hashkey.Prefixed(prefix, material)
}

// Get returns the cached answer for the triple. Expired entries are removed.
// On a storage failure the error is logged and returned with found=false, so
// callers that ignore it simply see a miss.
func (c *Cache) Get(ctx context.Context, question, company, title string) (string, bool, error) {
	key := c.GenerateKey(question, company, title)
	values, err := c.store.Get(ctx, []string{key})
	if err != nil {
		c.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		return "", false, err
	}

	raw, ok := values[key]
	if !ok {
		return "", false, nil
	}
	entry, ok := c.decode(key, raw)
	if !ok {
		return "", false, nil
	}

	if c.expired(entry) {
		if err := c.store.Remove(ctx, []string{key}); err != nil {
			c.logger.Warn("Failed to evict expired entry", zap.String("key", key), zap.Error(err))
			return "", false, err
		}
		c.logger.Debug("Evicted expired entry", zap.String("key", key))
		return "", false, nil
	}

	c.checkCollision(entry, question)
	return entry.Answer, true, nil
}

// Set stores answer for the triple, replacing any previous entry.
func (c *Cache) Set(ctx context.Context, question, company, title, answer string) error {
	return c.write(ctx, []Pair{{Question: question, Answer: answer}}, company, title)
}

// BatchGet looks up many questions in one storage round trip. Expired
// entries are reported as not cached but are left for ClearOld.
func (c *Cache) BatchGet(ctx context.Context, questions []string, company, title string) (BatchResult, error) {
	result := BatchResult{Cached: make(map[int]string)}
	if len(questions) == 0 {
		return result, nil
	}

	keys := make([]string, len(questions))
	for i, q := range questions {
		keys[i] = c.GenerateKey(q, company, title)
	}

	values, err := c.store.Get(ctx, keys)
	if err != nil {
		c.logger.Warn("Batch cache read failed", zap.Int("questions", len(questions)), zap.Error(err))
		for i, q := range questions {
			result.NotCached = append(result.NotCached, Pending{Index: i, Question: q})
		}
		return result, err
	}

	for i, q := range questions {
		if raw, ok := values[keys[i]]; ok {
			if entry, ok := c.decode(keys[i], raw); ok && !c.expired(entry) {
				c.checkCollision(entry, q)
				result.Cached[i] = entry.Answer
				continue
			}
		}
		result.NotCached = append(result.NotCached, Pending{Index: i, Question: q})
	}
	return result, nil
}

// BatchSet stores many answers in one round trip with a shared timestamp.
func (c *Cache) BatchSet(ctx context.Context, pairs []Pair, company, title string) error {
	if len(pairs) == 0 {
		return nil
	}
	return c.write(ctx, pairs, company, title)
}

func (c *Cache) write(ctx context.Context, pairs []Pair, company, title string) error {
	ts := c.now().UnixMilli()
	items := make(map[string][]byte, len(pairs))
	for _, p := range pairs {
		key := c.GenerateKey(p.Question, company, title)
		data, err := json.Marshal(Entry{
			Key:             key,
			Answer:          p.Answer,
			Timestamp:       ts,
			QuestionPreview: c.preview(p.Question),
		})
		if err != nil {
			return err
		}
		items[key] = data
	}

	if err := c.store.Set(ctx, items); err != nil {
		c.logger.Warn("Cache write failed", zap.Int("entries", len(items)), zap.Error(err))
		return err
	}
	return nil
}

// ClearOld removes every entry under the prefix whose age exceeds the max
// age and returns how many were removed. Unreadable entries are removed too.
func (c *Cache) ClearOld(ctx context.Context) (int, error) {
	all, err := c.store.Scan(ctx, c.prefix)
	if err != nil {
		c.logger.Warn("Cache scan failed", zap.Error(err))
		return 0, err
	}

	var stale []string
	for key, raw := range all {
		entry, ok := c.decode(key, raw)
		if !ok || c.expired(entry) {
			stale = append(stale, key)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	if err := c.store.Remove(ctx, stale); err != nil {
		c.logger.Warn("Failed to remove stale entries", zap.Int("entries", len(stale)), zap.Error(err))
		return 0, err
	}
	c.logger.Info("Cleared old cache entries", zap.Int("removed", len(stale)), zap.Int("scanned", len(all)))
	return len(stale), nil
}

// Stats reports the number of entries and their approximate stored size.
func (c *Cache) Stats(ctx context.Context) (Stats, error) {
	all, err := c.store.Scan(ctx, c.prefix)
	if err != nil {
		c.logger.Warn("Cache scan failed", zap.Error(err))
		return Stats{}, err
	}
	size := 0
	for key, raw := range all {
		size += len(key) + len(raw)
	}
	return Stats{
		Count:        len(all),
		ApproxSizeKB: math.Round(float64(size)/1024*100) / 100,
	}, nil
}

func (c *Cache) expired(e Entry) bool {
	age := c.now().Sub(time.UnixMilli(e.Timestamp))
	return age > c.maxAge
}

func (c *Cache) decode(key string, raw []byte) (Entry, bool) {
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		c.logger.Warn("Discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		return Entry{}, false
	}
	return e, true
}

func (c *Cache) preview(question string) string {
	q := strings.TrimSpace(question)
	runes := []rune(q)
	if len(runes) <= c.previewLength {
		return q
	}
	return string(runes[:c.previewLength])
}

// checkCollision logs when a hit was stored for different question text.
// The hash is not collision resistant; the hit is still returned.
func (c *Cache) checkCollision(e Entry, question string) {
	if e.QuestionPreview == "" {
		return
	}
	if strings.EqualFold(e.QuestionPreview, c.preview(question)) {
		return
	}
	c.logger.Warn("Possible cache key collision",
		zap.String("key", e.Key),
		zap.String("stored", e.QuestionPreview),
		zap.String("requested", c.preview(question)))
}
