package cache

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/jonathan/autofill-core/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache(t *testing.T) (*Cache, *storage.Memory, *fakeClock) {
	t.Helper()
	store := storage.NewMemory()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	cfg := DefaultConfig()
	cfg.Now = clock.Now
	return New(store, cfg, nil), store, clock
}

// failingStore fails every operation.
type failingStore struct{ err error }

func (f failingStore) Get(context.Context, []string) (map[string][]byte, error) {
	return nil, &storage.Error{Op: "get", Cause: f.err}
}
func (f failingStore) Set(context.Context, map[string][]byte) error {
	return &storage.Error{Op: "set", Cause: f.err}
}
func (f failingStore) Remove(context.Context, []string) error {
	return &storage.Error{Op: "remove", Cause: f.err}
}
func (f failingStore) Scan(context.Context, string) (map[string][]byte, error) {
	return nil, &storage.Error{Op: "scan", Cause: f.err}
}
func (f failingStore) Close() error { return nil }

func TestGenerateKey_Stable(t *testing.T) {
	c, _, _ := newTestCache(t)
	a := c.GenerateKey("Why do you want this role?", "Acme", "Engineer")
	b := c.GenerateKey(" WHY DO YOU WANT THIS ROLE? ", "acme", "engineer")
	assert.Equal(t, a, b)
	assert.True(t, len(a) > len(DefaultPrefix))
	assert.Equal(t, DefaultPrefix, a[:len(DefaultPrefix)])

	assert.NotEqual(t, a, c.GenerateKey("Why do you want this role?", "Globex", "Engineer"))
	assert.NotEqual(t, a, c.GenerateKey("Why do you want this role?", "Acme", "Manager"))
}

func TestGenerateKey_TrimsCompanyAndTitle(t *testing.T) {
	padded := GenerateKey(DefaultPrefix, "Why Acme?", " Acme\n", "\tStaff Engineer ")
	assert.Equal(t, GenerateKey(DefaultPrefix, "why acme?", "acme", "staff engineer"), padded)

	// Inner whitespace is part of the value.
	assert.NotEqual(t, padded, GenerateKey(DefaultPrefix, "Why Acme?", "Acme", "Staff  Engineer"))
}

func TestGetSet_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestCache(t)

	_, found, err := c.Get(ctx, "Why us?", "Acme", "Engineer")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "Why us?", "Acme", "Engineer", "Because."))
	answer, found, err := c.Get(ctx, "why us?", "ACME", "engineer")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Because.", answer)
}

func TestGet_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	c, store, clock := newTestCache(t)
	require.NoError(t, c.Set(ctx, "Describe a project", "Acme", "Engineer", "A compiler."))

	clock.Advance(6*24*time.Hour + 23*time.Hour)
	answer, found, err := c.Get(ctx, "Describe a project", "Acme", "Engineer")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "A compiler.", answer)
	assert.Equal(t, 1, store.Len())

	clock.Advance(2 * time.Hour)
	_, found, err = c.Get(ctx, "Describe a project", "Acme", "Engineer")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, store.Len(), "expired entry is evicted on read")
}

func TestSet_Idempotent(t *testing.T) {
	ctx := context.Background()
	c, store, _ := newTestCache(t)

	require.NoError(t, c.Set(ctx, "Why us?", "Acme", "Engineer", "first"))
	require.NoError(t, c.Set(ctx, "Why us?", "Acme", "Engineer", "second"))

	entries, err := store.Scan(ctx, DefaultPrefix)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	answer, found, err := c.Get(ctx, "Why us?", "Acme", "Engineer")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "second", answer)
}

func TestBatchGet_Partition(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestCache(t)
	questions := []string{"Why Acme?", "Describe a challenge.", "Tell us about yourself."}
	require.NoError(t, c.Set(ctx, questions[1], "Acme", "Engineer", "Scaling a queue."))

	res, err := c.BatchGet(ctx, questions, "Acme", "Engineer")
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "Scaling a queue."}, res.Cached)
	assert.Equal(t, []Pending{
		{Index: 0, Question: questions[0]},
		{Index: 2, Question: questions[2]},
	}, res.NotCached)
}

func TestBatchGet_ExpiredNotDeleted(t *testing.T) {
	ctx := context.Background()
	c, store, clock := newTestCache(t)
	require.NoError(t, c.Set(ctx, "Why Acme?", "Acme", "Engineer", "old"))
	clock.Advance(8 * 24 * time.Hour)

	res, err := c.BatchGet(ctx, []string{"Why Acme?"}, "Acme", "Engineer")
	require.NoError(t, err)
	assert.Empty(t, res.Cached)
	assert.Equal(t, []Pending{{Index: 0, Question: "Why Acme?"}}, res.NotCached)
	assert.Equal(t, 1, store.Len())
}

func TestBatchGet_Empty(t *testing.T) {
	c, _, _ := newTestCache(t)
	res, err := c.BatchGet(context.Background(), nil, "Acme", "Engineer")
	require.NoError(t, err)
	assert.Empty(t, res.Cached)
	assert.Empty(t, res.NotCached)
}

func TestBatchSet_SharedTimestamp(t *testing.T) {
	ctx := context.Background()
	c, store, _ := newTestCache(t)

	require.NoError(t, c.BatchSet(ctx, []Pair{
		{Question: "Why Acme?", Answer: "a"},
		{Question: "Describe a challenge.", Answer: "b"},
	}, "Acme", "Engineer"))
	require.NoError(t, c.BatchSet(ctx, nil, "Acme", "Engineer"))

	raw, err := store.Scan(ctx, DefaultPrefix)
	require.NoError(t, err)
	require.Len(t, raw, 2)

	var stamps []int64
	for key, data := range raw {
		e, ok := c.decode(key, data)
		require.True(t, ok)
		assert.Equal(t, key, e.Key)
		stamps = append(stamps, e.Timestamp)
	}
	assert.Equal(t, stamps[0], stamps[1])

	res, err := c.BatchGet(ctx, []string{"Why Acme?", "Describe a challenge."}, "Acme", "Engineer")
	require.NoError(t, err)
	assert.Equal(t, map[int]string{0: "a", 1: "b"}, res.Cached)
}

func TestClearOld(t *testing.T) {
	ctx := context.Background()
	c, store, clock := newTestCache(t)

	require.NoError(t, c.Set(ctx, "old question", "Acme", "Engineer", "old"))
	clock.Advance(5 * 24 * time.Hour)
	require.NoError(t, c.Set(ctx, "new question", "Acme", "Engineer", "new"))
	require.NoError(t, store.Set(ctx, map[string][]byte{
		"settings_theme":        []byte("dark"),
		DefaultPrefix + "bogus": []byte("not json"),
	}))
	clock.Advance(3 * 24 * time.Hour)

	removed, err := c.ClearOld(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, found, err := c.Get(ctx, "new question", "Acme", "Engineer")
	require.NoError(t, err)
	assert.True(t, found)

	other, err := store.Get(ctx, []string{"settings_theme"})
	require.NoError(t, err)
	assert.Contains(t, other, "settings_theme")

	removed, err = c.ClearOld(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	c, store, _ := newTestCache(t)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)

	require.NoError(t, c.Set(ctx, "Why Acme?", "Acme", "Engineer", "because"))
	require.NoError(t, store.Set(ctx, map[string][]byte{"profile": []byte("{}")}))

	stats, err = c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Count)
	assert.Greater(t, stats.ApproxSizeKB, 0.0)
}

func TestPreview_Truncated(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	c := New(store, &Config{PreviewLength: 5}, nil)

	require.NoError(t, c.Set(ctx, "  Tell us about yourself  ", "Acme", "Engineer", "x"))
	raw, err := store.Scan(ctx, DefaultPrefix)
	require.NoError(t, err)
	for key, data := range raw {
		e, ok := c.decode(key, data)
		require.True(t, ok)
		assert.Equal(t, "Tell ", e.QuestionPreview)
	}
}

func TestStorageFailure_SafeDefaults(t *testing.T) {
	ctx := context.Background()
	c := New(failingStore{err: errors.New("quota exceeded")}, nil, nil)

	answer, found, err := c.Get(ctx, "Why?", "Acme", "Engineer")
	var storeErr *storage.Error
	require.ErrorAs(t, err, &storeErr)
	assert.False(t, found)
	assert.Empty(t, answer)

	assert.Error(t, c.Set(ctx, "Why?", "Acme", "Engineer", "x"))

	res, err := c.BatchGet(ctx, []string{"a", "b"}, "Acme", "Engineer")
	assert.Error(t, err)
	assert.Empty(t, res.Cached)
	assert.Len(t, res.NotCached, 2)

	removed, err := c.ClearOld(ctx)
	assert.Error(t, err)
	assert.Zero(t, removed)
}

func TestGet_LogsSuspectedCollision(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	store := storage.NewMemory()
	c := New(store, nil, zap.New(core))

	// Plant an entry under the key of one question but with another's preview.
	key := c.GenerateKey("Why Acme?", "Acme", "Engineer")
	require.NoError(t, store.Set(ctx, map[string][]byte{
		key: []byte(`{"key":"` + key + `","answer":"x","timestamp":` +
			strconv.FormatInt(time.Now().UnixMilli(), 10) + `,"questionPreview":"Are you a veteran?"}`),
	}))

	answer, found, err := c.Get(ctx, "Why Acme?", "Acme", "Engineer")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "x", answer)
	assert.Equal(t, 1, logs.FilterMessage("Possible cache key collision").Len())

	_, _, err = c.Get(ctx, "WHY ACME?", "Acme", "Engineer")
	require.NoError(t, err)
	assert.Equal(t, 2, logs.FilterMessage("Possible cache key collision").Len())
}

func TestNew_FillsDefaults(t *testing.T) {
	c := New(storage.NewMemory(), &Config{}, nil)
	assert.Equal(t, DefaultPrefix, c.Prefix())
	assert.Equal(t, DefaultMaxAge, c.maxAge)
	assert.Equal(t, DefaultPreviewLength, c.previewLength)
	assert.NotNil(t, c.now)
}
