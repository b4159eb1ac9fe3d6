package cache

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIgnoresParamOrder(t *testing.T) {
	a, _ := url.ParseQuery("ordering=-price&page=2&title=algebra")
	b, _ := url.ParseQuery("title=algebra&page=2&ordering=-price")
	assert.Equal(t, Key("courses", a), Key("courses", b))
}

func TestKeyDistinguishesQueries(t *testing.T) {
	a, _ := url.ParseQuery("page=1")
	b, _ := url.ParseQuery("page=2")
	assert.NotEqual(t, Key("courses", a), Key("courses", b))
	assert.NotEqual(t, Key("courses", a), Key("events", a))
	assert.True(t, strings.HasPrefix(Key("courses", a), "courses:"))
}

func newTestCache(t *testing.T, ttl time.Duration) (*ListCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewListCache(rdb, "catalog:", ttl), mr
}

func TestListCacheMiss(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	var dst map[string]any
	hit, err := c.Get(context.Background(), "courses:none", &dst)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, dst)
}

func TestListCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	type page struct {
		Total   int
		Results []map[string]any
	}
	in := page{Total: 2, Results: []map[string]any{{"title": "Algebra", "price": 400.0}, {"title": "Botany"}}}
	require.NoError(t, c.Set(ctx, "courses:abc", in))
	assert.True(t, mr.Exists("catalog:courses:abc"))

	var out page
	hit, err := c.Get(ctx, "courses:abc", &out)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, in, out)
}

func TestListCacheTTL(t *testing.T) {
	c, mr := newTestCache(t, 30*time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "courses:abc", []int{1, 2}))
	assert.Equal(t, 30*time.Second, mr.TTL("catalog:courses:abc"))

	mr.FastForward(31 * time.Second)
	var out []int
	hit, err := c.Get(ctx, "courses:abc", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestListCacheCorruptValue(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set("catalog:courses:bad", "{not json"))

	var out map[string]any
	hit, err := c.Get(context.Background(), "courses:bad", &out)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := Open(context.Background(), mr.Addr(), time.Second)
	require.NoError(t, err)
	assert.NoError(t, rdb.Close())
}
