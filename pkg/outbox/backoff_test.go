package outbox

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoff(t *testing.T) {
	maxBackoff := 60 * time.Second

	assert.Equal(t, time.Duration(0), backoff(0, maxBackoff))
	assert.Equal(t, 1*time.Second, backoff(1, maxBackoff))
	assert.Equal(t, 2*time.Second, backoff(2, maxBackoff))
	assert.Equal(t, 4*time.Second, backoff(3, maxBackoff))
	assert.Equal(t, 32*time.Second, backoff(6, maxBackoff))
	assert.Equal(t, maxBackoff, backoff(7, maxBackoff))
	assert.Equal(t, maxBackoff, backoff(25, maxBackoff))
}

func TestJitter(t *testing.T) {
	r := rand.New(rand.NewSource(1)) //nolint:gosec
	maxJitter := 200 * time.Millisecond

	for i := 0; i < 100; i++ {
		j := jitter(r, maxJitter)
		assert.GreaterOrEqual(t, j, time.Duration(0))
		assert.LessOrEqual(t, j, maxJitter)
	}

	assert.Equal(t, time.Duration(0), jitter(nil, maxJitter))
	assert.Equal(t, time.Duration(0), jitter(r, 0))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "", truncateString("anything", 0))
	assert.Equal(t, "short", truncateString("short", 100))
	assert.Equal(t, "abc", truncateString("abcdef", 3))

	// Multi-byte runes are never split.
	s := "héllo"
	out := truncateString(s, 2)
	assert.LessOrEqual(t, len(out), 2)
	assert.Equal(t, "h", out)
}

func TestTableLabel(t *testing.T) {
	assert.Equal(t, "", TableLabel(nil))
	assert.Equal(t, "asset_outbox", TableLabel([]string{"asset_outbox"}))
	assert.Equal(t, "public.asset_outbox", TableLabel([]string{"public", "asset_outbox"}))
}
