package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealClockUsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("UTC")
	require.NoError(t, err)

	now := NewReal(loc).Now()
	assert.Equal(t, loc, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Second)
}

func TestRealClockDefaultsToLocal(t *testing.T) {
	assert.Equal(t, time.Local, NewReal(nil).Location)
}

func TestFakeClock(t *testing.T) {
	start := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	c := NewFakeClock(start)

	assert.True(t, c.Now().Equal(start))

	c.Advance(90 * time.Minute)
	assert.True(t, c.Now().Equal(start.Add(90*time.Minute)))

	c.Set(start)
	assert.True(t, c.Now().Equal(start))
}
