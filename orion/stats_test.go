package orion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameTimes(t *testing.T) {
	var times FrameTimes

	now := time.Unix(0, 0)
	assert.False(t, times.tick(now))
	assert.Zero(t, times.FPS())

	now = now.Add(20 * time.Millisecond)
	times.tick(now)

	assert.Equal(t, 20*time.Millisecond, times.Delta)
	assert.Equal(t, 20*time.Millisecond, times.AverageDuration)
	assert.InDelta(t, 50.0, times.FPS(), 1e-6)

	now = now.Add(84 * time.Millisecond)
	times.tick(now)

	assert.Equal(t, 84*time.Millisecond, times.MaxDuration)
	assert.Equal(t, 21*time.Millisecond, times.AverageDuration)
}

func TestFrameTimes_ReportsEverySixtyFrames(t *testing.T) {
	var times FrameTimes

	now := time.Unix(0, 0)

	var reports int
	for range 180 {
		now = now.Add(time.Millisecond)
		if times.tick(now) {
			reports++
		}
	}

	assert.Equal(t, 3, reports)
	assert.Equal(t, uint64(180), times.FrameCount)
}

func TestFrameTimes_PeriodMaxResetsAfterReport(t *testing.T) {
	var times FrameTimes

	now := time.Unix(0, 0)
	times.tick(now)

	// one slow frame in the first period
	for idx := range 59 {
		step := time.Millisecond
		if idx == 10 {
			step = 40 * time.Millisecond
		}

		now = now.Add(step)
		times.tick(now)
	}

	assert.Equal(t, 40*time.Millisecond, times.PeriodMaxDuration)

	for range 60 {
		now = now.Add(2 * time.Millisecond)
		times.tick(now)
	}

	assert.Equal(t, 2*time.Millisecond, times.PeriodMaxDuration)
	assert.Equal(t, 40*time.Millisecond, times.MaxDuration)
}
