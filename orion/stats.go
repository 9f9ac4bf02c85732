package orion

import (
	"time"
)

const (
	// number of frames the moving average is calculated over
	frameTimesWindow = 64

	// Tick reports once per this many frames
	frameTimesReportInterval = 60
)

// FrameTimes tracks the duration between consecutive frames of a Scene.
type FrameTimes struct {
	FrameCount      uint64
	AverageDuration time.Duration

	// longest frame since the scene was created
	MaxDuration time.Duration

	// longest frame since the last report
	PeriodMaxDuration time.Duration

	// Delta time to previous frame
	Delta time.Duration

	lastTime  time.Time
	periodMax time.Duration
}

func (t *FrameTimes) update(d time.Duration) {
	t.Delta = d
	t.MaxDuration = max(t.MaxDuration, d)
	t.periodMax = max(t.periodMax, d)

	if t.FrameCount == 1 {
		t.AverageDuration = d
		return
	}

	t.AverageDuration = ((frameTimesWindow-1)*t.AverageDuration + d) / frameTimesWindow
}

// FPS returns the frame rate derived from the average frame duration.
func (t *FrameTimes) FPS() float64 {
	if t.AverageDuration <= 0 {
		return 0
	}

	return 1.0 / t.AverageDuration.Seconds()
}

// Tick records the start of a new frame. It returns true once per report
// interval, PeriodMaxDuration then holds the longest frame of that interval.
func (t *FrameTimes) Tick() bool {
	return t.tick(time.Now())
}

func (t *FrameTimes) tick(now time.Time) bool {
	if t.FrameCount > 0 {
		t.update(now.Sub(t.lastTime))
	}

	t.lastTime = now
	t.FrameCount++

	if t.FrameCount%frameTimesReportInterval != 0 {
		return false
	}

	t.PeriodMaxDuration = t.periodMax
	t.periodMax = 0

	return true
}
