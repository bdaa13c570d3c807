package main

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// progressTracker reports conversion progress: line position, percentage,
// ETA and the running table and insert counts.
type progressTracker struct {
	bar       *progressbar.ProgressBar
	w         io.Writer
	startTime time.Time
}

// newProgressTracker returns a tracker writing to w. total is the number of
// input lines, or -1 when unknown. A nil w disables reporting.
func newProgressTracker(w io.Writer, total int64) *progressTracker {
	t := &progressTracker{w: w, startTime: time.Now()}
	if w == nil {
		return t
	}
	t.bar = progressbar.NewOptions64(
		total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Converting"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("lines"),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
	)
	return t
}

// update moves the bar to the current line.
func (t *progressTracker) update(s Stats) {
	if t.bar == nil {
		return
	}
	t.bar.Describe(fmt.Sprintf("[%d tables] [%d inserts]", s.Tables, s.Inserts))
	_ = t.bar.Set64(int64(s.Lines))
}

// finish completes the bar.
func (t *progressTracker) finish() {
	if t.bar == nil {
		return
	}
	_ = t.bar.Finish()
	fmt.Fprintln(t.w)
}

func (t *progressTracker) elapsed() time.Duration {
	return time.Since(t.startTime)
}
