package sim

import "time"

// Clock reports seconds elapsed since it started
type Clock interface {
	Elapsed() float64
}

type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Elapsed() float64 {
	return time.Since(c.start).Seconds()
}

// ManualClock only moves when told to. Used by headless runs and tests.
type ManualClock struct {
	elapsed float64
}

func (c *ManualClock) Elapsed() float64 {
	return c.elapsed
}

func (c *ManualClock) Advance(seconds float64) {
	c.elapsed += seconds
}

func (c *ManualClock) Set(seconds float64) {
	c.elapsed = seconds
}
