// Package sim provides a fixed-timestep simulation loop. Input sampling and
// assist evaluation run at a stable tick rate regardless of render rate,
// which keeps dt-dependent interpolation and trace pipelining deterministic.
package sim

import "time"

// Loop accumulates wall-clock frame time and fires fixed-size ticks.
type Loop struct {
	TickRate    float64 // ticks per second
	Paused      bool
	accumulator float64
	lastTime    time.Time
}

func NewLoop(tickRate float64) *Loop {
	return &Loop{TickRate: tickRate, lastTime: time.Now()}
}

// Update should be called every render frame; it invokes step zero or more
// times with a fixed dt. Returns the interpolation alpha for rendering
// between ticks.
func (l *Loop) Update(step func(dt float64)) float64 {
	now := time.Now()
	frameTime := now.Sub(l.lastTime).Seconds()
	l.lastTime = now

	// Cap frame time to avoid a spiral of death after a stall.
	if frameTime > 0.25 {
		frameTime = 0.25
	}

	dt := 1.0 / l.TickRate
	l.accumulator += frameTime

	for l.accumulator >= dt {
		if !l.Paused {
			step(dt)
		}
		l.accumulator -= dt
	}
	return l.accumulator / dt
}
