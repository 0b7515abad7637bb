// Package springsmoother turns raw mouse-move samples into a smoothed
// cursor timeline by simulating a damped spring chasing the raw
// positions, stepped at the source capture frame rate.
package springsmoother

import (
	"sort"

	"github.com/user/castcut/pkg/cursor"
	"github.com/user/castcut/pkg/ports"
)

// Smoother implements ports.CursorSmoother with spring physics:
// a point mass is pulled toward the most recent raw position and
// sampled once per source frame. Stiffness and damping trade
// responsiveness against overshoot.
type Smoother struct{}

// New creates a spring smoother.
func New() *Smoother {
	return &Smoother{}
}

// Smooth simulates the spring over the raw samples and returns one
// smoothed sample per source frame, ordered by timestamp. Raw moves
// are sorted by timestamp first; an empty input yields an empty
// timeline.
func (s *Smoother) Smooth(moves []cursor.Move, cfg cursor.SpringConfig, fps float64) cursor.Timeline {
	if len(moves) == 0 || fps <= 0 {
		return nil
	}

	sorted := make([]cursor.Move, len(moves))
	copy(sorted, moves)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ProcessTimeMs < sorted[j].ProcessTimeMs
	})

	stepMs := 1000.0 / fps
	dt := stepMs / 1000.0
	endMs := sorted[len(sorted)-1].ProcessTimeMs

	posX := sorted[0].X
	posY := sorted[0].Y
	velX := 0.0
	velY := 0.0
	targetIdx := 0

	n := int(endMs/stepMs) + 1
	timeline := make(cursor.Timeline, 0, n)

	for i := 0; i < n; i++ {
		timeMs := float64(i) * stepMs

		// Advance the target to the latest raw move at or before now.
		for targetIdx+1 < len(sorted) && sorted[targetIdx+1].ProcessTimeMs <= timeMs {
			targetIdx++
		}
		target := sorted[targetIdx]

		// Semi-implicit Euler step of the damped spring.
		accelX := (cfg.Stiffness*(target.X-posX) - cfg.Damping*velX) / cfg.Mass
		accelY := (cfg.Stiffness*(target.Y-posY) - cfg.Damping*velY) / cfg.Mass
		velX += accelX * dt
		velY += accelY * dt
		posX += velX * dt
		posY += velY * dt

		timeline = append(timeline, cursor.Sample{
			ProcessTimeMs: timeMs,
			X:             posX,
			Y:             posY,
			CursorID:      target.CursorID,
		})
	}

	return timeline
}

var _ ports.CursorSmoother = (*Smoother)(nil)
