package ports

import (
	"github.com/user/castcut/pkg/cursor"
)

// CursorSmoother turns raw mouse-move samples into the ordered,
// time-sorted cursor timeline the compositor queries per frame.
// The export core only consumes the sorted output.
type CursorSmoother interface {
	Smooth(moves []cursor.Move, cfg cursor.SpringConfig, fps float64) cursor.Timeline
}
