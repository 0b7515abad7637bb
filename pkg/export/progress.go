package export

// Stage identifies the current phase of an export run.
type Stage string

const (
	StagePreparing       Stage = "preparing"
	StageSmoothingCursor Stage = "smoothingCursor"
	StageEncoding        Stage = "encoding"
	StageFinalizing      Stage = "finalizing"
	StageComplete        Stage = "complete"
	StageError           Stage = "error"
)

// Progress is one progress report from an export run. Percent is in
// [0,100] and monotonic in practice, though stage transitions reset the
// per-stage unit counters. Units are frames on the frame-accurate path
// and output milliseconds on the edit-graph path.
type Progress struct {
	Percent     float32 `json:"percent"`
	Stage       Stage   `json:"stage"`
	CurrentUnit uint64  `json:"currentUnit"`
	TotalUnits  uint64  `json:"totalUnits"`
	// Message carries the failure description for StageError.
	Message string `json:"message,omitempty"`
}

// Preparing is the initial report while the bundle loads.
func Preparing() Progress {
	return Progress{Percent: 0, Stage: StagePreparing}
}

// SmoothingCursor reports cursor-smoothing progress (percent 5-10).
func SmoothingCursor(percent float32) Progress {
	return Progress{Percent: percent, Stage: StageSmoothingCursor}
}

// Encoding reports encode progress. The encoding band covers 10-95% of
// the overall run.
func Encoding(current, total uint64) Progress {
	percent := float32(10.0)
	if total > 0 {
		percent = 10.0 + float32(current)/float32(total)*85.0
	}
	return Progress{
		Percent:     percent,
		Stage:       StageEncoding,
		CurrentUnit: current,
		TotalUnits:  total,
	}
}

// Finalizing is reported while the encoder drains and the file closes.
func Finalizing() Progress {
	return Progress{Percent: 95, Stage: StageFinalizing}
}

// Complete is the terminal success report.
func Complete() Progress {
	return Progress{Percent: 100, Stage: StageComplete}
}

// Failed is the terminal failure report.
func Failed(message string) Progress {
	return Progress{Stage: StageError, Message: message}
}
