package mocks

import (
	"github.com/user/castcut/pkg/ports"
)

// GraphRunner is a mock implementation of ports.GraphRunner. It records
// the argument list and can drive the progress callback.
type GraphRunner struct {
	RunFunc func(args []string, onProgress func(outMs uint64), cancelled func() bool) error

	Args     []string
	RunCalls int
}

func (m *GraphRunner) Run(args []string, onProgress func(outMs uint64), cancelled func() bool) error {
	m.RunCalls++
	m.Args = args
	if m.RunFunc != nil {
		return m.RunFunc(args, onProgress, cancelled)
	}
	return nil
}

var _ ports.GraphRunner = (*GraphRunner)(nil)
