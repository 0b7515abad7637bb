package ports

// GraphRunner executes one complete codec filter graph as a single
// external process invocation.
type GraphRunner interface {
	// Run executes the argument list. onProgress receives the output
	// position in milliseconds as the process reports it; cancelled is
	// polled during execution and stops the process when true.
	Run(args []string, onProgress func(outMs uint64), cancelled func() bool) error
}
