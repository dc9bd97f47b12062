// Package output delivers rendered event lines to their sinks.
package output

// Output is one sink for rendered lines. Each entry arrives with its trailing
// newline already attached.
type Output interface {
	WriteBatch(entries [][]byte) error
}

// Set holds the configured sinks and assembles the active fan-out from them.
// The console can be dropped and restored at runtime (quiet); the rest are
// fixed for the life of the process.
type Set struct {
	Console Output
	File    *File
	Extra   []Output
}

// Build returns the fan-out for the current quiet state.
func (s Set) Build(quiet bool) *FanOut {
	var outs []Output
	if s.Console != nil && !quiet {
		outs = append(outs, s.Console)
	}
	if s.File != nil {
		outs = append(outs, s.File)
	}
	outs = append(outs, s.Extra...)
	return NewFanOut(outs...)
}
