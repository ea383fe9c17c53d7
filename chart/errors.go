package chart

import "fmt"

// StructuralError is a body line that doesn't fit the measure/tick grid.
type StructuralError struct {
	Line   int
	Text   string
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("line %v (%q): %v", e.Line, e.Text, e.Reason)
}

// HeaderError is a recognized header command with an unusable argument.
type HeaderError struct {
	Line     int
	Command  string
	Argument string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("line %v: invalid argument %q for #%v", e.Line, e.Argument, e.Command)
}
