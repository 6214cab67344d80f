package refgene

import "fmt"

// ValidationError reports a field that violates a construction invariant.
// It is returned by the New* constructors and never recovered internally.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// FormatError reports a structurally malformed refGene line with line context.
// A FormatError aborts the traversal that produced it; a file whose lines do
// not split into the expected columns is considered corrupt.
type FormatError struct {
	Line    int
	Message string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("refgene parse error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("refgene parse error: %s", e.Message)
}
