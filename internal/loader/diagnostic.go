package loader

import (
	"fmt"
	"strings"
)

// Diagnostic codes.
const (
	CodeMissing   = "missing"
	CodeType      = "type_error"
	CodeCondition = "invalid_condition"
	CodeEmpty     = "empty_document"
)

// Diagnostic is one schema violation found in a document.
type Diagnostic struct {
	// Code is a stable identifier for the kind of problem.
	Code string
	// Field is the dotted path of the offending value ("temperature.0.min").
	Field   string
	Message string
}

func (d Diagnostic) String() string {
	if d.Field == "" {
		return fmt.Sprintf("[%s] %s", d.Code, d.Message)
	}
	return fmt.Sprintf("%s: [%s] %s", d.Field, d.Code, d.Message)
}

// Diagnostics collects problems for a single document.
type Diagnostics []Diagnostic

func (d *Diagnostics) add(code, field, format string, args ...any) {
	*d = append(*d, Diagnostic{Code: code, Field: field, Message: fmt.Sprintf(format, args...)})
}

// Empty reports whether no problem was recorded.
func (d Diagnostics) Empty() bool { return len(d) == 0 }

func (d Diagnostics) String() string {
	lines := make([]string, len(d))
	for i, diag := range d {
		lines[i] = diag.String()
	}
	return strings.Join(lines, "; ")
}
