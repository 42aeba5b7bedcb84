// Package rendering turns generated artifacts into presentation markup.
package rendering

import "fmt"

// TemplateError reports a failure to parse the embedded templates (Template is empty) or
// to execute one of them.
type TemplateError struct {
	Template string
	Cause    error
}

func (e *TemplateError) Error() string {
	if e.Template == "" {
		return fmt.Sprintf("parse templates: %v", e.Cause)
	}
	return fmt.Sprintf("execute template %q: %v", e.Template, e.Cause)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}
