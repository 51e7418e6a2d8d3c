package cli

import "strings"

// PreflightError describes a condition that stops a command before it runs.
type PreflightError struct {
	Message  string
	Hint     string
	NextStep string
}

func (e *PreflightError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Hint != "" {
		b.WriteString("\n  hint: ")
		b.WriteString(e.Hint)
	}
	if e.NextStep != "" {
		b.WriteString("\n  try: ")
		b.WriteString(e.NextStep)
	}
	return b.String()
}
