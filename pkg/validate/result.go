package validate

// Result accumulates every failed rule for a composite validation,
// rather than stopping at the first.
type Result struct {
	Errors []string
}

// Fail records a failed rule.
func (r *Result) Fail(msg string) {
	r.Errors = append(r.Errors, msg)
}

// Check records msg when ok is false.
func (r *Result) Check(ok bool, msg string) {
	if !ok {
		r.Fail(msg)
	}
}

// IsValid reports whether no rule failed.
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}
