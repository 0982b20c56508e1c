package scrollstage

import "fmt"

// ConfigurationError reports a malformed page rule: a bad predicate, an
// unknown property or easing, an empty target selector, an invalid step
// count. It is always returned before any listener is attached.
type ConfigurationError struct {
	Rule   string // rule or group name, if known
	Field  string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	msg := "scrollstage: configuration"
	if e.Rule != "" {
		msg += " of " + fmt.Sprintf("%q", e.Rule)
	}
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	return msg + ": " + e.Reason
}

// withRule returns a copy of err annotated with the rule name when err is a
// ConfigurationError that does not carry one yet.
func withRule(err error, rule string) error {
	ce, ok := err.(*ConfigurationError)
	if !ok || ce.Rule != "" {
		return err
	}
	cp := *ce
	cp.Rule = rule
	return &cp
}

// ProgrammingError is the panic value used for API misuse that would
// otherwise leak listeners: activating a group twice, unbinding twice,
// tearing down a page twice.
type ProgrammingError struct {
	Op     string
	Reason string
}

func (e *ProgrammingError) Error() string {
	return "scrollstage: " + e.Op + ": " + e.Reason
}

func misuse(op, reason string) {
	panic(&ProgrammingError{Op: op, Reason: reason})
}
