package validator

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ValidationError describes one failed rule. TranslationKey and
// TranslationValues let the HTTP layer localize Message.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]string
}

// ValidationErrors is returned by Apply when at least one rule fails.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(ve))
	for _, e := range ve {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve ValidationErrors) Has(field string) bool {
	return slices.ContainsFunc(ve, func(e ValidationError) bool { return e.Field == field })
}

// Fields groups messages by field, localized through translate when it is
// non-nil. translate receives the key followed by name/value pairs.
func (ve ValidationErrors) Fields(translate func(key string, args ...string) string) map[string][]string {
	out := make(map[string][]string, len(ve))
	for _, e := range ve {
		msg := e.Message
		if translate != nil && e.TranslationKey != "" {
			args := make([]string, 0, len(e.TranslationValues)*2)
			for k, v := range e.TranslationValues {
				args = append(args, k, v)
			}
			if t := translate(e.TranslationKey, args...); t != e.TranslationKey {
				msg = t
			}
		}
		out[e.Field] = append(out[e.Field], msg)
	}
	return out
}

// Rule pairs a check with the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply runs every rule and collects failures. It returns nil when all pass.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if !r.Check() {
			errs = append(errs, r.Error)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// When keeps rules only if cond holds; partial updates validate what is present.
func When(cond bool, rules ...Rule) []Rule {
	if !cond {
		return nil
	}
	return rules
}

// Extract returns the ValidationErrors wrapped in err, if any.
func Extract(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func newError(field, message, key string, kv ...any) ValidationError {
	values := map[string]string{"field": field}
	for i := 0; i+1 < len(kv); i += 2 {
		values[fmt.Sprint(kv[i])] = fmt.Sprint(kv[i+1])
	}
	return ValidationError{Field: field, Message: message, TranslationKey: key, TranslationValues: values}
}
