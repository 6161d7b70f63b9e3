package validator

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout is the calendar date format used by HTML date inputs.
const DateLayout = "2006-01-02"

func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: newError(field, "field is required", "validation.required"),
	}
}

func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: newError(field, fmt.Sprintf("must be at most %d characters long", max), "validation.max_length", "max", max),
	}
}

// ValidEmail accepts bare addresses only ("a@b.c", not "Name <a@b.c>").
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}
			_, domain, _ := strings.Cut(value, "@")
			return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
		},
		Error: newError(field, "must be a valid email address", "validation.email"),
	}
}

// ValidDate checks value parses as YYYY-MM-DD.
func ValidDate(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, err := time.Parse(DateLayout, value)
			return err == nil
		},
		Error: newError(field, "must be a date in YYYY-MM-DD format", "validation.date", "layout", "YYYY-MM-DD"),
	}
}

// PastDate checks a YYYY-MM-DD value is not after now. Unparsable values pass;
// pair it with ValidDate.
func PastDate(field, value string, now time.Time) Rule {
	return Rule{
		Check: func() bool {
			d, err := time.Parse(DateLayout, value)
			return err != nil || !d.After(now)
		},
		Error: newError(field, "must be in the past", "validation.past_date"),
	}
}

func InList[T comparable](field string, value T, allowed []T) Rule {
	return Rule{
		Check: func() bool { return slices.Contains(allowed, value) },
		Error: newError(field, "must be one of the allowed values", "validation.in_list", "allowed", fmt.Sprint(allowed)),
	}
}
