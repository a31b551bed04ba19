// Package validation collects declarative per-request field checks. Every
// check for a request runs before any persistence; all violations come back as
// one ordered list so a response either reports everything wrong or nothing.
package validation

import (
	"regexp"
	"strings"
	"time"
)

// Violation is one failed field constraint, serialized into the 400 body.
type Violation struct {
	Param string `json:"param,omitempty"`
	Msg   string `json:"msg"`
}

// Result accumulates violations in declaration order.
type Result struct {
	violations []Violation
}

// emailPattern is intentionally permissive; the mailbox is the real validator.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// dateLayouts are the accepted wire formats for experience/education dates.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// Add records an arbitrary violation.
func (r *Result) Add(param, msg string) {
	r.violations = append(r.violations, Violation{Param: param, Msg: msg})
}

// Require records msg when value is empty after trimming.
func (r *Result) Require(param, value, msg string) {
	if strings.TrimSpace(value) == "" {
		r.Add(param, msg)
	}
}

// Email records msg when value is not email-shaped.
func (r *Result) Email(param, value, msg string) {
	if !emailPattern.MatchString(value) {
		r.Add(param, msg)
	}
}

// MinLen records msg when value is shorter than n.
func (r *Result) MinLen(param, value string, n int, msg string) {
	if len(value) < n {
		r.Add(param, msg)
	}
}

// DateOrder records msg when both dates parse and from is after to. Unparsable
// or absent values are not this check's concern.
func (r *Result) DateOrder(param, from, to, msg string) {
	f, okF := parseDate(from)
	t, okT := parseDate(to)
	if okF && okT && f.After(t) {
		r.Add(param, msg)
	}
}

// OK reports whether no violation was recorded.
func (r *Result) OK() bool { return len(r.violations) == 0 }

// Violations returns the recorded violations in declaration order.
func (r *Result) Violations() []Violation { return r.violations }

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
