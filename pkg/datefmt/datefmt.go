// Package datefmt decodes calendar dates stored in one of the encodings the
// records have accumulated over time, and always encodes in the canonical
// year-month-day form.
package datefmt

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layouts in decode order.
const (
	Canonical = "2006-01-02"
	US        = "01/02/2006"
	Legacy    = "02/01/2006"
)

// Slash layouts accept one or two digit day and month fields.
const (
	usParse     = "1/2/2006"
	legacyParse = "2/1/2006"
)

var (
	ErrUnparseable = errors.New("unrecognised date encoding")
	ErrAmbiguous   = errors.New("ambiguous day and month order")
)

// Policy decides how a slash date that is valid both as US and as legacy,
// with different results, is resolved.
type Policy string

const (
	PolicyLegacy Policy = "legacy"
	PolicyUS     Policy = "us"
	PolicyReject Policy = "reject"
)

// ParsePolicy maps a configuration value to a Policy. Empty selects
// PolicyLegacy.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyLegacy, nil
	case PolicyLegacy, PolicyUS, PolicyReject:
		return p, nil
	default:
		return "", fmt.Errorf("unknown ambiguous date policy %q", s)
	}
}

// Result is a decoded date together with how it was read.
type Result struct {
	Time      time.Time
	Layout    string
	Ambiguous bool
}

// Canonical reports whether the stored text was already canonical.
func (r Result) Canonical() bool {
	return r.Layout == Canonical
}

type Decoder struct {
	policy Policy
}

func NewDecoder(policy Policy) *Decoder {
	if policy == "" {
		policy = PolicyLegacy
	}
	return &Decoder{policy: policy}
}

func (d *Decoder) Policy() Policy {
	return d.policy
}

// Decode tries canonical, then US, then legacy. A slash date matching both
// slash layouts with different results is resolved by the policy and
// reported as Ambiguous, or rejected with ErrAmbiguous.
func (d *Decoder) Decode(raw string) (Result, error) {
	s := strings.TrimSpace(raw)
	if t, err := time.Parse(Canonical, s); err == nil {
		return Result{Time: t, Layout: Canonical}, nil
	}

	us, usErr := time.Parse(usParse, s)
	legacy, legacyErr := time.Parse(legacyParse, s)

	switch {
	case usErr == nil && legacyErr == nil && !us.Equal(legacy):
		switch d.policy {
		case PolicyUS:
			return Result{Time: us, Layout: US, Ambiguous: true}, nil
		case PolicyReject:
			return Result{}, fmt.Errorf("%w: %q", ErrAmbiguous, raw)
		default:
			return Result{Time: legacy, Layout: Legacy, Ambiguous: true}, nil
		}
	case usErr == nil:
		return Result{Time: us, Layout: US}, nil
	case legacyErr == nil:
		return Result{Time: legacy, Layout: Legacy}, nil
	}

	return Result{}, fmt.Errorf("%w: %q", ErrUnparseable, raw)
}

// Encode formats t canonically.
func Encode(t time.Time) string {
	return t.Format(Canonical)
}

// ParseCanonical accepts only the canonical encoding.
func ParseCanonical(raw string) (time.Time, error) {
	t, err := time.Parse(Canonical, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseable, raw)
	}
	return t, nil
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
