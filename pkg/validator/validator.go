package validator

import (
	stderrors "errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/emr-records/pkg/errors"
)

// Validator provides validation functionality
type Validator interface {
	Validate(interface{}) error
}

type structValidator struct {
	v   *validator.Validate
	now func() time.Time
}

// Option configures a Validator.
type Option func(*structValidator)

// WithClock overrides the time used by the notfuture rule.
func WithClock(now func() time.Time) Option {
	return func(sv *structValidator) {
		sv.now = now
	}
}

// New returns a struct tag validator with the rules used by the entity
// models registered:
//
//	notblank   string is non-empty after trimming whitespace
//	finite     float is neither NaN nor infinite
//	cents      float has at most two decimal places and ten integer digits
//	notfuture  time is not after today
func New(opts ...Option) Validator {
	sv := &structValidator{
		v:   validator.New(validator.WithRequiredStructEnabled()),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(sv)
	}

	sv.v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = sv.v.RegisterValidation("notblank", notBlank)
	_ = sv.v.RegisterValidation("finite", finite)
	_ = sv.v.RegisterValidation("cents", cents)
	_ = sv.v.RegisterValidation("notfuture", sv.notFuture)

	return sv
}

// Validate checks obj and returns the first violation as an
// *errors.ValidationError.
func (sv *structValidator) Validate(obj interface{}) error {
	err := sv.v.Struct(obj)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		return errors.NewValidation(verrs[0].Field(), verrs[0].Tag())
	}
	return errors.NewValidation("", err.Error())
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(field.String()) != ""
}

func finite(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		f := field.Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return true
	}
}

// maxCents bounds amounts to what NUMERIC(12, 2) holds.
const maxCents = 1e10

func cents(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		f := field.Float()
		if math.Abs(f) >= maxCents {
			return false
		}
		s := strconv.FormatFloat(f, 'f', -1, field.Type().Bits())
		if i := strings.IndexByte(s, '.'); i >= 0 && len(s)-i-1 > 2 {
			return false
		}
		return true
	default:
		return true
	}
}

func (sv *structValidator) notFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	now := sv.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !t.UTC().After(today)
}
