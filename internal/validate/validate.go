package validate

// Struct and field validation as a thin wrapper around go-playground/validator.
//
// e.g. internal/content/file.go
//   type payoutDoc struct {
//       Spot       int     `yaml:"spot" validate:"min=1"`
//       Percentage float64 `yaml:"percentage" validate:"gte=0,lte=100"`
//   }

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

//nolint:gochecknoglobals // Shared validator singleton.
var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

func get() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
		validatorInst.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return validatorInst
}

// Struct validates a struct using the shared validator instance.
// Field errors are flattened into one readable error.
func Struct(v any) error {
	err := get().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// Var validates a single named value against tag, wrapping failures in
// ErrInvalid the way Struct does.
func Var(name string, field any, tag string) error {
	err := get().Var(field, tag)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, name+describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// ErrInvalid wraps every validation failure returned by Struct.
var ErrInvalid = errors.New("validation failed")

func describe(fe validator.FieldError) string {
	path := fe.Namespace()
	if _, rest, ok := strings.Cut(path, "."); ok {
		path = rest
	}
	if fe.Param() != "" && fe.Tag() != "unique" {
		return fmt.Sprintf("%s: failed %s=%s (got %v)", path, fe.Tag(), fe.Param(), fe.Value())
	}
	if fe.Param() != "" {
		return fmt.Sprintf("%s: failed %s=%s", path, fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s: failed %s", path, fe.Tag())
}
