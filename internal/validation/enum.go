package validation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New(validator.WithRequiredStructEnabled())

	enumMu   sync.RWMutex
	enumSets = map[string][]string{}
)

// InSet reports whether value is one of allowed. Comparison is exact, so
// "admin" is not in {"ADMIN", "USER"}.
func InSet[T comparable](value T, allowed ...T) bool {
	for _, candidate := range allowed {
		if value == candidate {
			return true
		}
	}
	return false
}

// RegisterEnum registers tag as a validator rule accepting only the given
// values. The same rule then serves every field tagged with it:
//
//	Role model.Role `validate:"required,role"`
func RegisterEnum[T ~string](tag string, allowed ...T) error {
	values := make([]string, len(allowed))
	for i, v := range allowed {
		values[i] = string(v)
	}

	err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return InSet(fl.Field().String(), values...)
	})
	if err != nil {
		return fmt.Errorf("registering enum %q: %w", tag, err)
	}

	enumMu.Lock()
	enumSets[tag] = values
	enumMu.Unlock()

	return nil
}

// MustRegisterEnum is RegisterEnum for package initialization.
func MustRegisterEnum[T ~string](tag string, allowed ...T) {
	if err := RegisterEnum(tag, allowed...); err != nil {
		panic(err)
	}
}

// enumValues returns the allow-list registered under tag.
func enumValues(tag string) ([]string, bool) {
	enumMu.RLock()
	defer enumMu.RUnlock()
	values, ok := enumSets[tag]
	return values, ok
}

func enumMessage(values []string) string {
	return "must be one of: " + strings.Join(values, ", ")
}
