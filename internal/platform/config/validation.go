package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidSettings wraps every failure reported by Validate.
var ErrInvalidSettings = errors.New("invalid settings")

// settingsValidator names fields by their koanf key, so a failure reads
// "server.read_timeout" the way it is spelled in a settings file.
var settingsValidator = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		key, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		return key
	})

	return v
}()

// Validate reports every invalid setting at once, one per line. Commands do
// not run with an invalid configuration.
func (c *Config) Validate() error {
	var fieldErrs validator.ValidationErrors
	if err := settingsValidator.Struct(c); !errors.As(err, &fieldErrs) {
		return err
	}

	problems := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		problems[i] = describe(fe)
	}

	return fmt.Errorf("%w:\n  %s", ErrInvalidSettings, strings.Join(problems, "\n  "))
}

func describe(fe validator.FieldError) string {
	key := settingKey(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "required_if":
		field, value, _ := strings.Cut(fe.Param(), " ")
		return fmt.Sprintf("%s is required when %s is %s", key, siblingKey(key, field), value)
	case "min":
		return fmt.Sprintf("%s must be at least %s, got %v", key, fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s, got %v", key, fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s, got %q", key, strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "hostname_port":
		return fmt.Sprintf("%s must be host:port, got %q", key, fe.Value())
	default:
		return fmt.Sprintf("%s fails %s", key, fe.Tag())
	}
}

// settingKey drops the root struct name: "Config.server.port" is "server.port".
func settingKey(namespace string) string {
	if _, key, ok := strings.Cut(namespace, "."); ok {
		return key
	}

	return namespace
}

// siblingKey resolves a required_if field name against key's parent section.
func siblingKey(key, field string) string {
	field = strings.ToLower(field)

	if i := strings.LastIndexByte(key, '.'); i >= 0 {
		return key[:i+1] + field
	}

	return field
}
