// Package envstruct populates configuration structs from environment
// variables declared with struct tags.
package envstruct

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrEnvNotSet is returned when a tagged field has neither an
	// environment variable nor an envDefault fallback.
	ErrEnvNotSet = errors.New("environment variable not set")
	// ErrInvalidValue is returned when v is not a pointer to a struct or a
	// tagged field cannot be populated.
	ErrInvalidValue = errors.New("v must be a pointer to a struct")
)

// Populate fills the fields of the struct pointed to by v from the
// environment.
//
// lookupEnv has the same signature as [os.LookupEnv]. Fields are matched by
// the `env:"NAME"` tag. When the variable is unset, the `envDefault` tag
// value is used instead; with neither, ErrEnvNotSet is returned. Only string
// fields are supported. All field errors are collected and joined.
func Populate(v any, lookupEnv func(string) (string, bool)) error {
	ptrRef := reflect.ValueOf(v)
	if ptrRef.Kind() != reflect.Ptr {
		return fmt.Errorf("%w: not pointer: %v", ErrInvalidValue, v)
	}
	ref := ptrRef.Elem()
	if ref.Kind() != reflect.Struct {
		return fmt.Errorf("%w: not struct: %v", ErrInvalidValue, v)
	}

	refType := ref.Type()
	var errorList []error
	for i := 0; i < refType.NumField(); i++ {
		field := ref.Field(i)
		typeField := refType.Field(i)

		envVarName, tagged := typeField.Tag.Lookup("env")
		if !tagged {
			continue
		}
		if !field.CanSet() {
			errorList = append(errorList, fmt.Errorf("%w: cannot set field: %s",
				ErrInvalidValue, typeField.Name))
			continue
		}
		if field.Kind() != reflect.String {
			errorList = append(errorList, fmt.Errorf("%w: only strings are supported - field: %s, type: %s, env: %s",
				ErrInvalidValue, typeField.Name, field.Kind().String(), envVarName))
			continue
		}

		value, err := lookupWithDefault(envVarName, typeField.Tag, lookupEnv)
		if err != nil {
			errorList = append(errorList, err)
			continue
		}
		field.SetString(value)
	}

	return errors.Join(errorList...)
}

func lookupWithDefault(
	envVarName string,
	tag reflect.StructTag,
	lookupEnv func(string) (string, bool),
) (string, error) {
	if value, ok := lookupEnv(envVarName); ok {
		return value, nil
	}
	if value, ok := tag.Lookup("envDefault"); ok {
		return value, nil
	}
	return "", fmt.Errorf("%w: environment variable not set: %s", ErrEnvNotSet, envVarName)
}
