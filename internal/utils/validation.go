package utils

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error for a single field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// ValidateStruct validates a struct based on its `validate` tags.
// Supported rules: required, email, min=N, max=N, oneof=a b c.
func ValidateStruct(s interface{}) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("validation target must be a struct")
	}

	var errs ValidationErrors
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || tag == "-" {
			continue
		}

		name := jsonFieldName(field)
		value := v.Field(i)

		for _, rule := range strings.Split(tag, ",") {
			if err := applyRule(name, value, rule); err != nil {
				errs = append(errs, *err)
				break
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func jsonFieldName(field reflect.StructField) string {
	jsonTag := field.Tag.Get("json")
	if jsonTag == "" {
		return field.Name
	}
	name := strings.Split(jsonTag, ",")[0]
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

func applyRule(name string, value reflect.Value, rule string) *ValidationError {
	parts := strings.SplitN(rule, "=", 2)
	key := parts[0]
	arg := ""
	if len(parts) == 2 {
		arg = parts[1]
	}

	switch key {
	case "required":
		if isZeroValue(value) {
			return &ValidationError{Field: name, Message: "is required"}
		}
	case "email":
		s, ok := stringValue(value)
		if ok && s != "" && !emailRegex.MatchString(s) {
			return &ValidationError{Field: name, Message: "must be a valid email address"}
		}
	case "min":
		n, _ := strconv.Atoi(arg)
		if s, ok := stringValue(value); ok {
			if s != "" && len(s) < n {
				return &ValidationError{Field: name, Message: fmt.Sprintf("must be at least %d characters", n)}
			}
		} else if iv, ok := intValue(value); ok && iv < int64(n) {
			return &ValidationError{Field: name, Message: fmt.Sprintf("must be at least %d", n)}
		}
	case "max":
		n, _ := strconv.Atoi(arg)
		if s, ok := stringValue(value); ok {
			if len(s) > n {
				return &ValidationError{Field: name, Message: fmt.Sprintf("must be at most %d characters", n)}
			}
		} else if iv, ok := intValue(value); ok && iv > int64(n) {
			return &ValidationError{Field: name, Message: fmt.Sprintf("must be at most %d", n)}
		}
	case "oneof":
		s, ok := stringValue(value)
		if !ok || s == "" {
			return nil
		}
		for _, allowed := range strings.Fields(arg) {
			if s == allowed {
				return nil
			}
		}
		return &ValidationError{Field: name, Message: fmt.Sprintf("must be one of: %s", arg)}
	}
	return nil
}

func isZeroValue(v reflect.Value) bool {
	if v.Kind() == reflect.Ptr {
		return v.IsNil()
	}
	return v.IsZero()
}

func stringValue(v reflect.Value) (string, bool) {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.String {
		return v.String(), true
	}
	return "", false
}

func intValue(v reflect.Value) (int64, bool) {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return 0, false
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true
	}
	return 0, false
}

// SanitizeString trims whitespace and strips control characters
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// IsValidEmail checks whether the string is a plausible email address
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
