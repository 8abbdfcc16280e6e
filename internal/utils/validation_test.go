package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Name  string `json:"name" validate:"required,min=2,max=10"`
	Email string `json:"email" validate:"required,email"`
	Kind  string `json:"kind" validate:"oneof=a b c"`
	Age   int    `json:"age" validate:"min=18"`
}

func TestValidateStruct(t *testing.T) {
	valid := sampleInput{Name: "Jo", Email: "jo@example.com", Kind: "b", Age: 20}
	assert.NoError(t, ValidateStruct(&valid))

	missing := sampleInput{Email: "jo@example.com", Kind: "a", Age: 20}
	err := ValidateStruct(&missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")

	badEmail := sampleInput{Name: "Jo", Email: "not-an-email", Kind: "a", Age: 20}
	err = ValidateStruct(&badEmail)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")

	badEnum := sampleInput{Name: "Jo", Email: "jo@example.com", Kind: "z", Age: 20}
	err = ValidateStruct(&badEnum)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of")

	tooYoung := sampleInput{Name: "Jo", Email: "jo@example.com", Kind: "a", Age: 12}
	err = ValidateStruct(&tooYoung)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 18")
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  "))
	assert.Equal(t, "ab", SanitizeString("a\x00b"))
	assert.Equal(t, "line\nbreak", SanitizeString("line\nbreak"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.False(t, IsValidEmail("user@"))
	assert.False(t, IsValidEmail("plain"))
}
