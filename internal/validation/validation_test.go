package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ren89/property-listing-app/internal/validation"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, validation.ValidateEmail("user@example.com").OK)
	assert.True(t, validation.ValidateEmail("a@b.co").OK)

	res := validation.ValidateEmail("")
	assert.False(t, res.OK)
	assert.Equal(t, "Email is required", res.Error)

	res = validation.ValidateEmail("not-an-email")
	assert.False(t, res.OK)
	assert.Equal(t, "Please enter a valid email", res.Error)

	assert.False(t, validation.ValidateEmail("missing@domain").OK)
	assert.False(t, validation.ValidateEmail("spaces in@mail.com").OK)
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, validation.ValidatePassword("123456").OK)

	res := validation.ValidatePassword("")
	assert.False(t, res.OK)
	assert.Equal(t, "Password is required", res.Error)

	res = validation.ValidatePassword("12345")
	assert.False(t, res.OK)
	assert.Equal(t, "Password must be at least 6 characters", res.Error)
}

func TestValidateName(t *testing.T) {
	assert.True(t, validation.ValidateName("Al").OK)

	res := validation.ValidateName("")
	assert.False(t, res.OK)
	assert.Equal(t, "Name is required", res.Error)

	res = validation.ValidateName(" A ")
	assert.False(t, res.OK)
	assert.Equal(t, "Name must be at least 2 characters", res.Error)
}

func TestValidateRequired(t *testing.T) {
	assert.True(t, validation.ValidateRequired("x", "Title").OK)

	res := validation.ValidateRequired("   ", "Title")
	assert.False(t, res.OK)
	assert.Equal(t, "Title is required", res.Error)
}

func TestValidateLoginForm_CollectsAllErrors(t *testing.T) {
	res := validation.ValidateLoginForm("", "")
	assert.False(t, res.Valid)
	assert.Equal(t, "Email is required", res.Errors["email"])
	assert.Equal(t, "Password is required", res.Errors["password"])

	res = validation.ValidateLoginForm("user@example.com", "123456")
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidateSignupForm_CollectsAllErrors(t *testing.T) {
	res := validation.ValidateSignupForm("A", "bad-email", "12345")
	assert.False(t, res.Valid)
	assert.Equal(t, "Name must be at least 2 characters", res.Errors["name"])
	assert.Equal(t, "Please enter a valid email", res.Errors["email"])
	assert.Equal(t, "Password must be at least 6 characters", res.Errors["password"])

	res = validation.ValidateSignupForm("Ana", "ana@example.com", "secret1")
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}
