package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailRule(t *testing.T) {
	assert.Equal(t, "", ValidateField(FieldEmail, "a@gmail.com", OnChange))
	assert.Equal(t, "", ValidateField(FieldEmail, "a@gmail.com", OnSubmit))

	assert.Equal(t, "Email must end with @gmail.com", ValidateField(FieldEmail, "a@yahoo.com", OnChange))
	assert.Equal(t, "Only @gmail.com emails are allowed", ValidateField(FieldEmail, "a@yahoo.com", OnSubmit))
	assert.Equal(t, "Only @gmail.com emails are allowed", ValidateField(FieldEmail, "a@gmail.com.au", OnSubmit))

	assert.Equal(t, "", ValidateField(FieldEmail, "", OnChange))
	assert.Equal(t, "Email is required", ValidateField(FieldEmail, "", OnSubmit))
}

func TestPasswordRule(t *testing.T) {
	assert.Equal(t, "Password must be at least 7 characters", ValidateField(FieldPassword, "abcdef", OnChange))
	assert.Equal(t, "Password must be at least 7 characters", ValidateField(FieldPassword, "abcdef", OnSubmit))
	assert.Equal(t, "", ValidateField(FieldPassword, "abcdefg", OnSubmit))

	// characters, not bytes
	assert.Equal(t, "Password must be at least 7 characters", ValidateField(FieldPassword, "ñññññ", OnSubmit))
	assert.Equal(t, "", ValidateField(FieldPassword, "ñññññññ", OnSubmit))

	assert.Equal(t, "", ValidateField(FieldPassword, "", OnChange))
	assert.Equal(t, "Password is required", ValidateField(FieldPassword, "", OnSubmit))
}

func TestNameRule(t *testing.T) {
	assert.Equal(t, "Name is required", ValidateField(FieldName, "", OnChange))
	assert.Equal(t, "Name is required", ValidateField(FieldName, "", OnSubmit))
	assert.Equal(t, "", ValidateField(FieldName, "Ana", OnSubmit))
}

func TestValidateSignUpReportsAllFields(t *testing.T) {
	errs := ValidateSignUp(SignUp{})
	assert.Equal(t, FieldErrors{
		FieldName:     "Name is required",
		FieldEmail:    "Email is required",
		FieldPassword: "Password is required",
	}, errs)
	assert.Equal(t, "Name is required; Email is required; Password is required", errs.Error())

	errs = ValidateSignUp(SignUp{Name: "Ana", Email: "ana@yahoo.com", Password: "short"})
	assert.Equal(t, FieldErrors{
		FieldEmail:    "Only @gmail.com emails are allowed",
		FieldPassword: "Password must be at least 7 characters",
	}, errs)

	assert.Nil(t, ValidateSignUp(SignUp{Name: "Ana", Email: "ana@gmail.com", Password: "abcdefg"}))
}

func TestValidateSignIn(t *testing.T) {
	assert.ErrorIs(t, ValidateSignIn(SignIn{Email: "ana@gmail.com"}), ErrSignInRequired)
	assert.ErrorIs(t, ValidateSignIn(SignIn{Password: "x"}), ErrSignInRequired)
	assert.NoError(t, ValidateSignIn(SignIn{Email: "anyone@example.com", Password: "x"}))
}

func TestRegistrationMessage(t *testing.T) {
	assert.Equal(t, "Email already registered", RegistrationMessage("Email already registered"))
	assert.Equal(t, RegistrationFallback, RegistrationMessage(""))
}

func TestUnknownField(t *testing.T) {
	assert.Equal(t, "", ValidateField(Field("age"), "", OnSubmit))
}
