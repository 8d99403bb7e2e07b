package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"merchdash/internal/models"
)

func validCreate() models.MerchantRequest {
	return models.MerchantRequest{
		BusinessName: "Acme Coffee LLC",
		MerchantName: "Acme Coffee",
		Email:        "ops@acme.example",
		Phone:        "+1 (555) 010-2030",
		Status:       "active",
	}
}

func TestValidateCreate(t *testing.T) {
	assert.Empty(t, ValidateCreate(validCreate()))
	assert.NoError(t, ValidateCreate(validCreate()).Err())

	errs := ValidateCreate(models.MerchantRequest{})
	assert.Equal(t, ValidationErrors{
		FieldBusinessName: "Business name is required",
		FieldMerchantName: "Merchant name is required",
		FieldEmail:        "Email is required",
		FieldPhone:        "Phone number is required",
	}, errs)
	assert.Error(t, errs.Err())
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name  string
		email string
		phone string
		field string
		msg   string
	}{
		{"email without at", "acme.example", "5550102", FieldEmail, "Invalid email format"},
		{"email without dot", "ops@acme", "5550102", FieldEmail, "Invalid email format"},
		{"email with space", "o ps@acme.io", "5550102", FieldEmail, "Invalid email format"},
		{"phone with letters", "ops@acme.io", "555-CALL", FieldPhone, "Invalid phone format"},
		{"phone plus in middle", "ops@acme.io", "55+5", FieldPhone, "Invalid phone format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			req.Email = tt.email
			req.Phone = tt.phone
			errs := ValidateCreate(req)
			assert.Len(t, errs, 1)
			assert.Equal(t, tt.msg, errs[tt.field])
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	assert.Empty(t, ValidateUpdate(models.MerchantRequest{BusinessName: "Acme"}))

	errs := ValidateUpdate(models.MerchantRequest{Email: "bad", Phone: "x", Status: "closed"})
	assert.Equal(t, "Business name is required", errs[FieldBusinessName])
	assert.Equal(t, "Invalid email format", errs[FieldEmail])
	assert.Equal(t, "Invalid phone format", errs[FieldPhone])
	assert.Contains(t, errs[FieldStatus], "active, inactive, suspended, pending")
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{FieldPhone: "Invalid phone format", FieldEmail: "Invalid email format"}
	assert.Equal(t, "Invalid email format; Invalid phone format", errs.Error())
}

func TestSurveyValidators(t *testing.T) {
	assert.Error(t, Required("Merchant name is required")("  "))
	assert.NoError(t, Required("Merchant name is required")("Acme"))

	assert.NoError(t, Email(true)(""))
	assert.EqualError(t, Email(false)(""), "Email is required")
	assert.EqualError(t, Email(true)("nope"), "Invalid email format")

	assert.NoError(t, Phone(true)(""))
	assert.NoError(t, Phone(false)("+44 20 7946 0958"))
	assert.EqualError(t, Phone(false)("call me"), "Invalid phone format")
}
