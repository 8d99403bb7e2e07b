package forms

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"merchdash/internal/models"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
)

// Field names as they appear in the request payload.
const (
	FieldBusinessName = "businessName"
	FieldMerchantName = "merchantName"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldStatus       = "status"
)

// ValidationErrors maps a field name to its message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, len(fields))
	for i, f := range fields {
		msgs[i] = v[f]
	}
	return strings.Join(msgs, "; ")
}

// Err returns v as an error, or nil when there are no problems.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// ValidateCreate checks a new merchant. Business name, merchant name, email
// and phone are required.
func ValidateCreate(req models.MerchantRequest) ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(req.BusinessName) == "" {
		errs[FieldBusinessName] = "Business name is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		errs[FieldEmail] = "Email is required"
	} else if msg := checkEmail(req.Email); msg != "" {
		errs[FieldEmail] = msg
	}
	if strings.TrimSpace(req.Phone) == "" {
		errs[FieldPhone] = "Phone number is required"
	} else if msg := checkPhone(req.Phone); msg != "" {
		errs[FieldPhone] = msg
	}
	if strings.TrimSpace(req.MerchantName) == "" {
		errs[FieldMerchantName] = "Merchant name is required"
	}
	if msg := checkStatus(req.Status); msg != "" {
		errs[FieldStatus] = msg
	}
	return errs
}

// ValidateUpdate checks an edit. Only the business name is required; email
// and phone are checked when present.
func ValidateUpdate(req models.MerchantRequest) ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(req.BusinessName) == "" {
		errs[FieldBusinessName] = "Business name is required"
	}
	if req.Email != "" {
		if msg := checkEmail(req.Email); msg != "" {
			errs[FieldEmail] = msg
		}
	}
	if req.Phone != "" {
		if msg := checkPhone(req.Phone); msg != "" {
			errs[FieldPhone] = msg
		}
	}
	if msg := checkStatus(req.Status); msg != "" {
		errs[FieldStatus] = msg
	}
	return errs
}

func checkEmail(s string) string {
	if !emailPattern.MatchString(s) {
		return "Invalid email format"
	}
	return ""
}

func checkPhone(s string) string {
	if !phonePattern.MatchString(s) {
		return "Invalid phone format"
	}
	return ""
}

func checkStatus(s string) string {
	if s == "" {
		return ""
	}
	for _, st := range models.MerchantStatuses {
		if s == st {
			return ""
		}
	}
	return fmt.Sprintf("Status must be one of %s", strings.Join(models.MerchantStatuses, ", "))
}
