package forms

import (
	"errors"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// Survey validators built on the same rules as ValidateCreate/ValidateUpdate,
// so prompts reject bad input before the form is submitted.

func answer(ans interface{}) string {
	s, _ := ans.(string)
	return strings.TrimSpace(s)
}

func Required(message string) survey.Validator {
	return func(ans interface{}) error {
		if answer(ans) == "" {
			return errors.New(message)
		}
		return nil
	}
}

// Email validates a required email unless optional is set, in which case
// an empty answer passes.
func Email(optional bool) survey.Validator {
	return func(ans interface{}) error {
		s := answer(ans)
		if s == "" {
			if optional {
				return nil
			}
			return errors.New("Email is required")
		}
		if msg := checkEmail(s); msg != "" {
			return errors.New(msg)
		}
		return nil
	}
}

func Phone(optional bool) survey.Validator {
	return func(ans interface{}) error {
		s := answer(ans)
		if s == "" {
			if optional {
				return nil
			}
			return errors.New("Phone number is required")
		}
		if msg := checkPhone(s); msg != "" {
			return errors.New(msg)
		}
		return nil
	}
}
