package fetch

import (
	"context"
	"errors"

	"merchdash/internal/api"
)

// ErrorMessage turns a fetch error into the text shown to the user. The API
// body message wins over transport detail.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	switch {
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	}
	return err.Error()
}
