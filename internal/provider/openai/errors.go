package openai

import (
	"errors"

	"github.com/openai/openai-go"

	"github.com/mediaforge/mediaforge"
)

// wrapError categorizes an OpenAI SDK error by its HTTP status code.
// Non-API errors pass through untouched and fall to the network heuristics.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	code := apiErr.StatusCode
	msg := err.Error()

	switch categorizeStatusCode(code) {
	case mediaforge.ErrorTransient:
		return mediaforge.NewTransientError(msg, code, err)
	case mediaforge.ErrorUserInput:
		return mediaforge.NewUserInputError(msg, code, err)
	default:
		return mediaforge.NewPermanentError(msg, code, err)
	}
}

func categorizeStatusCode(code int) mediaforge.ErrorCategory {
	switch {
	case code == 429:
		return mediaforge.ErrorTransient
	case code >= 500 && code < 600:
		return mediaforge.ErrorTransient
	case code == 400 || code == 404 || code == 422:
		return mediaforge.ErrorUserInput
	default:
		return mediaforge.ErrorPermanent
	}
}
