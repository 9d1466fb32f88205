package config

import (
	"errors"
	"strings"
)

type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// Validate reports settings the widget cannot start with.
func (s *Settings) Validate() error {
	var problems []string

	if s.Auth.LtuidV2 == "" || s.Auth.LtokenV2 == "" || s.Auth.CookieTokenV2 == "" || s.Auth.AccountMidV2 == "" {
		problems = append(problems, "Authentication details are missing in "+s.displayPath())
	}
	if s.Display.WordWrap && s.Display.FitWindowToText {
		problems = append(problems, "Both 'word_wrap' and 'fit_window_to_text' cannot be enabled simultaneously.")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func (s *Settings) displayPath() string {
	if s.path == "" {
		return "settings"
	}
	return s.path
}

func AsValidationError(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
