package ai

import "errors"

var (
	ErrEmptyPrompt   = errors.New("prompt is empty")
	ErrPromptTooLong = errors.New("prompt too long")
	ErrUpstream      = errors.New("text provider unavailable")
)
