package service

import (
	"context"
	"errors"
	"fmt"
)

// CompletionClient abstracts the chat-completion provider that turns a
// prompt into free text.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrCompletion marks every failure of the completion call.
var ErrCompletion = errors.New("completion failed")

// ErrEmptyCompletion is returned when the provider answers without content.
var ErrEmptyCompletion = errors.New("no completion choices returned")

// CompletionError carries the provider failure across the service boundary.
// errors.Is(err, ErrCompletion) holds for every CompletionError.
type CompletionError struct {
	Provider string
	Err      error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrCompletion, e.Provider, e.Err)
}

func (e *CompletionError) Unwrap() []error { return []error{ErrCompletion, e.Err} }
