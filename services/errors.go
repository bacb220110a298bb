package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInput marks failures the caller can fix by sending a different picture.
	ErrInput = errors.New("invalid input")
	// ErrNoActiveDiet is returned when a classification arrives before any diet was selected.
	ErrNoActiveDiet = errors.New("no active diet type")
	// ErrNotFound is returned when a diet has neither meals nor workouts.
	ErrNotFound = errors.New("not found")
	// ErrBadInput is reported by Model backends when the host rejected the tensor itself.
	ErrBadInput = errors.New("model rejected input")
)

// DecodeError means the uploaded bytes are not a usable image.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode image: %s: %v", e.Reason, e.Err)
	}
	return "decode image: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrInput }

// InferenceError means the tensor could not be run through the model because of its content.
type InferenceError struct {
	Reason string
	Err    error
}

func (e *InferenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("inference: %s: %v", e.Reason, e.Err)
	}
	return "inference: " + e.Reason
}

func (e *InferenceError) Unwrap() error { return e.Err }

func (e *InferenceError) Is(target error) bool { return target == ErrInput }

// InternalError wraps store and model runtime failures. Its detail is logged, never returned to clients.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

func internal(op string, err error) error {
	return &InternalError{Op: op, Err: err}
}
