package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeTransport represents fetch/notify network failures
	ErrorTypeTransport ErrorType = "transport"
	// ErrorTypeExtraction represents page extraction failures
	ErrorTypeExtraction ErrorType = "extraction"
	// ErrorTypePersistence represents store read/write failures
	ErrorTypePersistence ErrorType = "persistence"
	// ErrorTypeNotification represents notification delivery failures
	ErrorTypeNotification ErrorType = "notification"
	// ErrorTypeValidation represents input validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// WatchError represents a failure inside the monitoring pipeline
type WatchError struct {
	Type      ErrorType
	Component string
	Message   string
	Err       error
	Time      time.Time
}

// Error implements the error interface
func (e *WatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Component, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Component, e.Message)
}

// Unwrap returns the underlying error
func (e *WatchError) Unwrap() error {
	return e.Err
}

// IsRecoverable reports whether the sweep can continue past this error.
// Only persistence writes and configuration problems warrant escalation.
func (e *WatchError) IsRecoverable() bool {
	switch e.Type {
	case ErrorTypeTransport, ErrorTypeExtraction, ErrorTypeNotification:
		return true
	default:
		return false
	}
}

// New creates a new WatchError
func New(errType ErrorType, component, message string, err error) *WatchError {
	return &WatchError{
		Type:      errType,
		Component: component,
		Message:   message,
		Err:       err,
		Time:      time.Now(),
	}
}

// NewTransport creates a new transport error
func NewTransport(component, message string, err error) *WatchError {
	return New(ErrorTypeTransport, component, message, err)
}

// NewExtraction creates a new extraction error
func NewExtraction(component, message string, err error) *WatchError {
	return New(ErrorTypeExtraction, component, message, err)
}

// NewPersistence creates a new persistence error
func NewPersistence(component, message string, err error) *WatchError {
	return New(ErrorTypePersistence, component, message, err)
}

// NewNotification creates a new notification error
func NewNotification(component, message string, err error) *WatchError {
	return New(ErrorTypeNotification, component, message, err)
}

// NewValidation creates a new validation error
func NewValidation(component, message string) *WatchError {
	return New(ErrorTypeValidation, component, message, nil)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *WatchError {
	return New(ErrorTypeConfiguration, "", message, err)
}
