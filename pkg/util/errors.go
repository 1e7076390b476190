// Package util provides logging helpers and common error types.
package util

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for failure classification
var (
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrInvalidMode      = errors.New("invalid configuration mode")
	ErrDuplicateKey     = errors.New("duplicate channel key")
	ErrNotInPlan        = errors.New("channel not in channel plan")
	ErrTransport        = errors.New("transport failure")
	ErrDeclined         = errors.New("confirmation declined")
	ErrNotConnected     = errors.New("device not connected")
	ErrValidationFailed = errors.New("validation failed")
)

// ConfigError reports a malformed or missing field in a configuration file
type ConfigError struct {
	Device string
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("device %s: field %s: %s", e.Device, e.Field, e.Reason)
	if e.Device == "" {
		msg = fmt.Sprintf("field %s: %s", e.Field, e.Reason)
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// NewConfigError creates a configuration error with device and field context
func NewConfigError(device, field, reason string) *ConfigError {
	return &ConfigError{Device: device, Field: field, Reason: reason}
}

// ModeError reports a mode value outside merge/replace
type ModeError struct {
	Device string
	Mode   string
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("device %s: mode %q is not valid (use merge or replace)", e.Device, e.Mode)
}

func (e *ModeError) Unwrap() error {
	return ErrInvalidMode
}

// DuplicateKeyError reports a channel identity collision within one list
type DuplicateKeyError struct {
	Scope string // "desired" or "current"
	Key   string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate channel key %s in %s list", e.Key, e.Scope)
}

func (e *DuplicateKeyError) Unwrap() error {
	return ErrDuplicateKey
}

// PlanError reports a channel that does not match any channel-plan entry
type PlanError struct {
	Channel string // channel name or frequency description
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("channel %s not found in the channel plan", e.Channel)
}

func (e *PlanError) Unwrap() error {
	return ErrNotInPlan
}

// TransportError reports an external transport failure with device context
type TransportError struct {
	Device string
	Op     string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("device %s: %s: %v", e.Device, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return ErrTransport
}

// Cause returns the underlying transport failure
func (e *TransportError) Cause() error {
	return e.Err
}

// NewTransportError wraps a transport failure with device and operation context
func NewTransportError(device, op string, err error) *TransportError {
	return &TransportError{Device: device, Op: op, Err: err}
}

// ValidationError represents one or more validation failures
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "validation failed: " + e.Errors[0]
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a validation error from messages
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Errors: messages}
}

// ValidationBuilder helps accumulate validation errors
type ValidationBuilder struct {
	errors []string
}

// Add adds an error message if condition is false
func (v *ValidationBuilder) Add(condition bool, message string) *ValidationBuilder {
	if !condition {
		v.errors = append(v.errors, message)
	}
	return v
}

// AddError adds an error message unconditionally
func (v *ValidationBuilder) AddError(message string) *ValidationBuilder {
	v.errors = append(v.errors, message)
	return v
}

// AddErrorf adds a formatted error message
func (v *ValidationBuilder) AddErrorf(format string, args ...interface{}) *ValidationBuilder {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
	return v
}

// HasErrors returns true if there are validation errors
func (v *ValidationBuilder) HasErrors() bool {
	return len(v.errors) > 0
}

// Build returns the validation error or nil if no errors
func (v *ValidationBuilder) Build() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errors}
}
