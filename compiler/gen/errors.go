package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidDirective indicates a malformed or misplaced directive.
	ErrInvalidDirective = errors.New("boulder: invalid directive")
	// ErrUnresolved indicates a field type whose strategy cannot be resolved.
	ErrUnresolved = errors.New("boulder: unresolved field strategy")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("boulder: missing configuration")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("boulder: code generation failed")
	// ErrValidationFailed indicates a validation failure.
	ErrValidationFailed = errors.New("boulder: validation failed")
)

// DirectiveError represents a directive that cannot be parsed or applied.
type DirectiveError struct {
	Type      string // Record type name
	Field     string // Field name (if applicable)
	Directive string // Directive name (if applicable)
	Pos       string
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *DirectiveError) Error() string {
	var b strings.Builder
	b.WriteString("boulder: directive error")
	if e.Pos != "" {
		b.WriteString(" at ")
		b.WriteString(e.Pos)
	}
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Directive != "" {
		fmt.Fprintf(&b, " (%s)", e.Directive)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *DirectiveError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for DirectiveError.
func (e *DirectiveError) Is(target error) bool {
	return target == ErrInvalidDirective
}

// NewDirectiveError creates a new DirectiveError.
func NewDirectiveError(typeName, fieldName, directive, message string, cause error) *DirectiveError {
	return &DirectiveError{
		Type:      typeName,
		Field:     fieldName,
		Directive: directive,
		Message:   message,
		Cause:     cause,
	}
}

// ResolutionError reports a field whose type cannot be produced by the
// requested strategy: a missing nested builder, a misplaced wrapper layer or
// mismatched accessors.
type ResolutionError struct {
	Type    string
	Field   string
	Target  string // Type expression being resolved
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	var b strings.Builder
	b.WriteString("boulder: resolution error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Target != "" {
		fmt.Fprintf(&b, " (%s)", e.Target)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ResolutionError.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrUnresolved
}

// NewResolutionError creates a new ResolutionError.
func NewResolutionError(typeName, fieldName, target, message string) *ResolutionError {
	return &ResolutionError{
		Type:    typeName,
		Field:   fieldName,
		Target:  target,
		Message: message,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("boulder: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("boulder: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a code generation error.
type GenerationError struct {
	Phase   string // "render", "format", "write", etc.
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("boulder: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// ValidationError represents a validation error, e.g. two fields whose
// generated method names collide.
type ValidationError struct {
	Type    string
	Field   string
	Value   any
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("boulder: validation error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// NewValidationError creates a new ValidationError.
func NewValidationError(typeName, field string, value any, message string) *ValidationError {
	return &ValidationError{
		Type:    typeName,
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// IsDirectiveError reports whether the error is a DirectiveError.
func IsDirectiveError(err error) bool {
	var dirErr *DirectiveError
	return errors.As(err, &dirErr)
}

// IsResolutionError reports whether the error is a ResolutionError.
func IsResolutionError(err error) bool {
	var resErr *ResolutionError
	return errors.As(err, &resErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// IsValidationError reports whether the error is a ValidationError.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
