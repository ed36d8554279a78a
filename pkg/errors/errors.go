package errors

import (
	"errors"
	"fmt"
)

// VMListError indicates the VM list input is missing or unreadable.
// This is fatal; the run aborts before any report entry is produced.
type VMListError struct {
	Path string
	Err  error
}

func NewVMListError(path string, err error) *VMListError {
	return &VMListError{Path: path, Err: err}
}

func (e *VMListError) Error() string {
	return fmt.Sprintf("vm list %q: %v", e.Path, e.Err)
}

func (e *VMListError) Unwrap() error {
	return e.Err
}

// IsVMListError checks if the error is a VMListError.
func IsVMListError(err error) bool {
	var e *VMListError
	return errors.As(err, &e)
}

// AuthenticationError indicates the ambient Azure session could not be
// established or could not obtain an ARM token. Fatal.
type AuthenticationError struct {
	Err error
}

func NewAuthenticationError(err error) *AuthenticationError {
	return &AuthenticationError{Err: err}
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// IsAuthenticationError checks if the error is an AuthenticationError.
func IsAuthenticationError(err error) bool {
	var e *AuthenticationError
	return errors.As(err, &e)
}

// NoValidContextsError indicates subscription enumeration yielded no
// context with a canonical UUID id. Fatal; no report is produced.
type NoValidContextsError struct{}

func NewNoValidContextsError() *NoValidContextsError {
	return &NoValidContextsError{}
}

func (e *NoValidContextsError) Error() string {
	return "no valid account contexts available"
}

// IsNoValidContextsError checks if the error is a NoValidContextsError.
func IsNoValidContextsError(err error) bool {
	var e *NoValidContextsError
	return errors.As(err, &e)
}

// VMNotFoundError indicates a VM identifier did not resolve inside one
// account context. Recoverable; the search continues with other contexts.
type VMNotFoundError struct {
	Name string
}

func NewVMNotFoundError(name string) *VMNotFoundError {
	return &VMNotFoundError{Name: name}
}

func (e *VMNotFoundError) Error() string {
	return fmt.Sprintf("vm %q not found", e.Name)
}

// IsVMNotFoundError checks if the error is a VMNotFoundError.
func IsVMNotFoundError(err error) bool {
	var e *VMNotFoundError
	return errors.As(err, &e)
}

// ContextUnavailableError indicates a per-subscription client set could not
// be constructed. Recoverable; the context is skipped for the current VM.
type ContextUnavailableError struct {
	ContextID string
	Err       error
}

func NewContextUnavailableError(contextID string, err error) *ContextUnavailableError {
	return &ContextUnavailableError{ContextID: contextID, Err: err}
}

func (e *ContextUnavailableError) Error() string {
	return fmt.Sprintf("account context %s unavailable: %v", e.ContextID, e.Err)
}

func (e *ContextUnavailableError) Unwrap() error {
	return e.Err
}

// IsContextUnavailableError checks if the error is a ContextUnavailableError.
func IsContextUnavailableError(err error) bool {
	var e *ContextUnavailableError
	return errors.As(err, &e)
}

// ProviderError carries the provider's message verbatim. Snapshot-creation
// failures are recorded as Failed report entries with exactly this message.
type ProviderError struct {
	msg string
}

func NewProviderError(err error) *ProviderError {
	return &ProviderError{msg: err.Error()}
}

func (e *ProviderError) Error() string {
	return e.msg
}

// IsProviderError checks if the error is a ProviderError.
func IsProviderError(err error) bool {
	var e *ProviderError
	return errors.As(err, &e)
}
