package errors

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeConfiguration      ErrorCode = "CONFIGURATION"
	CodeRootModuleNotFound ErrorCode = "ROOT_MODULE_NOT_FOUND"
	CodeUnknownModule      ErrorCode = "UNKNOWN_MODULE"
	CodeScanFailed         ErrorCode = "SCAN_FAILED"
	CodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// Retryable reports whether a pass failing with c leaves the app usable, so
// the condition can be shown and another pass requested.
func (c ErrorCode) Retryable() bool {
	return c == CodeRootModuleNotFound
}

// DomainError carries one of the error codes above plus optional context
// that is rendered into the message.
type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
	Context map[string]interface{}
}

const (
	CtxPath      = "path"
	CtxModule    = "module"
	CtxOperation = "operation"
	CtxRoot      = "root"
)

func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func (e *DomainError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if len(e.Context) > 0 {
		msg += fmt.Sprintf(" %v", e.Context)
	}
	return msg
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, msg string) error {
	return &DomainError{Code: code, Message: msg}
}

func Newf(code ErrorCode, format string, args ...interface{}) error {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(err error, code ErrorCode, msg string) error {
	return &DomainError{Code: code, Message: msg, Err: err}
}

// AddContext attaches key/value context to err, promoting plain errors to
// CodeInternal domain errors.
func AddContext(err error, key string, value interface{}) error {
	var de *DomainError
	if errors.As(err, &de) {
		de.WithContext(key, value)
		return de
	}
	return &DomainError{
		Code:    CodeInternal,
		Message: "wrapped error",
		Err:     err,
		Context: map[string]interface{}{key: value},
	}
}

// CodeOf returns the code of the first DomainError in err's chain. Plain
// errors report CodeInternal and nil reports the empty code.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// IsCode checks if an error has a specific error code.
func IsCode(err error, code ErrorCode) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}
