package serrors

import "fmt"

// Base is a coded error suitable for API envelopes: a stable machine code,
// a human message and an optional hint for the caller.
type Base struct {
	Code    string
	Message string
	Hint    string
}

func NewError(code, message, hint string) *Base {
	return &Base{Code: code, Message: message, Hint: hint}
}

func (e *Base) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Hint)
}

// WithHint returns a copy carrying a call-site hint. The copy compares
// equal to the original under errors.Is.
func (e *Base) WithHint(format string, args ...any) *Base {
	return &Base{
		Code:    e.Code,
		Message: e.Message,
		Hint:    fmt.Sprintf(format, args...),
	}
}

func (e *Base) Is(target error) bool {
	other, ok := target.(*Base)
	if !ok {
		return false
	}
	return other.Code == e.Code
}
