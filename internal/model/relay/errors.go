package relay

import "errors"

// Kind classifies relay failures at the HTTP boundary.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindProvider
)

var (
	ErrValidation = errors.New("invalid message request")
	ErrProvider   = errors.New("completion provider failure")
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindProvider:
		return "provider"
	default:
		return "unknown"
	}
}

// Error carries a failure kind and its cause. Its text is the cause's text so
// clients see the provider or decoder message unchanged.
type Error struct {
	Kind Kind
	Err  error
}

// NewValidationError wraps a request decoding or validation failure.
func NewValidationError(err error) *Error {
	return &Error{Kind: KindValidation, Err: err}
}

// NewProviderError wraps a completion provider failure.
func NewProviderError(err error) *Error {
	return &Error{Kind: KindProvider, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String() + " error"
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrProvider:
		return e.Kind == KindProvider
	}
	return false
}

// KindOf reports the kind of err. Errors outside the closed set count as
// provider failures.
func KindOf(err error) Kind {
	var relayErr *Error
	if errors.As(err, &relayErr) {
		return relayErr.Kind
	}
	return KindProvider
}
