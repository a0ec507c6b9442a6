package lottery

import "errors"

var (
	ErrProviderUnavailable = errors.New("no wallet provider available")
	ErrUserRejected        = errors.New("user rejected the request")
	ErrCallReverted        = errors.New("contract call reverted")
	ErrNetwork             = errors.New("network error")
	ErrNotConnected        = errors.New("wallet not connected")
	ErrSubmissionInFlight  = errors.New("a previous submission is still pending")
)

// ChainError attaches one of the package sentinel errors to a raw provider or
// contract error. Error returns the raw message untouched so it can be shown
// to the user verbatim.
type ChainError struct {
	Kind error
	Err  error
}

func (e *ChainError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Err.Error()
}

func (e *ChainError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

var kinds = []error{ErrProviderUnavailable, ErrUserRejected, ErrCallReverted, ErrNetwork}

// Classify wraps err with kind. Already classified errors and nil are
// returned as they are.
func Classify(kind error, err error) error {
	if err == nil {
		return nil
	}
	for _, k := range kinds {
		if errors.Is(err, k) {
			return err
		}
	}
	return &ChainError{Kind: kind, Err: err}
}
