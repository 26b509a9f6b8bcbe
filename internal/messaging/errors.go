package messaging

import "errors"

// PermanentError marks a handler failure that retrying cannot fix, such
// as a payload that does not unmarshal. The consumer commits past these
// instead of halting on them.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// Permanent wraps err so the consumer treats it as unretryable. Returns
// nil when err is nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

func IsPermanent(err error) bool {
	var p *PermanentError
	return errors.As(err, &p)
}
