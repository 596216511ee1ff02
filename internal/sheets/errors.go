package sheets

import (
	"errors"
	"fmt"
)

// ErrorKind tags a source failure so callers can tell a real outage apart
// from legitimately empty data. The old behavior of collapsing fetch errors
// into an empty result is gone on purpose.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindAuth              // bad or missing credentials
	KindNetwork           // source unreachable
	KindMalformed         // response or layout does not match the schema
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindNetwork:
		return "network"
	case KindMalformed:
		return "malformed"
	}
	return "unknown"
}

type SourceError struct {
	Kind ErrorKind
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("sheet source (%s): %v", e.Kind, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

func srcErr(kind ErrorKind, format string, args ...interface{}) *SourceError {
	return &SourceError{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the kind from any error in the chain, KindUnknown otherwise.
func KindOf(err error) ErrorKind {
	var se *SourceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}
