package biomart

import "errors"

var (
	// ErrNetwork is returned for transport failures (DNS, connection,
	// timeout) and for bodies that could not be read off the wire.
	ErrNetwork = errors.New("network error")

	// ErrService is returned when the server answers with a non-success
	// status or with an error payload such as "Query ERROR: ...".
	ErrService = errors.New("service error")

	// ErrParse is returned when a response body cannot be decoded into the
	// expected XML or tab-separated shape.
	ErrParse = errors.New("parse error")
)
