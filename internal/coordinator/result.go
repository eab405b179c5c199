package coordinator

import (
	"strconv"

	dErrors "organledger/pkg/domain-errors"
)

// FailureCode is the stable numeric taxonomy every rejected operation maps
// onto. The numbers are part of the public contract and never change.
type FailureCode int

const (
	// FailureInternal is outside the taxonomy: an infrastructure fault,
	// not a domain rejection. Transports surface it as a server error.
	FailureInternal FailureCode = 0
	// FailureUnauthorized: caller is not the contract owner.
	FailureUnauthorized FailureCode = 1
	// FailureNotFound: a referenced record does not resolve.
	FailureNotFound FailureCode = 2
	// FailureInvalid: malformed input or a record not in a state that
	// permits the transition. Both share one code; the message carries
	// the distinction.
	FailureInvalid FailureCode = 3
)

func (f FailureCode) String() string { return strconv.Itoa(int(f)) }

// FailureCodeOf maps a domain error onto the numeric taxonomy.
func FailureCodeOf(err error) FailureCode {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeUnauthorized:
		return FailureUnauthorized
	case dErrors.CodeNotFound:
		return FailureNotFound
	case dErrors.CodeInvalidInput, dErrors.CodeInvalidState, dErrors.CodeConflict:
		return FailureInvalid
	default:
		return FailureInternal
	}
}
