// Package domain holds the identifier and principal types shared by every
// registry. Distinct named types keep cross-registry references explicit:
// a CourierID cannot be passed where a HospitalID is expected.
package domain

import (
	"strconv"

	dErrors "organledger/pkg/domain-errors"
)

// Registry record identifiers. All are positive sequential integers unique
// within their registry and never reused. Match, Recipient and Transport IDs
// are allocated by their stores; Hospital and Courier IDs are supplied by the
// caller at creation time.
type (
	MatchID     uint64
	RecipientID uint64
	HospitalID  uint64
	CourierID   uint64
	TransportID uint64
)

// Principal identifies an actor on the ledger. The contract owner is a
// Principal; so is each recipient's own identity. Principals are opaque
// strings compared for equality only.
type Principal string

// Zero reports whether the principal is unset.
func (p Principal) Zero() bool { return p == "" }

func (id MatchID) String() string     { return strconv.FormatUint(uint64(id), 10) }
func (id RecipientID) String() string { return strconv.FormatUint(uint64(id), 10) }
func (id HospitalID) String() string  { return strconv.FormatUint(uint64(id), 10) }
func (id CourierID) String() string   { return strconv.FormatUint(uint64(id), 10) }
func (id TransportID) String() string { return strconv.FormatUint(uint64(id), 10) }

// parseID enforces the shared invariant: IDs are positive base-10 integers.
func parseID(s, kind string) (uint64, error) {
	if s == "" {
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "%s id cannot be empty", kind)
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "%s id must be a positive integer", kind)
	}
	if v == 0 {
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "%s id must be positive", kind)
	}
	return v, nil
}

// ParseMatchID constructs a MatchID from external input.
func ParseMatchID(s string) (MatchID, error) {
	v, err := parseID(s, "match")
	return MatchID(v), err
}

// ParseRecipientID constructs a RecipientID from external input.
func ParseRecipientID(s string) (RecipientID, error) {
	v, err := parseID(s, "recipient")
	return RecipientID(v), err
}

// ParseHospitalID constructs a HospitalID from external input.
func ParseHospitalID(s string) (HospitalID, error) {
	v, err := parseID(s, "hospital")
	return HospitalID(v), err
}

// ParseCourierID constructs a CourierID from external input.
func ParseCourierID(s string) (CourierID, error) {
	v, err := parseID(s, "courier")
	return CourierID(v), err
}

// ParseTransportID constructs a TransportID from external input.
func ParseTransportID(s string) (TransportID, error) {
	v, err := parseID(s, "transport")
	return TransportID(v), err
}
