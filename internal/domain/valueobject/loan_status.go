package valueobject

import (
	"errors"
	"fmt"
)

// LoanStatus represents the lifecycle stage of a loan application.
type LoanStatus struct {
	value string
}

const (
	loanStatusPending     = "pending"
	loanStatusUnderReview = "under_review"
	loanStatusApproved    = "approved"
	loanStatusRejected    = "rejected"
)

var (
	LoanStatusPending     = LoanStatus{value: loanStatusPending}
	LoanStatusUnderReview = LoanStatus{value: loanStatusUnderReview}
	LoanStatusApproved    = LoanStatus{value: loanStatusApproved}
	LoanStatusRejected    = LoanStatus{value: loanStatusRejected}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusPending:     LoanStatusPending,
	loanStatusUnderReview: LoanStatusUnderReview,
	loanStatusApproved:    LoanStatusApproved,
	loanStatusRejected:    LoanStatusRejected,
}

// NewLoanStatus creates a LoanStatus from a raw string.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }

// IsDisposition reports whether the status is one an admin may set when
// dispositioning an application: approved, rejected, or under_review.
func (s LoanStatus) IsDisposition() bool {
	switch s.value {
	case loanStatusApproved, loanStatusRejected, loanStatusUnderReview:
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	// ErrInvalidStatus is returned when a disposition names a status outside
	// the approved / rejected / under_review set.
	ErrInvalidStatus = errors.New("invalid disposition status")
)
