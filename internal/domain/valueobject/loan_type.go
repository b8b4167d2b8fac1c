package valueobject

import "fmt"

// LoanType represents the product category of a loan application.
type LoanType struct {
	value string
}

const (
	loanTypePersonal  = "personal"
	loanTypeHome      = "home"
	loanTypeCar       = "car"
	loanTypeEducation = "education"
	loanTypeBusiness  = "business"
)

var (
	LoanTypePersonal  = LoanType{value: loanTypePersonal}
	LoanTypeHome      = LoanType{value: loanTypeHome}
	LoanTypeCar       = LoanType{value: loanTypeCar}
	LoanTypeEducation = LoanType{value: loanTypeEducation}
	LoanTypeBusiness  = LoanType{value: loanTypeBusiness}
)

var validLoanTypes = map[string]LoanType{
	loanTypePersonal:  LoanTypePersonal,
	loanTypeHome:      LoanTypeHome,
	loanTypeCar:       LoanTypeCar,
	loanTypeEducation: LoanTypeEducation,
	loanTypeBusiness:  LoanTypeBusiness,
}

// NewLoanType creates a LoanType from a raw string.
func NewLoanType(s string) (LoanType, error) {
	v, ok := validLoanTypes[s]
	if !ok {
		return LoanType{}, fmt.Errorf("invalid loan type: %q", s)
	}
	return v, nil
}

// AllLoanTypes returns every defined loan type.
func AllLoanTypes() []LoanType {
	return []LoanType{
		LoanTypePersonal,
		LoanTypeHome,
		LoanTypeCar,
		LoanTypeEducation,
		LoanTypeBusiness,
	}
}

// String returns the string representation of the loan type.
func (t LoanType) String() string { return t.value }

// IsZero returns true if the loan type has not been initialised.
func (t LoanType) IsZero() bool { return t.value == "" }

// Equal returns true when both loan types carry the same value.
func (t LoanType) Equal(other LoanType) bool { return t.value == other.value }
