package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// SubmitLoanRequest carries a customer's loan application.
// InterestRate, when non-nil, is a caller-supplied quoted rate that is
// honored verbatim instead of resolving from settings, so that the EMI shown
// at quote time matches what gets persisted.
type SubmitLoanRequest struct {
	OwnerID      string           `json:"-"`
	LoanType     string           `json:"loan_type"`
	Principal    decimal.Decimal  `json:"amount"`
	Purpose      string           `json:"purpose"`
	TenureMonths int              `json:"tenure_months"`
	InterestRate *decimal.Decimal `json:"interest_rate,omitempty"`
}

// QuoteRequest asks for repayment figures without persisting anything.
type QuoteRequest struct {
	LoanType     string           `json:"loan_type"`
	Principal    decimal.Decimal  `json:"amount"`
	TenureMonths int              `json:"tenure_months"`
	InterestRate *decimal.Decimal `json:"interest_rate,omitempty"`
	WithSchedule bool             `json:"with_schedule,omitempty"`
}

// DispositionRequest carries an admin decision on a loan application.
type DispositionRequest struct {
	LoanID  string `json:"-"`
	ActorID string `json:"-"`
	Status  string `json:"status"`
	Notes   string `json:"admin_notes,omitempty"`
}

// UpdateRatesRequest carries a full replacement of the rate override table.
type UpdateRatesRequest struct {
	ActorID string             `json:"-"`
	Rates   map[string]float64 `json:"interest_rates"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// LoanResponse is the transport-neutral representation of a loan application.
type LoanResponse struct {
	ID                 string          `json:"id"`
	OwnerID            string          `json:"owner_id"`
	LoanType           string          `json:"loan_type"`
	Principal          decimal.Decimal `json:"amount"`
	Purpose            string          `json:"purpose"`
	TenureMonths       int             `json:"tenure_months"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	TotalPayable       decimal.Decimal `json:"total_payable"`
	TotalInterest      decimal.Decimal `json:"total_interest"`
	Status             string          `json:"status"`
	AdminNotes         string          `json:"admin_notes,omitempty"`
	AppliedAt          time.Time       `json:"applied_at"`
	ProcessedAt        *time.Time      `json:"processed_at,omitempty"`
}

// FromLoanApplication converts an aggregate into its response form.
func FromLoanApplication(app model.LoanApplication) LoanResponse {
	resp := LoanResponse{
		ID:                 app.ID(),
		OwnerID:            app.OwnerID(),
		LoanType:           app.LoanType().String(),
		Principal:          app.Principal(),
		Purpose:            app.Purpose(),
		TenureMonths:       app.TenureMonths(),
		InterestRate:       app.InterestRate(),
		MonthlyInstallment: app.MonthlyInstallment(),
		TotalPayable:       app.TotalPayable(),
		TotalInterest:      app.TotalInterest(),
		Status:             app.Status().String(),
		AdminNotes:         app.AdminNotes(),
		AppliedAt:          app.AppliedAt(),
	}
	if app.IsProcessed() {
		t := app.ProcessedAt()
		resp.ProcessedAt = &t
	}
	return resp
}

// FromLoanApplications converts a slice of aggregates.
func FromLoanApplications(apps []model.LoanApplication) []LoanResponse {
	out := make([]LoanResponse, len(apps))
	for i, app := range apps {
		out[i] = FromLoanApplication(app)
	}
	return out
}

// ScheduleEntryResponse is one period of an amortization schedule.
type ScheduleEntryResponse struct {
	Period           int             `json:"period"`
	DueDate          time.Time       `json:"due_date"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// QuoteResponse carries repayment figures for a prospective loan.
type QuoteResponse struct {
	LoanType           string                  `json:"loan_type"`
	Principal          decimal.Decimal         `json:"amount"`
	TenureMonths       int                     `json:"tenure_months"`
	InterestRate       decimal.Decimal         `json:"interest_rate"`
	MonthlyInstallment decimal.Decimal         `json:"monthly_installment"`
	TotalPayable       decimal.Decimal         `json:"total_payable"`
	TotalInterest      decimal.Decimal         `json:"total_interest"`
	Schedule           []ScheduleEntryResponse `json:"schedule,omitempty"`
}

// StatsResponse aggregates loan applications for dashboards.
type StatsResponse struct {
	Total             int             `json:"total_loans"`
	Pending           int             `json:"pending_loans"`
	UnderReview       int             `json:"under_review_loans"`
	Approved          int             `json:"approved_loans"`
	Rejected          int             `json:"rejected_loans"`
	TotalDisbursed    decimal.Decimal `json:"total_disbursed"`
	AverageAmount     decimal.Decimal `json:"average_amount"`
	TotalCustomers    int             `json:"total_customers,omitempty"`
	TodayApplications int             `json:"today_applications,omitempty"`
}

// FromLoanStats converts domain stats into their response form.
func FromLoanStats(s model.LoanStats) StatsResponse {
	return StatsResponse{
		Total:          s.Total,
		Pending:        s.Pending,
		UnderReview:    s.UnderReview,
		Approved:       s.Approved,
		Rejected:       s.Rejected,
		TotalDisbursed: s.TotalDisbursed,
		AverageAmount:  s.AverageAmount,
	}
}

// DailyCountResponse is one day of the applications-over-time series.
type DailyCountResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// AnalyticsResponse is the admin analytics view.
type AnalyticsResponse struct {
	StatusBreakdown      map[string]int       `json:"status_breakdown"`
	LoanTypeBreakdown    map[string]int       `json:"loan_type_breakdown"`
	ApplicationsOverTime []DailyCountResponse `json:"applications_over_time"`
	ApprovalRate         float64              `json:"approval_rate"`
}

// FromLoanAnalytics converts domain analytics into their response form.
func FromLoanAnalytics(a model.LoanAnalytics) AnalyticsResponse {
	out := AnalyticsResponse{
		StatusBreakdown:      a.StatusBreakdown,
		LoanTypeBreakdown:    a.TypeBreakdown,
		ApplicationsOverTime: make([]DailyCountResponse, len(a.Daily)),
		ApprovalRate:         a.ApprovalRate,
	}
	for i, d := range a.Daily {
		out.ApplicationsOverTime[i] = DailyCountResponse{Date: d.Date, Count: d.Count}
	}
	return out
}

// RatesResponse is the effective rate table.
type RatesResponse struct {
	InterestRates map[string]decimal.Decimal `json:"interest_rates"`
}

// ---------------------------------------------------------------------------
// User DTOs
// ---------------------------------------------------------------------------

// RegisterRequest creates a new customer account.
type RegisterRequest struct {
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Password     string          `json:"password"`
	Phone        string          `json:"phone,omitempty"`
	Occupation   string          `json:"occupation,omitempty"`
	AnnualIncome decimal.Decimal `json:"annual_income,omitempty"`
}

// LoginRequest authenticates a user.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest mutates a user's own profile.
type UpdateProfileRequest struct {
	UserID       string          `json:"-"`
	Name         string          `json:"name,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	Occupation   string          `json:"occupation,omitempty"`
	AnnualIncome decimal.Decimal `json:"annual_income,omitempty"`
	DateOfBirth  string          `json:"date_of_birth,omitempty"`
	Address      string          `json:"address,omitempty"`
	Company      string          `json:"company,omitempty"`
}

// CreateUserRequest is the admin form for creating any account.
type CreateUserRequest struct {
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Password     string          `json:"password"`
	Role         string          `json:"role,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	Occupation   string          `json:"occupation,omitempty"`
	AnnualIncome decimal.Decimal `json:"annual_income,omitempty"`
}

// UserResponse is the transport-neutral representation of an account.
// The password hash never leaves the application layer.
type UserResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Role         string          `json:"role"`
	Phone        string          `json:"phone,omitempty"`
	Occupation   string          `json:"occupation,omitempty"`
	AnnualIncome decimal.Decimal `json:"annual_income,omitempty"`
	DateOfBirth  string          `json:"date_of_birth,omitempty"`
	Address      string          `json:"address,omitempty"`
	Company      string          `json:"company,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// FromUser converts a user record into its response form.
func FromUser(u model.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Phone:        u.Phone,
		Occupation:   u.Occupation,
		AnnualIncome: u.AnnualIncome,
		DateOfBirth:  u.DateOfBirth,
		Address:      u.Address,
		Company:      u.Company,
		CreatedAt:    u.CreatedAt,
	}
}

// FromUsers converts a slice of user records.
func FromUsers(users []model.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = FromUser(u)
	}
	return out
}

// AuthResponse is returned on successful login or registration.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CustomerDetailResponse is the admin view of one customer: the account,
// their applications, and the aggregates over them.
type CustomerDetailResponse struct {
	User  UserResponse   `json:"user"`
	Loans []LoanResponse `json:"loans"`
	Stats StatsResponse  `json:"stats"`
}
