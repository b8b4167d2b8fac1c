package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/model"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/port"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/valueobject"
)

const loanColumns = `
	id, owner_id, loan_type, amount, purpose, tenure_months,
	interest_rate, monthly_installment, total_payable,
	status, admin_notes, processed_by, applied_at, processed_at
`

// LoanRepo implements port.LoanStore backed by PostgreSQL.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a new repository backed by PostgreSQL.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

// Insert persists a freshly submitted application.
func (r *LoanRepo) Insert(ctx context.Context, app model.LoanApplication) error {
	query := `
		INSERT INTO loans (
			id, owner_id, loan_type, amount, purpose, tenure_months,
			interest_rate, monthly_installment, total_payable,
			status, admin_notes, processed_by, applied_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`
	_, err := r.pool.Exec(ctx, query,
		app.ID(), app.OwnerID(), app.LoanType().String(),
		app.Principal(), app.Purpose(), app.TenureMonths(),
		app.InterestRate(), app.MonthlyInstallment(), app.TotalPayable(),
		app.Status().String(), app.AdminNotes(), app.ProcessedBy(),
		app.AppliedAt(),
	)
	if err != nil {
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

// FindByID retrieves a single application.
func (r *LoanRepo) FindByID(ctx context.Context, id string) (model.LoanApplication, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	app, err := scanLoan(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.LoanApplication{}, port.ErrNotFound
	}
	return app, err
}

// FindByOwner retrieves all applications of one owner, newest first.
func (r *LoanRepo) FindByOwner(ctx context.Context, ownerID string) ([]model.LoanApplication, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE owner_id = $1 ORDER BY applied_at DESC`
	return r.scanMany(ctx, query, ownerID)
}

// FindAll retrieves applications matching the filter, newest first.
func (r *LoanRepo) FindAll(ctx context.Context, filter port.LoanFilter) ([]model.LoanApplication, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.LoanType != "" {
		args = append(args, filter.LoanType)
		conds = append(conds, fmt.Sprintf("loan_type = $%d", len(args)))
	}

	query := `SELECT ` + loanColumns + ` FROM loans`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY applied_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	return r.scanMany(ctx, query, args...)
}

// UpdateStatus records an admin decision against one row. Last writer wins:
// the update is unconditional on the current status.
func (r *LoanRepo) UpdateStatus(
	ctx context.Context,
	id string,
	status valueobject.LoanStatus,
	actorID, notes string,
	processedAt time.Time,
) (bool, error) {
	query := `
		UPDATE loans
		SET status = $2, admin_notes = $3, processed_by = $4, processed_at = $5
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, status.String(), notes, actorID, processedAt)
	if err != nil {
		return false, fmt.Errorf("update loan status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// AggregateStats computes the dashboard aggregates in one round trip.
func (r *LoanRepo) AggregateStats(ctx context.Context) (model.LoanStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'under_review'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'rejected'),
			COALESCE(SUM(amount) FILTER (WHERE status = 'approved'), 0),
			COALESCE(AVG(amount), 0),
			COUNT(*) FILTER (WHERE applied_at >= date_trunc('day', now()))
		FROM loans
	`
	var stats model.LoanStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.Total, &stats.Pending, &stats.UnderReview,
		&stats.Approved, &stats.Rejected,
		&stats.TotalDisbursed, &stats.AverageAmount,
		&stats.TodayApplications,
	)
	if err != nil {
		return model.LoanStats{}, fmt.Errorf("aggregate loan stats: %w", err)
	}
	return stats, nil
}

// Analytics aggregates the admin analytics view: per-status and per-type
// breakdowns over every application, and daily application volume from since
// onward.
func (r *LoanRepo) Analytics(ctx context.Context, since time.Time) (model.LoanAnalytics, error) {
	a := model.LoanAnalytics{
		StatusBreakdown: make(map[string]int),
		TypeBreakdown:   make(map[string]int),
	}

	if err := r.countBy(ctx, `SELECT status, COUNT(*) FROM loans GROUP BY status`, a.StatusBreakdown); err != nil {
		return model.LoanAnalytics{}, fmt.Errorf("status breakdown: %w", err)
	}
	if err := r.countBy(ctx, `SELECT loan_type, COUNT(*) FROM loans GROUP BY loan_type`, a.TypeBreakdown); err != nil {
		return model.LoanAnalytics{}, fmt.Errorf("loan type breakdown: %w", err)
	}

	query := `
		SELECT to_char(date_trunc('day', applied_at), 'YYYY-MM-DD'), COUNT(*)
		FROM loans
		WHERE applied_at >= $1
		GROUP BY 1
		ORDER BY 1
	`
	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return model.LoanAnalytics{}, fmt.Errorf("applications over time: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var dc model.DailyCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return model.LoanAnalytics{}, fmt.Errorf("scan daily count: %w", err)
		}
		a.Daily = append(a.Daily, dc)
	}
	if err := rows.Err(); err != nil {
		return model.LoanAnalytics{}, fmt.Errorf("applications over time: %w", err)
	}

	total := 0
	for _, n := range a.StatusBreakdown {
		total += n
	}
	approved := a.StatusBreakdown[valueobject.LoanStatusApproved.String()]
	a.ApprovalRate = model.ApprovalRatePercent(approved, total)
	return a, nil
}

func (r *LoanRepo) countBy(ctx context.Context, query string, dest map[string]int) error {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			key   string
			count int
		)
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		dest[key] = count
	}
	return rows.Err()
}

// ---------------------------------------------------------------------------
// scan helpers
// ---------------------------------------------------------------------------

type scannable interface {
	Scan(dest ...any) error
}

func (r *LoanRepo) scanMany(ctx context.Context, query string, args ...any) ([]model.LoanApplication, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var result []model.LoanApplication
	for rows.Next() {
		app, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

func scanLoan(s scannable) (model.LoanApplication, error) {
	var (
		id, ownerID, loanTypeStr                    string
		amount, rate, installment, totalPayable     decimal.Decimal
		purpose, statusStr, adminNotes, processedBy string
		tenureMonths                                int
		appliedAt                                   time.Time
		processedAt                                 *time.Time
	)

	err := s.Scan(
		&id, &ownerID, &loanTypeStr,
		&amount, &purpose, &tenureMonths,
		&rate, &installment, &totalPayable,
		&statusStr, &adminNotes, &processedBy,
		&appliedAt, &processedAt,
	)
	if err != nil {
		return model.LoanApplication{}, err
	}

	loanType, err := valueobject.NewLoanType(loanTypeStr)
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("parse loan type: %w", err)
	}
	status, err := valueobject.NewLoanStatus(statusStr)
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("parse status: %w", err)
	}

	var processed time.Time
	if processedAt != nil {
		processed = *processedAt
	}

	return model.ReconstructLoanApplication(
		id, ownerID, loanType,
		amount, purpose, tenureMonths,
		rate, installment, totalPayable,
		status, adminNotes, processedBy,
		appliedAt, processed,
	), nil
}
