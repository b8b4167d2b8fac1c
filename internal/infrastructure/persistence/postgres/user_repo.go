package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/model"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/port"
)

const userColumns = `
	id, name, email, password_hash, role, phone, occupation,
	annual_income, date_of_birth, address, company, created_at, updated_at
`

// UserRepo implements port.UserStore backed by PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepo creates a new repository backed by PostgreSQL.
func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Insert persists a new account.
func (r *UserRepo) Insert(ctx context.Context, u model.User) error {
	query := `
		INSERT INTO users (
			id, name, email, password_hash, role, phone, occupation,
			annual_income, date_of_birth, address, company, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`
	_, err := r.pool.Exec(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.Phone, u.Occupation,
		u.AnnualIncome, u.DateOfBirth, u.Address, u.Company, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByID retrieves one account by ID.
func (r *UserRepo) FindByID(ctx context.Context, id string) (model.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByEmail retrieves one account by email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// FindAll lists accounts, optionally filtered by role, newest first.
func (r *UserRepo) FindAll(ctx context.Context, role string) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var args []any
	if role != "" {
		query += ` WHERE role = $1`
		args = append(args, role)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

// Update rewrites the mutable profile columns of one account.
func (r *UserRepo) Update(ctx context.Context, u model.User) error {
	query := `
		UPDATE users
		SET name = $2, phone = $3, occupation = $4, annual_income = $5,
		    date_of_birth = $6, address = $7, company = $8, updated_at = $9
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		u.ID, u.Name, u.Phone, u.Occupation, u.AnnualIncome,
		u.DateOfBirth, u.Address, u.Company, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

// UpdateRole changes one account's role.
func (r *UserRepo) UpdateRole(ctx context.Context, id, role string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET role = $2, updated_at = now() WHERE id = $1`, id, role,
	)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

// Delete removes one account.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

// CountByRole counts accounts with the given role.
func (r *UserRepo) CountByRole(ctx context.Context, role string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE role = $1`, role,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return count, nil
}

func (r *UserRepo) scanOne(ctx context.Context, query string, args ...any) (model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, port.ErrNotFound
	}
	return u, err
}

func scanUser(s scannable) (model.User, error) {
	var u model.User
	err := s.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Phone, &u.Occupation,
		&u.AnnualIncome, &u.DateOfBirth, &u.Address, &u.Company, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}
