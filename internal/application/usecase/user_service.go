package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/application/dto"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/model"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/port"
)

var (
	// ErrEmailTaken is returned when registering with an email that already
	// has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on login failure. Unknown email and
	// wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSelfModification is returned when an admin targets their own
	// account with a destructive operation.
	ErrSelfModification = errors.New("cannot modify own account")
)

// TokenIssuer mints an access token for an authenticated user.
type TokenIssuer interface {
	Generate(userID, role string) (string, error)
}

// UserService implements account management: self-service registration,
// login, profile updates, and the admin user surface.
type UserService struct {
	users  port.UserStore
	tokens TokenIssuer
	logger *slog.Logger
}

// NewUserService wires dependencies.
func NewUserService(users port.UserStore, tokens TokenIssuer, logger *slog.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, logger: logger}
}

// Register creates a customer account and logs it in.
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error) {
	u, err := s.createUser(ctx, dto.CreateUserRequest{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Role:         model.RoleCustomer,
		Phone:        req.Phone,
		Occupation:   req.Occupation,
		AnnualIncome: req.AnnualIncome,
	})
	if err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info("user registered", "user_id", u.ID, "email", u.Email)
	return s.issueToken(u)
}

// Login verifies credentials and mints a token.
func (s *UserService) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, fmt.Errorf("find user by email: %w", err)
	}

	if !u.CheckPassword(req.Password) {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	s.logger.Info("user logged in", "user_id", u.ID)
	return s.issueToken(u)
}

// GetProfile returns the caller's own account.
func (s *UserService) GetProfile(ctx context.Context, userID string) (dto.UserResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("find user %s: %w", userID, err)
	}
	return dto.FromUser(u), nil
}

// UpdateProfile applies the non-empty fields of req to the caller's account.
// Email, role and password are not touched here.
func (s *UserService) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (dto.UserResponse, error) {
	u, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("find user %s: %w", req.UserID, err)
	}

	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Phone != "" {
		u.Phone = req.Phone
	}
	if req.Occupation != "" {
		u.Occupation = req.Occupation
	}
	if !req.AnnualIncome.IsZero() {
		u.AnnualIncome = req.AnnualIncome
	}
	if req.DateOfBirth != "" {
		u.DateOfBirth = req.DateOfBirth
	}
	if req.Address != "" {
		u.Address = req.Address
	}
	if req.Company != "" {
		u.Company = req.Company
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, u); err != nil {
		return dto.UserResponse{}, fmt.Errorf("update user %s: %w", req.UserID, err)
	}
	return dto.FromUser(u), nil
}

// ---------------------------------------------------------------------------
// Admin surface
// ---------------------------------------------------------------------------

// CreateUser creates an account with an explicit role. Admin only.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error) {
	u, err := s.createUser(ctx, req)
	if err != nil {
		return dto.UserResponse{}, err
	}
	s.logger.Info("user created", "user_id", u.ID, "role", u.Role)
	return dto.FromUser(u), nil
}

// ListUsers lists accounts, optionally filtered by role.
func (s *UserService) ListUsers(ctx context.Context, role string) ([]dto.UserResponse, error) {
	if role != "" && !model.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", model.ErrValidation, role)
	}
	users, err := s.users.FindAll(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return dto.FromUsers(users), nil
}

// UpdateRole changes an account's role. Admins cannot change their own.
func (s *UserService) UpdateRole(ctx context.Context, actorID, userID, role string) (dto.UserResponse, error) {
	if userID == actorID {
		return dto.UserResponse{}, ErrSelfModification
	}
	if !model.ValidRole(role) {
		return dto.UserResponse{}, fmt.Errorf("%w: unknown role %q", model.ErrValidation, role)
	}

	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return dto.UserResponse{}, fmt.Errorf("update role for user %s: %w", userID, err)
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("find user %s: %w", userID, err)
	}
	s.logger.Info("user role updated", "user_id", userID, "role", role, "actor_id", actorID)
	return dto.FromUser(u), nil
}

// DeleteUser removes an account. Admins cannot delete their own.
func (s *UserService) DeleteUser(ctx context.Context, actorID, userID string) error {
	if userID == actorID {
		return ErrSelfModification
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user %s: %w", userID, err)
	}
	s.logger.Info("user deleted", "user_id", userID, "actor_id", actorID)
	return nil
}

// CustomerDetail returns one customer's account together with their loan
// applications and the aggregates over them. Admin only.
func (s *UserService) CustomerDetail(ctx context.Context, loans port.LoanStore, userID string) (dto.CustomerDetailResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return dto.CustomerDetailResponse{}, fmt.Errorf("find user %s: %w", userID, err)
	}

	apps, err := loans.FindByOwner(ctx, userID)
	if err != nil {
		return dto.CustomerDetailResponse{}, fmt.Errorf("list loans for owner %s: %w", userID, err)
	}

	return dto.CustomerDetailResponse{
		User:  dto.FromUser(u),
		Loans: dto.FromLoanApplications(apps),
		Stats: dto.FromLoanStats(model.ComputeLoanStats(apps)),
	}, nil
}

// ---------------------------------------------------------------------------
// Internals
// ---------------------------------------------------------------------------

func (s *UserService) createUser(ctx context.Context, req dto.CreateUserRequest) (model.User, error) {
	email := normalizeEmail(req.Email)
	if req.Name == "" || email == "" {
		return model.User{}, fmt.Errorf("%w: name and email are required", model.ErrValidation)
	}

	role := req.Role
	if role == "" {
		role = model.RoleCustomer
	}
	if !model.ValidRole(role) {
		return model.User{}, fmt.Errorf("%w: unknown role %q", model.ErrValidation, role)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return model.User{}, ErrEmailTaken
	} else if !errors.Is(err, port.ErrNotFound) {
		return model.User{}, fmt.Errorf("find user by email: %w", err)
	}

	now := time.Now().UTC()
	u := model.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        email,
		Role:         role,
		Phone:        req.Phone,
		Occupation:   req.Occupation,
		AnnualIncome: req.AnnualIncome,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.SetPassword(req.Password); err != nil {
		return model.User{}, err
	}

	if err := s.users.Insert(ctx, u); err != nil {
		return model.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *UserService) issueToken(u model.User) (dto.AuthResponse, error) {
	token, err := s.tokens.Generate(u.ID, u.Role)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("issue token: %w", err)
	}
	return dto.AuthResponse{Token: token, User: dto.FromUser(u)}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
