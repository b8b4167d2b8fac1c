package rest

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/application/dto"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/application/usecase"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/model"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/port"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/pkg/auth"
)

// AdminHandler serves the admin surface: loan review, dashboards, user
// management, and rate configuration.
type AdminHandler struct {
	listLoans   *usecase.ListLoansUseCase
	getLoan     *usecase.GetLoanUseCase
	disposition *usecase.DispositionLoanUseCase
	stats       *usecase.DashboardStatsUseCase
	analytics   *usecase.AnalyticsUseCase
	updateRates *usecase.UpdateRatesUseCase
	users       *usecase.UserService
	loanStore   port.LoanStore
	logger      *slog.Logger
}

// NewAdminHandler creates the handler.
func NewAdminHandler(
	listLoans *usecase.ListLoansUseCase,
	getLoan *usecase.GetLoanUseCase,
	disposition *usecase.DispositionLoanUseCase,
	stats *usecase.DashboardStatsUseCase,
	analytics *usecase.AnalyticsUseCase,
	updateRates *usecase.UpdateRatesUseCase,
	users *usecase.UserService,
	loanStore port.LoanStore,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		listLoans:   listLoans,
		getLoan:     getLoan,
		disposition: disposition,
		stats:       stats,
		analytics:   analytics,
		updateRates: updateRates,
		users:       users,
		loanStore:   loanStore,
		logger:      logger,
	}
}

// RegisterRoutes attaches the admin routes. The router must already enforce
// the admin role.
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/loans", h.listAllLoans)
	r.Get("/loans/{id}", h.getLoanByID)
	r.Put("/loans/{id}/status", h.dispositionLoan)
	r.Get("/stats", h.dashboardStats)
	r.Get("/analytics", h.loanAnalytics)
	r.Put("/settings/rates", h.putRates)

	r.Get("/customers", h.listCustomers)
	r.Get("/customers/{id}", h.customerDetail)
	r.Post("/users", h.createUser)
	r.Get("/users", h.listUsers)
	r.Get("/users/{id}", h.getUser)
	r.Put("/users/{id}", h.updateUser)
	r.Put("/users/{id}/role", h.updateUserRole)
	r.Delete("/users/{id}", h.deleteUser)
}

// ---------------------------------------------------------------------------
// Loan review
// ---------------------------------------------------------------------------

func (h *AdminHandler) listAllLoans(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := port.LoanFilter{
		Status:   q.Get("status"),
		LoanType: q.Get("loan_type"),
	}
	if limit := q.Get("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			filter.Limit = n
		}
	}

	resp, err := h.listLoans.Execute(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) getLoanByID(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	resp, err := h.getLoan.Execute(r.Context(), chi.URLParam(r, "id"), claims.UserID, claims.Role)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) dispositionLoan(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	var req dto.DispositionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	req.LoanID = chi.URLParam(r, "id")
	req.ActorID = claims.UserID

	resp, err := h.disposition.Execute(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	resp, err := h.stats.Execute(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) loanAnalytics(w http.ResponseWriter, r *http.Request) {
	resp, err := h.analytics.Execute(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) putRates(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	var req dto.UpdateRatesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	req.ActorID = claims.UserID

	resp, err := h.updateRates.Execute(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---------------------------------------------------------------------------
// User management
// ---------------------------------------------------------------------------

func (h *AdminHandler) listCustomers(w http.ResponseWriter, r *http.Request) {
	resp, err := h.users.ListUsers(r.Context(), model.RoleCustomer)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) customerDetail(w http.ResponseWriter, r *http.Request) {
	resp, err := h.users.CustomerDetail(r.Context(), h.loanStore, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) createUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	resp, err := h.users.CreateUser(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AdminHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	resp, err := h.users.ListUsers(r.Context(), r.URL.Query().Get("role"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) getUser(w http.ResponseWriter, r *http.Request) {
	resp, err := h.users.GetProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	req.UserID = chi.URLParam(r, "id")

	resp, err := h.users.UpdateProfile(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) updateUserRole(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	var req struct {
		Role string `json:"role"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	resp, err := h.users.UpdateRole(r.Context(), claims.UserID, chi.URLParam(r, "id"), req.Role)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	if err := h.users.DeleteUser(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
