package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/application/dto"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/application/usecase"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/pkg/auth"
)

// LoanHandler serves the customer-facing loan endpoints.
type LoanHandler struct {
	submit        *usecase.SubmitLoanUseCase
	quote         *usecase.QuoteLoanUseCase
	getLoan       *usecase.GetLoanUseCase
	listOwn       *usecase.ListOwnerLoansUseCase
	customerStats *usecase.CustomerStatsUseCase
	rates         *usecase.GetRatesUseCase
	logger        *slog.Logger
}

// NewLoanHandler creates the handler.
func NewLoanHandler(
	submit *usecase.SubmitLoanUseCase,
	quote *usecase.QuoteLoanUseCase,
	getLoan *usecase.GetLoanUseCase,
	listOwn *usecase.ListOwnerLoansUseCase,
	customerStats *usecase.CustomerStatsUseCase,
	rates *usecase.GetRatesUseCase,
	logger *slog.Logger,
) *LoanHandler {
	return &LoanHandler{
		submit:        submit,
		quote:         quote,
		getLoan:       getLoan,
		listOwn:       listOwn,
		customerStats: customerStats,
		rates:         rates,
		logger:        logger,
	}
}

// RegisterPublicRoutes attaches the routes available without a token.
func (h *LoanHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/loans/quote", h.quoteLoan)
	r.Get("/settings/rates", h.getRates)
}

// RegisterProtectedRoutes attaches the routes that require a valid token.
func (h *LoanHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/loans", h.submitLoan)
	r.Get("/loans", h.listOwnLoans)
	r.Get("/loans/stats", h.ownStats)
	r.Get("/loans/{id}", h.getLoanByID)
}

func (h *LoanHandler) submitLoan(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	var req dto.SubmitLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	req.OwnerID = claims.UserID

	resp, err := h.submit.Execute(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *LoanHandler) quoteLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.QuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	resp, err := h.quote.Execute(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) listOwnLoans(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	resp, err := h.listOwn.Execute(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) ownStats(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	resp, err := h.customerStats.Execute(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) getLoanByID(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	loanID := chi.URLParam(r, "id")

	resp, err := h.getLoan.Execute(r.Context(), loanID, claims.UserID, claims.Role)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) getRates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.rates.Execute(r.Context()))
}
