package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "loans-test",
		Expiration: 15 * time.Minute,
	})
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}
	return svc
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New().String()

	tokenString, err := svc.Generate(userID, "admin")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if tokenString == "" {
		t.Fatal("Generate() returned empty token")
	}

	claims, err := svc.Validate(tokenString)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, want %q", claims.Role, "admin")
	}
	if claims.Issuer != "loans-test" {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, "loans-test")
	}
	if claims.Subject != userID {
		t.Errorf("Subject = %q, want %q", claims.Subject, userID)
	}
}

func TestValidate_Expired(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "loans-test",
		Expiration: -1 * time.Hour, // already expired
	})
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}

	tokenString, err := svc.Generate(uuid.New().String(), "customer")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := svc.Validate(tokenString); err == nil {
		t.Fatal("Validate() expected error for expired token, got nil")
	}
}

func TestValidate_InvalidSignature(t *testing.T) {
	svc1 := newTestJWTService(t)
	svc2, err := NewJWTService(JWTConfig{
		Secret:     "a-completely-different-secret",
		Issuer:     "loans-test",
		Expiration: 15 * time.Minute,
	})
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}

	tokenString, err := svc1.Generate(uuid.New().String(), "customer")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := svc2.Validate(tokenString); err == nil {
		t.Fatal("Validate() expected error for invalid signature, got nil")
	}
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	if _, err := NewJWTService(JWTConfig{Issuer: "loans-test"}); err == nil {
		t.Fatal("NewJWTService() expected error without secret, got nil")
	}
}

func TestClaimsFromContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := ClaimsFromContext(ctx); ok {
		t.Error("ClaimsFromContext() ok = true for empty context, want false")
	}

	expected := &Claims{UserID: uuid.New().String(), Role: "customer"}
	ctx = ContextWithClaims(ctx, expected)
	got, ok := ClaimsFromContext(ctx)
	if !ok {
		t.Fatal("ClaimsFromContext() ok = false, want true")
	}
	if got.UserID != expected.UserID {
		t.Errorf("ClaimsFromContext().UserID = %v, want %v", got.UserID, expected.UserID)
	}
	if got.Role != expected.Role {
		t.Errorf("ClaimsFromContext().Role = %q, want %q", got.Role, expected.Role)
	}
}

func TestMiddleware(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New().String()

	adminToken, err := svc.Generate(userID, "admin")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	customerToken, err := svc.Generate(userID, "customer")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	handler := Authenticator(svc)(RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
		{"wrong role", "Bearer " + customerToken, http.StatusForbidden},
		{"admin", "Bearer " + adminToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
