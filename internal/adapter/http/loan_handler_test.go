package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "microlend-backend/internal/domain/loan"
	paymentDomain "microlend-backend/internal/domain/payment"
	"microlend-backend/internal/testutil/loanmock"
	"microlend-backend/internal/testutil/paymentmock"
	uc "microlend-backend/internal/usecase/loan"
	"microlend-backend/pkg/money"
)

// -------- helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func nopLog() *zap.SugaredLogger { return zap.NewNop().Sugar() }

// -------- tests --------

func TestSubmitApplication_Success(t *testing.T) {
	e := newEchoWithValidator()

	repo := &loanmock.Repo{
		GetPendingByBorrowerIDFn: func(ctx context.Context, borrowerID string) (*domain.Loan, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(ctx context.Context, l *domain.Loan) error {
			if l.CreatedAt.IsZero() {
				l.CreatedAt = time.Now().UTC()
			}
			return nil
		},
	}
	h := NewLoanHandler(uc.NewUsecase(repo, &paymentmock.Repo{}, nopLog()))

	reqBody := map[string]any{
		"borrower_id": strings.Repeat("b", 32),
		"principal":   5000000,
		"purpose":     "working capital",
		"term_months": 12,
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SubmitApplication(c); err != nil {
		t.Fatalf("SubmitApplication error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var got uc.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.BorrowerID != strings.Repeat("b", 32) || !got.Principal.Equal(money.FromInt(5_000_000)) {
		t.Fatalf("unexpected dto: %+v", got)
	}
	if got.Status != string(domain.StatusPending) {
		t.Fatalf("status = %s, want pending", got.Status)
	}
}

func TestSubmitApplication_BindError(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLoanHandler(uc.NewUsecase(&loanmock.Repo{}, &paymentmock.Repo{}, nopLog()))

	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", strings.NewReader(`{"borrower_id":`)) // broken JSON
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SubmitApplication(c); err != nil {
		t.Fatalf("SubmitApplication error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSubmitApplication_ValidationError(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLoanHandler(uc.NewUsecase(&loanmock.Repo{}, &paymentmock.Repo{}, nopLog()))

	// fractional principal and a bad borrower id
	reqBody := map[string]any{
		"borrower_id": "nope",
		"principal":   5000000.5,
		"purpose":     "x",
		"term_months": 12,
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/loans", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SubmitApplication(c); err != nil {
		t.Fatalf("SubmitApplication error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(er.Details) < 2 {
		t.Fatalf("details = %+v, want both field errors", er.Details)
	}
}

func TestGetLoan_NotFound(t *testing.T) {
	e := newEchoWithValidator()
	repo := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*domain.Loan, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	h := NewLoanHandler(uc.NewUsecase(repo, &paymentmock.Repo{}, nopLog()))

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/"+strings.Repeat("a", 32), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(strings.Repeat("a", 32))

	if err := h.GetLoan(c); err != nil {
		t.Fatalf("GetLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetStatement(t *testing.T) {
	e := newEchoWithValidator()
	now := time.Now().UTC()
	repo := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*domain.Loan, error) {
			return &domain.Loan{ID: 3, LoanID: loanID, Status: domain.StatusActive}, nil
		},
	}
	payments := &paymentmock.Repo{
		ListByLoanIDFn: func(ctx context.Context, loanNumericID uint64) ([]paymentDomain.Payment, error) {
			return []paymentDomain.Payment{
				{PaymentID: "p1", Type: paymentDomain.TypeDisbursement, Status: paymentDomain.StatusCompleted, Amount: money.FromInt(100_000), ProcessedAt: &now},
			}, nil
		},
	}
	h := NewLoanHandler(uc.NewUsecase(repo, payments, nopLog()))

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/x/statement", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(strings.Repeat("a", 32))

	if err := h.GetStatement(c); err != nil {
		t.Fatalf("GetStatement error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var entries []uc.StatementEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(entries) != 1 || entries[0].Type != "disbursement" {
		t.Fatalf("entries = %+v", entries)
	}
}
