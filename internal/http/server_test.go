package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"billfold/internal/core"
	"billfold/internal/report"
	"billfold/internal/services"
	"billfold/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := storage.NewDocumentStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDocumentStore: %v", err)
	}
	svc := services.NewExpenseService(storage.NewExpenseRepository(store), nil)
	income := storage.NewIncomeRegistry(store)
	srv := NewServer(":0", svc, income, report.NewGenerator(svc, income))
	t.Cleanup(func() { srv.rateLimiter.stop() })
	return srv
}

func do(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestCreateAndListExpenses(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/expenses",
		`{"amount": 12.50, "category": "Food", "date": "2024-06-10", "description": "Lunch"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	created := decode[core.Expense](t, rec)
	if created.ID == "" {
		t.Fatal("created expense has no id")
	}
	if created.Amount.Cents != 1250 {
		t.Fatalf("amount cents = %d, want 1250", created.Amount.Cents)
	}

	rec = do(t, srv, http.MethodGet, "/expenses", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	items := decode[[]core.Expense](t, rec)
	if len(items) != 1 || items[0].ID != created.ID {
		t.Fatalf("listed items = %+v", items)
	}
}

func TestCreateExpenseRejectsBadInput(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"amount": `, http.StatusBadRequest},
		{"missing amount", `{"category": "Food", "date": "2024-06-10"}`, http.StatusUnprocessableEntity},
		{"zero amount", `{"amount": 0, "category": "Food", "date": "2024-06-10"}`, http.StatusUnprocessableEntity},
		{"negative amount", `{"amount": -5, "category": "Food", "date": "2024-06-10"}`, http.StatusUnprocessableEntity},
		{"bad date", `{"amount": 10, "category": "Food", "date": "10/06/2024"}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/expenses", tc.body)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.want, rec.Body.String())
			}
		})
	}

	// Nothing should have been stored.
	rec := do(t, srv, http.MethodGet, "/expenses", "")
	if items := decode[[]core.Expense](t, rec); len(items) != 0 {
		t.Fatalf("store should be empty, got %+v", items)
	}
}

func TestListExpensesDateRange(t *testing.T) {
	srv := newTestServer(t)

	for _, e := range []string{
		`{"amount": 10, "category": "Food", "date": "2024-06-01"}`,
		`{"amount": 20, "category": "Rent", "date": "2024-06-15"}`,
		`{"amount": 30, "category": "Food", "date": "2024-07-01"}`,
	} {
		if rec := do(t, srv, http.MethodPost, "/expenses", e); rec.Code != http.StatusCreated {
			t.Fatalf("seed failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	rec := do(t, srv, http.MethodGet, "/expenses?start_date=2024-06-01&end_date=2024-06-30", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if items := decode[[]core.Expense](t, rec); len(items) != 2 {
		t.Fatalf("got %d items in June, want 2", len(items))
	}

	rec = do(t, srv, http.MethodGet, "/expenses?start_date=2024-07-01&end_date=2024-06-01", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("inverted range status = %d, want 422", rec.Code)
	}

	rec = do(t, srv, http.MethodGet, "/expenses?start_date=junk", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad start_date status = %d, want 422", rec.Code)
	}
}

func TestDeleteExpense(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/expenses",
		`{"amount": 10, "category": "Food", "date": "2024-06-01"}`)
	created := decode[core.Expense](t, rec)

	rec = do(t, srv, http.MethodDelete, "/expenses/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	// The record is gone, so a second delete is a 404.
	rec = do(t, srv, http.MethodDelete, "/expenses/"+created.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec.Code)
	}
	if body := decode[map[string]string](t, rec); body["detail"] != "Expense not found" {
		t.Fatalf("not-found body = %v", body)
	}
}

func TestIncomeRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/income", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get income status = %d", rec.Code)
	}
	if inc := decode[core.Income](t, rec); inc.Amount.Cents != 0 {
		t.Fatalf("initial income = %+v, want zero", inc)
	}

	rec = do(t, srv, http.MethodPut, "/income", `{"amount": 3500.00}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("put income status = %d, body %s", rec.Code, rec.Body.String())
	}
	inc := decode[core.Income](t, rec)
	if inc.Amount.Cents != 350000 {
		t.Fatalf("income cents = %d, want 350000", inc.Amount.Cents)
	}
	if inc.Month == "" {
		t.Fatal("income month stamp missing")
	}

	rec = do(t, srv, http.MethodPut, "/income", `{"amount": -1}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("negative income status = %d, want 422", rec.Code)
	}
}

func TestMonthlyReport(t *testing.T) {
	srv := newTestServer(t)

	if rec := do(t, srv, http.MethodPut, "/income", `{"amount": 3000}`); rec.Code != http.StatusOK {
		t.Fatalf("seed income: %d", rec.Code)
	}
	for _, e := range []string{
		`{"amount": 500, "category": "Food", "date": "2024-06-01"}`,
		`{"amount": 1200, "category": "Rent", "date": "2024-06-02"}`,
		`{"amount": 300, "category": "Food", "date": "2024-06-03"}`,
	} {
		if rec := do(t, srv, http.MethodPost, "/expenses", e); rec.Code != http.StatusCreated {
			t.Fatalf("seed expense: %d", rec.Code)
		}
	}

	rec := do(t, srv, http.MethodGet, "/report/monthly", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("report status = %d", rec.Code)
	}
	rep := decode[report.Report](t, rec)

	if rep.TotalIncome.Cents != 300000 || rep.TotalExpenses.Cents != 200000 || rep.Savings.Cents != 100000 {
		t.Fatalf("totals = %+v", rep)
	}
	if rep.Categories["Food"].Cents != 80000 || rep.Categories["Rent"].Cents != 120000 {
		t.Fatalf("categories = %v", rep.Categories)
	}
	if rep.Month != time.Now().Format(core.MonthLayout) {
		t.Fatalf("month = %q", rep.Month)
	}
	if len(rep.Suggestions) == 0 {
		t.Fatal("expected investment suggestions for a 33% savings rate")
	}
	if len(rep.Expenses) != 3 {
		t.Fatalf("report echoes %d expenses, want 3", len(rep.Expenses))
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		if rec := do(t, srv, http.MethodGet, path, ""); rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, rec.Code)
		}
	}
}
