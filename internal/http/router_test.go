package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centavoapp/centavo/internal/auth"
	"github.com/centavoapp/centavo/internal/export"
	internalhttp "github.com/centavoapp/centavo/internal/http"
	"github.com/centavoapp/centavo/internal/http/budget"
	"github.com/centavoapp/centavo/internal/http/category"
	"github.com/centavoapp/centavo/internal/http/planning"
	"github.com/centavoapp/centavo/internal/http/reportapi"
	"github.com/centavoapp/centavo/internal/http/session"
	"github.com/centavoapp/centavo/internal/http/transaction"
	"github.com/centavoapp/centavo/internal/http/wallet"
	"github.com/centavoapp/centavo/internal/importer"
	"github.com/centavoapp/centavo/internal/ledger"
	"github.com/centavoapp/centavo/internal/report"
	"github.com/centavoapp/centavo/internal/snapshot/memstore"
)

func newServer(t *testing.T) (*httptest.Server, *ledger.Service) {
	t.Helper()

	svc := ledger.NewService(ledger.NewStore(), memstore.New(), nil)
	reports := report.New(svc.Store())
	exporter := export.NewService(svc.Store())
	imports := importer.NewService(svc, nil)

	router := internalhttp.New(
		nil, // no issuer: unauthenticated demo mode
		session.NewHandler(svc, nil),
		wallet.NewHandler(svc),
		category.NewHandler(svc),
		transaction.NewHandler(svc),
		budget.NewHandler(svc, reports),
		planning.NewHandler(svc),
		reportapi.NewHandler(reports, exporter, imports),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server, svc
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	return out
}

func register(t *testing.T, server *httptest.Server) {
	t.Helper()

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/register", map[string]string{
		"email":    "pat@example.com",
		"password": "pw",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterSeedsDefaults(t *testing.T) {
	server, _ := newServer(t)
	register(t, server)

	resp, err := http.Get(server.URL + "/api/v1/wallets")
	require.NoError(t, err)

	wallets := decodeBody[[]*ledger.Wallet](t, resp)
	require.Len(t, wallets, 1)
	assert.Equal(t, "Main Wallet", wallets[0].Name)
	assert.True(t, wallets[0].IsDefault)

	resp, err = http.Get(server.URL + "/api/v1/categories")
	require.NoError(t, err)

	categories := decodeBody[[]*ledger.Category](t, resp)
	assert.Len(t, categories, 7)
}

func TestTransactionLifecycle(t *testing.T) {
	server, svc := newServer(t)
	register(t, server)

	var food *ledger.Category

	for _, c := range svc.Store().Categories() {
		if c.Name == "Food" {
			food = c
		}
	}

	require.NotNil(t, food)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/transactions", map[string]any{
		"category_id": food.ID,
		"amount":      1250,
		"type":        "expense",
		"description": "lunch",
		"date":        "2024-08-02T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	tx := decodeBody[*ledger.Transaction](t, resp)
	assert.Equal(t, int64(1250), tx.Amount)

	wallet := svc.Store().CurrentWallet()
	assert.Equal(t, int64(-1250), wallet.Balance)

	resp = doJSON(t, http.MethodPatch, server.URL+"/api/v1/transactions/"+tx.ID.String(), map[string]any{
		"amount": 2000,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(t, int64(-2000), svc.Store().CurrentWallet().Balance)

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/v1/transactions/"+tx.ID.String(), nil)
	require.NoError(t, err)

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	assert.Equal(t, int64(0), svc.Store().CurrentWallet().Balance)
}

func TestValidationMapsTo400(t *testing.T) {
	server, _ := newServer(t)
	register(t, server)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/transactions", map[string]any{
		"amount": -5,
		"type":   "expense",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLastWalletDeleteMapsTo409(t *testing.T) {
	server, svc := newServer(t)
	register(t, server)

	id := svc.Store().CurrentWallet().ID

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/v1/wallets/"+id.String(), nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestBudgetStatusEndpoint(t *testing.T) {
	server, svc := newServer(t)
	register(t, server)

	var food *ledger.Category

	for _, c := range svc.Store().Categories() {
		if c.Name == "Food" {
			food = c
		}
	}

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/budgets", map[string]any{
		"category_id":     food.ID,
		"limit":           10000,
		"alert_threshold": 80,
		"start_date":      "2024-01-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/transactions", map[string]any{
		"category_id": food.ID,
		"amount":      9000,
		"type":        "expense",
		"description": "groceries",
		"date":        "2024-08-02T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(server.URL + "/api/v1/budgets/status")
	require.NoError(t, err)

	statuses := decodeBody[[]report.BudgetStatus](t, resp)
	require.Len(t, statuses, 1)
	assert.InDelta(t, 90.0, statuses[0].Percentage, 0.001)
	assert.True(t, statuses[0].IsWarning)
	assert.False(t, statuses[0].IsOverBudget)
}

func TestExportAndImportEndpoints(t *testing.T) {
	server, svc := newServer(t)
	register(t, server)

	var salary *ledger.Category

	for _, c := range svc.Store().Categories() {
		if c.Name == "Salary" {
			salary = c
		}
	}

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/transactions", map[string]any{
		"category_id": salary.ID,
		"amount":      100000,
		"type":        "income",
		"description": "pay",
		"date":        "2024-08-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(server.URL + "/api/v1/export/csv")
	require.NoError(t, err)

	body := new(bytes.Buffer)
	_, err = body.ReadFrom(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, body.String(), `"2024-08-01","Salary","income","1000.00","pay"`)

	importBody := strings.NewReader(
		"Date,Category,Type,Amount,Description\n2024-08-05,Food,expense,25.00,dinner\n")

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/v1/import", importBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "text/csv")

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody[importer.Result](t, resp)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, int64(100000-2500), svc.Store().CurrentWallet().Balance)
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	svc := ledger.NewService(ledger.NewStore(), memstore.New(), nil)
	reports := report.New(svc.Store())

	issuer := auth.NewIssuer("test-secret", time.Hour)

	router := internalhttp.New(
		issuer,
		session.NewHandler(svc, issuer),
		wallet.NewHandler(svc),
		category.NewHandler(svc),
		transaction.NewHandler(svc),
		budget.NewHandler(svc, reports),
		planning.NewHandler(svc),
		reportapi.NewHandler(reports, export.NewService(svc.Store()), importer.NewService(svc, nil)),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/api/v1/wallets")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Login stays open and hands out a token that unlocks the rest.
	loginResp := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/login", map[string]string{
		"email":    "pat@example.com",
		"password": "pw",
	})
	require.Equal(t, http.StatusOK, loginResp.StatusCode)

	sessionBody := decodeBody[map[string]any](t, loginResp)
	token, _ := sessionBody["token"].(string)
	require.NotEmpty(t, token)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/v1/wallets", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
