package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/caixa/internal/app"
	"github.com/terraincognita07/caixa/internal/config"
)

type testServer struct {
	app     *fiber.App
	handler *Handler
	store   *app.App
}

type testResponse struct {
	status  int
	body    map[string]any
	cookies []*http.Cookie
}

func newTestServer(t *testing.T, environment map[string]string) *testServer {
	t.Helper()

	values := map[string]string{
		"CAIXA_DB_PATH":    filepath.Join(t.TempDir(), "caixa-api-test.db"),
		"CAIXA_SECRET_KEY": "test-secret-key",
	}
	for key, value := range environment {
		values[key] = value
	}
	cfg, err := config.LoadFrom(values)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	store, err := app.Open(cfg, nil)
	if err != nil {
		t.Fatalf("open app: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	handler, err := NewHandler(store.Services, Options{
		SecretKey:    cfg.SecretKey,
		CookieSecure: cfg.CookieSecure,
		I18n:         store.I18n,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	return &testServer{app: NewApp(handler, nil), handler: handler, store: store}
}

func (server *testServer) do(t *testing.T, method string, path string, payload any, cookie string, headers ...string) testResponse {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}
	for index := 0; index+1 < len(headers); index += 2 {
		request.Header.Set(headers[index], headers[index+1])
	}

	response, err := server.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", method, path, err)
	}
	decoded := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("%s %s decode body %q: %v", method, path, string(raw), err)
		}
	}
	return testResponse{status: response.StatusCode, body: decoded, cookies: response.Cookies()}
}

func (server *testServer) register(t *testing.T, payload map[string]any) {
	t.Helper()

	response := server.do(t, http.MethodPost, "/api/auth/register", payload, "")
	if response.status != http.StatusCreated {
		t.Fatalf("expected register status 201, got %d body=%v", response.status, response.body)
	}
}

func (server *testServer) login(t *testing.T, email string, password string) string {
	t.Helper()

	response := server.do(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    email,
		"password": password,
	}, "")
	if response.status != http.StatusOK {
		t.Fatalf("expected login status 200, got %d body=%v", response.status, response.body)
	}
	cookie := responseCookie(response.cookies, authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected auth cookie on login")
	}
	return authCookieName + "=" + cookie.Value
}

func pjRegistration(email string, category string) map[string]any {
	return map[string]any{
		"name":             "Loja",
		"email":            email,
		"password":         "1234",
		"confirm_password": "1234",
		"account_type":     "PJ",
		"company_name":     "Loja Ltda",
		"company_tax_id":   "12.345.678/0001-90",
		"company_category": category,
	}
}

func pfRegistration(email string) map[string]any {
	return map[string]any{
		"name":             "Ana",
		"email":            email,
		"password":         "1234",
		"confirm_password": "1234",
		"account_type":     "PF",
	}
}

// loginAs registers a fresh account and returns its auth cookie.
func (server *testServer) loginAs(t *testing.T, payload map[string]any) string {
	t.Helper()

	server.register(t, payload)
	return server.login(t, payload["email"].(string), payload["password"].(string))
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func expectError(t *testing.T, response testResponse, status int, code string) {
	t.Helper()

	if response.status != status {
		t.Fatalf("expected status %d, got %d body=%v", status, response.status, response.body)
	}
	if response.body["error"] != code {
		t.Fatalf("expected error %q, got %v", code, response.body)
	}
	if message, _ := response.body["message"].(string); message == "" {
		t.Fatalf("expected localized message, got %v", response.body)
	}
}
