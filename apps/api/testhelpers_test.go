package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/himeshnishant1/juspay-dashboard/libs/mailer"
	"github.com/himeshnishant1/juspay-dashboard/libs/orders"
	"github.com/himeshnishant1/juspay-dashboard/libs/widgets"
)

const (
	testSigningSecret = "0123456789abcdef"
	testExportEmailTo = "ops@example.com"
)

var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

type recordingMailProvider struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (p *recordingMailProvider) Name() string { return "recording" }

func (p *recordingMailProvider) Send(_ context.Context, msg mailer.Message) (mailer.SendResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return mailer.SendResult{}, p.err
	}
	p.sent = append(p.sent, msg)
	return mailer.SendResult{ProviderMessageID: "msg-1"}, nil
}

func (p *recordingMailProvider) messages() []mailer.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]mailer.Message(nil), p.sent...)
}

type writtenExport struct {
	path string
	data []byte
}

type testHarness struct {
	app     *App
	mail    *recordingMailProvider
	mu      sync.Mutex
	written []writtenExport
}

func (h *testHarness) exportsWritten() []writtenExport {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]writtenExport(nil), h.written...)
}

func newTestApp(t *testing.T) *testHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog, err := orders.DefaultCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	dashboard, err := widgets.DefaultDashboard()
	if err != nil {
		t.Fatalf("load dashboard: %v", err)
	}

	h := &testHarness{mail: &recordingMailProvider{}}
	h.app = &App{
		cfg: &Config{
			Env:                "test",
			DataRoot:           t.TempDir(),
			PublicBaseURL:      "https://dash.example",
			AppSigningSecret:   testSigningSecret,
			ExportEmailTo:      testExportEmailTo,
			DisplayTimezone:    "UTC",
			DisplayLocation:    time.UTC,
			SessionIdleTimeout: defaultSessionIdle,
			SessionMaxCount:    defaultSessionMaxCount,
		},
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		mailer:    mailer.New(h.mail, "noreply@example.com"),
		catalog:   catalog,
		dashboard: dashboard,
		sessions:  newSessionStore(defaultSessionIdle, defaultSessionMaxCount),
		exports:   newMemoryExportLog(),
		templates: newPageTemplateRenderer("test"),
		nowFunc:   func() time.Time { return testNow },
	}
	h.app.writeExportFile = func(path string, data []byte) error {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.written = append(h.written, writtenExport{path: path, data: append([]byte(nil), data...)})
		return nil
	}
	return h
}

// testClient replays the cookies the router hands out, like a browser would.
type testClient struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newTestClient(t *testing.T, app *App) *testClient {
	t.Helper()
	return &testClient{t: t, handler: app.newRouter(), cookies: map[string]*http.Cookie{}}
}

func (c *testClient) do(method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		c.cookies[cookie.Name] = cookie
	}
	return rec
}

func (c *testClient) get(target string) *httptest.ResponseRecorder {
	c.t.Helper()
	return c.do(http.MethodGet, target, nil, "")
}

func (c *testClient) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	return c.do(http.MethodPost, target, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

func (c *testClient) postJSON(target, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	return c.do(http.MethodPost, target, strings.NewReader(body), "application/json")
}

func (c *testClient) putJSON(target, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	return c.do(http.MethodPut, target, strings.NewReader(body), "application/json")
}

// sessionID resolves the dashboard session behind the client's signed cookie.
func (c *testClient) sessionID(app *App) string {
	c.t.Helper()
	cookie, ok := c.cookies[sessionCookieName]
	if !ok {
		c.t.Fatal("no session cookie issued")
	}
	id, err := app.verifyDashboardSessionToken(cookie.Value)
	if err != nil {
		c.t.Fatalf("verify session cookie: %v", err)
	}
	return id
}
