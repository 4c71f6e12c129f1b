package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carelink/hospital-system/internal/auth"
)

func newEchoContext(t *testing.T, header string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestAuth_ValidToken(t *testing.T) {
	issuer := auth.NewIssuer("secret")
	tok, err := issuer.Issue("a@b.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c, rec := newEchoContext(t, "Bearer "+tok)
	handler := Auth(issuer)(func(c echo.Context) error {
		if email, _ := c.Get("email").(string); email != "a@b.com" {
			t.Fatalf("email claim not injected, got %q", email)
		}
		return okHandler(c)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	c, _ := newEchoContext(t, "")
	err := Auth(auth.NewIssuer("secret"))(okHandler)(c)
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuth_MalformedHeader(t *testing.T) {
	for _, header := range []string{"Bearer", "Basic abc", "nonsense"} {
		c, _ := newEchoContext(t, header)
		err := Auth(auth.NewIssuer("secret"))(okHandler)(c)
		assertHTTPError(t, err, http.StatusUnauthorized)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	tok, _ := auth.NewIssuer("other-secret").Issue("a@b.com")
	c, _ := newEchoContext(t, "Bearer "+tok)
	err := Auth(auth.NewIssuer("secret"))(okHandler)(c)
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuth_ExpiredToken(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	tok, _ := auth.NewIssuer("secret").WithClock(func() time.Time { return past }).Issue("a@b.com")

	c, _ := newEchoContext(t, "Bearer "+tok)
	err := Auth(auth.NewIssuer("secret"))(okHandler)(c)
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d", code, he.Code)
	}
}
