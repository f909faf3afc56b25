package flash_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"launchpad-core/internal/presentation/flash"

	"github.com/gin-gonic/gin"
)

func setFlash(t *testing.T, e *flash.Encoder, kind flash.Kind, text string) *http.Cookie {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	if err := e.Set(c, kind, text); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == flash.CookieName {
			return cookie
		}
	}
	t.Fatal("flash cookie not set")
	return nil
}

func TestFlashRoundTrip(t *testing.T) {
	e := flash.NewEncoder("secret")

	cookie := setFlash(t, e, flash.KindSuccess, "Project shop-api has been removed")

	msg, err := e.Decode(cookie.Value)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if msg.Kind != flash.KindSuccess {
		t.Errorf("Kind = %q, want %q", msg.Kind, flash.KindSuccess)
	}
	if msg.Text != "Project shop-api has been removed" {
		t.Errorf("Text = %q", msg.Text)
	}
}

func TestFlashTamperDetection(t *testing.T) {
	e := flash.NewEncoder("secret")
	cookie := setFlash(t, e, flash.KindError, "nope")

	tests := []struct {
		name  string
		value string
	}{
		{"flipped payload", "x" + cookie.Value},
		{"missing signature", strings.Split(cookie.Value, ".")[0]},
		{"wrong key", cookie.Value},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoder := e
			if tt.name == "wrong key" {
				decoder = flash.NewEncoder("other-secret")
			}
			if _, err := decoder.Decode(tt.value); err == nil {
				t.Error("Decode() accepted a tampered cookie")
			}
		})
	}
}

func TestFlashTakeClears(t *testing.T) {
	gin.SetMode(gin.TestMode)
	e := flash.NewEncoder("secret")

	cookie := setFlash(t, e, flash.KindSuccess, "saved")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(cookie)

	msg := e.Take(c)
	if msg == nil || msg.Text != "saved" {
		t.Fatalf("Take() = %v, want saved message", msg)
	}

	// The cookie is expired on the response so it renders at most once
	cleared := false
	for _, respCookie := range w.Result().Cookies() {
		if respCookie.Name == flash.CookieName && respCookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("flash cookie not cleared after Take()")
	}
}

func TestFlashTakeAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	e := flash.NewEncoder("secret")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	if msg := e.Take(c); msg != nil {
		t.Errorf("Take() = %v, want nil", msg)
	}
}
