package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/opugacodez/frutaria/internal/service"
	"github.com/opugacodez/frutaria/internal/store"
)

func init() { gin.SetMode(gin.TestMode) }

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		json   bool
	}{
		{"not found", fmt.Errorf("product 4: %w", service.ErrNotFound), http.StatusNotFound, false},
		{"credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, true},
		{"validation", fmt.Errorf("%w: price", service.ErrValidation), http.StatusBadRequest, false},
		{"empty cart", fmt.Errorf("user 1: %w", service.ErrEmptyCart), http.StatusBadRequest, false},
		{"stock", fmt.Errorf("product 1: %w", service.ErrInsufficientStock), http.StatusConflict, false},
		{"email", service.ErrEmailTaken, http.StatusConflict, false},
		{"cart exists", service.ErrCartExists, http.StatusConflict, false},
		{"store", fmt.Errorf("%w: parse users.json", store.ErrUnavailable), http.StatusInternalServerError, true},
		{"other", errors.New("boom"), http.StatusInternalServerError, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/x", nil)
			writeError(c, tc.err)
			if w.Code != tc.status {
				t.Errorf("status = %d, want %d", w.Code, tc.status)
			}
			isJSON := strings.HasPrefix(w.Header().Get("Content-Type"), "application/json")
			if isJSON != tc.json {
				t.Errorf("content type = %q", w.Header().Get("Content-Type"))
			}
			if !strings.Contains(w.Body.String(), tc.err.Error()) {
				t.Errorf("body %q lacks %q", w.Body.String(), tc.err.Error())
			}
		})
	}
}

func TestIDParam(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/products/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	if _, ok := idParam(c, "id", "product"); ok {
		t.Fatal("non-numeric id accepted")
	}
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}

	c.Params = gin.Params{{Key: "id", Value: "12"}}
	if id, ok := idParam(c, "id", "product"); !ok || id != 12 {
		t.Errorf("id = %d, %v", id, ok)
	}
}

func TestBindStrict(t *testing.T) {
	var dst struct {
		Quantity int `json:"quantity"`
	}
	for body, want := range map[string]bool{
		`{"quantity":3}`:            true,
		`{"quantity":3,"extra":1}`: false,
		`{"quantity":`:              false,
	} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
		if got := bindStrict(c, &dst); got != want {
			t.Errorf("bindStrict(%s) = %v, want %v", body, got, want)
		}
		if !want && w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", body, w.Code)
		}
	}
}
