package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestFail_WritesEnvelopeAndAborts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ran := false
	r.GET("/boom", func(c *gin.Context) {
		c.Header("X-Request-ID", "req-123")
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, "bad input")
	}, func(c *gin.Context) {
		ran = true
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", w.Code)
	}
	if ran {
		t.Fatalf("chain should be aborted after fail()")
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.RequestID != "req-123" || resp.Code != ErrCodeValidation || resp.Message != "bad input" {
		t.Fatalf("envelope = %+v", resp)
	}
}

func TestFail_OmitsEmptyRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/boom", func(c *gin.Context) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "gone")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	var raw map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, present := raw["request_id"]; present {
		t.Fatalf("request_id should be omitted when empty: %v", raw)
	}
}

func TestFail_ServerErrorLogsWithoutPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/boom", func(c *gin.Context) {
		// No request-scoped logger installed; fail() must fall back cleanly.
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "kaboom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestExportedFail_MatchesInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.NoRoute(func(c *gin.Context) {
		Fail(c, http.StatusNotFound, ErrCodeNotFound, "resource not found")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	var resp ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Code != ErrCodeNotFound {
		t.Fatalf("code = %q", resp.Code)
	}
}

func TestOK_WritesJSONBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", func(c *gin.Context) {
		ok(c, http.StatusOK, map[string]string{"pong": "yes"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var raw map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if raw["pong"] != "yes" {
		t.Fatalf("body = %v", raw)
	}
}
