package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		panicV  any
		details string
	}{
		{"error value", errors.New("connection reset"), "connection reset"},
		{"string value", "boom", "boom"},
		{"other value", 42, "42"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RecoveryMiddleware())
			router.GET("/panic", func(c *gin.Context) { panic(tc.panicV) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.JSONEq(t, `{"error":"Internal server error","details":"`+tc.details+`"}`, w.Body.String())
		})
	}
}
