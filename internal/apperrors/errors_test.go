package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Respond(c, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRespond_StatusPerKind(t *testing.T) {
	tests := []struct {
		err    *Error
		status int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{New(KindUnauthorized, "who are you"), http.StatusUnauthorized},
		{Forbidden("not yours"), http.StatusForbidden},
		{NotFound("gone"), http.StatusNotFound},
		{Conflict("taken"), http.StatusConflict},
		{Storage("disk full"), http.StatusInternalServerError},
		{Internal("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Kind), func(t *testing.T) {
			w, body := respond(t, tt.err)
			require.Equal(t, tt.status, w.Code)
			require.Equal(t, false, body["ok"])
			require.Equal(t, string(tt.err.Kind), body["code"])
			require.Equal(t, tt.err.Message, body["error"])
		})
	}
}

func TestRespond_UnknownErrorsStayOpaque(t *testing.T) {
	w, body := respond(t, errors.New("database exploded: secret dsn"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "INTERNAL_ERROR", body["code"])
	require.Equal(t, "Internal server error", body["error"])
}

func TestRespond_UnwrapsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("while reviewing: %w", Conflict("already approved"))

	w, body := respond(t, wrapped)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "already approved", body["error"])
}

func TestSentinelsWorkWithErrorsIs(t *testing.T) {
	sentinel := Forbidden("not allowed")

	require.ErrorIs(t, sentinel, sentinel)
	require.ErrorIs(t, fmt.Errorf("wrapped: %w", sentinel), sentinel)
	require.NotErrorIs(t, Forbidden("not allowed"), sentinel)
}
