package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name  string
		query string
		want  PaginationParams
	}{
		{"defaults", "", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
		{"explicit window", "?page=3&limit=10", PaginationParams{Page: 3, Limit: 10, Offset: 20}},
		{"negative page clamps", "?page=-1", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
		{"oversized limit clamps", "?limit=9999", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
		{"garbage falls back", "?page=abc&limit=xyz", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/events"+tt.query, nil)

			require.Equal(t, tt.want, GetPaginationParams(c))
		})
	}
}

func TestPaginationParamsResponse(t *testing.T) {
	params := PaginationParams{Page: 2, Limit: 10, Offset: 10}
	require.Equal(t, PaginationResponse{Page: 2, Limit: 10, Total: 57}, params.Response(57))
}
