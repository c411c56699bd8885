package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSuccessResponseWithMeta(t *testing.T) {
	t.Run("rounds total pages up", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta(nil, 45, 2, 20)
		assert.True(t, resp.Success)
		assert.Equal(t, int64(45), resp.Meta.Total)
		assert.Equal(t, 2, resp.Meta.Page)
		assert.Equal(t, 3, resp.Meta.TotalPages)
	})

	t.Run("empty result has zero pages", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta(nil, 0, 1, 20)
		assert.Equal(t, 0, resp.Meta.TotalPages)
	})
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Merchant not found", "req-123")
	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestGetHTTPStatus(t *testing.T) {
	cases := map[string]int{
		ErrCodeValidation:         http.StatusBadRequest,
		ErrCodeInvalidInput:       http.StatusBadRequest,
		ErrCodeUnauthorized:       http.StatusUnauthorized,
		ErrCodeInvalidCredentials: http.StatusUnauthorized,
		ErrCodeNotFound:           http.StatusNotFound,
		ErrCodeAlreadyExists:      http.StatusConflict,
		ErrCodeConcurrency:        http.StatusConflict,
		ErrCodeInternal:           http.StatusInternalServerError,
		"SOMETHING_NEW":           http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, GetHTTPStatus(code), code)
	}
}
