package google

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func apiError(code int) *googleapi.Error {
	return &googleapi.Error{Code: code, Message: "boom", Header: http.Header{}}
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name string
		code int
		want error
	}{
		{name: "401 maps to unauthorized", code: http.StatusUnauthorized, want: ErrUnauthorized},
		{name: "403 maps to forbidden", code: http.StatusForbidden, want: ErrForbidden},
		{name: "404 maps to not found", code: http.StatusNotFound, want: ErrNotFound},
		{name: "429 maps to rate limited", code: http.StatusTooManyRequests, want: ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, WrapError(apiError(tt.code)), tt.want)
		})
	}

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, WrapError(nil))
	})

	t.Run("other codes pass through", func(t *testing.T) {
		err := apiError(http.StatusInternalServerError)
		assert.Equal(t, error(err), WrapError(err))
	})

	t.Run("non-API errors pass through", func(t *testing.T) {
		err := errors.New("dial tcp: i/o timeout")
		assert.Equal(t, err, WrapError(err))
	})
}

func TestErrorPredicates(t *testing.T) {
	t.Run("match raw API errors", func(t *testing.T) {
		assert.True(t, IsUnauthorized(apiError(http.StatusUnauthorized)))
		assert.True(t, IsNotFound(apiError(http.StatusNotFound)))
		assert.True(t, IsRateLimited(apiError(http.StatusTooManyRequests)))
	})

	t.Run("match wrapped sentinels", func(t *testing.T) {
		assert.True(t, IsUnauthorized(fmt.Errorf("validate: %w", ErrUnauthorized)))
		assert.True(t, IsNotFound(fmt.Errorf("fetch: %w", ErrNotFound)))
		assert.True(t, IsRateLimited(fmt.Errorf("fetch: %w", ErrRateLimited)))
	})

	t.Run("reject unrelated errors", func(t *testing.T) {
		err := errors.New("nope")
		assert.False(t, IsUnauthorized(err))
		assert.False(t, IsNotFound(err))
		assert.False(t, IsRateLimited(err))
	})
}

func TestRetryAfter(t *testing.T) {
	t.Run("reads the header", func(t *testing.T) {
		gerr := apiError(http.StatusTooManyRequests)
		gerr.Header.Set("Retry-After", "17")
		assert.Equal(t, 17, RetryAfter(gerr))
	})

	t.Run("missing or bad header yields zero", func(t *testing.T) {
		assert.Equal(t, 0, RetryAfter(apiError(http.StatusTooManyRequests)))

		gerr := apiError(http.StatusTooManyRequests)
		gerr.Header.Set("Retry-After", "soon")
		assert.Equal(t, 0, RetryAfter(gerr))

		assert.Equal(t, 0, RetryAfter(errors.New("not an API error")))
	})
}
