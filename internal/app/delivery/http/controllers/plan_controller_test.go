package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"roster-service/internal/pkg/constvars"
	"roster-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyError(t *testing.T) {
	t.Run("oversized body", func(t *testing.T) {
		err := bodyError(fmt.Errorf("read: %w", &http.MaxBytesError{Limit: 2 << 20}), exceptions.ErrCannotParseJSON)

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusRequestTooLarge, customErr.StatusCode)
		assert.Equal(t, "request body is larger than 2 MB", customErr.ClientMessage)
	})

	t.Run("other errors use the fallback", func(t *testing.T) {
		err := bodyError(errors.New("unexpected EOF"), exceptions.ErrCannotParseJSON)

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
		assert.Contains(t, customErr.DevMessage, constvars.ErrDevCannotParseJSON)
	})
}
