package httpserver_test

import (
	"testing"

	"movieapi/errs"
	"movieapi/httpserver"

	"github.com/stretchr/testify/assert"
)

func TestCustomValidator(t *testing.T) {
	v := httpserver.NewValidator()

	t.Run("accepts a valid request", func(t *testing.T) {
		title := "Inception"

		assert.NoError(t, v.Validate(&httpserver.MovieRequest{Title: &title}))
	})

	t.Run("names fields by their json key", func(t *testing.T) {
		genre := string(make([]byte, 101))

		err := v.Validate(&httpserver.MovieRequest{Genre: &genre})

		assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
		assert.Equal(t, "validation error: genre failed on max", errs.ErrorMessage(err))
	})

	t.Run("keeps percent signs in field names", func(t *testing.T) {
		req := struct {
			Share int `json:"share%" validate:"lte=100"`
		}{Share: 150}

		err := v.Validate(&req)

		assert.Equal(t, "validation error: share% failed on lte", errs.ErrorMessage(err))
	})
}
