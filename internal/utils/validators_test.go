package utils

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internal_errors "github.com/refugio-dev/refugio/internal/errors"
)

func assertBadRequest(t *testing.T, err error, messagePart string) {
	t.Helper()
	var statusErr *internal_errors.ErrorWithStatusCode
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Contains(t, statusErr.Message, messagePart)
}

func TestAnimalValidator(t *testing.T) {
	v := &AnimalValidator{}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, v.Animal("Luna", "gentle dog", "dog", "medium", "2 years", "female"))
	})

	t.Run("missing field", func(t *testing.T) {
		err := v.Animal("Luna", "", "dog", "medium", "2 years", "female")
		assertBadRequest(t, err, "Required")
	})

	t.Run("name too long", func(t *testing.T) {
		err := v.Animal(strings.Repeat("a", 101), "d", "dog", "m", "2", "female")
		assertBadRequest(t, err, "Name")
	})

	t.Run("description too long", func(t *testing.T) {
		err := v.Animal("Luna", strings.Repeat("a", 10_001), "dog", "m", "2", "female")
		assertBadRequest(t, err, "Description")
	})

	t.Run("invalid genre", func(t *testing.T) {
		err := v.Animal("Luna", "d", "dog", "m", "2", "hembra")
		assertBadRequest(t, err, "Genre")
	})

	t.Run("length counts runes not bytes", func(t *testing.T) {
		assert.NoError(t, v.Animal(strings.Repeat("ñ", 100), "d", "dog", "m", "2", "female"))
	})
}

func TestNewsValidator(t *testing.T) {
	v := &NewsValidator{}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, v.News("Adoption day", "Join us **this weekend**."))
	})

	t.Run("missing title", func(t *testing.T) {
		assertBadRequest(t, v.News("", "content"), "Required")
	})

	t.Run("title too long", func(t *testing.T) {
		assertBadRequest(t, v.News(strings.Repeat("a", 201), "content"), "Title")
	})

	t.Run("content too long", func(t *testing.T) {
		assertBadRequest(t, v.News("t", strings.Repeat("a", 50_001)), "Content")
	})
}
