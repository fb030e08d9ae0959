package utils

import (
	"net/http"
	"unicode/utf8"

	"github.com/refugio-dev/refugio/internal/domain"
	internal_errors "github.com/refugio-dev/refugio/internal/errors"
)

var allowedGenres = map[string]bool{
	domain.GenreMale:    true,
	domain.GenreFemale:  true,
	domain.GenreUnknown: true,
}

type AnimalValidator struct{}

func (v *AnimalValidator) Animal(name, description, animalType, size, age, genre string) error {
	if name == "" || description == "" || animalType == "" || size == "" || age == "" || genre == "" {
		return &internal_errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: http.StatusBadRequest}
	}
	if utf8.RuneCountInString(name) > 100 {
		return &internal_errors.ErrorWithStatusCode{Message: "Name is too long", StatusCode: http.StatusBadRequest}
	}
	if utf8.RuneCountInString(description) > 10_000 {
		return &internal_errors.ErrorWithStatusCode{Message: "Description is too long", StatusCode: http.StatusBadRequest}
	}
	if !allowedGenres[genre] {
		return &internal_errors.ErrorWithStatusCode{Message: "Genre must be one of: male, female, unknown", StatusCode: http.StatusBadRequest}
	}
	return nil
}

type NewsValidator struct{}

func (v *NewsValidator) News(title, content string) error {
	if title == "" || content == "" {
		return &internal_errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: http.StatusBadRequest}
	}
	if utf8.RuneCountInString(title) > 200 {
		return &internal_errors.ErrorWithStatusCode{Message: "Title is too long", StatusCode: http.StatusBadRequest}
	}
	if utf8.RuneCountInString(content) > 50_000 {
		return &internal_errors.ErrorWithStatusCode{Message: "Content is too long", StatusCode: http.StatusBadRequest}
	}
	return nil
}
