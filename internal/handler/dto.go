package handler

import (
	"time"

	"github.com/refugio-dev/refugio/internal/domain"
)

type animalResponse struct {
	Id           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Type         string    `json:"type"`
	Size         string    `json:"size"`
	Age          string    `json:"age"`
	Genre        string    `json:"genre"`
	Adopted      bool      `json:"adopted"`
	Photos       []string  `json:"photos"`
	RegisterDate time.Time `json:"register_date"`
}

func toAnimalResponse(animal *domain.Animal) animalResponse {
	return animalResponse{
		Id:           animal.Id,
		Name:         animal.Name,
		Description:  animal.Description,
		Type:         animal.Type,
		Size:         animal.Size,
		Age:          animal.Age,
		Genre:        animal.Genre,
		Adopted:      animal.Adopted,
		Photos:       animal.Photos.Locators(),
		RegisterDate: animal.RegisterDate,
	}
}

type newsResponse struct {
	Id          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHtml string    `json:"content_html"`
	Photos      []string  `json:"photos"`
	Date        time.Time `json:"date"`
}

func toNewsResponse(news *domain.News) newsResponse {
	return newsResponse{
		Id:          news.Id,
		Title:       news.Title,
		Content:     news.Content,
		ContentHtml: news.RenderedContent,
		Photos:      news.Photos.Locators(),
		Date:        news.Date,
	}
}
