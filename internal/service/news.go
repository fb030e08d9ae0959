package service

import (
	"context"

	"github.com/refugio-dev/refugio/internal/domain"
	"github.com/refugio-dev/refugio/internal/logger"
)

type NewsService interface {
	Create(ctx context.Context, news *domain.News, files []*domain.PendingFile) (domain.NewsId, error)
	Get(ctx context.Context, id domain.NewsId) (*domain.News, error)
	List(ctx context.Context) ([]domain.News, error)
	Update(ctx context.Context, id domain.NewsId, upd domain.NewsUpdate, files []*domain.PendingFile) error
	Delete(ctx context.Context, id domain.NewsId) error
}

type NewsStorage interface {
	CreateNews(ctx context.Context, news *domain.News) (domain.NewsId, error)
	GetNews(ctx context.Context, id domain.NewsId) (*domain.News, error)
	GetAllNews(ctx context.Context) ([]domain.News, error)
	UpdateNews(ctx context.Context, id domain.NewsId, upd domain.NewsUpdate) error
	DeleteNews(ctx context.Context, id domain.NewsId) error
}

type NewsValidator interface {
	News(title, content string) error
}

// ContentRenderer turns stored markdown into sanitized HTML for display.
type ContentRenderer interface {
	Render(markdown string) string
}

type News struct {
	storage   NewsStorage
	media     *Media
	validator NewsValidator
	renderer  ContentRenderer
}

func NewNews(storage NewsStorage, media *Media, validator NewsValidator, renderer ContentRenderer) NewsService {
	return &News{storage, media, validator, renderer}
}

func (n *News) Create(ctx context.Context, news *domain.News, files []*domain.PendingFile) (domain.NewsId, error) {
	if err := n.validator.News(news.Title, news.Content); err != nil {
		return 0, err
	}

	photos, dropped := n.media.Attach(ctx, files)
	if len(dropped) > 0 {
		logger.Log.Warn("news created with reduced photo set", "dropped", dropped)
	}
	news.Photos = photos

	id, err := n.storage.CreateNews(ctx, news)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (n *News) Get(ctx context.Context, id domain.NewsId) (*domain.News, error) {
	news, err := n.storage.GetNews(ctx, id)
	if err != nil {
		return nil, err
	}
	news.RenderedContent = n.renderer.Render(news.Content)
	return news, nil
}

func (n *News) List(ctx context.Context) ([]domain.News, error) {
	items, err := n.storage.GetAllNews(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].RenderedContent = n.renderer.Render(items[i].Content)
	}
	return items, nil
}

func (n *News) Update(ctx context.Context, id domain.NewsId, upd domain.NewsUpdate, files []*domain.PendingFile) error {
	if err := n.validator.News(upd.Title, upd.Content); err != nil {
		return err
	}

	if len(files) == 0 {
		upd.Photos = nil
		return n.storage.UpdateNews(ctx, id, upd)
	}

	previous, err := n.storage.GetNews(ctx, id)
	if err != nil {
		return err
	}

	replacement, dropped := n.media.Attach(ctx, files)
	if len(dropped) > 0 {
		logger.Log.Warn("news updated with reduced photo set", "id", id, "dropped", dropped)
	}
	upd.Photos = &replacement

	if err := n.storage.UpdateNews(ctx, id, upd); err != nil {
		return err
	}

	n.media.Cleanup(ctx, previous.Photos.Diff(replacement))
	return nil
}

func (n *News) Delete(ctx context.Context, id domain.NewsId) error {
	news, err := n.storage.GetNews(ctx, id)
	if err != nil {
		return err
	}

	n.media.Cleanup(ctx, news.Photos)

	return n.storage.DeleteNews(ctx, id)
}
