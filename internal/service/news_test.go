package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refugio-dev/refugio/internal/domain"
)

type MockNewsStorage struct {
	CreateNewsFunc func(ctx context.Context, news *domain.News) (domain.NewsId, error)
	GetNewsFunc    func(ctx context.Context, id domain.NewsId) (*domain.News, error)
	GetAllNewsFunc func(ctx context.Context) ([]domain.News, error)
	UpdateNewsFunc func(ctx context.Context, id domain.NewsId, upd domain.NewsUpdate) error
	DeleteNewsFunc func(ctx context.Context, id domain.NewsId) error

	mu          sync.Mutex
	updateCalls []domain.NewsUpdate
}

func (m *MockNewsStorage) CreateNews(ctx context.Context, news *domain.News) (domain.NewsId, error) {
	if m.CreateNewsFunc != nil {
		return m.CreateNewsFunc(ctx, news)
	}
	return 1, nil
}

func (m *MockNewsStorage) GetNews(ctx context.Context, id domain.NewsId) (*domain.News, error) {
	if m.GetNewsFunc != nil {
		return m.GetNewsFunc(ctx, id)
	}
	return &domain.News{Id: id}, nil
}

func (m *MockNewsStorage) GetAllNews(ctx context.Context) ([]domain.News, error) {
	if m.GetAllNewsFunc != nil {
		return m.GetAllNewsFunc(ctx)
	}
	return nil, nil
}

func (m *MockNewsStorage) UpdateNews(ctx context.Context, id domain.NewsId, upd domain.NewsUpdate) error {
	m.mu.Lock()
	m.updateCalls = append(m.updateCalls, upd)
	m.mu.Unlock()
	if m.UpdateNewsFunc != nil {
		return m.UpdateNewsFunc(ctx, id, upd)
	}
	return nil
}

func (m *MockNewsStorage) DeleteNews(ctx context.Context, id domain.NewsId) error {
	if m.DeleteNewsFunc != nil {
		return m.DeleteNewsFunc(ctx, id)
	}
	return nil
}

type MockNewsValidator struct {
	NewsFunc func(title, content string) error
}

func (m *MockNewsValidator) News(title, content string) error {
	if m.NewsFunc != nil {
		return m.NewsFunc(title, content)
	}
	return nil
}

type MockRenderer struct{}

func (MockRenderer) Render(markdown string) string {
	return "<p>" + markdown + "</p>"
}

func newNewsFixture(store *MockBlobStore) (*MockNewsStorage, NewsService) {
	storage := &MockNewsStorage{}
	mediaService := NewMedia(&MockTransformer{}, store, 2)
	return storage, NewNews(storage, mediaService, &MockNewsValidator{}, MockRenderer{})
}

func TestNewsCreate(t *testing.T) {
	store := &MockBlobStore{}
	storage, service := newNewsFixture(store)

	var created *domain.News
	storage.CreateNewsFunc = func(ctx context.Context, news *domain.News) (domain.NewsId, error) {
		created = news
		return 3, nil
	}

	id, err := service.Create(context.Background(), &domain.News{Title: "Adoption day", Content: "**soon**"}, pendingFiles("a"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	require.NotNil(t, created)
	assert.Equal(t, []string{"https://res.example.com/demo/image/upload/v1/a.jpg"}, created.Photos.Locators())
}

func TestNewsCreateValidationError(t *testing.T) {
	store := &MockBlobStore{}
	storage := &MockNewsStorage{}
	mediaService := NewMedia(&MockTransformer{}, store, 2)
	validator := &MockNewsValidator{NewsFunc: func(title, content string) error {
		return errors.New("Title is required")
	}}
	service := NewNews(storage, mediaService, validator, MockRenderer{})

	_, err := service.Create(context.Background(), &domain.News{}, pendingFiles("a"))
	assert.Error(t, err)
	assert.Equal(t, 0, store.UploadCount())
}

func TestNewsGetRendersContent(t *testing.T) {
	store := &MockBlobStore{}
	storage, service := newNewsFixture(store)

	storage.GetNewsFunc = func(ctx context.Context, id domain.NewsId) (*domain.News, error) {
		return &domain.News{Id: id, Content: "hello"}, nil
	}

	news, err := service.Get(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "<p>hello</p>", news.RenderedContent)
}

func TestNewsListRendersContent(t *testing.T) {
	store := &MockBlobStore{}
	storage, service := newNewsFixture(store)

	storage.GetAllNewsFunc = func(ctx context.Context) ([]domain.News, error) {
		return []domain.News{{Content: "one"}, {Content: "two"}}, nil
	}

	items, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "<p>one</p>", items[0].RenderedContent)
	assert.Equal(t, "<p>two</p>", items[1].RenderedContent)
}

func TestNewsUpdateReplacesPhotos(t *testing.T) {
	store := &MockBlobStore{}
	storage, service := newNewsFixture(store)

	storage.GetNewsFunc = func(ctx context.Context, id domain.NewsId) (*domain.News, error) {
		return &domain.News{Id: id, Photos: domain.NewAttachmentSet(
			"https://res.example.com/demo/image/upload/v1/old.jpg",
		)}, nil
	}

	upd := domain.NewsUpdate{Title: "t", Content: "c"}
	require.NoError(t, service.Update(context.Background(), 4, upd, pendingFiles("new")))

	require.Len(t, storage.updateCalls, 1)
	require.NotNil(t, storage.updateCalls[0].Photos)
	assert.Equal(t, []string{"https://res.example.com/demo/image/upload/v1/new.jpg"},
		storage.updateCalls[0].Photos.Locators())
	assert.Equal(t, []string{"old"}, store.DeleteCalls())
}

func TestNewsUpdateWithoutFiles(t *testing.T) {
	store := &MockBlobStore{}
	storage, service := newNewsFixture(store)

	require.NoError(t, service.Update(context.Background(), 4, domain.NewsUpdate{Title: "t", Content: "c"}, nil))

	require.Len(t, storage.updateCalls, 1)
	assert.Nil(t, storage.updateCalls[0].Photos)
	assert.Empty(t, store.DeleteCalls())
}

func TestNewsDelete(t *testing.T) {
	store := &MockBlobStore{}
	storage, service := newNewsFixture(store)

	storage.GetNewsFunc = func(ctx context.Context, id domain.NewsId) (*domain.News, error) {
		return &domain.News{Id: id, Photos: domain.NewAttachmentSet(
			"https://res.example.com/demo/image/upload/v1/a.jpg",
		)}, nil
	}

	require.NoError(t, service.Delete(context.Background(), 4))
	assert.Equal(t, []string{"a"}, store.DeleteCalls())
}
