package pg

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/refugio-dev/refugio/internal/domain"
	internal_errors "github.com/refugio-dev/refugio/internal/errors"
)

func (s *Storage) CreateNews(ctx context.Context, news *domain.News) (domain.NewsId, error) {
	date := news.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	var id domain.NewsId
	err := s.db.QueryRowContext(ctx, `
	INSERT INTO news(title, content, photos, date)
	VALUES($1, $2, $3, $4)
	RETURNING id`,
		news.Title, news.Content, news.Photos.Encode(), date).Scan(&id)
	if err != nil {
		return -1, err
	}
	return id, nil
}

func (s *Storage) GetNews(ctx context.Context, id domain.NewsId) (*domain.News, error) {
	var news domain.News
	var photos sql.NullString
	err := s.db.QueryRowContext(ctx, `
	SELECT id, title, content, photos, date
	FROM news
	WHERE id = $1`, id).Scan(&news.Id, &news.Title, &news.Content, &photos, &news.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &internal_errors.ErrorWithStatusCode{Message: "News not found", StatusCode: http.StatusNotFound}
		}
		return nil, err
	}
	news.Photos = domain.DecodeAttachments(photos.String)
	return &news, nil
}

func (s *Storage) GetAllNews(ctx context.Context) ([]domain.News, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, title, content, photos, date
	FROM news
	ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.News
	for rows.Next() {
		var news domain.News
		var photos sql.NullString
		if err := rows.Scan(&news.Id, &news.Title, &news.Content, &photos, &news.Date); err != nil {
			return nil, err
		}
		news.Photos = domain.DecodeAttachments(photos.String)
		items = append(items, news)
	}
	return items, rows.Err()
}

func (s *Storage) UpdateNews(ctx context.Context, id domain.NewsId, upd domain.NewsUpdate) error {
	var result sql.Result
	var err error
	if upd.Photos != nil {
		result, err = s.db.ExecContext(ctx, `
		UPDATE news
		SET title = $1, content = $2, photos = $3
		WHERE id = $4`,
			upd.Title, upd.Content, upd.Photos.Encode(), id)
	} else {
		result, err = s.db.ExecContext(ctx, `
		UPDATE news
		SET title = $1, content = $2
		WHERE id = $3`,
			upd.Title, upd.Content, id)
	}
	if err != nil {
		return err
	}
	return requireRow(result, "News not found")
}

func (s *Storage) DeleteNews(ctx context.Context, id domain.NewsId) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result, "News not found")
}

// GetAllPhotoColumns returns the raw photos column of every record of both
// kinds. Feeds the orphan sweep; decoding stays with the caller.
func (s *Storage) GetAllPhotoColumns(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT photos FROM animals
	UNION ALL
	SELECT photos FROM news`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var photos sql.NullString
		if err := rows.Scan(&photos); err != nil {
			return nil, err
		}
		columns = append(columns, photos.String)
	}
	return columns, rows.Err()
}
