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

func (s *Storage) CreateAnimal(ctx context.Context, animal *domain.Animal) (domain.AnimalId, error) {
	registerDate := animal.RegisterDate
	if registerDate.IsZero() {
		registerDate = time.Now().UTC()
	}

	var id domain.AnimalId
	err := s.db.QueryRowContext(ctx, `
	INSERT INTO animals(name, description, type, size, age, genre, adopted, photos, register_date)
	VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id`,
		animal.Name, animal.Description, animal.Type, animal.Size, animal.Age,
		animal.Genre, animal.Adopted, animal.Photos.Encode(), registerDate).Scan(&id)
	if err != nil {
		return -1, err
	}
	return id, nil
}

func (s *Storage) GetAnimal(ctx context.Context, id domain.AnimalId) (*domain.Animal, error) {
	var animal domain.Animal
	var photos sql.NullString
	err := s.db.QueryRowContext(ctx, `
	SELECT id, name, description, type, size, age, genre, adopted, photos, register_date
	FROM animals
	WHERE id = $1`, id).Scan(
		&animal.Id, &animal.Name, &animal.Description, &animal.Type, &animal.Size,
		&animal.Age, &animal.Genre, &animal.Adopted, &photos, &animal.RegisterDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &internal_errors.ErrorWithStatusCode{Message: "Animal not found", StatusCode: http.StatusNotFound}
		}
		return nil, err
	}
	animal.Photos = domain.DecodeAttachments(photos.String)
	return &animal, nil
}

func (s *Storage) GetAnimals(ctx context.Context) ([]domain.Animal, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, name, description, type, size, age, genre, adopted, photos, register_date
	FROM animals
	ORDER BY register_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var animals []domain.Animal
	for rows.Next() {
		var animal domain.Animal
		var photos sql.NullString
		if err := rows.Scan(
			&animal.Id, &animal.Name, &animal.Description, &animal.Type, &animal.Size,
			&animal.Age, &animal.Genre, &animal.Adopted, &photos, &animal.RegisterDate); err != nil {
			return nil, err
		}
		animal.Photos = domain.DecodeAttachments(photos.String)
		animals = append(animals, animal)
	}
	return animals, rows.Err()
}

func (s *Storage) UpdateAnimal(ctx context.Context, id domain.AnimalId, upd domain.AnimalUpdate) error {
	var result sql.Result
	var err error
	if upd.Photos != nil {
		result, err = s.db.ExecContext(ctx, `
		UPDATE animals
		SET name = $1, description = $2, type = $3, size = $4, age = $5, genre = $6, adopted = $7, photos = $8
		WHERE id = $9`,
			upd.Name, upd.Description, upd.Type, upd.Size, upd.Age, upd.Genre, upd.Adopted,
			upd.Photos.Encode(), id)
	} else {
		result, err = s.db.ExecContext(ctx, `
		UPDATE animals
		SET name = $1, description = $2, type = $3, size = $4, age = $5, genre = $6, adopted = $7
		WHERE id = $8`,
			upd.Name, upd.Description, upd.Type, upd.Size, upd.Age, upd.Genre, upd.Adopted, id)
	}
	if err != nil {
		return err
	}
	return requireRow(result, "Animal not found")
}

func (s *Storage) DeleteAnimal(ctx context.Context, id domain.AnimalId) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result, "Animal not found")
}

func requireRow(result sql.Result, notFoundMsg string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: notFoundMsg, StatusCode: http.StatusNotFound}
	}
	return nil
}
