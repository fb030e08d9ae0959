package service

import (
	"context"

	"github.com/refugio-dev/refugio/internal/domain"
	"github.com/refugio-dev/refugio/internal/logger"
)

type AnimalService interface {
	Create(ctx context.Context, animal *domain.Animal, files []*domain.PendingFile) (domain.AnimalId, error)
	Get(ctx context.Context, id domain.AnimalId) (*domain.Animal, error)
	List(ctx context.Context) ([]domain.Animal, error)
	Update(ctx context.Context, id domain.AnimalId, upd domain.AnimalUpdate, files []*domain.PendingFile) error
	Delete(ctx context.Context, id domain.AnimalId) error
}

type AnimalStorage interface {
	CreateAnimal(ctx context.Context, animal *domain.Animal) (domain.AnimalId, error)
	GetAnimal(ctx context.Context, id domain.AnimalId) (*domain.Animal, error)
	GetAnimals(ctx context.Context) ([]domain.Animal, error)
	UpdateAnimal(ctx context.Context, id domain.AnimalId, upd domain.AnimalUpdate) error
	DeleteAnimal(ctx context.Context, id domain.AnimalId) error
}

type AnimalValidator interface {
	Animal(name, description, animalType, size, age, genre string) error
}

type Animal struct {
	storage   AnimalStorage
	media     *Media
	validator AnimalValidator
}

func NewAnimal(storage AnimalStorage, media *Media, validator AnimalValidator) AnimalService {
	return &Animal{storage, media, validator}
}

// Create uploads whatever subset of the submitted files survives the
// pipeline and persists the record with it. Partial photo loss is preferred
// over blocking record creation; a metadata write failure is terminal and
// leaves the already-uploaded assets as accepted orphans.
func (a *Animal) Create(ctx context.Context, animal *domain.Animal, files []*domain.PendingFile) (domain.AnimalId, error) {
	if err := a.validator.Animal(animal.Name, animal.Description, animal.Type, animal.Size, animal.Age, animal.Genre); err != nil {
		return 0, err
	}

	photos, dropped := a.media.Attach(ctx, files)
	if len(dropped) > 0 {
		logger.Log.Warn("animal created with reduced photo set", "dropped", dropped)
	}
	animal.Photos = photos

	id, err := a.storage.CreateAnimal(ctx, animal)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (a *Animal) Get(ctx context.Context, id domain.AnimalId) (*domain.Animal, error) {
	return a.storage.GetAnimal(ctx, id)
}

func (a *Animal) List(ctx context.Context) ([]domain.Animal, error) {
	return a.storage.GetAnimals(ctx)
}

// Update replaces the record fields. When new files are supplied the
// attachment set is rebuilt wholesale and the previous set's orphans are
// deleted best-effort, only after the metadata write succeeded. Without new
// files the attachment set is untouched and no remote calls happen.
func (a *Animal) Update(ctx context.Context, id domain.AnimalId, upd domain.AnimalUpdate, files []*domain.PendingFile) error {
	if err := a.validator.Animal(upd.Name, upd.Description, upd.Type, upd.Size, upd.Age, upd.Genre); err != nil {
		return err
	}

	if len(files) == 0 {
		upd.Photos = nil
		return a.storage.UpdateAnimal(ctx, id, upd)
	}

	previous, err := a.storage.GetAnimal(ctx, id)
	if err != nil {
		return err
	}

	replacement, dropped := a.media.Attach(ctx, files)
	if len(dropped) > 0 {
		logger.Log.Warn("animal updated with reduced photo set", "id", id, "dropped", dropped)
	}
	upd.Photos = &replacement

	if err := a.storage.UpdateAnimal(ctx, id, upd); err != nil {
		return err
	}

	// Cleanup runs only after the metadata write: a failed delete leaves a
	// harmless orphan, while the record keeps referencing photos that exist.
	a.media.Cleanup(ctx, previous.Photos.Diff(replacement))
	return nil
}

// Delete attempts remote cleanup for every photo, then removes the record.
// Cleanup failures never block the deletion; a metadata delete failure
// fails the whole operation.
func (a *Animal) Delete(ctx context.Context, id domain.AnimalId) error {
	animal, err := a.storage.GetAnimal(ctx, id)
	if err != nil {
		return err
	}

	a.media.Cleanup(ctx, animal.Photos)

	return a.storage.DeleteAnimal(ctx, id)
}
