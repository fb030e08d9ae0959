package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/refugio-dev/refugio/internal/domain"
	"github.com/refugio-dev/refugio/internal/utils"
)

type animalPayload struct {
	Name        string `validate:"required" json:"name"`
	Description string `validate:"required" json:"description"`
	Type        string `validate:"required" json:"type"`
	Size        string `validate:"required" json:"size"`
	Age         string `validate:"required" json:"age"`
	Genre       string `validate:"required" json:"genre"`
	Adopted     bool   `json:"adopted"`
}

func (h *Handler) CreateAnimal(w http.ResponseWriter, r *http.Request) {
	body, files, err := parseMultipartRequest[animalPayload](w, r, h)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	animal := &domain.Animal{
		Name:        body.Name,
		Description: body.Description,
		Type:        body.Type,
		Size:        body.Size,
		Age:         body.Age,
		Genre:       body.Genre,
		Adopted:     body.Adopted,
	}

	id, err := h.animal.Create(r.Context(), animal, files)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) GetAnimal(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "animal id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	animal, err := h.animal.Get(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAnimalResponse(animal))
}

func (h *Handler) ListAnimals(w http.ResponseWriter, r *http.Request) {
	animals, err := h.animal.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	response := make([]animalResponse, 0, len(animals))
	for i := range animals {
		response = append(response, toAnimalResponse(&animals[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) UpdateAnimal(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "animal id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	body, files, err := parseMultipartRequest[animalPayload](w, r, h)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	upd := domain.AnimalUpdate{
		Name:        body.Name,
		Description: body.Description,
		Type:        body.Type,
		Size:        body.Size,
		Age:         body.Age,
		Genre:       body.Genre,
		Adopted:     body.Adopted,
	}

	if err := h.animal.Update(r.Context(), id, upd, files); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteAnimal(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "animal id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.animal.Delete(r.Context(), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
