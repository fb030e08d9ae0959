package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/refugio-dev/refugio/internal/domain"
	"github.com/refugio-dev/refugio/internal/utils"
)

type newsPayload struct {
	Title   string `validate:"required" json:"title"`
	Content string `validate:"required" json:"content"`
}

func (h *Handler) CreateNews(w http.ResponseWriter, r *http.Request) {
	body, files, err := parseMultipartRequest[newsPayload](w, r, h)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	news := &domain.News{
		Title:   body.Title,
		Content: body.Content,
	}

	id, err := h.news.Create(r.Context(), news, files)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "news id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	news, err := h.news.Get(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toNewsResponse(news))
}

func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	items, err := h.news.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	response := make([]newsResponse, 0, len(items))
	for i := range items {
		response = append(response, toNewsResponse(&items[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "news id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	body, files, err := parseMultipartRequest[newsPayload](w, r, h)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	upd := domain.NewsUpdate{
		Title:   body.Title,
		Content: body.Content,
	}

	if err := h.news.Update(r.Context(), id, upd, files); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "news id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.news.Delete(r.Context(), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
