package category

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/kkpa/jbh/internal"
	"github.com/kkpa/jbh/internal/core/common/pagination"
	categoryDatamodel "github.com/kkpa/jbh/internal/core/datamodel/category"
	"github.com/kkpa/jbh/internal/transport"
)

// BasePath is where the categories collection is mounted.
const BasePath = "/api/categories"

type ServiceAPI interface {
	Save(ctx context.Context, dto *Category) (*Category, error)
	FindAll(ctx context.Context, pageable pagination.Pageable) (pagination.Page[*Category], error)
	FindOne(ctx context.Context, id int64) (*Category, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// Routes mounts the five collection endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.CreateCategory)
	r.Put("/", h.UpdateCategory)
	r.Get("/", h.GetAllCategories)
	r.Get("/{id}", h.GetCategory)
	r.Delete("/{id}", h.DeleteCategory)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var dto Category
	if err := h.DecodeJSON(r, &dto, EntityName); err != nil {
		h.HandleServiceError(w, err, EntityName)
		return
	}
	h.Logger.Debug("REST request to save Categories", "name", dto.Name, "type", dto.Type)

	if dto.ID != nil {
		h.HandleServiceError(w, internal.NewBadRequestAlertError(
			"A new categories cannot already have an ID", EntityName, internal.ErrCodeIDExists), EntityName)
		return
	}

	result, err := h.Service.Save(r.Context(), &dto)
	if err != nil {
		h.HandleServiceError(w, err, EntityName)
		return
	}

	id := strconv.FormatInt(*result.ID, 10)
	w.Header().Set("Location", BasePath+"/"+id)
	h.Alerts.EntityCreationAlert(w.Header(), EntityName, id)
	h.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var dto Category
	if err := h.DecodeJSON(r, &dto, EntityName); err != nil {
		h.HandleServiceError(w, err, EntityName)
		return
	}
	if dto.ID == nil {
		h.HandleServiceError(w, internal.NewBadRequestAlertError(
			"Invalid id", EntityName, internal.ErrCodeIDNull), EntityName)
		return
	}
	h.Logger.Debug("REST request to update Categories", "id", *dto.ID, "name", dto.Name)

	result, err := h.Service.Save(r.Context(), &dto)
	if err != nil {
		h.HandleServiceError(w, err, EntityName)
		return
	}

	h.Alerts.EntityUpdateAlert(w.Header(), EntityName, strconv.FormatInt(*result.ID, 10))
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GetAllCategories(w http.ResponseWriter, r *http.Request) {
	h.Logger.Debug("REST request to get a page of Categories")

	pageable, err := pagination.Parse(r.URL.Query(), categoryDatamodel.Columns)
	if err != nil {
		h.HandleServiceError(w, err, EntityName)
		return
	}

	page, err := h.Service.FindAll(r.Context(), pageable)
	if err != nil {
		h.HandleServiceError(w, err, EntityName)
		return
	}

	transport.SetPaginationHeaders(w.Header(), page, BasePath)
	h.WriteJSON(w, http.StatusOK, page.Content)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, EntityName)
	if err != nil {
		h.HandleServiceError(w, err, EntityName)
		return
	}
	h.Logger.Debug("REST request to get Categories", "id", id)

	result, err := h.Service.FindOne(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err, EntityName)
		return
	}
	if result == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, EntityName)
	if err != nil {
		h.HandleServiceError(w, err, EntityName)
		return
	}
	h.Logger.Debug("REST request to delete Categories", "id", id)

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.HandleServiceError(w, err, EntityName)
		return
	}

	h.Alerts.EntityDeletionAlert(w.Header(), EntityName, strconv.FormatInt(id, 10))
	w.WriteHeader(http.StatusOK)
}
