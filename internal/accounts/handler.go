package accounts

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/kkpa/jbh/internal"
	"github.com/kkpa/jbh/internal/core/common/pagination"
	accountsDatamodel "github.com/kkpa/jbh/internal/core/datamodel/accounts"
	"github.com/kkpa/jbh/internal/transport"
)

const BasePath = "/api/accounts"

type ServiceAPI interface {
	Save(ctx context.Context, dto *Accounts) (*Accounts, error)
	FindAll(ctx context.Context, pageable pagination.Pageable) (pagination.Page[*Accounts], error)
	FindOne(ctx context.Context, id int64) (*Accounts, error)
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

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.CreateAccounts)
	r.Put("/", h.UpdateAccounts)
	r.Get("/", h.GetAllAccounts)
	r.Get("/{id}", h.GetAccounts)
	r.Delete("/{id}", h.DeleteAccounts)
}

func (h *Handler) CreateAccounts(w http.ResponseWriter, r *http.Request) {
	var dto Accounts
	if err := h.DecodeJSON(r, &dto, EntityName); err != nil {
		h.HandleServiceError(w, err, EntityName)
		return
	}
	h.Logger.Debug("REST request to save Accounts", "description", dto.Description)

	if dto.ID != nil {
		h.HandleServiceError(w, internal.NewBadRequestAlertError(
			"A new accounts cannot already have an ID", EntityName, internal.ErrCodeIDExists), EntityName)
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

func (h *Handler) UpdateAccounts(w http.ResponseWriter, r *http.Request) {
	var dto Accounts
	if err := h.DecodeJSON(r, &dto, EntityName); err != nil {
		h.HandleServiceError(w, err, EntityName)
		return
	}
	if dto.ID == nil {
		h.HandleServiceError(w, internal.NewBadRequestAlertError(
			"Invalid id", EntityName, internal.ErrCodeIDNull), EntityName)
		return
	}
	h.Logger.Debug("REST request to update Accounts", "id", *dto.ID)

	result, err := h.Service.Save(r.Context(), &dto)
	if err != nil {
		h.HandleServiceError(w, err, EntityName)
		return
	}

	h.Alerts.EntityUpdateAlert(w.Header(), EntityName, strconv.FormatInt(*result.ID, 10))
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GetAllAccounts(w http.ResponseWriter, r *http.Request) {
	pageable, err := pagination.Parse(r.URL.Query(), accountsDatamodel.Columns)
	if err != nil {
		h.HandleServiceError(w, err, EntityName)
		return
	}
	h.Logger.Debug("REST request to get a page of Accounts", "page", pageable.Page, "size", pageable.Size)

	page, err := h.Service.FindAll(r.Context(), pageable)
	if err != nil {
		h.HandleServiceError(w, err, EntityName)
		return
	}

	transport.SetPaginationHeaders(w.Header(), page, BasePath)
	h.WriteJSON(w, http.StatusOK, page.Content)
}

func (h *Handler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, EntityName)
	if err != nil {
		h.HandleServiceError(w, err, EntityName)
		return
	}

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

func (h *Handler) DeleteAccounts(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, EntityName)
	if err != nil {
		h.HandleServiceError(w, err, EntityName)
		return
	}
	h.Logger.Debug("REST request to delete Accounts", "id", id)

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.HandleServiceError(w, err, EntityName)
		return
	}

	h.Alerts.EntityDeletionAlert(w.Header(), EntityName, strconv.FormatInt(id, 10))
	w.WriteHeader(http.StatusOK)
}
