package article

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/majallahq/majalla/internal/platform/middleware"
	"github.com/majallahq/majalla/internal/platform/respond"
	"github.com/majallahq/majalla/internal/platform/sec"
	"github.com/majallahq/majalla/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Editorial only
	router.With(middleware.RequireRole(sec.RoleEditor)).Get("/drafts", handler.listDrafts)
}

// listDrafts serves the editorial review queue.
func (handler *Handler) listDrafts(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	drafts, total, err := handler.service.ListDrafts(request.Context(), paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, drafts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}
