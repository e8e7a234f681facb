package formconfig

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/majallahq/majalla/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public: the wizard fetches this once at mount.
	router.Get("/submission-form", handler.getSubmissionForm)
}

func (handler *Handler) getSubmissionForm(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.Resolve(request.Context()))
}
