package wizard

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/majallahq/majalla/internal/platform/middleware"
	requestutil "github.com/majallahq/majalla/internal/platform/request"
	"github.com/majallahq/majalla/internal/platform/respond"
	"github.com/majallahq/majalla/internal/platform/validate"
	"github.com/majallahq/majalla/internal/submission"
)

const maxMultipartMemory = 8 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public: sessions are capability-addressed by their unguessable ID.
	router.Post("/", handler.start)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Post("/{id}/advance", handler.advance)
	router.Post("/{id}/back", handler.back)
	router.Post("/{id}/submit", handler.submit)
}

func (handler *Handler) start(writer http.ResponseWriter, request *http.Request) {
	// Claims are optional: an authenticated contributor skips the probe.
	session, err := handler.service.Start(request.Context(), requestutil.Claims(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, session)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.UpdateFields(request.Context(), requestutil.ID(request, "id"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session)
}

func (handler *Handler) advance(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.service.Advance(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session)
}

func (handler *Handler) back(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.service.Back(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session)
}

// submit finalizes the session. The request is either an empty POST (no
// images) or a multipart form carrying the cover image and any inline block
// images; all field values come from the stored session, not the request.
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var cover *submission.FileUpload
	var files map[string]submission.FileUpload

	if strings.HasPrefix(request.Header.Get("Content-Type"), "multipart/") {
		if err := request.ParseMultipartForm(maxMultipartMemory); err != nil {
			respond.Error(writer, request, validate.RequiredError("cover_image", "Invalid multipart form"))
			return
		}
		var err error
		cover, files, err = submission.CollectFiles(request.MultipartForm)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	result, err := handler.service.Submit(request.Context(), requestutil.ID(request, "id"), cover, files, middleware.RealIP(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}
