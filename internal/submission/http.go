package submission

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/majallahq/majalla/internal/platform/middleware"
	requestutil "github.com/majallahq/majalla/internal/platform/request"
	"github.com/majallahq/majalla/internal/platform/respond"
	"github.com/majallahq/majalla/internal/platform/validate"
)

// maxMultipartMemory bounds the in-memory portion of a multipart parse;
// larger parts spill to temp files.
const maxMultipartMemory = 8 << 20

// coverFormField is the multipart part name carrying the cover image. Every
// other file part is treated as an inline block image keyed by its part name.
const coverFormField = "cover_image"

// payloadFormField is the multipart part name carrying the JSON payload.
const payloadFormField = "payload"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public: the submission form drives both endpoints.
	router.Post("/check-email", handler.checkEmail)
	router.Post("/", handler.create)
}

func (handler *Handler) checkEmail(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.CheckEmail(request.Context(), input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

// create accepts either a plain JSON body or, when a cover image or inline
// block images are attached, a multipart form with the JSON under "payload".
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var payload *Payload
	var err error

	if strings.HasPrefix(request.Header.Get("Content-Type"), "multipart/") {
		payload, err = decodeMultipart(request)
	} else {
		payload = &Payload{}
		err = requestutil.DecodeJSON(request, payload)
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	payload.ClientIP = middleware.RealIP(request)

	result, err := handler.service.Create(request.Context(), payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, result)
}

// decodeMultipart pulls the JSON payload, the cover image, and the inline
// block images out of a multipart form. Block image parts are keyed by the
// file reference their block carries.
func decodeMultipart(request *http.Request) (*Payload, error) {
	if err := request.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, validate.RequiredError(payloadFormField, "Invalid multipart form")
	}

	raw := request.FormValue(payloadFormField)
	if raw == "" {
		return nil, validate.RequiredError(payloadFormField, "Missing submission payload")
	}

	payload := &Payload{}
	if err := json.Unmarshal([]byte(raw), payload); err != nil {
		return nil, validate.RequiredError(payloadFormField, "Malformed submission payload")
	}

	cover, files, err := CollectFiles(request.MultipartForm)
	if err != nil {
		return nil, err
	}
	payload.Cover = cover
	payload.Files = files

	return payload, nil
}

// CollectFiles loads every file part of a parsed multipart form into memory.
// The part named "cover_image" becomes the cover; every other part is an
// inline block image keyed by its part name (the block's file reference).
func CollectFiles(form *multipart.Form) (*FileUpload, map[string]FileUpload, error) {
	var cover *FileUpload
	files := make(map[string]FileUpload)

	for name, headers := range form.File {
		if len(headers) == 0 {
			continue
		}
		upload, err := readPart(headers[0])
		if err != nil {
			return nil, nil, err
		}
		if name == coverFormField {
			cover = upload
			continue
		}
		files[name] = *upload
	}

	return cover, files, nil
}

func readPart(header *multipart.FileHeader) (*FileUpload, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &FileUpload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

