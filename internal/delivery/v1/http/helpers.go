package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/bikeshop-backend/internal/pricing"
	"github.com/DRSN-tech/bikeshop-backend/internal/usecase"
	"github.com/DRSN-tech/bikeshop-backend/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
)

const maxJSONBodySize = 1 << 20

var validate = validator.New()

// ErrorResponse — тело ответа с ошибкой. Для отказов движка цен заполняются Kind, ID и Reason.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Kind    string `json:"kind,omitempty"`
	ID      string `json:"id,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// requestError — ошибка разбора запроса, текст которой можно показать клиенту.
type requestError struct {
	msg string
}

func (r *requestError) Error() string { return r.msg }

func (r *requestError) Unwrap() error { return e.ErrStatusBadRequest }

func badRequest(format string, args ...any) error {
	return &requestError{msg: fmt.Sprintf(format, args...)}
}

// Публичные ошибки в порядке проверки. Первая совпавшая задаёт текст ответа.
var (
	notFoundErrs = []error{
		e.ErrProductNotFound,
		e.ErrPartNotFound,
		e.ErrVariantNotFound,
		e.ErrDependencyNotFound,
		e.ErrCustomPriceNotFound,
		e.ErrCartNotFound,
	}
	validationErrs = []error{
		e.ErrProductUnavailable,
		e.ErrProductOutOfStock,
		e.ErrProductNotCustomisable,
		e.ErrVariantUnavailable,
		e.ErrVariantOutOfStock,
		e.ErrVariantNotInProduct,
		e.ErrDependencyUnmet,
		e.ErrMissingFields,
		e.ErrInvalidID,
		e.ErrInvalidPrice,
		e.ErrPricePrecision,
		e.ErrNegativeStock,
		e.ErrNameRequired,
		e.ErrInvalidPagination,
		e.ErrEmptyCart,
		e.ErrExpectedMultipart,
		e.ErrNoImages,
		e.ErrTooManyImages,
		e.ErrFileTooLarge,
		e.ErrUnsupportedMediaType,
	}
	conflictErrs = []error{
		e.ErrCartAlreadyPurchased,
		e.ErrDependencyExists,
		e.ErrReferencedRecord,
	}
)

func ToHTTPResponse(err error) (int, *ErrorResponse) {
	if rej, ok := pricing.AsRejection(err); ok {
		code := http.StatusBadRequest
		if errors.Is(rej, e.ErrNotFound) {
			code = http.StatusNotFound
		}
		resp := NewErrorResponse(code, rej.Unwrap().Error())
		resp.Kind = rej.Kind.String()
		resp.ID = rej.ID.String()
		resp.Reason = rej.Kind.Reason()
		return code, resp
	}

	var reqErr *requestError
	if errors.As(err, &reqErr) {
		resp := NewErrorResponse(http.StatusBadRequest, e.ErrStatusBadRequest.Error())
		resp.Details = reqErr.msg
		return http.StatusBadRequest, resp
	}

	switch {
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound, NewErrorResponse(http.StatusNotFound, publicMessage(err, notFoundErrs, e.ErrNotFound))
	case errors.Is(err, e.ErrValidation):
		return http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, publicMessage(err, validationErrs, e.ErrStatusBadRequest))
	case errors.Is(err, e.ErrConflict):
		return http.StatusConflict, NewErrorResponse(http.StatusConflict, publicMessage(err, conflictErrs, e.ErrConflict))
	default:
		return http.StatusInternalServerError, NewErrorResponse(http.StatusInternalServerError, e.ErrInternalServerError.Error())
	}
}

func publicMessage(err error, known []error, fallback error) string {
	for _, k := range known {
		if errors.Is(err, k) {
			return k.Error()
		}
	}
	return fallback.Error()
}

func WriteError(w http.ResponseWriter, err error) {
	code, resp := ToHTTPResponse(err)
	WriteSuccess(w, code, resp)
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// decodeJSON читает тело запроса в dst и проверяет теги validate.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodySize))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return badRequest("request body is empty")
		}
		return badRequest("invalid JSON body: %v", err)
	}

	if err := validateStruct(dst); err != nil {
		return err
	}
	return nil
}

func validateStruct(dst any) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		// не структура: патчи и прочие типы без тегов
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return nil
		}
		return badRequest("%v", err)
	}

	fields := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		fields = append(fields, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
	}
	return badRequest("invalid fields: %s", strings.Join(fields, ", "))
}

// uuidParam разбирает идентификатор из пути.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, e.Wrap(fmt.Sprintf("%s=%q", name, raw), e.ErrInvalidID)
	}
	return id, nil
}

// intQuery возвращает числовой параметр запроса или def, если параметра нет.
func intQuery(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, e.Wrap(fmt.Sprintf("%s=%q", name, raw), e.ErrInvalidPagination)
	}
	return v, nil
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return badRequest("invalid multipart form: %v", err)
	}
	return nil
}

func parseImages(files []*multipart.FileHeader, maxCount int, maxFileSize int64) ([]usecase.ProductImage, error) {
	if len(files) == 0 {
		return nil, e.ErrNoImages
	}
	if len(files) > maxCount {
		return nil, e.ErrTooManyImages
	}

	images := make([]usecase.ProductImage, 0, len(files))
	for _, fh := range files {
		if fh.Size > maxFileSize {
			return nil, e.Wrap(fh.Filename, e.ErrFileTooLarge)
		}

		data, mimeType, err := readFile(fh, maxFileSize)
		if err != nil {
			return nil, err
		}
		images = append(images, *usecase.NewProductImage(data, mimeType, int64(len(data)), fh.Filename))
	}
	return images, nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", e.Wrap(fh.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, "", e.Wrap(fh.Filename, err)
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}
