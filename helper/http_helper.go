package helper

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"blog-api/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	en_translations "gopkg.in/go-playground/validator.v9/translations/en"
)

const (
	messageInternal   = "Internal Server Error"
	messageValidation = "Validation failed"
	messageBadBody    = "Invalid request body"
)

// HTTPHelper ...
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

// NewHTTPHelper wires an English translator into the validator and reports
// field errors under their JSON names.
func NewHTTPHelper() *HTTPHelper {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})

	english := en.New()
	translator, _ := ut.New(english, english).GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		slog.Error("registering validator translations", "error", err)
	}

	return &HTTPHelper{Validate: validate, Translator: translator}
}

// Envelope is the body of every API response.
type Envelope struct {
	Success    bool                `json:"success"`
	StatusCode int                 `json:"statusCode"`
	Message    string              `json:"message"`
	Data       interface{}         `json:"data,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
}

// GetStatusCode ...
func (u *HTTPHelper) GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.As(err, new(models.ErrorValidation)):
		return http.StatusBadRequest
	case errors.As(err, new(models.ErrorAuthentication)),
		errors.As(err, new(models.ErrorUnauthenticated)):
		return http.StatusUnauthorized
	case errors.As(err, new(models.ErrorForbidden)):
		return http.StatusForbidden
	case errors.As(err, new(models.ErrorNotFound)):
		return http.StatusNotFound
	case errors.As(err, new(models.ErrorConflict)):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// SendResponse writes the envelope with status as both HTTP code and statusCode.
func (u *HTTPHelper) SendResponse(c *gin.Context, status int, message string, data interface{}) {
	if message == "" {
		message = http.StatusText(status)
	}
	c.JSON(status, Envelope{
		Success:    status < http.StatusBadRequest,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// SendSuccess ...
func (u *HTTPHelper) SendSuccess(c *gin.Context, message string, data interface{}) {
	u.SendResponse(c, http.StatusOK, message, data)
}

// SendError ...
func (u *HTTPHelper) SendError(c *gin.Context, status int, message string) {
	u.SendResponse(c, status, message, nil)
}

// SendBadRequest ...
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string) {
	u.SendError(c, http.StatusBadRequest, message)
}

// SendUnauthorizedError ...
func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context, message string) {
	u.SendError(c, http.StatusUnauthorized, message)
}

// SendForbiddenError ...
func (u *HTTPHelper) SendForbiddenError(c *gin.Context, message string) {
	u.SendError(c, http.StatusForbidden, message)
}

// SendNotFoundError ...
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string) {
	u.SendError(c, http.StatusNotFound, message)
}

// SendInternalError logs err server-side and answers with a generic 500.
func (u *HTTPHelper) SendInternalError(c *gin.Context, err error) {
	slog.ErrorContext(c.Request.Context(), "request failed",
		"error", err,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", c.GetString(RequestIDKey),
	)
	u.SendError(c, http.StatusInternalServerError, messageInternal)
}

// SendServiceError maps err onto the error taxonomy. Unknown errors never
// leak their message.
func (u *HTTPHelper) SendServiceError(c *gin.Context, err error) {
	status := u.GetStatusCode(err)
	if status == http.StatusInternalServerError {
		u.SendInternalError(c, err)
		return
	}
	u.SendError(c, status, err.Error())
}

// SendValidationError ...
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	errorResponse := map[string][]string{}
	translated := validationErrors.Translate(u.Translator)
	for _, err := range validationErrors {
		key := err.Field()
		errorResponse[key] = append(errorResponse[key], translated[err.Namespace()])
	}

	c.JSON(http.StatusBadRequest, Envelope{
		Success:    false,
		StatusCode: http.StatusBadRequest,
		Message:    messageValidation,
		Errors:     errorResponse,
	})
}

// BindJSON decodes the body into req. On failure it answers 400 and
// returns false; callers must return immediately.
func (u *HTTPHelper) BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		u.SendBadRequest(c, messageBadBody)
		return false
	}
	return u.ValidateStruct(c, req)
}

// BindQuery is BindJSON for query strings.
func (u *HTTPHelper) BindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		u.SendBadRequest(c, "Invalid query parameters")
		return false
	}
	return u.ValidateStruct(c, req)
}

// ValidateStruct runs the struct's validate tags. On failure it answers 400
// and returns false.
func (u *HTTPHelper) ValidateStruct(c *gin.Context, req interface{}) bool {
	err := u.Validate.Struct(req)
	if err == nil {
		return true
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		u.SendValidationError(c, validationErrors)
		return false
	}
	u.SendBadRequest(c, messageBadBody)
	return false
}

// ParseID reads a positive integer path parameter.
func (u *HTTPHelper) ParseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		u.SendBadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// get pagination URL, keeping the other query parameters
func (u *HTTPHelper) GetPagingUrl(c *gin.Context, page, limit int) string {
	r := c.Request
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	query := r.URL.Query()
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	return scheme + "://" + r.Host + r.URL.Path + "?" + query.Encode()
}

// Set pagination response
func (u *HTTPHelper) GeneratePaging(c *gin.Context, limit, page int, totalRecord int64) map[string]interface{} {
	prevURL, nextURL, firstURL, lastURL := "", "", "", ""

	totalPages := int(math.Ceil(float64(totalRecord) / float64(limit)))

	if totalPages >= page && page > 1 {
		prevURL = u.GetPagingUrl(c, page-1, limit)
		firstURL = u.GetPagingUrl(c, 1, limit)
	}

	if totalPages > page {
		nextURL = u.GetPagingUrl(c, page+1, limit)
	}

	if totalPages >= page && totalPages != page {
		lastURL = u.GetPagingUrl(c, totalPages, limit)
	}

	links := map[string]interface{}{
		"previous": prevURL,
		"next":     nextURL,
		"first":    firstURL,
		"last":     lastURL,
	}

	return map[string]interface{}{
		"total_records": totalRecord,
		"per_page":      limit,
		"current_page":  page,
		"total_pages":   totalPages,
		"links":         links,
	}
}
