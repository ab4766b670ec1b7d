package response

import (
	"encoding/json"
	"net/http"
	"todolist/shared/constant"
	"todolist/shared/failure"
	"todolist/shared/logger"
	"todolist/transport/http/view"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	response(writer, code, Data[any]{Data: &jsonPayload})
}

// WithError sends a response with an error message. Internal errors are
// reported with a generic message.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	errMsg := failure.PublicMessage(err, constant.ResponseErrorInternal)

	response(writer, code, Error{Error: &errMsg})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

// WithHTML renders a page with the given status code.
func WithHTML(writer http.ResponseWriter, code int, name string, page view.Page) {
	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeHTML)
	writer.WriteHeader(code)

	if err := view.Render(writer, name, page); err != nil {
		logger.ErrorWithStack(err)
	}
}

// WithForm re-renders a form page with the error from a failed submission.
// Client errors keep their own status and message, anything else becomes the
// error page.
func WithForm(writer http.ResponseWriter, name string, page view.Page, err error) {
	code := failure.GetCode(err)
	if code >= http.StatusInternalServerError {
		WithErrorPage(writer, page, err)

		return
	}

	page.Error = failure.PublicMessage(err, constant.ResponseErrorInternal)
	WithHTML(writer, code, name, page)
}

// WithErrorPage renders the error page for err. Internal errors are logged
// and shown with a generic message.
func WithErrorPage(writer http.ResponseWriter, page view.Page, err error) {
	code := failure.GetCode(err)
	if code >= http.StatusInternalServerError {
		logger.ErrorWithStack(err)
	}

	page.Code = code
	page.Error = failure.PublicMessage(err, constant.ResponseErrorInternal)
	page.Title = http.StatusText(code)

	WithHTML(writer, code, view.PageError, page)
}

// Redirect sends a 303 so the browser follows up with a GET.
func Redirect(writer http.ResponseWriter, request *http.Request, url string) {
	http.Redirect(writer, request, url, http.StatusSeeOther)
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
