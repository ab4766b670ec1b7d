package home

import (
	"net/http"
	"todolist/infras/otel"
	"todolist/shared/constant"
	"todolist/transport/http/response"
	"todolist/transport/http/view"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	otel otel.Otel
}

func New(otel otel.Otel) Handler {
	return Handler{
		otel: otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Get("/", handler.Home)
}

// Home renders the landing page
// @Summary Home page
// @Description Landing page. Greets the user when a valid session cookie is present.
// @Tags Home
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router / [get]
func (handler *Handler) Home(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Home")
	defer scope.End()

	response.WithHTML(w, http.StatusOK, view.PageHome, view.NewPage(ctx, ""))
}
