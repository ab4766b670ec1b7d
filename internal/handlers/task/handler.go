package task

import (
	"net/http"
	"todolist/infras/otel"
	taskDto "todolist/internal/domains/task/model/dto"
	"todolist/internal/domains/task/service"
	"todolist/shared/constant"
	"todolist/shared/dto"
	"todolist/shared/identity"
	"todolist/shared/validator"
	"todolist/transport/http/middleware"
	"todolist/transport/http/response"
	"todolist/transport/http/view"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const redirectAfterChange = "/current"

type Handler struct {
	service service.Task
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Task, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(handler.auth.RequireLogin)

		r.Get("/current", handler.Current)
		r.Get("/completed", handler.Completed)
		r.Get("/create", handler.CreateForm)
		r.Post("/create", handler.Create)
		r.Get("/todo/{id}", handler.View)
		r.Post("/todo/{id}", handler.Update)
		r.Post("/todo/{id}/complete", handler.Complete)
		r.Post("/todo/{id}/delete", handler.Delete)
	})
}

func owner(r *http.Request) string {
	id, _ := identity.FromContext(r.Context())

	return id.UserID
}

// Current lists the active tasks
// @Summary Active tasks
// @Description Lists the user's tasks that are not completed, newest first.
// @Tags Task
// @Produce html
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {string} string "HTML page"
// @Router /current [get]
func (handler *Handler) Current(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Current")
	defer scope.End()

	params := dto.QueryParams{}
	params.FromRequest(r, true)

	page := view.NewPage(ctx, "Current Todos")

	res, err := handler.service.ListActive(ctx, owner(r), params)
	if err != nil {
		scope.TraceError(err)

		response.WithErrorPage(w, page, err)

		return
	}

	page.Data = res
	response.WithHTML(w, http.StatusOK, view.PageCurrent, page)
}

// Completed lists the completed tasks
// @Summary Completed tasks
// @Description Lists the user's completed tasks, most recently completed first.
// @Tags Task
// @Produce html
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {string} string "HTML page"
// @Router /completed [get]
func (handler *Handler) Completed(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Completed")
	defer scope.End()

	params := dto.QueryParams{}
	params.FromRequest(r, true)

	page := view.NewPage(ctx, "Completed Todos")

	res, err := handler.service.ListCompleted(ctx, owner(r), params)
	if err != nil {
		scope.TraceError(err)

		response.WithErrorPage(w, page, err)

		return
	}

	page.Data = res
	response.WithHTML(w, http.StatusOK, view.PageCompleted, page)
}

// CreateForm renders an empty task form
// @Summary New task form
// @Tags Task
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /create [get]
func (handler *Handler) CreateForm(w http.ResponseWriter, r *http.Request) {
	response.WithHTML(w, http.StatusOK, view.PageCreate, view.NewPage(r.Context(), "New Todo"))
}

// Create stores a new task
// @Summary Create task
// @Tags Task
// @Accept x-www-form-urlencoded
// @Produce html
// @Param title formData string true "Title"
// @Param memo formData string false "Memo"
// @Success 303 "Redirect to /current"
// @Failure 400 {string} string "Form re-rendered with the error"
// @Router /create [post]
func (handler *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Create")
	defer scope.End()

	page := view.NewPage(ctx, "New Todo")
	req := taskDto.TaskRequest{}

	err := validator.ValidateForm(r, &req)
	page.Form = req

	if err != nil {
		scope.TraceError(err)

		response.WithForm(w, view.PageCreate, page, err)

		return
	}

	res, err := handler.service.Create(ctx, owner(r), req)
	if err != nil {
		scope.TraceError(err)

		response.WithForm(w, view.PageCreate, page, err)

		return
	}

	log.Debug().Str("task_id", res.ID).Msg("task created")

	response.Redirect(w, r, redirectAfterChange)
}

// View renders a task with its edit form
// @Summary View task
// @Tags Task
// @Produce html
// @Param id path string true "Task ID"
// @Success 200 {string} string "HTML page"
// @Failure 404 {string} string "Not found page"
// @Router /todo/{id} [get]
func (handler *Handler) View(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".View")
	defer scope.End()

	page := view.NewPage(ctx, "")

	res, err := handler.service.Get(ctx, owner(r), chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)

		response.WithErrorPage(w, page, err)

		return
	}

	page.Title = res.Title
	page.Data = res
	page.Form = taskDto.TaskRequest{Title: res.Title, Memo: res.Memo}

	response.WithHTML(w, http.StatusOK, view.PageView, page)
}

// Update saves the title and memo of a task
// @Summary Update task
// @Tags Task
// @Accept x-www-form-urlencoded
// @Produce html
// @Param id path string true "Task ID"
// @Param title formData string true "Title"
// @Param memo formData string false "Memo"
// @Success 303 "Redirect to /current"
// @Failure 400 {string} string "Form re-rendered with the error"
// @Failure 404 {string} string "Not found page"
// @Router /todo/{id} [post]
func (handler *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Update")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	page := view.NewPage(ctx, "")

	current, err := handler.service.Get(ctx, owner(r), id)
	if err != nil {
		scope.TraceError(err)

		response.WithErrorPage(w, page, err)

		return
	}

	page.Title = current.Title
	page.Data = current

	req := taskDto.TaskRequest{}

	err = validator.ValidateForm(r, &req)
	page.Form = req

	if err != nil {
		scope.TraceError(err)

		response.WithForm(w, view.PageView, page, err)

		return
	}

	if err = handler.service.Update(ctx, owner(r), id, req); err != nil {
		scope.TraceError(err)

		response.WithForm(w, view.PageView, page, err)

		return
	}

	response.Redirect(w, r, redirectAfterChange)
}

// Complete marks a task as completed
// @Summary Complete task
// @Tags Task
// @Param id path string true "Task ID"
// @Success 303 "Redirect to /current"
// @Failure 404 {string} string "Not found page"
// @Failure 409 {string} string "Task already completed"
// @Router /todo/{id}/complete [post]
func (handler *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Complete")
	defer scope.End()

	if err := handler.service.Complete(ctx, owner(r), chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)

		response.WithErrorPage(w, view.NewPage(ctx, ""), err)

		return
	}

	response.Redirect(w, r, redirectAfterChange)
}

// Delete removes a task
// @Summary Delete task
// @Tags Task
// @Param id path string true "Task ID"
// @Success 303 "Redirect to /current"
// @Failure 404 {string} string "Not found page"
// @Router /todo/{id}/delete [post]
func (handler *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Delete")
	defer scope.End()

	if err := handler.service.Delete(ctx, owner(r), chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)

		response.WithErrorPage(w, view.NewPage(ctx, ""), err)

		return
	}

	response.Redirect(w, r, redirectAfterChange)
}
