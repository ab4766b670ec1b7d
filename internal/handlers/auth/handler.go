package auth

import (
	"net/http"
	"todolist/config"
	"todolist/infras/otel"
	"todolist/internal/domains/auth/model/dto"
	"todolist/internal/domains/auth/service"
	"todolist/shared"
	"todolist/shared/constant"
	"todolist/shared/identity"
	"todolist/shared/validator"
	"todolist/transport/http/middleware"
	"todolist/transport/http/response"
	"todolist/transport/http/view"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	redirectAfterLogin  = "/current"
	redirectAfterLogout = "/"
)

type Handler struct {
	service service.Auth
	auth    middleware.Auth
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Auth, auth middleware.Auth, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		cfg:     cfg,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Get("/signup", handler.SignupForm)
	r.Post("/signup", handler.Signup)
	r.Get("/login", handler.LoginForm)
	r.Post("/login", handler.Login)
	r.With(handler.auth.RequireLogin).Post("/logout", handler.Logout)
}

// SignupForm renders the sign up form
// @Summary Sign up form
// @Tags Auth
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /signup [get]
func (handler *Handler) SignupForm(w http.ResponseWriter, r *http.Request) {
	response.WithHTML(w, http.StatusOK, view.PageSignup, view.NewPage(r.Context(), "Sign Up"))
}

// Signup creates an account and logs it in
// @Summary Sign up
// @Description Creates a user from username, password1 and password2, starts a session and redirects to the active list.
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce html
// @Param username formData string true "Username"
// @Param password1 formData string true "Password"
// @Param password2 formData string true "Password confirmation"
// @Success 303 "Redirect to /current"
// @Failure 400 {string} string "Form re-rendered with the error"
// @Router /signup [post]
func (handler *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Signup")
	defer scope.End()

	page := view.NewPage(ctx, "Sign Up")
	req := dto.SignupRequest{}

	err := validator.ValidateForm(r, &req)
	page.Form = dto.SignupRequest{Username: req.Username}

	if err != nil {
		scope.TraceError(err)

		response.WithForm(w, view.PageSignup, page, err)

		return
	}

	session, err := handler.service.Register(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to sign up user")

		response.WithForm(w, view.PageSignup, page, err)

		return
	}

	scope.AddEvent("User signed up successfully")

	middleware.SetSessionCookie(w, handler.cfg, session)
	response.Redirect(w, r, redirectAfterLogin)
}

// LoginForm renders the login form
// @Summary Login form
// @Tags Auth
// @Produce html
// @Param next query string false "Local path to continue to after login"
// @Success 200 {string} string "HTML page"
// @Router /login [get]
func (handler *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	page := view.NewPage(r.Context(), "Login")
	page.Next = shared.SafeRedirect(r.URL.Query().Get(constant.RequestParamNext), "")

	response.WithHTML(w, http.StatusOK, view.PageLogin, page)
}

// Login verifies credentials and starts a session
// @Summary Login
// @Description Verifies username and password, starts a session and redirects to next or the active list.
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce html
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param next formData string false "Local path to continue to"
// @Success 303 "Redirect to next or /current"
// @Failure 401 {string} string "Form re-rendered with the error"
// @Router /login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	page := view.NewPage(ctx, "Login")
	req := dto.LoginRequest{}

	err := validator.ValidateForm(r, &req)
	page.Next = shared.SafeRedirect(r.PostFormValue(constant.RequestParamNext), "")
	page.Form = dto.LoginRequest{Username: req.Username}

	if err != nil {
		scope.TraceError(err)

		response.WithForm(w, view.PageLogin, page, err)

		return
	}

	session, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithForm(w, view.PageLogin, page, err)

		return
	}

	scope.AddEvent("User logged in successfully")

	middleware.SetSessionCookie(w, handler.cfg, session)
	response.Redirect(w, r, shared.SafeRedirect(page.Next, redirectAfterLogin))
}

// Logout revokes the current session
// @Summary Logout
// @Tags Auth
// @Success 303 "Redirect to /"
// @Router /logout [post]
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	id, _ := identity.FromContext(ctx)

	middleware.ClearSessionCookie(w, handler.cfg)

	if err := handler.service.Logout(ctx, id.SessionID); err != nil {
		scope.TraceError(err)

		response.WithErrorPage(w, view.Page{}, err)

		return
	}

	response.Redirect(w, r, redirectAfterLogout)
}
