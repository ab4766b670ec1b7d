package middleware

import (
	"net/http"
	"net/url"
	"time"
	"todolist/config"
	"todolist/infras/otel"
	"todolist/internal/domains/auth/model/dto"
	"todolist/internal/domains/auth/service"
	"todolist/shared/constant"
	"todolist/shared/failure"
	"todolist/shared/identity"

	"github.com/rs/zerolog/log"
)

const loginPath = "/login"

// Auth resolves the session cookie into an identity.Identity.
type Auth interface {
	// Session attaches the identity of a valid session to the request
	// context. Requests without one continue anonymously.
	Session(next http.Handler) http.Handler
	// RequireLogin redirects anonymous requests to the login page.
	RequireLogin(next http.Handler) http.Handler
}

type authImpl struct {
	authService service.Auth
	otel        otel.Otel
	cfg         *config.Config
}

func NewAuthMiddleware(authService service.Auth, otel otel.Otel, cfg *config.Config) Auth {
	return &authImpl{
		authService: authService,
		otel:        otel,
		cfg:         cfg,
	}
}

func (m *authImpl) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		token := SessionToken(request, m.cfg)
		if token == "" {
			next.ServeHTTP(writer, request)

			return
		}

		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelMiddlewareScopeName, "session.middleware")

		id, err := m.authService.Authenticate(ctx, token)
		if err != nil {
			scope.End()

			if failure.GetCode(err) == http.StatusUnauthorized {
				ClearSessionCookie(writer, m.cfg)
			} else {
				log.Error().Err(err).Msg("failed to resolve session")
			}

			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("user.id", id.UserID)
		scope.End()

		next.ServeHTTP(writer, request.WithContext(identity.WithContext(request.Context(), id)))
	})
}

func (m *authImpl) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if id, ok := identity.FromContext(request.Context()); ok && id.IsAuthenticated() {
			next.ServeHTTP(writer, request)

			return
		}

		target := loginPath + "?" + url.Values{constant.RequestParamNext: {request.URL.RequestURI()}}.Encode()
		http.Redirect(writer, request, target, http.StatusSeeOther)
	})
}

// SessionToken returns the raw session cookie value, or "" when absent.
func SessionToken(request *http.Request, cfg *config.Config) string {
	cookie, err := request.Cookie(cfg.Session.CookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}

func SetSessionCookie(writer http.ResponseWriter, cfg *config.Config, session dto.Session) {
	http.SetCookie(writer, &http.Cookie{
		Name:     cfg.Session.CookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   cfg.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(writer http.ResponseWriter, cfg *config.Config) {
	http.SetCookie(writer, &http.Cookie{
		Name:     cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
