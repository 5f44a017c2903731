package api

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mpetrenko/calendar-insights-backend/internal/database"
	"github.com/mpetrenko/calendar-insights-backend/internal/model"
	"github.com/mpetrenko/calendar-insights-backend/internal/pkg/oauth"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

type Api struct {
	handler            http.Handler
	logger             *zap.SugaredLogger
	randSource         io.Reader
	sessionTokenLength int

	jwts          jwtManager
	tokenParser   tokenParser
	refreshTokens refreshTokenRepository
	consent       consentFlow

	db          database.PGX
	users       userRepository
	credentials credentialsRepository

	reports reportsService
	sync    syncService
}

type jwtManager interface {
	CreateToken(id int64) (string, error)
	GetIdFromToken(token string) (int64, error)
}

type tokenParser interface {
	GetInfoGoogle(ctx context.Context, authCode string) (*oauth.GoogleInfo, error)
}

type refreshTokenRepository interface {
	Add(ctx context.Context, session string, id int64) error
	Get(ctx context.Context, session string) (int64, error)
	Refresh(ctx context.Context, old, new string) error
	Delete(ctx context.Context, session string) error
	DeleteByUserID(ctx context.Context, id int64) error
}

type consentFlow interface {
	ConsentURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
}

type userRepository interface {
	CreateUser(ctx context.Context, q database.Queryable, user *model.UserCreate) (int64, error)
	GetUserByEmail(ctx context.Context, q database.Queryable, email string) (*model.User, error)
	GetUserByID(ctx context.Context, q database.Queryable, id int64) (*model.User, error)
}

type credentialsRepository interface {
	UpsertCredentials(ctx context.Context, q database.Queryable, creds *model.Credentials) error
}

type reportsService interface {
	BuildReport(ctx context.Context, user *model.User, search string) (*model.Report, error)
}

type syncService interface {
	SyncUser(ctx context.Context, user *model.User) error
}

func NewApi(
	logger *zap.SugaredLogger,
	randSource io.Reader,
	sessionTokenLength int,
	jwts jwtManager,
	tokenParser tokenParser,
	refreshTokens refreshTokenRepository,
	consent consentFlow,
	db database.PGX,
	users userRepository,
	credentials credentialsRepository,
	reports reportsService,
	sync syncService,
) (*Api, error) {
	a := &Api{
		logger:             logger,
		randSource:         randSource,
		sessionTokenLength: sessionTokenLength,
		jwts:               jwts,
		tokenParser:        tokenParser,
		refreshTokens:      refreshTokens,
		consent:            consent,
		db:                 db,
		users:              users,
		credentials:        credentials,
		reports:            reports,
		sync:               sync,
	}
	a.setupHandler()

	return a, nil
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(middleware.Logger, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signin/google", a.signInGoogleHandler)
		r.Post("/refresh", a.refreshTokenHandler)
		r.Post("/logout", a.logoutUserHandler)
		r.With(a.auth).Post("/logout/all", a.logoutAllUserHandler)
	})

	// Google redirects here after consent; the user is identified by
	// the state parameter, not a header.
	r.Get("/calendar/oauth2/callback", a.oauthCallbackHandler)

	r.With(a.auth).Route("/", func(r chi.Router) {
		r.With(a.userCtx).Route("/user", func(r chi.Router) {
			r.Get("/", a.getUserHandler)
		})

		r.With(a.userCtx).Get("/reports", a.getReportHandler)

		r.With(a.userCtx).Route("/calendar", func(r chi.Router) {
			r.Get("/authorize", a.authorizeCalendarHandler)
			r.Post("/sync", a.syncCalendarHandler)
		})
	})

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}
