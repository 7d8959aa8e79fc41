package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/recipe-app/api/internal/api/handlers"
	mw "github.com/recipe-app/api/internal/api/middleware"
	"github.com/recipe-app/api/internal/api/types"
	"github.com/recipe-app/api/internal/models"
	appErr "github.com/recipe-app/api/pkg/errors"
)

type Dependencies struct {
	Authenticator      mw.TokenAuthenticator
	RateLimiter        *mw.RateLimiter
	CORSOrigins        []string
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxy         bool
	HealthHandler      *handlers.HealthHandler
	AuthHandler        *handlers.AuthHandler
	TagsHandler        *handlers.CatalogHandler[models.Tag, *models.Tag]
	IngredientsHandler *handlers.CatalogHandler[models.Ingredient, *models.Ingredient]
	RecipesHandler     *handlers.RecipesHandler
	AdminHandler       *handlers.AdminHandler
}

// catalogRoutes is implemented by the tag and ingredient handlers.
type catalogRoutes interface {
	List(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Get(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

func mountCatalog(r chi.Router, h catalogRoutes) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	if dep.TrustProxy {
		r.Use(chimid.RealIP)
	}
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS(dep.CORSOrigins))
	if dep.RateLimiter != nil {
		r.Use(dep.RateLimiter.Middleware)
	}
	r.Use(chimid.Compress(5))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		types.WriteErrorStr(w, http.StatusNotFound, string(appErr.CodeNotFound), "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		types.WriteErrorStr(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.Get("/healthz", dep.HealthHandler.Liveness)
	r.Get("/readyz", dep.HealthHandler.Readiness)

	r.Route("/api/v1", func(api chi.Router) {
		// Account creation and token issuance are public.
		api.Route("/users", func(ur chi.Router) {
			ur.Post("/", dep.AuthHandler.CreateUser)
			ur.Post("/token", dep.AuthHandler.Token)

			ur.Group(func(me chi.Router) {
				me.Use(mw.Auth(dep.Authenticator))
				me.Get("/me", dep.AuthHandler.Me)
				me.Patch("/me", dep.AuthHandler.UpdateMe)
			})
		})

		api.Group(func(protected chi.Router) {
			protected.Use(mw.Auth(dep.Authenticator))

			protected.Route("/recipe", func(rr chi.Router) {
				rr.Route("/tags", func(tr chi.Router) { mountCatalog(tr, dep.TagsHandler) })
				rr.Route("/ingredients", func(ir chi.Router) { mountCatalog(ir, dep.IngredientsHandler) })
				rr.Route("/recipes", func(rc chi.Router) {
					rc.Get("/", dep.RecipesHandler.List)
					rc.Post("/", dep.RecipesHandler.Create)
					rc.Get("/{id}", dep.RecipesHandler.Get)
					rc.Put("/{id}", dep.RecipesHandler.Replace)
					rc.Patch("/{id}", dep.RecipesHandler.Patch)
					rc.Delete("/{id}", dep.RecipesHandler.Delete)
				})
			})

			protected.Route("/admin", func(ar chi.Router) {
				ar.Use(mw.RequireStaff)
				ar.Get("/users", dep.AdminHandler.ListUsers)
				ar.Post("/users", dep.AdminHandler.CreateUser)
				ar.Get("/users/{id}", dep.AdminHandler.GetUser)
				ar.Patch("/users/{id}", dep.AdminHandler.UpdateUser)
				ar.Delete("/users/{id}", dep.AdminHandler.DeleteUser)
			})
		})
	})

	return r
}
