package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/MateoKaloshi/MotoLine/internal/platform/logger"
	"github.com/MateoKaloshi/MotoLine/internal/platform/metrics"
	"github.com/MateoKaloshi/MotoLine/internal/port/http/handler"
	"github.com/MateoKaloshi/MotoLine/internal/port/http/middleware"
)

type Deps struct {
	Bikes   *handler.BikeHandler
	Images  *handler.ImageHandler
	Auth    *handler.AuthHandler
	Contact *handler.ContactHandler
	AuthMW  middleware.Authenticator
	Metrics *metrics.Manager
	// UploadsDir, when non-empty, is served under /uploads/ for
	// legacy image paths that predate object storage.
	UploadsDir string
	Log        logger.Logger
}

// New assembles the full route table.
func New(d Deps) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(chimw.Recoverer)
	mux.Use(middleware.RequestLogger(d.Log))
	if d.Metrics != nil {
		mux.Use(d.Metrics.Middleware)
		mux.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	mux.Post("/api/register", d.Auth.HandleRegister)
	mux.Post("/api/login", d.Auth.HandleLogin)
	mux.Post("/api/logout", d.Auth.HandleLogout)
	mux.Post("/api/contact", d.Contact.HandleSubmit)

	mux.Get("/api/bikes", d.Bikes.HandleList)
	mux.Get("/api/bikes/search", d.Bikes.HandleSearch)
	mux.Get("/api/bikes/models", d.Bikes.HandleModels)
	mux.Get("/api/bikes/engines", d.Bikes.HandleEngines)
	mux.Get("/api/bikes/brand/{brand}", d.Bikes.HandleListByBrand)
	mux.Get("/api/bikes/{id}", d.Bikes.HandleGetByID)
	mux.Get("/api/bikes/{id}/images", d.Bikes.HandleBikeImages)

	mux.Group(func(r chi.Router) {
		r.Use(middleware.Auth(d.AuthMW))

		r.Get("/api/profile", d.Auth.HandleProfile)
		r.Put("/api/profile", d.Auth.HandleUpdateProfile)
		r.Put("/api/change-password", d.Auth.HandleChangePassword)
		r.Put("/api/change-email", d.Auth.HandleChangeEmail)
		r.Get("/api/my-bikes", d.Bikes.HandleMyBikes)

		r.Post("/api/bikes", d.Bikes.HandleCreate)
		r.Put("/api/bikes/{id}", d.Bikes.HandleUpdate)
		r.Delete("/api/bikes/{id}", d.Bikes.HandleDelete)
		r.Post("/api/bikes/{id}/sold", d.Bikes.HandleMarkSold)
		r.Delete("/api/bikes/{id}/images", d.Bikes.HandleRemoveImage)

		r.Post("/api/upload", d.Images.HandleUpload)
		r.Post("/api/bikes/upload", d.Images.HandleUpload)
	})

	if d.UploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.UploadsDir)))
		mux.Get("/uploads/*", fs.ServeHTTP)
	}

	return mux
}
