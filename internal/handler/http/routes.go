package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)
		r.Post("/auth/verify-email-password", h.verifyEmailPassword)
		r.Get("/classifications/choices", h.stageChoices)
	})

	// routes requiring a valid bearer token and an active account
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/auth/verify-token", h.verifyToken)

		r.Route("/images", func(r chi.Router) {
			r.Get("/", h.listImages)
			r.Get("/{imageID}", h.getImage)
			r.Post("/upload/single", h.uploadSingle)
			r.Post("/upload/", h.uploadBatch)
			r.Post("/upload/base64", h.uploadBase64)
			r.Post("/upload/base64/batch", h.uploadBase64Batch)
			r.Post("/upload/with-stage", h.uploadWithStage)
		})

		r.Route("/classifications", func(r chi.Router) {
			r.Post("/create", h.createClassification)
			r.Get("/list", h.listClassifications)
			r.Get("/{classificationID}", h.getClassification)
			r.Put("/{classificationID}", h.updateClassification)
			r.Delete("/{classificationID}", h.deleteClassification)
		})

		// staff only
		r.Route("/admin", func(r chi.Router) {
			r.Use(h.adminOnly)

			r.Get("/metrics", h.adminMetrics)
			r.Get("/users", h.adminUsers)
		})
	})

	return router
}
