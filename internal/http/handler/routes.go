package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"certshare/internal/http/middleware"
	"certshare/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers
// stay thin; business rules live in the service layer.
//
// Public read paths never require a token. Write paths and the /me surface
// go through RequireAuth.
func RegisterRoutes(app *fiber.App, db *sql.DB, certSvc service.CertificateService, profileSvc service.ProfileService, verifier middleware.TokenVerifier) {
	requireAuth := middleware.RequireAuth(verifier)

	// Health endpoints: readiness checks DB connectivity, liveness does not.
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Public catalogue.
	app.Get("/certificates", ExploreCertificates(certSvc))
	app.Get("/certificates/:id", GetCertificate(certSvc))
	app.Get("/certificates/:id/viewer", CertificateViewer(certSvc))
	// Download works anonymously for public files; a bearer token lets the
	// owner reach private ones.
	app.Get("/certificates/:id/download", middleware.OptionalAuth(verifier), DownloadCertificate(certSvc))

	// Owner surface.
	app.Post("/certificates", requireAuth, UploadCertificates(certSvc))
	app.Patch("/certificates/:id", requireAuth, UpdateCertificate(certSvc))

	app.Get("/me", requireAuth, GetMyProfile(profileSvc))
	app.Post("/me", requireAuth, CreateMyProfile(profileSvc))
	app.Put("/me", requireAuth, UpdateMyProfile(profileSvc))
	app.Get("/me/certificates", requireAuth, ListMyCertificates(certSvc))

	// Public profiles.
	app.Get("/users/:username", GetPublicProfile(profileSvc))
}
