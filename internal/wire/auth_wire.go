package wire

import (
	"net/http"

	"billboard-watch/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	auth func(http.Handler) http.Handler,
) {
	r.Route("/api/auth", func(r chi.Router) {
		// Public routes
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/forgot-password", authHandler.ForgotPassword)
		r.Post("/reset-password", authHandler.ResetPassword)
		// Refresh verifies the presented token itself
		r.Post("/refresh-token", authHandler.RefreshToken)
		r.Get("/verify-email/{token}", authHandler.VerifyEmail)

		// Protected routes
		r.With(auth).Post("/logout", authHandler.Logout)
		r.With(auth).Post("/change-password", authHandler.ChangePassword)
	})
}
