package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/moodflow-ai/moodflow-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux) {
	// Auth routes
	r.Post("/api/auth/signup", handlers.Signup)
	r.Post("/api/auth/signin", handlers.Signin)
	r.Post("/api/auth/signout", handlers.Signout)
	r.Get("/api/auth/me", handlers.Me)

	// Profile routes
	r.Get("/api/profile", handlers.GetProfile)
	r.Put("/api/profile", handlers.UpdateProfile)
	r.Post("/api/profile/picture", handlers.UploadProfilePicture)

	// Journal entry routes (MongoDB storage, Gemini analysis)
	r.Get("/api/entries", handlers.ListEntries)
	r.Post("/api/entries", handlers.CreateEntry)
	r.Put("/api/entries/{id}", handlers.UpdateEntry)
	r.Delete("/api/entries/{id}", handlers.DeleteEntry)

	// Stats routes
	r.Get("/api/stats/dashboard", handlers.Dashboard)
	r.Get("/api/stats/moods", handlers.Moods)
	r.Get("/api/stats/emotions", handlers.Emotions)
	r.Get("/api/stats/heatmap", handlers.MoodHeatmap)

	// Premium wellness insights (cached in Redis)
	r.Get("/api/wellness/triggers", handlers.WellnessTriggers)
	r.Get("/api/wellness/recommendations", handlers.WellnessRecommendations)

	// Premium PDF export
	r.Get("/api/reports/journal", handlers.ExportJournalReport)

	// Payments (M-Pesa sandbox)
	r.Post("/api/payments/mpesa", handlers.MpesaPayment)

	// WebSocket endpoint for realtime journal events (Redis Pub/Sub fan-out)
	r.Get("/ws/journal", handlers.JournalWebSocket)
}
