package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/surveymaster/server/internal/auth"
	"github.com/surveymaster/server/internal/handler"
	mw "github.com/surveymaster/server/internal/middleware"
	"github.com/surveymaster/server/internal/models"
	"github.com/surveymaster/server/internal/repository"
)

func New(
	jwtSecret string,
	users repository.Users,
	authH *handler.AuthHandler,
	userH *handler.UserHandler,
	surveyH *handler.SurveyHandler,
	voteH *handler.VoteHandler,
	payH *handler.PaymentHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS)

	requireAdmin := auth.RequireRole(users, models.RoleAdmin)
	requireSurveyor := auth.RequireRole(users, models.RoleSurveyor)

	// Public routes
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Survey Master is Running"))
	})
	r.Post("/jwt", authH.IssueToken)
	r.Post("/users", userH.Register)
	r.Get("/surveys", surveyH.ListPublished)
	r.Get("/surveys/surveyDetails/{id}", surveyH.Detail)
	r.Get("/vote/check/{surveyId}/{userEmail}", voteH.Check)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret))

		// Users
		r.With(requireAdmin).Get("/users", userH.List)
		r.With(auth.RequireSelf("email")).Get("/users/admin/{email}", userH.IsAdmin)
		r.With(auth.RequireSelf("email")).Get("/users/surveyor/{email}", userH.IsSurveyor)
		r.With(auth.RequireSelf("email")).Get("/users/proUser/{email}", userH.IsProUser)
		r.With(requireAdmin).Patch("/users/admin/{id}", userH.PromoteSurveyor)
		r.With(requireAdmin).Patch("/users/{email}", userH.SetRole)
		r.With(requireAdmin).Delete("/users/{id}", userH.Delete)

		// Surveys
		r.Get("/surveyor/surveys/{email}", surveyH.ByCreator)
		r.With(requireSurveyor).Post("/surveys", surveyH.Create)
		r.Patch("/surveyor/update/{id}", surveyH.Update)
		r.Delete("/surveys/{id}", surveyH.Delete)

		// Voting
		r.Post("/vote", voteH.Cast)

		// Payments
		r.Post("/create-payment-intent", payH.CreateIntent)
		r.Post("/payments", payH.Record)
		r.With(auth.RequireSelf("email")).Get("/payments/{email}", payH.ByEmail)
		r.With(requireAdmin).Get("/payments", payH.List)
		r.With(requireAdmin).Patch("/payments/{id}", payH.Approve)
	})

	return r
}
