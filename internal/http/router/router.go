// Package router arma el árbol de rutas chi de la API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
	authctl "github.com/dropDatabas3/gymcore/internal/http/controllers/auth"
	gymctl "github.com/dropDatabas3/gymcore/internal/http/controllers/gym"
	healthctl "github.com/dropDatabas3/gymcore/internal/http/controllers/health"
	superctl "github.com/dropDatabas3/gymcore/internal/http/controllers/superadmin"
	httperrors "github.com/dropDatabas3/gymcore/internal/http/errors"
	mw "github.com/dropDatabas3/gymcore/internal/http/middlewares"
	jwtx "github.com/dropDatabas3/gymcore/internal/jwt"
	"github.com/dropDatabas3/gymcore/internal/rate"
)

// Deps son los controllers y gates que necesita el router.
type Deps struct {
	Auth     *authctl.Controller
	Accounts *superctl.AccountsController
	Gym      *gymctl.Controllers
	Health   *healthctl.Controller

	Issuer  *jwtx.Issuer
	Users   mw.UserGetter
	Tenants *mw.TenantResolver

	// Limiter nil desactiva el rate limit de /v1/auth.
	Limiter rate.Limiter
	RateMax int

	CORSOrigins []string

	// Uploads sirve /uploads/* (solo con el uploader local, montado en /uploads).
	Uploads http.Handler
	// Metrics sirve /metrics; nil lo omite.
	Metrics http.Handler
}

func New(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		mw.WithRecover(),
		mw.WithRequestID(),
		mw.WithLogging(),
		mw.WithMetrics(),
		mw.WithSecurityHeaders(),
		mw.WithCORS(d.CORSOrigins),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httperrors.WriteError(w, r, httperrors.ErrRouteNotFound.WithDetail(r.Method+" "+r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httperrors.WriteError(w, r, httperrors.ErrMethodNotAllowed.WithDetail(r.Method+" "+r.URL.Path))
	})

	r.Get("/healthz", d.Health.Healthz)
	r.Get("/readyz", d.Health.Readyz)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}
	if d.Uploads != nil {
		r.Method(http.MethodGet, "/uploads/*", d.Uploads)
	}

	authn := mw.RequireAuth(d.Issuer, d.Users)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(mw.WithRateLimit(d.Limiter, d.RateMax, mw.IPPathRateKey))
				r.Post("/register", d.Auth.Register)
				r.Post("/login", d.Auth.Login)
				r.Post("/logout", d.Auth.Logout)
				r.Post("/refresh-tokens", d.Auth.Refresh)
				r.Post("/forgot-password", d.Auth.ForgotPassword)
				r.Post("/reset-password", d.Auth.ResetPassword)
				r.Post("/verify-email", d.Auth.VerifyEmail)
			})
			r.With(authn).Post("/send-verification-email", d.Auth.SendVerification)
		})

		r.Group(func(r chi.Router) {
			r.Use(authn, mw.RequireRole(repository.RoleSuperAdmin))
			r.Post("/accounts", d.Accounts.Create)
			r.Get("/accounts", d.Accounts.List)
			r.Put("/accounts/{accountId}", d.Accounts.Update)
			r.Delete("/accounts/{accountId}", d.Accounts.Delete)
		})

		r.Group(func(r chi.Router) {
			r.Use(authn, mw.RequireRole(repository.RoleAccountUser), d.Tenants.RequireTenant())
			tenantRoutes(r, d.Gym)
		})
	})
	return r
}

func tenantRoutes(r chi.Router, g *gymctl.Controllers) {
	r.Post("/branch", g.CreateBranch)
	r.Get("/branches", g.ListBranches)
	r.Get("/branches/{branchId}", g.GetBranch)
	r.Put("/branches/{branchId}", g.UpdateBranch)
	r.Delete("/branches/{branchId}", g.DeleteBranch)

	r.Post("/trainer", g.CreateTrainer)
	r.Get("/trainers", g.ListTrainers)
	r.Get("/trainers/{trainerId}", g.GetTrainer)
	r.Put("/trainers/{trainerId}", g.UpdateTrainer)
	r.Delete("/trainers/{trainerId}", g.DeleteTrainer)

	r.Post("/member", g.CreateMember)
	r.Get("/members", g.ListMembers)
	r.Get("/members/{memberId}", g.GetMember)
	r.Put("/members/{memberId}", g.UpdateMember)
	r.Delete("/members/{memberId}", g.DeleteMember)

	r.Post("/membership-plan", g.CreatePlan)
	r.Get("/membership-plans", g.ListPlans)
	r.Get("/membership-plans/{planId}", g.GetPlan)
	r.Put("/membership-plans/{planId}", g.UpdatePlan)
	r.Delete("/membership-plans/{planId}", g.DeletePlan)

	r.Post("/product-category", g.CreateCategory)
	r.Get("/product-categories", g.ListCategories)
	r.Get("/product-category/{categoryId}", g.GetCategory)
	r.Put("/product-category/{categoryId}", g.UpdateCategory)
	r.Delete("/product-category/{categoryId}", g.DeleteCategory)

	r.Post("/brand", g.CreateBrand)
	r.Get("/brands", g.ListBrands)
	r.Get("/brands/{brandId}", g.GetBrand)
	r.Put("/brands/{brandId}", g.UpdateBrand)
	r.Delete("/brands/{brandId}", g.DeleteBrand)

	r.Post("/product", g.CreateProduct)
	r.Get("/products", g.ListProducts)
	r.Get("/products/{productId}", g.GetProduct)
	r.Put("/products/{productId}", g.UpdateProduct)
	r.Delete("/products/{productId}", g.DeleteProduct)

	r.Post("/subscription", g.CreateSubscription)
	r.Get("/subscriptions", g.ListSubscriptions)
	r.Get("/subscriptions/{subscriptionId}", g.GetSubscription)
	r.Put("/subscriptions/{subscriptionId}", g.UpdateSubscription)
	r.Delete("/subscriptions/{subscriptionId}", g.DeleteSubscription)

	r.Post("/assign-trainer", g.AssignTrainer)
	r.Get("/assigned-trainers", g.ListAssignments)
	r.Get("/assigned-trainer/{memberId}", g.CurrentAssignment)
	r.Put("/assign-trainer/{assignmentId}", g.UpdateAssignment)
	r.Delete("/assign-trainer/{assignmentId}", g.DeleteAssignment)

	r.Post("/health-report", g.CreateHealthReport)
	r.Get("/health-reports", g.ListHealthReports)
	r.Get("/health-reports/{reportId}", g.GetHealthReport)
	r.Put("/health-reports/{reportId}", g.UpdateHealthReport)
	r.Delete("/health-reports/{reportId}", g.DeleteHealthReport)
}
