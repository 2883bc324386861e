package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftledger/shiftledger-backend-go/internal/handler/http/middleware"
	"github.com/shiftledger/shiftledger-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	timerHandler TimerHandler,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	employeeHandler EmployeeHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "shiftledger"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/timer", func(r chi.Router) {
				r.Post("/actions", timerHandler.ClockAction)
				r.Post("/cancel-end", timerHandler.CancelLastEnd)
				r.Get("/days/{date}", timerHandler.GetDay)
				r.Route("/events/{id}", func(r chi.Router) {
					r.Put("/", timerHandler.CorrectEvent)
					r.Delete("/", timerHandler.DeleteEvent)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", attendanceHandler.List)
					r.Get("/{id}", attendanceHandler.Get)
					r.Post("/{id}/approve", attendanceHandler.Approve)
					r.Post("/{id}/reject", attendanceHandler.Reject)
					r.Post("/bulk-approve", attendanceHandler.BulkApprove)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/calculate", payrollHandler.Calculate)
					r.Post("/", payrollHandler.Create)
					r.Post("/price", payrollHandler.Price)
					r.Post("/disburse", payrollHandler.Disburse)
					r.Get("/poll/{period}", payrollHandler.Poll)
					r.Post("/retry", payrollHandler.RetryFailed)
					r.Get("/", payrollHandler.List)
					r.Get("/{id}", payrollHandler.Get)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Post("/my/wallet", employeeHandler.RegisterMyWallet)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", employeeHandler.ListActive)
					r.Get("/{id}", employeeHandler.Get)
					r.Post("/{id}/wallet", employeeHandler.RegisterWallet)
				})
			})
		})
	})
	return r
}
