package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/worklane-hq/hr-backoffice-go/internal/config"
	"github.com/worklane-hq/hr-backoffice-go/internal/handler/http/middleware"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         *AuthHandler
	Leave        *LeaveHandler
	Attendance   *AttendanceHandler
	Exit         *ExitHandler
	Holiday      *HolidayHandler
	Notification *NotificationHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-backoffice"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
			r.Post("/logout", h.Auth.Logout)
		})

		// The stream authenticates via its own short-lived query token.
		r.Get("/notifications/stream", h.Notification.Stream)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", h.Leave.Submit)
				r.Get("/my", h.Leave.ListMine)
				r.Get("/balance/my", h.Leave.MyBalance)
				r.Get("/{id}", h.Leave.Get)
				r.Post("/{id}/cancel", h.Leave.Cancel)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Get("/", h.Leave.List)
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/reject", h.Leave.Reject)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Holiday.List)
				r.With(middleware.RequireApprover).Post("/", h.Holiday.Create)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/punch-in", h.Attendance.PunchIn)
				r.Post("/punch-out", h.Attendance.PunchOut)
				r.Get("/my", h.Attendance.ListMine)
				r.Get("/my/weekly", h.Attendance.WeeklyStats)

				r.Route("/edit-requests", func(r chi.Router) {
					r.Post("/", h.Attendance.SubmitEdit)
					r.Get("/my", h.Attendance.ListMyEdits)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireApprover)
						r.Get("/", h.Attendance.ListEdits)
						r.Post("/{id}/approve", h.Attendance.ApproveEdit)
						r.Post("/{id}/reject", h.Attendance.RejectEdit)
					})
				})
			})

			r.Route("/resignations", func(r chi.Router) {
				r.Post("/", h.Exit.SubmitResignation)
				r.Get("/my", h.Exit.ListMyResignations)
				r.Get("/{id}", h.Exit.GetResignation)
				r.Post("/{id}/cancel", h.Exit.CancelResignation)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Get("/", h.Exit.ListResignations)
					r.Post("/{id}/approve", h.Exit.ApproveResignation)
					r.Post("/{id}/reject", h.Exit.RejectResignation)
				})
			})

			r.Route("/clearances/{employeeID}", func(r chi.Router) {
				r.Get("/", h.Exit.GetClearance)
				r.With(middleware.RequireApprover).Put("/items/{itemID}", h.Exit.UpdateClearanceItem)
			})

			r.Route("/settlements/{employeeID}", func(r chi.Router) {
				r.Get("/", h.Exit.GetSettlement)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Put("/", h.Exit.UpdateSettlement)
					r.Put("/status", h.Exit.UpdateSettlementStatus)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/stream-token", h.Notification.GetStreamToken)
				r.Post("/{id}/read", h.Notification.MarkRead)
			})
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hr-backoffice api\n"))
	})

	return r
}
