// Package handler implements the HTTP handlers for the gatekeeper API.
// All handlers are methods on Server; they are split into resource-specific
// files (visitor.go, fleet.go, etc.) but share the same struct so they can
// access its dependencies. Routing lives in Routes.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rmfarias/gatekeeper/backend/internal/authz"
	"github.com/rmfarias/gatekeeper/backend/internal/domain"
	"github.com/rmfarias/gatekeeper/backend/internal/middleware"
	"github.com/rmfarias/gatekeeper/backend/internal/service"
)

// The *Servicer interfaces define the business operations each handler
// depends on. Defining them here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject mocks without touching the database or service layer.

// AuthServicer verifies credentials and issues session tokens.
type AuthServicer interface {
	Login(ctx context.Context, username, password string) (string, domain.User, error)
}

// VisitorServicer is the visitor lifecycle consumed by the visitor handlers.
type VisitorServicer interface {
	RegisterEntry(ctx context.Context, v domain.Visitor) (domain.Visitor, error)
	RegisterExit(ctx context.Context, id uuid.UUID) (domain.Visitor, error)
	ListByDate(ctx context.Context, date time.Time) ([]domain.Visitor, error)
	ListActive(ctx context.Context) ([]domain.Visitor, error)
	Search(ctx context.Context, query string) ([]domain.Visitor, error)
}

// FleetServicer is the trip lifecycle consumed by the fleet handlers.
type FleetServicer interface {
	RegisterDeparture(ctx context.Context, t domain.FleetTrip) (domain.FleetTrip, error)
	RegisterReturn(ctx context.Context, id uuid.UUID, arrivalKm float64) (domain.FleetTrip, error)
	ListByDate(ctx context.Context, date time.Time) ([]domain.FleetTrip, error)
	ListActive(ctx context.Context) ([]domain.FleetTrip, error)
}

// ScheduleServicer is the appointment lifecycle consumed by the schedule handlers.
type ScheduleServicer interface {
	Create(ctx context.Context, s domain.Schedule) (domain.Schedule, error)
	Complete(ctx context.Context, id uuid.UUID) (domain.Schedule, error)
	Remove(ctx context.Context, id uuid.UUID) error
	ListToday(ctx context.Context) ([]domain.Schedule, error)
	ListAll(ctx context.Context) ([]domain.Schedule, error)
}

// ReportServicer assembles daily reports and manages observations.
type ReportServicer interface {
	BuildReport(ctx context.Context, date time.Time) (domain.DailyReport, error)
	SaveObservation(ctx context.Context, date time.Time, observation, porterName string) (domain.DailyObservation, error)
}

// DashboardServicer computes the dashboard counters.
type DashboardServicer interface {
	Stats(ctx context.Context) (domain.DashboardStats, error)
}

// UserServicer is the account management consumed by the user handlers.
type UserServicer interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, in service.UserInput) (domain.User, error)
	Update(ctx context.Context, id uuid.UUID, in service.UserInput) (domain.User, error)
	Delete(ctx context.Context, callerID, id uuid.UUID) error
}

// SettingsStore reads and writes the settings singleton.
// repo.SettingsRepo satisfies it directly; there are no business rules
// between the handler and the row beyond the admin gate on the route.
type SettingsStore interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, s domain.Settings) (domain.Settings, error)
}

// Deps bundles everything Server needs. A struct rather than a positional
// constructor: eight dependencies is past the point where call sites stay
// readable.
type Deps struct {
	Auth      AuthServicer
	Visitors  VisitorServicer
	Fleet     FleetServicer
	Schedules ScheduleServicer
	Reports   ReportServicer
	Dashboard DashboardServicer
	Users     UserServicer
	Settings  SettingsStore

	Verifier middleware.TokenVerifier
	Roles    middleware.RoleChecker
}

// Server implements all API endpoints.
type Server struct {
	deps Deps
}

// NewServer constructs the Server with all its dependencies.
func NewServer(deps Deps) *Server {
	return &Server{deps: deps}
}

// Routes returns the chi router for the full /api surface. Login and health
// are public; everything else sits behind the authenticator, with role-gated
// groups consulting the single authorization predicate.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.health)
	r.Post("/auth/login", s.login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthenticator(s.deps.Verifier, writeError))

		r.Get("/auth/verify", s.verifyToken)

		r.Route("/visitors", func(r chi.Router) {
			r.With(s.can(authz.ObjectVisitors, authz.ActionRead)).Get("/", s.listVisitors)
			r.With(s.can(authz.ObjectVisitors, authz.ActionWrite)).Post("/", s.createVisitor)
			r.With(s.can(authz.ObjectVisitors, authz.ActionWrite)).Put("/{id}/checkout", s.checkoutVisitor)
		})

		r.Route("/fleet", func(r chi.Router) {
			r.With(s.can(authz.ObjectFleet, authz.ActionRead)).Get("/", s.listFleetTrips)
			r.With(s.can(authz.ObjectFleet, authz.ActionWrite)).Post("/", s.createFleetTrip)
			r.With(s.can(authz.ObjectFleet, authz.ActionWrite)).Put("/{id}/return", s.returnFleetTrip)
		})

		r.Route("/schedules", func(r chi.Router) {
			r.With(s.can(authz.ObjectSchedules, authz.ActionRead)).Get("/", s.listSchedules)
			r.With(s.can(authz.ObjectSchedules, authz.ActionRead)).Get("/today", s.listTodaySchedules)
			r.With(s.can(authz.ObjectSchedules, authz.ActionWrite)).Post("/", s.createSchedule)
			r.With(s.can(authz.ObjectSchedules, authz.ActionWrite)).Put("/{id}/complete", s.completeSchedule)
			r.With(s.can(authz.ObjectSchedules, authz.ActionWrite)).Delete("/{id}", s.deleteSchedule)
		})

		r.Route("/reports", func(r chi.Router) {
			r.With(s.can(authz.ObjectReports, authz.ActionRead)).Get("/daily", s.dailyReport)
			r.With(s.can(authz.ObjectReports, authz.ActionWrite)).Post("/observation", s.saveObservation)
			r.With(s.can(authz.ObjectReports, authz.ActionRead)).Get("/export/excel", s.exportExcel)
			r.With(s.can(authz.ObjectReports, authz.ActionRead)).Get("/export/pdf", s.exportPDF)
		})

		r.With(s.can(authz.ObjectDashboard, authz.ActionRead)).Get("/dashboard/stats", s.dashboardStats)

		r.Route("/settings", func(r chi.Router) {
			r.With(s.can(authz.ObjectSettings, authz.ActionRead)).Get("/", s.getSettings)
			r.With(s.can(authz.ObjectSettings, authz.ActionWrite)).Put("/", s.updateSettings)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(s.can(authz.ObjectUsers, authz.ActionRead)).Get("/", s.listUsers)
			r.With(s.can(authz.ObjectUsers, authz.ActionWrite)).Post("/", s.createUser)
			r.With(s.can(authz.ObjectUsers, authz.ActionWrite)).Put("/{id}", s.updateUser)
			r.With(s.can(authz.ObjectUsers, authz.ActionWrite)).Delete("/{id}", s.deleteUser)
		})
	})

	return r
}

// can builds the authorize middleware for one object/action pair.
func (s *Server) can(object, action string) func(http.Handler) http.Handler {
	return middleware.NewAuthorizer(s.deps.Roles, object, action, writeError)
}

// idParam parses the {id} URL parameter as a UUID.
func idParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// dateParam parses the optional ?date= query parameter, defaulting to today.
func dateParam(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return domain.Today(), nil
	}
	return domain.ParseDate(raw)
}
