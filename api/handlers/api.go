package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/polyview/moderation-api/api"
	"github.com/polyview/moderation-api/api/scheduler"
	"github.com/polyview/moderation-api/config"
	"github.com/polyview/moderation-api/databases"
	"github.com/polyview/moderation-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	DB        databases.CollectionHelper
	Config    config.Config
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewUserDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()
	r.Use(api.MetricsMiddleware)

	rep := Report{
		RDB: databases.NewReportDatabase(a.dbHelper),
		EDB: databases.NewEntityDatabase(a.dbHelper),
		UDB: databases.NewUserDatabase(a.dbHelper),
	}
	viol := Violation{
		EDB: databases.NewEntityDatabase(a.dbHelper),
		UDB: databases.NewUserDatabase(a.dbHelper),
	}
	ban := Ban{
		BDB: databases.NewBanDatabase(a.dbHelper),
		UDB: databases.NewUserDatabase(a.dbHelper),
	}
	auth := Auth{UDB: databases.NewUserDatabase(a.dbHelper)}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	r.HandleFunc("/ws/moderation", HandleModerationWebSocket)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(30 * time.Second))

	metrics := MetricsHandler{}
	apiCreate.Handle("/metrics", api.ModeratorMiddleware(http.HandlerFunc(metrics.GetMetricsSummary))).Methods("GET")
	apiCreate.Handle("/metrics/routes", api.ModeratorMiddleware(http.HandlerFunc(metrics.GetRouteMetrics))).Methods("GET")

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")
	apiCreate.Handle("/auth/login", http.HandlerFunc(auth.ConsoleLoginHandler)).Methods("POST")

	// any authenticated user can file a report
	apiCreate.Handle("/report", api.Middleware(http.HandlerFunc(rep.SubmitReportHandler))).Methods("POST")

	// console endpoints require a moderation session
	apiCreate.Handle("/reports", api.ModeratorMiddleware(http.HandlerFunc(rep.ListReportsHandler))).Methods("GET")
	apiCreate.Handle("/report/{report_id}/status", api.ModeratorMiddleware(http.HandlerFunc(rep.ResolveReportHandler))).Methods("PUT")
	apiCreate.Handle("/violation", api.ModeratorMiddleware(http.HandlerFunc(viol.SetViolationHandler))).Methods("PUT")
	apiCreate.Handle("/ban", api.ModeratorMiddleware(http.HandlerFunc(ban.BanUserHandler))).Methods("POST")
	apiCreate.Handle("/bans/{email}/active", api.ModeratorMiddleware(http.HandlerFunc(ban.ActiveBansHandler))).Methods("GET")

	return r
}

// Initialize connects to the database, ensures report indexes, starts the
// background scheduler and builds the router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("moderation-api has connected to the database")

	rdb := databases.NewReportDatabase(a.dbHelper)
	if err := rdb.EnsureIndexes(context.Background()); err != nil {
		zap.S().With(err).Error("failed to ensure report indexes")
		return err
	}

	a.Scheduler = scheduler.NewScheduler(rdb, databases.NewEntityDatabase(a.dbHelper))
	a.Scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
