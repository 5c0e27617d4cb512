package server

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"github.com/lifeline-sos/lifeline/clipboard"
	"github.com/lifeline-sos/lifeline/contacts"
	"github.com/lifeline-sos/lifeline/dispatch"
	"github.com/lifeline-sos/lifeline/kvstore"
	"github.com/lifeline-sos/lifeline/location"
	"github.com/lifeline-sos/lifeline/logger"
	"github.com/lifeline-sos/lifeline/profile"
	"github.com/lifeline-sos/lifeline/shared"
	"github.com/lifeline-sos/lifeline/sos"
	"github.com/spf13/viper"
)

var logg = logger.NewLogger()

// App wires the core components behind the HTTP API. One App serves one
// user session.
type App struct {
	Contacts    *contacts.Store
	Profile     *profile.Store
	Sensor      *location.ReportedSensor
	Coordinator *sos.Coordinator

	authSecret string
}

// Start builds the app from config and serves the API until SIGINT/SIGTERM.
func Start(config *viper.Viper, devMode bool) {
	serverConfig := shared.ServerConfig{}
	fatalOnError(config.Unmarshal(&serverConfig))
	fatalOnError(validator.New().Struct(serverConfig))

	storageDir := configDirectory(devMode)

	kv, err := kvstore.NewGormStore(storageDir)
	fatalOnError(err)

	app := NewApp(kv, serverConfig)

	cronScheduler := gocron.NewScheduler(timeZone(serverConfig.Lifeline.Cron.TimeZone))
	scheduleDbBackup(cronScheduler, serverConfig.Google, storageDir)
	cronScheduler.StartAsync()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%v", serverConfig.Lifeline.Listener.Port),
		Handler: app.Router(),
	}
	go serve(server)

	// Block until a shutdown signal arrives
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	cleanup(cronScheduler, server)
}

// NewApp assembles the core components on top of the given store.
func NewApp(kv kvstore.Store, serverConfig shared.ServerConfig) *App {
	sensor := location.NewReportedSensor()

	timeout := time.Duration(serverConfig.Lifeline.Probe.TimeoutSeconds) * time.Second
	probe := location.NewProbe(sensor, timeout)

	contactStore := contacts.NewStore(kv)
	profileStore := profile.NewStore(kv)

	var dispatcher sos.Dispatcher = dispatch.NewURIHandoff()
	if serverConfig.Twilio.Enabled() {
		logg.Info("Twilio is configured; SOS messages will be sent directly")
		dispatcher = dispatch.NewTwilioDispatcher(serverConfig.Twilio)
	}

	// No OS clipboard on a headless server; the copy endpoint returns the
	// text for the client to place on its own clipboard.
	coordinator := sos.NewCoordinator(contactStore, profileStore, probe, dispatcher, &clipboard.Memory{})

	return &App{
		Contacts:    contactStore,
		Profile:     profileStore,
		Sensor:      sensor,
		Coordinator: coordinator,
		authSecret:  serverConfig.Lifeline.AuthSecret,
	}
}

// Router lays out the API. Everything except the health check sits behind
// the bearer-token middleware.
func (app *App) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(loggingMiddleware)

	router.HandleFunc("/health", app.healthCheckHandler).Methods("GET")

	protected := router.NewRoute().Subrouter()
	protected.Use(app.protectedRouteMiddleware)

	protected.HandleFunc("/contacts", app.listContactsHandler).Methods("GET")
	protected.HandleFunc("/contacts", app.addContactHandler).Methods("POST")
	protected.HandleFunc("/contacts/{id}", app.removeContactHandler).Methods("DELETE")

	protected.HandleFunc("/profile", app.findProfileHandler).Methods("GET")
	protected.HandleFunc("/profile", app.updateProfileHandler).Methods("PUT")

	protected.HandleFunc("/location", app.reportLocationHandler).Methods("POST")

	protected.HandleFunc("/sos", app.sendSosHandler).Methods("POST")
	protected.HandleFunc("/sos/report", app.lastReportHandler).Methods("GET")

	return router
}
