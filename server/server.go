package server

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"github.com/mayday-app/mayday/server/gstorage"
	"github.com/mayday-app/mayday/server/logger"
	"github.com/mayday-app/mayday/server/models"
	"github.com/mayday-app/mayday/server/sos"
	"github.com/mayday-app/mayday/server/twilio"
	"github.com/mayday-app/mayday/server/work"
	"github.com/mayday-app/mayday/shared"
	"github.com/spf13/viper"
)

var (
	logg     = logger.NewLogger()
	validate = validator.New()

	serverConfig *shared.ServerConfig
	sosService   *sos.Service
	gStorage     *gstorage.GStorage
)

func Start(config *viper.Viper, devMode, testMode bool) {
	serverConfig = &shared.ServerConfig{}
	fatalOnError(config.Unmarshal(serverConfig))
	fatalOnError(validate.Struct(serverConfig))

	configDir := configDirectory(devMode)

	if backupAndSyncEnabled() {
		var err error
		gStorage, err = gstorage.NewGStorage(serverConfig.Google.ApplicationCredentials)
		fatalOnError(err)

		restoreSqliteDbIfMissing(configDir)
	}

	fatalOnError(models.AutoMigrate(serverConfig.Sqlite.PassPhrase, configDir))

	twilioClient := twilio.NewClient(serverConfig.Twilio, testMode)
	if twilioClient.IsEnabled() {
		logg.Info("Twilio initialized successfully")
	} else {
		logg.Warn("Twilio credentials not configured. SMS will be simulated.")
	}

	sosService = sos.NewService(models.Store{}, twilioClient)

	workerPool := work.NewWorkerAdapter(serverConfig.Mayday.Cron.TimeZone)
	registerJobHandlers(workerPool)
	enqueueJobs(workerPool, configDir)
	workerPool.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%v", serverConfig.Mayday.Listener.Port),
		Handler: newRouter(),
	}
	go serve(server)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	cleanup(workerPool, server, configDir)
}

func newRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(loggingMiddleware, jsonContentTypeMiddleware)

	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/contacts", saveContactsHandler).Methods("POST")
	apiRouter.HandleFunc("/contacts", listContactsHandler).Methods("GET")
	apiRouter.HandleFunc("/sos", sendSOSHandler).Methods("POST")
	apiRouter.HandleFunc("/health", healthCheckHandler).Methods("GET")

	return router
}
