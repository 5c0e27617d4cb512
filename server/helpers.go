package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/go-playground/validator"
	"github.com/lifeline-sos/lifeline/gstorage"
	"github.com/lifeline-sos/lifeline/kvstore"
	"github.com/lifeline-sos/lifeline/shared"
	"github.com/lifeline-sos/lifeline/utils"
)

type ResponsePayload struct {
	Errors  []string    `json:"errors,omitempty"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

var validate = validator.New()

// ---------------------------------------------------------------------------------//
// Handler Helper functions
// --------------------------------------------------------------------------------//

func writeResponse(rw http.ResponseWriter, payLoad ResponsePayload, statusCode int) {
	if statusCode >= http.StatusInternalServerError {
		logg.Error(payLoad.Errors)
	}

	if statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError {
		logg.Info(payLoad.Errors)
	}

	rw.WriteHeader(statusCode)
	json.NewEncoder(rw).Encode(payLoad)
}

// ---------------------------------------------------------------------------------//
// Server Helper functions
// --------------------------------------------------------------------------------//

func serve(server *http.Server) {
	logg.Infof("Lifeline server is listening on port%v", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatal(err)
	}
}

func cleanup(cronScheduler *gocron.Scheduler, server *http.Server) {
	cronScheduler.Stop()

	// Shutdown server gracefully
	ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutDown); err != nil {
		logg.Fatalf("Lifeline server shutdown failed:%+s", err)
	}

	logg.Infof("Lifeline server stopped properly")
}

// scheduleDbBackup registers the periodic GCS upload of the sqlite file
// when backups are enabled in config.
func scheduleDbBackup(cronScheduler *gocron.Scheduler, googleConfig shared.GoogleConfig, storageDir string) {
	enabled, ok := googleConfig.Storage.EnableDbBackup.(bool)
	if !ok || !enabled {
		return
	}

	gs, err := gstorage.NewGStorage(googleConfig.ApplicationCredentials)
	fatalOnError(err)

	dbFilePath, err := kvstore.DbFilePath(storageDir)
	fatalOnError(err)

	cronScheduler.Cron(googleConfig.Storage.DbBackupSchedule).Tag("db_backup").Do(func() {
		if err := gs.UploadFile(googleConfig.Storage.Bucket, googleConfig.Storage.Prefix, dbFilePath); err != nil {
			logg.Errorf("db backup failed: %v", err)
		}
	})
}

func timeZone(name string) *time.Location {
	if name == "" {
		return time.UTC
	}

	tz, err := time.LoadLocation(name)
	if err != nil {
		logg.Warnf("unknown time zone %q, using UTC", name)
		return time.UTC
	}

	return tz
}

// configDirectory retrieves the directory that holds lifeline state
// Or logs an error message and then calls os.Exit if it's unable to.
func configDirectory(devMode bool) string {
	// Use 'lifeline' folder in home directory for prod
	configFolderName := "lifeline"
	rootDir, err := os.UserHomeDir()
	fatalOnError(err)

	// Use 'dev' folder in current directory for dev mode
	if devMode {
		configFolderName = "dev"
		rootDir, err = os.Getwd()
		fatalOnError(err)
	}

	configDir := filepath.Join(rootDir, configFolderName)

	err = utils.CreateDirIfNotExist(configDir)
	fatalOnError(err)

	return configDir
}

func fatalOnError(err error) {
	if err != nil {
		logg.Fatal(err)
	}
}
