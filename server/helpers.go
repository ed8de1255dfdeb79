package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/mayday-app/mayday/server/gstorage"
	"github.com/mayday-app/mayday/server/models"
	"github.com/mayday-app/mayday/server/work"
	"github.com/mayday-app/mayday/utils"
	"github.com/pkg/errors"
)

// ---------------------------------------------------------------------------------//
// Handler Helper functions
// --------------------------------------------------------------------------------//

func writeResponse(rw http.ResponseWriter, payLoad ResponsePayload, statusCode int) {
	if statusCode >= http.StatusInternalServerError {
		logg.Error(payLoad.Errors)
	}

	if statusCode >= http.StatusBadRequest {
		logg.Info(payLoad.Errors)
	}

	rw.WriteHeader(statusCode)
	json.NewEncoder(rw).Encode(payLoad)
}

// ---------------------------------------------------------------------------------//
// Server Helper functions
// --------------------------------------------------------------------------------//

func serve(server *http.Server) {
	logg.Infof("Mayday server is listening on port%v", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatal(err)
	}
}

func cleanup(workerPool *work.WorkerPoolAdapter, server *http.Server, configDir string) {
	// Stop the backup scheduler & let in-flight jobs finish
	workerPool.Stop()

	// One final backup so a shutdown never loses more than the current write
	if backupAndSyncEnabled() {
		dbFilePath, err := models.DbFilePath(configDir)
		if err == nil {
			err = backupSqliteDb(map[string]interface{}{"db_file_path": dbFilePath})
		}
		if err != nil {
			logg.Errorf("final db backup failed: %v", err)
		}
	}

	// Shutdown server gracefully
	ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutDown); err != nil {
		logg.Fatalf("Mayday server shutdown failed:%+s", err)
	}

	logg.Infof("Mayday server stopped properly")
}

// configDirectory retrieves the directory that houses the sqlite db
// Or logs an error message and then calls os.Exit if it's unable to.
func configDirectory(devMode bool) string {
	// Use 'mayday' folder in home directory for prod
	configFolderName := "mayday"
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

func backupAndSyncEnabled() bool {
	return serverConfig.Google.Storage.EnableSqliteBackupAndSync
}

// restoreSqliteDbIfMissing pulls the last db backup from google storage
// when no local db file exists yet e.g. after moving the server to a new host
func restoreSqliteDbIfMissing(configDir string) {
	dbFilePath, err := models.DbFilePath(configDir)
	fatalOnError(err)

	exists, err := utils.FileExist(dbFilePath)
	fatalOnError(err)
	if exists {
		return
	}

	storageConfig := serverConfig.Google.Storage
	err = gStorage.DownloadFile(storageConfig.Bucket, path.Join(storageConfig.Prefix, models.DB_NAME), dbFilePath)
	if err != nil {
		// DownloadFile creates the dest file before reading the object,
		// don't leave an empty db file behind on failure
		os.Remove(dbFilePath)
	}

	if errors.Is(err, gstorage.ErrObjectNotExist) {
		logg.Infof("No db backup found in bucket '%v', starting fresh", storageConfig.Bucket)
		return
	}

	if err != nil {
		logg.Warnf("unable to restore db backup: %v", err)
	}
}

func fatalOnError(err error) {
	if err != nil {
		logg.Fatal(err)
	}
}
