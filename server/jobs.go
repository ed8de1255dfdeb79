package server

import (
	"fmt"

	"github.com/mayday-app/mayday/server/models"
	"github.com/mayday-app/mayday/server/work"
)

const SQLITE_BACKUP_JOB = "backupSqliteDb"

func backupSqliteDb(args map[string]interface{}) error {
	storageConfig := serverConfig.Google.Storage
	return gStorage.UploadFile(
		storageConfig.Bucket,
		storageConfig.Prefix,
		fmt.Sprintf("%v", args["db_file_path"]),
	)
}

func registerJobHandlers(workerPool *work.WorkerPoolAdapter) {
	workerPool.Register(SQLITE_BACKUP_JOB, backupSqliteDb)
}

func enqueueJobs(workerPool *work.WorkerPoolAdapter, configDir string) {
	if !backupAndSyncEnabled() {
		return
	}

	dbFilePath, err := models.DbFilePath(configDir)
	fatalOnError(err)

	workerPool.PeriodicallyPerform(serverConfig.Google.Storage.SqliteBackupSchedule, work.JobParams{
		Name:    SQLITE_BACKUP_JOB,
		Handler: SQLITE_BACKUP_JOB,
		Args:    map[string]interface{}{"db_file_path": dbFilePath},
	})
}
