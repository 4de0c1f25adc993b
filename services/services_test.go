package services

import (
	"path/filepath"
	"testing"
	"time"

	"stayflow/common"
	"stayflow/db"
	"stayflow/metrics"

	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) *db.StayflowRepo {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "stayflow.db")
	err := db.RunMigrations("file://../db/migrations", dbPath)
	require.NoError(t, err)

	repo, err := db.NewSQLiteRepo(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

func setupQueueService(t *testing.T) (*db.StayflowRepo, *QueueService) {
	t.Helper()
	repo := setupTestRepo(t)
	return repo, NewQueueService(repo, metrics.NewMetricsService(false))
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(common.DateLayout, value)
	require.NoError(t, err)
	return parsed
}
