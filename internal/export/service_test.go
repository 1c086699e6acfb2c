package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"terralot/internal/model"
)

func sampleTasks() []model.Task {
	due := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	return []model.Task{
		{ID: "t-1", Title: "Prune north rows", LotID: "lot-a", DueDate: due,
			Priority: model.PriorityHigh, Status: model.TaskPending, Category: "maintenance"},
		{ID: "t-2", Title: "Spray fungicide", LotID: "lot-a", DueDate: due.AddDate(0, 0, 2),
			Priority: model.PriorityMedium, Status: model.TaskInProgress, Category: "treatment"},
	}
}

func sampleInfrastructure() []model.Infrastructure {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return []model.Infrastructure{
		{ID: "i-1", LotID: "lot-a", Type: "irrigation", Status: "good",
			LastInspection: base, NextInspection: base.AddDate(0, 1, 0)},
		{ID: "i-2", LotID: "lot-b", Type: "fence", Status: "critical",
			LastInspection: base, NextInspection: base.AddDate(0, 0, 7)},
	}
}

func TestExportTasksExcel(t *testing.T) {
	svc := NewService(t.TempDir(), zap.NewNop(), nil)

	path, err := svc.ExportTasks(sampleTasks(), FormatExcel, "tasks-report")
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", filepath.Ext(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportTasksPDF(t *testing.T) {
	svc := NewService(t.TempDir(), zap.NewNop(), nil)

	path, err := svc.ExportTasks(sampleTasks(), FormatPDF, "tasks-report")
	require.NoError(t, err)
	assert.Equal(t, ".pdf", filepath.Ext(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportInfrastructureBothFormats(t *testing.T) {
	svc := NewService(t.TempDir(), zap.NewNop(), nil)

	xlsx, err := svc.ExportInfrastructure(sampleInfrastructure(), FormatExcel, "")
	require.NoError(t, err)
	assert.FileExists(t, xlsx)

	pdf, err := svc.ExportInfrastructure(sampleInfrastructure(), FormatPDF, "")
	require.NoError(t, err)
	assert.FileExists(t, pdf)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := NewService(t.TempDir(), zap.NewNop(), nil)
	_, err := svc.ExportTasks(sampleTasks(), Format("csv"), "x")
	assert.Error(t, err)
}

func TestExportGeneratesFilenameWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, zap.NewNop(), nil)

	path, err := svc.ExportTasks(sampleTasks(), FormatExcel, "")
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.Contains(t, filepath.Base(path), "tasks-")
}

func TestExportCallsShareHook(t *testing.T) {
	var shared string
	var sharedFormat Format
	svc := NewService(t.TempDir(), zap.NewNop(), func(path string, format Format) error {
		shared = path
		sharedFormat = format
		return nil
	})

	path, err := svc.ExportTasks(sampleTasks(), FormatPDF, "shared")
	require.NoError(t, err)
	assert.Equal(t, path, shared)
	assert.Equal(t, FormatPDF, sharedFormat)
}

func TestCleanupRemovesExports(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, zap.NewNop(), nil)

	_, err := svc.ExportTasks(sampleTasks(), FormatExcel, "a")
	require.NoError(t, err)
	_, err = svc.ExportTasks(sampleTasks(), FormatPDF, "b")
	require.NoError(t, err)

	require.NoError(t, svc.Cleanup())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCleanupOnMissingDirectory(t *testing.T) {
	svc := NewService(filepath.Join(t.TempDir(), "never-created"), zap.NewNop(), nil)
	assert.NoError(t, svc.Cleanup())
}
