package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/piwi3910/fencecalc/internal/model"
)

// BackupVersion is the snapshot format. Restores accept any file with the
// same major version; fields added in later minor versions are ignored.
const BackupVersion = "1.0.0"

// BackupData is a full snapshot of an estimator install: the price list,
// job defaults and recent list in Config, and every saved fence job.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Jobs      model.JobStore  `json:"jobs"`
}

// ExportAllData snapshots the pricing config and the saved fence jobs into
// one JSON file, creating the parent directory if needed. Job results are
// not written; a restored job recomputes its takeoff from its runs.
func ExportAllData(exportPath string, config model.AppConfig, jobs model.JobStore) error {
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Jobs:      jobs,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(exportPath), 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}
	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a snapshot written by ExportAllData. It rejects files
// without a version or from a newer major version, and normalizes missing
// job and recent lists to empty ones. Nothing is written; the restore
// command saves the config and the jobs store.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if err := checkBackupVersion(backup.Version); err != nil {
		return BackupData{}, err
	}
	if backup.Config.RecentJobs == nil {
		backup.Config.RecentJobs = []string{}
	}
	if backup.Jobs.Jobs == nil {
		backup.Jobs.Jobs = []model.FenceJob{}
	}
	return backup, nil
}

func checkBackupVersion(version string) error {
	got, err := majorVersion(version)
	if err != nil {
		return fmt.Errorf("invalid backup version %q", version)
	}
	want, _ := majorVersion(BackupVersion)
	if got > want {
		return fmt.Errorf("backup version %s is newer than supported version %s", version, BackupVersion)
	}
	return nil
}

func majorVersion(version string) (int, error) {
	major, _, _ := strings.Cut(strings.TrimPrefix(version, "v"), ".")
	return strconv.Atoi(major)
}
