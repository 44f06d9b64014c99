package services

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spkcd/smart-bulk-password-reset/internal/models"
)

const (
	logDirName    = "password-reset-logs"
	htaccessBody  = "Options -Indexes\ndeny from all"
	indexBody     = "<!-- Silence is golden -->"
	timestampFmt  = "2006-01-02 15:04:05"
	logDatePrefix = "password_reset_log_"
)

// csvHeader is written once, when a day's log file is first created.
var csvHeader = []string{"Timestamp", "Username", "Email", "New Password"}

// IAuditService appends reset run records to per-day CSV files. Files grow
// without bound; rotation happens by date only.
type IAuditService interface {
	Append(entries []models.ResetLogEntry, asOf time.Time) error
	LogFilePath(asOf time.Time) string
}

// auditService implements IAuditService on the local filesystem.
type auditService struct {
	baseDir string
}

// NewAuditService creates a new AuditService writing under baseDir.
func NewAuditService(baseDir string) IAuditService {
	return &auditService{baseDir: baseDir}
}

// LogFilePath returns the path of the CSV file covering asOf's date.
func (s *auditService) LogFilePath(asOf time.Time) string {
	name := fmt.Sprintf("%s%s.csv", logDatePrefix, asOf.Format("2006-01-02"))
	return filepath.Join(s.baseDir, logDirName, name)
}

// Append writes the entries to the day's log file, creating the directory,
// its guard files and the CSV header as needed. The whole batch is written
// in one call so a run's rows stay contiguous.
func (s *auditService) Append(entries []models.ResetLogEntry, asOf time.Time) error {
	if len(entries) == 0 {
		return nil
	}

	dir := filepath.Join(s.baseDir, logDirName)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	s.writeGuardFiles(dir)

	path := s.LogFilePath(asOf)
	needHeader := fileAbsentOrEmpty(path)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if needHeader {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write log header to %s: %w", path, err)
		}
	}
	for _, e := range entries {
		record := []string{e.Timestamp, e.Username, e.Email, e.Password}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write log entry to %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush log file %s: %w", path, err)
	}
	return nil
}

// writeGuardFiles drops an empty index page and a webserver deny rule into
// the log directory so the plaintext passwords are not browsable when the
// upload area is served directly. Best effort only.
func (s *auditService) writeGuardFiles(dir string) {
	indexPath := filepath.Join(dir, "index.html")
	if _, err := os.Stat(indexPath); os.IsNotExist(err) {
		if err := os.WriteFile(indexPath, []byte(indexBody), 0o640); err != nil {
			log.Printf("Warning: could not write %s: %v", indexPath, err)
		}
	}

	htaccessPath := filepath.Join(dir, ".htaccess")
	if _, err := os.Stat(htaccessPath); os.IsNotExist(err) {
		if err := os.WriteFile(htaccessPath, []byte(htaccessBody), 0o640); err != nil {
			log.Printf("Warning: could not write %s: %v", htaccessPath, err)
		}
	}
}

func fileAbsentOrEmpty(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return true
	}
	return info.Size() == 0
}
