package services

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spkcd/smart-bulk-password-reset/internal/models"
)

func TestAuditService_LogFilePath(t *testing.T) {
	svc := NewAuditService("/var/uploads")

	asOf := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	expected := filepath.Join("/var/uploads", "password-reset-logs", "password_reset_log_2026-03-14.csv")
	assert.Equal(t, expected, svc.LogFilePath(asOf))
}

func TestAuditService_AppendCreatesFileWithHeader(t *testing.T) {
	base := t.TempDir()
	svc := NewAuditService(base)
	asOf := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	entries := []models.ResetLogEntry{
		{Timestamp: "2026-03-14 10:30:00", Username: "alice", Email: "alice@example.com", Password: "Xk9!mQ2pLw7z"},
		{Timestamp: "2026-03-14 10:30:00", Username: "bob", Email: "bob@example.com", Password: "Qw3$nV8rTe5y"},
	}
	require.NoError(t, svc.Append(entries, asOf))

	f, err := os.Open(svc.LogFilePath(asOf))
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Timestamp", "Username", "Email", "New Password"}, records[0])
	assert.Equal(t, []string{"2026-03-14 10:30:00", "alice", "alice@example.com", "Xk9!mQ2pLw7z"}, records[1])
	assert.Equal(t, []string{"2026-03-14 10:30:00", "bob", "bob@example.com", "Qw3$nV8rTe5y"}, records[2])
}

func TestAuditService_AppendWritesHeaderOnlyOnce(t *testing.T) {
	base := t.TempDir()
	svc := NewAuditService(base)
	asOf := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	first := []models.ResetLogEntry{
		{Timestamp: "2026-03-14 10:30:00", Username: "alice", Email: "alice@example.com", Password: "p1"},
	}
	second := []models.ResetLogEntry{
		{Timestamp: "2026-03-14 11:45:00", Username: "bob", Email: "bob@example.com", Password: "p2"},
	}
	require.NoError(t, svc.Append(first, asOf))
	require.NoError(t, svc.Append(second, asOf.Add(75*time.Minute)))

	data, err := os.ReadFile(svc.LogFilePath(asOf))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "Timestamp,Username,Email,New Password"))
	assert.Contains(t, string(data), "alice")
	assert.Contains(t, string(data), "bob")
}

func TestAuditService_SeparateFilePerDay(t *testing.T) {
	base := t.TempDir()
	svc := NewAuditService(base)

	day1 := time.Date(2026, 3, 14, 23, 50, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 15, 0, 10, 0, 0, time.UTC)

	entry := func(user string) []models.ResetLogEntry {
		return []models.ResetLogEntry{{Timestamp: "x", Username: user, Email: user + "@example.com", Password: "p"}}
	}
	require.NoError(t, svc.Append(entry("alice"), day1))
	require.NoError(t, svc.Append(entry("bob"), day2))

	assert.NotEqual(t, svc.LogFilePath(day1), svc.LogFilePath(day2))
	assert.FileExists(t, svc.LogFilePath(day1))
	assert.FileExists(t, svc.LogFilePath(day2))
}

func TestAuditService_GuardFiles(t *testing.T) {
	base := t.TempDir()
	svc := NewAuditService(base)

	entries := []models.ResetLogEntry{{Timestamp: "x", Username: "u", Email: "e", Password: "p"}}
	require.NoError(t, svc.Append(entries, time.Now()))

	dir := filepath.Join(base, "password-reset-logs")
	assert.FileExists(t, filepath.Join(dir, "index.html"))

	htaccess, err := os.ReadFile(filepath.Join(dir, ".htaccess"))
	require.NoError(t, err)
	assert.Equal(t, "Options -Indexes\ndeny from all", string(htaccess))
}

func TestAuditService_AppendNothing(t *testing.T) {
	base := t.TempDir()
	svc := NewAuditService(base)

	require.NoError(t, svc.Append(nil, time.Now()))

	// An empty run must not create the directory or any files.
	_, err := os.Stat(filepath.Join(base, "password-reset-logs"))
	assert.True(t, os.IsNotExist(err))
}
