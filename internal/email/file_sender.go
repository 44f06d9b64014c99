package email

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileEmailSender implements the Sender interface by appending email content
// to a file. Used in development and as a mirror sink alongside SMTP.
type FileEmailSender struct {
	filePath string
}

// NewFileEmailSender creates a new FileEmailSender.
// It ensures the directory for the output file exists.
func NewFileEmailSender(filePath string) (Sender, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, fmt.Errorf("email output file path cannot be empty")
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for email output file '%s': %w", dir, err)
	}

	return &FileEmailSender{filePath: filePath}, nil
}

// Send appends the raw email message to the configured file.
func (s *FileEmailSender) Send(ctx context.Context, to []string, subject string, rawMessage []byte) error {
	timestamp := time.Now().Format(time.RFC3339Nano)

	file, err := os.OpenFile(s.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("FileEmailSender: Failed to open output file '%s': %v", s.filePath, err)
		return fmt.Errorf("failed to open email output file: %w", err)
	}
	defer file.Close()

	entry := fmt.Sprintf("--- Email at %s (To: %v, Subject: %s) ---\n", timestamp, to, subject)
	entry += string(rawMessage)
	entry += "--- End Email ---\n\n"

	if _, err := file.WriteString(entry); err != nil {
		log.Printf("FileEmailSender: Failed to write to output file '%s': %v", s.filePath, err)
		return fmt.Errorf("failed to write email to output file: %w", err)
	}

	return nil
}
