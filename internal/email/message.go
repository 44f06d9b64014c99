package email

import (
	"fmt"
	"strings"
	"time"
)

// BuildHTMLMessage constructs a raw HTML email message including headers,
// ready to hand to a Sender. Attachments and multipart bodies are out of
// scope; password reset notifications are a single HTML part.
func BuildHTMLMessage(from string, to string, subject string, htmlBody string) []byte {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n") // End of headers
	sb.WriteString(htmlBody)
	if !strings.HasSuffix(htmlBody, "\r\n") {
		sb.WriteString("\r\n")
	}
	return []byte(sb.String())
}
