package sandbox

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// AuditLogger appends one line per search to a plain text file.
type AuditLogger struct {
	mu     sync.Mutex
	logger *log.Logger
	file   *os.File
}

// NewAuditLogger creates a new audit logger
func NewAuditLogger(logPath string) (*AuditLogger, error) {
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("could not open audit log: %w", err)
	}

	return &AuditLogger{
		logger: log.New(file, "", 0),
		file:   file,
	}, nil
}

// Log writes an audit log entry. Outcome is one of found, not_found,
// no_query or failed.
func (a *AuditLogger) Log(requestID, query, outcome, detail string) {
	if a == nil || a.logger == nil {
		return
	}

	logEntry := fmt.Sprintf("%s|request:%s|search|%s|%s|%s",
		time.Now().Format(time.RFC3339),
		requestID,
		flattenField(query),
		outcome,
		flattenField(detail),
	)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.logger.Println(logEntry)
}

// Close closes the audit log file
func (a *AuditLogger) Close() error {
	if a != nil && a.file != nil {
		return a.file.Close()
	}
	return nil
}

// flattenField keeps user input on a single line and free of separators.
func flattenField(s string) string {
	return strings.NewReplacer("\n", `\n`, "\r", `\r`, "|", `\|`).Replace(s)
}
