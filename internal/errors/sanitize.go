package errors

import (
	"fmt"
	"regexp"
)

var (
	unixPath = regexp.MustCompile(`/[a-zA-Z0-9/_\-\.]+`)
	winPath  = regexp.MustCompile(`[A-Z]:\\[a-zA-Z0-9\\_\-\.]+`)
)

// SanitizeError removes filesystem paths from an error message so it can be
// shown to end users.
func SanitizeError(err error) error {
	if err == nil {
		return nil
	}

	msg := unixPath.ReplaceAllString(err.Error(), "[path]")
	msg = winPath.ReplaceAllString(msg, "[path]")
	return fmt.Errorf("%s", msg)
}
