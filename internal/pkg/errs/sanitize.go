package errs

import (
	"fmt"
	"strings"
)

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// sanitize renders v and strips line breaks so user supplied values cannot
// forge additional log lines.
func sanitize(v any) string {
	return newlineReplacer.Replace(fmt.Sprint(v))
}
