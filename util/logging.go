package util

import (
	"fmt"
	"log"
	"net/http"
	"strings"
)

var LoggingEnabled = false

// LogEndpoint receives log lines as plain text POSTs when set. Otherwise
// messages go to the standard logger, which writes to stderr; stdout may be
// carrying the language server protocol.
var LogEndpoint = ""

func LogF(format string, args ...interface{}) {
	if !LoggingEnabled {
		return
	}
	message := fmt.Sprintf(format, args...)
	if LogEndpoint == "" {
		log.Println(message)
		return
	}
	go http.Post(LogEndpoint, "text/plain", strings.NewReader(message))
}
