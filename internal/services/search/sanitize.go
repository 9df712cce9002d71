// File: internal/services/search/sanitize.go
package search

import (
	"regexp"
	"strings"
)

// Redaction rules applied to every error message this layer emits in
// production. Order matters: URLs go first so the token rule never sees
// their key-bearing query strings, and paths go after URLs so URL paths are
// not double-matched.
var (
	urlPattern       = regexp.MustCompile(`https?://[^\s"']+`)
	localhostPattern = regexp.MustCompile(`localhost:\d+`)
	pathPattern      = regexp.MustCompile(`(^|\s)(/[\w.-]+(?:/[\w.-]+)+)`)
	tokenPattern     = regexp.MustCompile(`[A-Za-z0-9_-]{20,}`)
	servicePattern   = regexp.MustCompile(`(?i)\b(ollama|nomic|qdrant|groq)\b`)
)

// Sanitizer redacts operational detail from error messages before they reach
// a client-visible channel. Outside production it passes messages through
// untouched so developers keep full diagnostics.
type Sanitizer struct {
	enabled     bool
	knownModels []string
}

func NewSanitizer(production bool, knownModels ...string) *Sanitizer {
	models := append([]string{
		"nomic-embed-text-v1.5",
		"nomic-embed-text",
	}, knownModels...)
	return &Sanitizer{enabled: production, knownModels: models}
}

// Sanitize redacts URLs, local service addresses, model names, service
// names, filesystem paths and token-like strings. Running it twice yields
// the same output: none of the replacement markers match any rule.
func (s *Sanitizer) Sanitize(msg string) string {
	if !s.enabled {
		return msg
	}

	msg = urlPattern.ReplaceAllString(msg, "[URL_REDACTED]")
	msg = localhostPattern.ReplaceAllString(msg, "[LOCAL_SERVICE]")
	msg = pathPattern.ReplaceAllString(msg, "$1[PATH]")

	for _, model := range s.knownModels {
		msg = strings.ReplaceAll(msg, model, "[MODEL]")
	}
	msg = servicePattern.ReplaceAllString(msg, "[SERVICE]")

	// Conservative catch-all for anything shaped like an API key.
	msg = tokenPattern.ReplaceAllString(msg, "[REDACTED]")

	return msg
}
