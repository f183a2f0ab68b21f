package html

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeServiceText keeps inline emphasis the service may send in free
// text and drops everything else.
func sanitizeServiceText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(serviceTextSanitizer().Sanitize(trimmed))
}

func serviceTextSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "br")
		textPolicy = policy
	})
	return textPolicy
}
