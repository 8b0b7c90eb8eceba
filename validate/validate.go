// Package validate normalizes raw tool parameters into request values,
// rejecting anything that violates a documented constraint before any network
// call is made. Validation is pure and deterministic: validating the same
// input twice yields field-for-field equal requests.
package validate

import (
	"fmt"
	"strings"

	"github.com/mediaforge/mediaforge"
)

func requirePrompt(prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", mediaforge.NewArgumentError("prompt", "is required")
	}
	return prompt, nil
}

// normalizeBase64 accepts raw base64 or a data URL and returns the raw base64
// content. A data URL without a comma separator is malformed.
func normalizeBase64(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "data:") {
		return s, nil
	}
	_, content, ok := strings.Cut(s, ",")
	if !ok {
		return "", mediaforge.NewArgumentError(field, "looks like a data URL but is malformed")
	}
	return strings.TrimSpace(content), nil
}

func oneOf[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return fmt.Sprintf("must be one of [%s]", strings.Join(parts, ", "))
}
