// Package suggest talks to the generative-text service and parses its
// free-text output.
package suggest

import "strings"

// Delimiter separates candidate suggestions in the model output.
const Delimiter = "||"

// Split breaks a model response into candidate suggestions. The input
// is untrusted free text: segments are trimmed, empty segments are
// dropped, and a response without any delimiter yields a single
// candidate.
func Split(raw string) []string {
	var candidates []string
	for _, part := range strings.Split(raw, Delimiter) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		candidates = append(candidates, part)
	}
	return candidates
}
