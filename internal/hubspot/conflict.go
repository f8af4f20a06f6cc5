package hubspot

import (
	"encoding/json"
	"strings"
)

// existingIDMarker is the substring HubSpot embeds in 409 conflict messages
// ahead of the pre-existing object identifier.
const existingIDMarker = "Existing ID:"

// ConflictResolver isolates the string-matching contract for recovering the
// canonical identifier out of a 409 response body. The parsing is brittle by
// contract with the CRM, so it lives behind this one seam.
type ConflictResolver struct{}

type conflictBody struct {
	Message string `json:"message"`
}

// ExtractExistingID parses a 409 response body and returns the identifier
// that follows the "Existing ID:" marker in the message field. The second
// return value is false when no identifier could be recovered; callers must
// then treat the entity as unresolved rather than failing the workflow.
func (ConflictResolver) ExtractExistingID(body []byte) (string, bool) {
	var parsed conflictBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		// Some gateways return the message as plain text.
		parsed.Message = string(body)
	}

	idx := strings.Index(parsed.Message, existingIDMarker)
	if idx < 0 {
		return "", false
	}

	rest := strings.TrimSpace(parsed.Message[idx+len(existingIDMarker):])
	if rest == "" {
		return "", false
	}

	// The identifier runs until the first whitespace or quote.
	end := len(rest)
	for i, r := range rest {
		if r == ' ' || r == '\t' || r == '\n' || r == '"' || r == '\'' {
			end = i
			break
		}
	}

	id := strings.Trim(rest[:end], ".,;")
	if id == "" {
		return "", false
	}
	return id, true
}
