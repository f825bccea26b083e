package domain

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
)

// canonicalIdentifierLength is the length of the 8-4-4-4-12 hex form
const canonicalIdentifierLength = 36

// Identifier is the capability token carried by an upload link
type Identifier string

// ParseIdentifier extracts the identifier from a bare token or a full link.
// Only the hyphenated 8-4-4-4-12 hex form is accepted; case is preserved
func ParseIdentifier(raw string) (Identifier, error) {
	segment := strings.TrimSpace(raw)
	if strings.Contains(segment, "/") {
		u, err := url.Parse(segment)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidIdentifier, err)
		}
		segment = path.Base(strings.TrimSuffix(u.Path, "/"))
	}

	if len(segment) != canonicalIdentifierLength {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, segment)
	}
	if _, err := uuid.Parse(segment); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidIdentifier, err)
	}
	return Identifier(segment), nil
}

// NewUploadTarget joins the endpoint base and the identifier
func NewUploadTarget(endpointBase string, id Identifier) UploadTarget {
	return UploadTarget(strings.TrimSuffix(endpointBase, "/") + "/" + string(id))
}
