package content

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/inkwell-blog/inkwell/pkg/types"
)

// newUID derives the externally visible identifier for a new content row.
// Posts get a random opaque token; pages get a stable slug of their title so
// their URLs are predictable. Neither changes after creation.
func newUID(kind types.Kind, title string) (string, error) {
	switch kind {
	case types.KindPage:
		return slugify(title), nil
	default:
		uid, err := gonanoid.New()
		if err != nil {
			return "", fmt.Errorf("failed to generate uid: %w", err)
		}
		return uid, nil
	}
}

// slugify lowercases the title and folds everything that is not a letter or
// digit into single hyphens.
func slugify(title string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			hyphen = false
		default:
			if !hyphen && b.Len() > 0 {
				b.WriteByte('-')
				hyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
