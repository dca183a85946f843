// Package attribution resolves which social platform a comment belongs
// to via its parent post identifier.
package attribution

import (
	"fmt"
	"strings"

	"github.com/pulkitj94/socialpulse/internal/domain"
)

// platformOrder is the fixed scan order for building the registry. A
// post_id registered by more than one platform resolves by
// last-write-wins within this order; there is no conflict signal.
var platformOrder = []string{"instagram", "twitter", "facebook", "linkedin"}

// PostSource lists the post IDs of one platform's organic post listing.
// The second return is false when the platform has no listing at all;
// that platform simply contributes zero comments downstream.
type PostSource interface {
	PostIDs(platform string) (ids []string, ok bool, err error)
}

// PostRegistry maps post_id to the capitalized platform name it was
// last registered under. Built fresh on every pipeline run.
type PostRegistry map[string]string

// BuildRegistry scans each supported platform's post listing in order
// and registers every post ID found. Absent listings are skipped
// without error.
func BuildRegistry(src PostSource) (PostRegistry, error) {
	registry := make(PostRegistry)
	for _, platform := range platformOrder {
		ids, ok, err := src.PostIDs(platform)
		if err != nil {
			return nil, fmt.Errorf("list posts for %s: %w", platform, err)
		}
		if !ok {
			continue
		}
		name := capitalize(platform)
		for _, id := range ids {
			registry[id] = name
		}
	}
	return registry, nil
}

// Resolve returns the platform for a post ID, or "General" if the post
// is unknown to every registry.
func (r PostRegistry) Resolve(postID string) string {
	if platform, ok := r[postID]; ok {
		return platform
	}
	return domain.PlatformGeneral
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
