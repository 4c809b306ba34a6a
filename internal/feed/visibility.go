package feed

import "ops-dashboard/internal/domain"

// IsVisible decides whether viewerID may see the announcement. Unknown
// visibility values fail closed.
func IsVisible(a domain.Announcement, viewerID string) bool {
	switch domain.ParseVisibility(string(a.Visibility)) {
	case domain.VisibilityAll:
		return true
	case domain.VisibilitySpecific:
		if viewerID == "" {
			return false
		}
		return a.Recipients().Contains(viewerID)
	default:
		return false
	}
}
