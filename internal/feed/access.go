package feed

import "ops-dashboard/internal/domain"

// CanViewProject is the only place project access is decided. ADMIN and
// MANAGER see everything; any other role, known or not, needs membership.
func CanViewProject(p domain.Project, v domain.Viewer) bool {
	if domain.ParseRole(string(v.Role)).HasElevatedAccess() {
		return true
	}
	return p.HasMember(v.ID)
}

// VisibleProjects returns the projects the viewer may enumerate, in input
// order. The result never aliases the input slice.
func VisibleProjects(all []domain.Project, v domain.Viewer) []domain.Project {
	visible := make([]domain.Project, 0, len(all))
	for _, p := range all {
		if CanViewProject(p, v) {
			visible = append(visible, p)
		}
	}
	return visible
}

// TeamRoster returns the members of projectID when the viewer may see that
// project. The boolean is false when the project is unknown or hidden, so a
// caller cannot tell the two apart.
func TeamRoster(all []domain.Project, v domain.Viewer, projectID string) ([]domain.User, bool) {
	for _, p := range all {
		if p.ID != projectID {
			continue
		}
		if !CanViewProject(p, v) {
			return nil, false
		}
		members := make([]domain.User, len(p.TeamMembers))
		copy(members, p.TeamMembers)
		return members, true
	}
	return nil, false
}

// ProfileProjects lists the projects profileUserID belongs to, restricted to
// what the viewer may see.
func ProfileProjects(all []domain.Project, v domain.Viewer, profileUserID string) []domain.Project {
	out := make([]domain.Project, 0)
	for _, p := range VisibleProjects(all, v) {
		if p.HasMember(profileUserID) {
			out = append(out, p)
		}
	}
	return out
}

func visibleProjectIDs(all []domain.Project, v domain.Viewer) map[string]struct{} {
	ids := make(map[string]struct{}, len(all))
	for _, p := range VisibleProjects(all, v) {
		ids[p.ID] = struct{}{}
	}
	return ids
}
