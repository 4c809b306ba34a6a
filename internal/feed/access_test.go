package feed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ops-dashboard/internal/domain"
	"ops-dashboard/internal/feed"
)

func projectsFixture() []domain.Project {
	alice := domain.User{ID: "alice", FirstName: "Alice", Role: domain.RoleClient}
	bob := domain.User{ID: "bob", FirstName: "Bob", Role: domain.RoleTeam}
	carol := domain.User{ID: "carol", FirstName: "Carol", Role: domain.RoleTeam}

	return []domain.Project{
		{ID: "P1", Title: "Billing", Status: domain.StatusActive, TeamMembers: []domain.User{bob}},
		{ID: "P2", Title: "Portal", Status: domain.StatusOnHold, TeamMembers: []domain.User{alice, bob}},
		{ID: "P3", Title: "Archive", Status: domain.StatusCompleted, TeamMembers: []domain.User{carol}},
	}
}

func ids(projects []domain.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}

func TestVisibleProjects(t *testing.T) {
	all := projectsFixture()

	t.Run("Should return every project for elevated roles", func(t *testing.T) {
		for _, role := range []domain.UserRole{domain.RoleAdmin, domain.RoleManager, "manager"} {
			got := feed.VisibleProjects(all, domain.Viewer{ID: "nobody", Role: role})
			assert.Equal(t, []string{"P1", "P2", "P3"}, ids(got), string(role))
		}
	})

	t.Run("Should return only member projects for a client", func(t *testing.T) {
		got := feed.VisibleProjects(all, domain.NewViewer("alice", "CLIENT"))
		assert.Equal(t, []string{"P2"}, ids(got))
	})

	t.Run("Should scope every non elevated role by membership", func(t *testing.T) {
		for _, role := range []string{"CLIENT", "TEAM", "GUEST", "OWNER", ""} {
			for _, uid := range []string{"alice", "bob", "carol", "dave"} {
				v := domain.NewViewer(uid, role)
				for _, p := range feed.VisibleProjects(all, v) {
					assert.True(t, p.HasMember(uid), "%s/%s sees %s", role, uid, p.ID)
				}
			}
		}
		assert.Equal(t, []string{"P1", "P2"}, ids(feed.VisibleProjects(all, domain.NewViewer("bob", "TEAM"))))
		assert.Empty(t, feed.VisibleProjects(all, domain.NewViewer("dave", "TEAM")))
	})

	t.Run("Should give creators no implicit access", func(t *testing.T) {
		creator := "dave"
		projects := []domain.Project{{ID: "P9", CreatedBy: &creator}}
		assert.Empty(t, feed.VisibleProjects(projects, domain.NewViewer("dave", "CLIENT")))
	})

	t.Run("Should not alias the input", func(t *testing.T) {
		got := feed.VisibleProjects(all, domain.NewViewer("x", "ADMIN"))
		got[0].Title = "changed"
		assert.Equal(t, "Billing", all[0].Title)
	})

	t.Run("Should handle empty input", func(t *testing.T) {
		got := feed.VisibleProjects(nil, domain.NewViewer("x", "ADMIN"))
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestTeamRoster(t *testing.T) {
	all := projectsFixture()

	t.Run("Should list members of a visible project", func(t *testing.T) {
		members, ok := feed.TeamRoster(all, domain.NewViewer("alice", "CLIENT"), "P2")
		require.True(t, ok)
		require.Len(t, members, 2)
		assert.Equal(t, "alice", members[0].ID)
	})

	t.Run("Should hide unknown and foreign projects alike", func(t *testing.T) {
		_, ok := feed.TeamRoster(all, domain.NewViewer("alice", "CLIENT"), "P1")
		assert.False(t, ok)
		_, ok = feed.TeamRoster(all, domain.NewViewer("alice", "CLIENT"), "P404")
		assert.False(t, ok)
	})
}

func TestProfileProjects(t *testing.T) {
	all := projectsFixture()

	t.Run("Should intersect the profile with what the viewer may see", func(t *testing.T) {
		got := feed.ProfileProjects(all, domain.NewViewer("alice", "CLIENT"), "bob")
		assert.Equal(t, []string{"P2"}, ids(got))

		got = feed.ProfileProjects(all, domain.NewViewer("m", "MANAGER"), "bob")
		assert.Equal(t, []string{"P1", "P2"}, ids(got))
	})
}
