package feed_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ops-dashboard/internal/domain"
	"ops-dashboard/internal/feed"
)

func strPtr(s string) *string { return &s }

func feedIDs(f domain.Feed) []string {
	out := make([]string, 0, len(f.Items))
	for _, it := range f.Items {
		out = append(out, it.ID)
	}
	return out
}

func TestBuildFeedOrdering(t *testing.T) {
	admin := domain.NewViewer("root", "ADMIN")

	t.Run("Should order by true instant across encodings", func(t *testing.T) {
		activities := []domain.Activity{
			{ID: "sql", ActionType: domain.ActionUpdate, EntityType: "USER", Timestamp: "2024-05-06 10:00:00+02"},
			{ID: "epoch", ActionType: domain.ActionCreate, EntityType: "USER", Timestamp: "1715000000000"},
		}
		f := feed.BuildFeed(domain.ActivitiesToEvents(activities), admin, domain.FeedFilter{})

		require.Equal(t, 2, f.Count)
		assert.Equal(t, []string{"epoch", "sql"}, feedIDs(f))
		assert.True(t, f.Items[0].Timestamp.Valid)
		assert.True(t, f.Items[1].Timestamp.Valid)
	})

	t.Run("Should sort unreadable timestamps last by id", func(t *testing.T) {
		activities := []domain.Activity{
			{ID: "c", Timestamp: "garbage"},
			{ID: "old", Timestamp: "2001-01-01 00:00:00"},
			{ID: "a", Timestamp: ""},
			{ID: "new", Timestamp: "1715000000000"},
			{ID: "b", Timestamp: "???"},
		}
		announcements := []domain.Announcement{
			{ID: "mid", Visibility: "all", CreatedAt: "2020-06-01 12:00:00"},
		}
		events := append(domain.ActivitiesToEvents(activities), domain.AnnouncementsToEvents(announcements)...)

		f := feed.BuildFeed(events, admin, domain.FeedFilter{})

		assert.Equal(t, []string{"new", "mid", "old", "a", "b", "c"}, feedIDs(f))
		assert.Equal(t, 6, f.Count)
		for _, it := range f.Items[3:] {
			assert.Equal(t, "N/A", it.Timestamp.Date)
			assert.Equal(t, "N/A", it.Timestamp.Time)
		}
	})

	t.Run("Should break equal instants by id", func(t *testing.T) {
		activities := []domain.Activity{
			{ID: "z", Timestamp: "2024-05-06 08:00:00"},
			{ID: "y", Timestamp: "2024-05-06 10:00:00+02"},
		}
		f := feed.BuildFeed(domain.ActivitiesToEvents(activities), admin, domain.FeedFilter{})
		assert.Equal(t, []string{"y", "z"}, feedIDs(f))
	})

	t.Run("Should be idempotent", func(t *testing.T) {
		activities := []domain.Activity{
			{ID: "1", Timestamp: "1715000000000", Details: json.RawMessage(`{"a":1}`)},
			{ID: "2", Timestamp: "bad"},
			{ID: "3", Timestamp: "2024-05-06 10:00:00+02"},
		}
		filter := domain.FeedFilter{Now: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}

		first, err := json.Marshal(feed.BuildFeed(domain.ActivitiesToEvents(activities), admin, filter))
		require.NoError(t, err)
		second, err := json.Marshal(feed.BuildFeed(domain.ActivitiesToEvents(activities), admin, filter))
		require.NoError(t, err)

		assert.Equal(t, string(first), string(second))
	})

	t.Run("Should return an empty feed for empty input", func(t *testing.T) {
		f := feed.BuildFeed(nil, admin, domain.FeedFilter{})
		assert.Equal(t, 0, f.Count)
		assert.NotNil(t, f.Items)
		assert.Empty(t, f.Items)
	})
}

func TestBuildFeedAccess(t *testing.T) {
	announcements := []domain.Announcement{
		{ID: "broadcast", Visibility: "all", CreatedAt: "1715000000000"},
		{ID: "targeted", Visibility: "specific", VisibleTo: pq.StringArray{"u1", "u2"}, CreatedAt: "1715000000001"},
		{ID: "weird", Visibility: "team", CreatedAt: "1715000000002"},
	}

	t.Run("Should gate announcements per viewer", func(t *testing.T) {
		events := domain.AnnouncementsToEvents(announcements)

		f := feed.BuildFeed(events, domain.NewViewer("u3", "ADMIN"), domain.FeedFilter{})
		assert.Equal(t, []string{"broadcast"}, feedIDs(f))

		f = feed.BuildFeed(events, domain.NewViewer("u2", "CLIENT"), domain.FeedFilter{})
		assert.Equal(t, []string{"targeted", "broadcast"}, feedIDs(f))
		assert.Equal(t, 2, f.Count)
	})

	t.Run("Should scope project activities by membership when asked", func(t *testing.T) {
		activities := []domain.Activity{
			{ID: "p1", EntityType: "PROJECT", EntityID: "P1", Timestamp: "1715000000003"},
			{ID: "p2", EntityType: "PROJECT", EntityID: "P2", Timestamp: "1715000000002"},
			{ID: "user", EntityType: "USER", EntityID: "alice", Timestamp: "1715000000001"},
		}
		events := domain.ActivitiesToEvents(activities)
		filter := domain.FeedFilter{ProjectScoped: true, Projects: projectsFixture()}

		f := feed.BuildFeed(events, domain.NewViewer("alice", "CLIENT"), filter)
		assert.Equal(t, []string{"p2", "user"}, feedIDs(f))

		f = feed.BuildFeed(events, domain.NewViewer("m", "MANAGER"), filter)
		assert.Equal(t, []string{"p1", "p2", "user"}, feedIDs(f))

		f = feed.BuildFeed(events, domain.NewViewer("alice", "CLIENT"), domain.FeedFilter{Projects: projectsFixture()})
		assert.Len(t, f.Items, 3)
	})

	t.Run("Should skip nil events of either kind", func(t *testing.T) {
		events := []domain.Event{
			nil,
			(*domain.Announcement)(nil),
			(*domain.Activity)(nil),
			&domain.Activity{ID: "ok", EntityType: "USER", Timestamp: "1715000000000"},
		}

		var f domain.Feed
		require.NotPanics(t, func() {
			f = feed.BuildFeed(events, domain.NewViewer("alice", "CLIENT"), domain.FeedFilter{ProjectScoped: true})
		})
		assert.Equal(t, []string{"ok"}, feedIDs(f))
	})
}

func TestBuildFeedFilters(t *testing.T) {
	admin := &domain.User{ID: "a", FirstName: "Ada", LastName: "Admin", Role: domain.RoleAdmin}
	team := &domain.User{ID: "t", FirstName: "Tom", Role: domain.RoleTeam}
	oddball := &domain.User{ID: "o", FirstName: "Odd", Role: "OWNER"}

	activities := []domain.Activity{
		{ID: "1", ActionType: domain.ActionCreate, EntityType: "PROJECT", EntityID: "P1", Timestamp: "1715000000005", User: admin},
		{ID: "2", ActionType: domain.ActionLogin, EntityType: "USER", EntityID: "t", Timestamp: "1715000000004", User: team},
		{ID: "3", ActionType: "ARCHIVE", EntityType: "INVOICE", EntityID: "I1", Timestamp: "1715000000003", User: oddball},
		{ID: "4", ActionType: domain.ActionDelete, EntityType: "USER", EntityID: "x", Timestamp: "1715000000002"},
	}
	announcements := []domain.Announcement{
		{ID: "5", Title: "Hi", Visibility: "all", CreatedAt: "1715000000001", Sender: admin},
	}
	events := append(domain.ActivitiesToEvents(activities), domain.AnnouncementsToEvents(announcements)...)
	viewer := domain.NewViewer("a", "ADMIN")

	t.Run("Should treat ALL and empty as no filter", func(t *testing.T) {
		assert.Len(t, feed.BuildFeed(events, viewer, domain.FeedFilter{Role: "ALL", Category: "all"}).Items, 5)
		assert.Len(t, feed.BuildFeed(events, viewer, domain.FeedFilter{}).Items, 5)
	})

	t.Run("Should filter by actor role", func(t *testing.T) {
		f := feed.BuildFeed(events, viewer, domain.FeedFilter{Role: "admin"})
		assert.Equal(t, []string{"1", "5"}, feedIDs(f))

		f = feed.BuildFeed(events, viewer, domain.FeedFilter{Role: "OWNER"})
		assert.Equal(t, []string{"3"}, feedIDs(f))
	})

	t.Run("Should filter by category", func(t *testing.T) {
		f := feed.BuildFeed(events, viewer, domain.FeedFilter{Category: "login"})
		assert.Equal(t, []string{"2"}, feedIDs(f))

		f = feed.BuildFeed(events, viewer, domain.FeedFilter{Category: "ANNOUNCEMENT"})
		assert.Equal(t, []string{"5"}, feedIDs(f))
	})

	t.Run("Should filter by entity type and drop announcements", func(t *testing.T) {
		f := feed.BuildFeed(events, viewer, domain.FeedFilter{EntityType: "USER"})
		assert.Equal(t, []string{"2", "4"}, feedIDs(f))
	})

	t.Run("Should render display fields", func(t *testing.T) {
		f := feed.BuildFeed(events, viewer, domain.FeedFilter{})
		byID := map[string]domain.DisplayEvent{}
		for _, it := range f.Items {
			byID[it.ID] = it
		}

		assert.Equal(t, "folder-plus", byID["1"].Badge.Icon)
		assert.Equal(t, "P1", byID["1"].Summary)
		require.NotNil(t, byID["3"].EntityIcon)
		assert.Equal(t, "document", byID["3"].EntityIcon.Icon)
		assert.Equal(t, "neutral", byID["3"].Badge.Color)
		assert.True(t, byID["4"].Actor.Missing)
		assert.Equal(t, "Deleted User", byID["4"].Actor.Name)
		assert.Equal(t, "Hi", byID["5"].Title)
		assert.Equal(t, domain.KindAnnouncement, byID["5"].Kind)
		assert.Nil(t, byID["5"].EntityIcon)
	})
}

func TestPaginate(t *testing.T) {
	activities := make([]domain.Activity, 0, 25)
	for i := 0; i < 25; i++ {
		activities = append(activities, domain.Activity{ID: string(rune('a' + i)), Timestamp: "bad"})
	}
	f := feed.BuildFeed(domain.ActivitiesToEvents(activities), domain.NewViewer("x", "ADMIN"), domain.FeedFilter{})

	page := feed.Paginate(f, domain.PaginationParams{Page: 2, PageSize: 10})
	assert.Len(t, page.Data, 10)
	assert.Equal(t, "k", page.Data[0].ID)
	assert.Equal(t, int64(25), page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.Equal(t, 25, f.Count)

	empty := feed.Paginate(f, domain.PaginationParams{Page: 9, PageSize: 10})
	assert.Empty(t, empty.Data)
}
