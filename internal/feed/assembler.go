package feed

import (
	"sort"

	"ops-dashboard/internal/domain"
)

type entry struct {
	event domain.Event
	ts    Timestamp
}

// BuildFeed filters events for the viewer, orders them newest first and
// renders them for display. Events whose timestamp cannot be read sort after
// every readable one, ordered by id. The same input always yields the same
// output.
func BuildFeed(events []domain.Event, v domain.Viewer, f domain.FeedFilter) domain.Feed {
	role := domain.FilterValue(f.Role)
	category := domain.FilterValue(f.Category)
	entityType := domain.FilterValue(f.EntityType)

	var projectIDs map[string]struct{}
	if f.ProjectScoped {
		projectIDs = visibleProjectIDs(f.Projects, v)
	}

	entries := make([]entry, 0, len(events))
	for _, ev := range events {
		if ev == nil || !admit(ev, v, projectIDs) {
			continue
		}
		if !matches(ev, role, category, entityType) {
			continue
		}
		entries = append(entries, entry{event: ev, ts: Normalize(ev.RawTimestamp())})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.ts.After(b.ts) {
			return true
		}
		if b.ts.After(a.ts) {
			return false
		}
		return a.event.EventID() < b.event.EventID()
	})

	items := make([]domain.DisplayEvent, 0, len(entries))
	for _, e := range entries {
		items = append(items, render(e, f))
	}
	return domain.Feed{Items: items, Count: len(items)}
}

// Paginate slices an assembled feed. Count on the feed still reflects the
// whole result.
func Paginate(f domain.Feed, params domain.PaginationParams) domain.PaginatedResponse[domain.DisplayEvent] {
	return domain.PageOf(f.Items, params)
}

// admit applies the access rules: announcement visibility and, when
// projectIDs is non-nil, project membership for project activities.
func admit(ev domain.Event, v domain.Viewer, projectIDs map[string]struct{}) bool {
	switch e := ev.(type) {
	case *domain.Announcement:
		if e == nil {
			return false
		}
		return IsVisible(*e, v.ID)
	case *domain.Activity:
		if e == nil {
			return false
		}
		if projectIDs == nil || !e.IsProjectScoped() {
			return true
		}
		_, ok := projectIDs[e.EntityID]
		return ok
	default:
		return false
	}
}

func matches(ev domain.Event, role, category, entityType string) bool {
	if role != "" {
		actor := ev.Actor()
		if actor == nil || domain.FilterValue(string(actor.Role)) != role {
			return false
		}
	}
	if category != "" && domain.FilterValue(ev.Category()) != category {
		return false
	}
	if entityType != "" {
		a, ok := ev.(*domain.Activity)
		if !ok || domain.FilterValue(a.EntityType) != entityType {
			return false
		}
	}
	return true
}

func render(e entry, f domain.FeedFilter) domain.DisplayEvent {
	ev := e.event
	out := domain.DisplayEvent{
		ID:        ev.EventID(),
		Kind:      ev.Kind(),
		Category:  ev.Category(),
		Badge:     ActionBadge(ev.Category()),
		Actor:     RenderActor(ev.Actor()),
		Timestamp: e.ts.View(f.Location),
		Age:       relativeAge(e.ts, f.Now),
	}

	switch x := ev.(type) {
	case *domain.Activity:
		icon := EntityIcon(x.EntityType)
		out.EntityType = x.EntityType
		out.EntityID = x.EntityID
		out.EntityIcon = &icon
		out.Details = RenderDetails(x.Details)
		if len(out.Details) == 0 {
			out.Summary = x.EntityID
		}
	case *domain.Announcement:
		out.Title = x.Title
		out.Content = x.Content
	}
	return out
}
