package domain

type EventKind string

const (
	KindActivity     EventKind = "ACTIVITY"
	KindAnnouncement EventKind = "ANNOUNCEMENT"
)

// Event is either an *Activity or an *Announcement. The unexported marker
// keeps the set closed.
type Event interface {
	EventID() string
	RawTimestamp() string
	Actor() *User
	Kind() EventKind
	// Category is the action type for activities and ANNOUNCEMENT otherwise.
	Category() string

	isEvent()
}

var (
	_ Event = (*Activity)(nil)
	_ Event = (*Announcement)(nil)
)

func ActivitiesToEvents(activities []Activity) []Event {
	events := make([]Event, len(activities))
	for i := range activities {
		events[i] = &activities[i]
	}
	return events
}

func AnnouncementsToEvents(announcements []Announcement) []Event {
	events := make([]Event, len(announcements))
	for i := range announcements {
		events[i] = &announcements[i]
	}
	return events
}
