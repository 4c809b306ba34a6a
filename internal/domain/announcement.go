package domain

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/lib/pq"
)

type Visibility string

const (
	VisibilityAll      Visibility = "ALL"
	VisibilitySpecific Visibility = "SPECIFIC"
)

// ParseVisibility accepts the lower-case values written by the dashboard.
// Unknown input is returned upper-cased and fails every visibility check.
func ParseVisibility(s string) Visibility {
	return Visibility(strings.ToUpper(strings.TrimSpace(s)))
}

type Announcement struct {
	ID         string         `json:"id" db:"id"`
	Title      string         `json:"title" db:"title"`
	Content    string         `json:"content" db:"content"`
	SenderID   *string        `json:"sender_id,omitempty" db:"sender_id"`
	Visibility Visibility     `json:"visibility" db:"visibility"`
	VisibleTo  pq.StringArray `json:"visible_to" db:"visible_to"`
	CreatedAt  string         `json:"created_at" db:"created_at"`

	Sender *User `json:"sender,omitempty" db:"-"`
}

func (a *Announcement) EventID() string      { return a.ID }
func (a *Announcement) RawTimestamp() string { return a.CreatedAt }
func (a *Announcement) Actor() *User         { return a.Sender }
func (a *Announcement) Kind() EventKind      { return KindAnnouncement }
func (a *Announcement) Category() string     { return string(KindAnnouncement) }
func (a *Announcement) isEvent()             {}

// Recipients returns VisibleTo as a set. Empty ids are skipped.
func (a *Announcement) Recipients() mapset.Set[string] {
	set := mapset.NewThreadUnsafeSetWithSize[string](len(a.VisibleTo))
	for _, id := range a.VisibleTo {
		if id != "" {
			set.Add(id)
		}
	}
	return set
}
