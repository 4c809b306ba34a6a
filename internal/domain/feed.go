package domain

import (
	"strings"
	"time"
)

const FilterAll = "ALL"

type FeedFilter struct {
	Role       string
	Category   string
	EntityType string

	// ProjectScoped gates PROJECT activities through the viewer's visible
	// projects, taken from Projects.
	ProjectScoped bool
	Projects      []Project

	// Location renders date and clock strings. Nil means UTC.
	Location *time.Location
	// Now anchors relative ages. Zero disables them.
	Now time.Time
}

// FilterValue normalises a caller supplied filter. Empty and ALL both mean
// "no filter" and come back as "".
func FilterValue(s string) string {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == FilterAll {
		return ""
	}
	return v
}

type FeedQuery struct {
	Role       string `query:"role" validate:"omitempty,max=32"`
	Category   string `query:"category" validate:"omitempty,max=64"`
	EntityType string `query:"entity_type" validate:"omitempty,max=64"`
	Scope      string `query:"scope" validate:"omitempty,oneof=all projects"`
	Page       int    `query:"page" validate:"omitempty,min=1"`
	PageSize   int    `query:"page_size" validate:"omitempty,min=1,max=100"`
	Lang       string `query:"lang" validate:"omitempty,max=8"`
}

func (q FeedQuery) Filter() FeedFilter {
	return FeedFilter{
		Role:          q.Role,
		Category:      q.Category,
		EntityType:    q.EntityType,
		ProjectScoped: q.Scope == "projects",
	}
}

func (q FeedQuery) Pagination() PaginationParams {
	p := PaginationParams{Page: q.Page, PageSize: q.PageSize}
	p.Validate()
	return p
}

type Badge struct {
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color"`
}

type ActorView struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Initial string `json:"initial"`
	Email   string `json:"email"`
	Role    Badge  `json:"role"`
	Missing bool   `json:"missing"`
}

type DetailField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type TimestampView struct {
	Raw      string     `json:"raw"`
	Instant  *time.Time `json:"instant,omitempty"`
	Valid    bool       `json:"valid"`
	Date     string     `json:"date"`
	Time     string     `json:"time"`
	Encoding string     `json:"encoding"`
}

type DisplayEvent struct {
	ID        string        `json:"id"`
	Kind      EventKind     `json:"kind"`
	Category  string        `json:"category"`
	Badge     Badge         `json:"badge"`
	Actor     ActorView     `json:"actor"`
	Timestamp TimestampView `json:"timestamp"`
	Age       string        `json:"age,omitempty"`

	EntityType string        `json:"entity_type,omitempty"`
	EntityID   string        `json:"entity_id,omitempty"`
	EntityIcon *Badge        `json:"entity_icon,omitempty"`
	Details    []DetailField `json:"details,omitempty"`
	// Summary stands in for Details when the activity carries none.
	Summary string `json:"summary,omitempty"`

	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

type Feed struct {
	Items []DisplayEvent `json:"items"`
	Count int            `json:"count"`
}
