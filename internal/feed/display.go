package feed

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"

	"ops-dashboard/internal/domain"
)

const (
	DeletedUserLabel = "Deleted User"
	UnnamedUserLabel = "Unnamed User"
	UnknownLabel     = "UNKNOWN"

	colorNeutral = "neutral"
)

// badgeTable maps an open-ended tag to its display metadata. Tags missing
// from entries get fallback, labelled with the tag itself.
type badgeTable struct {
	entries  map[string]domain.Badge
	fallback domain.Badge
}

func (t badgeTable) lookup(tag string) domain.Badge {
	key := strings.ToUpper(strings.TrimSpace(tag))
	if b, ok := t.entries[key]; ok {
		return b
	}
	b := t.fallback
	if b.Label == "" {
		b.Label = key
		if b.Label == "" {
			b.Label = UnknownLabel
		}
	}
	return b
}

var actionBadges = badgeTable{
	entries: map[string]domain.Badge{
		string(domain.ActionCreate):           {Label: "CREATE", Icon: "folder-plus", Color: "#40d8455d"},
		string(domain.ActionUpdate):           {Label: "UPDATE", Icon: "folder-minus", Color: "#f1e53596"},
		string(domain.ActionDelete):           {Label: "DELETE", Icon: "user-minus", Color: "#d840875d"},
		string(domain.ActionLogin):            {Label: "LOGIN", Icon: "user-plus", Color: "#4240d85d"},
		string(domain.ActionAddTeamMember):    {Label: "ADD_TEAM_MEMBER", Icon: "user-plus", Color: "primary"},
		string(domain.ActionRemoveTeamMember): {Label: "REMOVE_TEAM_MEMBER", Icon: "user-minus", Color: "secondary"},
		string(domain.KindAnnouncement):       {Label: "ANNOUNCEMENT", Icon: "check-circle", Color: "info"},
	},
	fallback: domain.Badge{Color: colorNeutral},
}

var entityIcons = badgeTable{
	entries: map[string]domain.Badge{
		domain.EntityUser:    {Label: domain.EntityUser, Icon: "user-plus", Color: "blue"},
		domain.EntityProject: {Label: domain.EntityProject, Icon: "folder-plus", Color: "green"},
	},
	fallback: domain.Badge{Icon: "document", Color: colorNeutral},
}

var roleBadges = badgeTable{
	entries: map[string]domain.Badge{
		string(domain.RoleAdmin):   {Label: "ADMIN", Color: "red"},
		string(domain.RoleManager): {Label: "MANAGER", Color: "purple"},
		string(domain.RoleTeam):    {Label: "TEAM", Color: "cyan"},
		string(domain.RoleClient):  {Label: "CLIENT", Color: "teal"},
		string(domain.RoleGuest):   {Label: "GUEST", Color: "gray"},
	},
	fallback: domain.Badge{Color: colorNeutral},
}

var statusBadges = badgeTable{
	entries: map[string]domain.Badge{
		string(domain.StatusActive):    {Label: "ACTIVE", Color: "green"},
		string(domain.StatusOnHold):    {Label: "ON_HOLD", Color: "orange"},
		string(domain.StatusCompleted): {Label: "COMPLETED", Color: "red"},
	},
	fallback: domain.Badge{Color: colorNeutral},
}

func ActionBadge(category string) domain.Badge { return actionBadges.lookup(category) }
func EntityIcon(entityType string) domain.Badge { return entityIcons.lookup(entityType) }
func RoleBadge(role domain.UserRole) domain.Badge { return roleBadges.lookup(string(role)) }
func StatusBadge(s domain.ProjectStatus) domain.Badge { return statusBadges.lookup(string(s)) }

// RenderActor keeps a deleted actor distinguishable from one that exists
// without a name.
func RenderActor(u *domain.User) domain.ActorView {
	if u == nil {
		return domain.ActorView{
			Name:    DeletedUserLabel,
			Initial: "?",
			Email:   notAvail,
			Role:    RoleBadge(domain.RoleUnknown),
			Missing: true,
		}
	}

	view := domain.ActorView{
		ID:      u.ID,
		Name:    u.FullName(),
		Initial: "?",
		Email:   u.Email,
		Role:    RoleBadge(u.Role),
	}
	if view.Name == "" {
		view.Name = u.Email
	}
	if view.Name == "" {
		view.Name = UnnamedUserLabel
	}
	if view.Email == "" {
		view.Email = notAvail
	}
	if r, _ := utf8.DecodeRuneInString(u.FirstName); r != utf8.RuneError {
		view.Initial = string(r)
	}
	return view
}

// RenderDetails walks a details object in document order. Nested values are
// rendered as compact JSON, scalars as text. Anything that is not a JSON
// object yields nil.
func RenderDetails(raw json.RawMessage) []domain.DetailField {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return nil
	}
	obj := gjson.ParseBytes(raw)
	if !obj.IsObject() {
		return nil
	}

	var fields []domain.DetailField
	obj.ForEach(func(key, value gjson.Result) bool {
		fields = append(fields, domain.DetailField{Key: key.String(), Value: detailValue(value)})
		return true
	})
	return fields
}

func detailValue(v gjson.Result) string {
	switch {
	case v.IsObject(), v.IsArray():
		var buf bytes.Buffer
		if err := json.Compact(&buf, []byte(v.Raw)); err != nil {
			return v.Raw
		}
		return buf.String()
	case v.Type == gjson.Null:
		return "null"
	default:
		return v.String()
	}
}

func relativeAge(ts Timestamp, now time.Time) string {
	if !ts.Valid || now.IsZero() {
		return ""
	}
	return humanize.RelTime(ts.Instant, now, "ago", "from now")
}
