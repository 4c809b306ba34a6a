package domain

import (
	"encoding/json"
)

type ActionType string

const (
	ActionCreate           ActionType = "CREATE"
	ActionUpdate           ActionType = "UPDATE"
	ActionDelete           ActionType = "DELETE"
	ActionLogin            ActionType = "LOGIN"
	ActionAddTeamMember    ActionType = "ADD_TEAM_MEMBER"
	ActionRemoveTeamMember ActionType = "REMOVE_TEAM_MEMBER"
)

const (
	EntityUser    = "USER"
	EntityProject = "PROJECT"
)

type Activity struct {
	ID         string          `json:"id" db:"id"`
	ActionType ActionType      `json:"action_type" db:"action_type"`
	EntityType string          `json:"entity_type" db:"entity_type"`
	EntityID   string          `json:"entity_id" db:"entity_id"`
	Details    json.RawMessage `json:"details,omitempty" db:"details"`
	Timestamp  string          `json:"timestamp" db:"timestamp"`
	UserID     *string         `json:"user_id,omitempty" db:"user_id"`

	User *User `json:"user,omitempty" db:"-"`
}

func (a *Activity) EventID() string      { return a.ID }
func (a *Activity) RawTimestamp() string { return a.Timestamp }
func (a *Activity) Actor() *User         { return a.User }
func (a *Activity) Kind() EventKind      { return KindActivity }
func (a *Activity) Category() string     { return string(a.ActionType) }
func (a *Activity) isEvent()             {}

// IsProjectScoped reports whether the activity refers to a project and is
// therefore subject to membership scoping.
func (a *Activity) IsProjectScoped() bool {
	return a.EntityType == EntityProject
}
