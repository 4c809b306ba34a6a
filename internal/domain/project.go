package domain

type ProjectStatus string

const (
	StatusActive    ProjectStatus = "ACTIVE"
	StatusOnHold    ProjectStatus = "ON_HOLD"
	StatusCompleted ProjectStatus = "COMPLETED"
)

type Project struct {
	ID        string        `json:"id" db:"id"`
	Title     string        `json:"title" db:"title"`
	Status    ProjectStatus `json:"status" db:"status"`
	CreatedBy *string       `json:"created_by,omitempty" db:"created_by"`

	TeamMembers []User `json:"team_members" db:"-"`
}

func (p *Project) HasMember(userID string) bool {
	if userID == "" {
		return false
	}
	for _, m := range p.TeamMembers {
		if m.ID == userID {
			return true
		}
	}
	return false
}

type ProjectQuery struct {
	Status string `query:"status" validate:"omitempty,max=32"`
	Search string `query:"q" validate:"omitempty,max=200"`
}
