package domain

import (
	"strings"
	"time"
)

// Project is a named container for tasks, owned by the user who created it.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Creator   string    `json:"creator"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProjectPatch holds the fields an update may change. Nil fields are left untouched.
type ProjectPatch struct {
	Name *string `json:"name"`
}

func (p ProjectPatch) IsEmpty() bool {
	return p.Name == nil
}

// Apply merges the present fields into project.
func (p ProjectPatch) Apply(project *Project) {
	if p.Name != nil {
		project.Name = strings.TrimSpace(*p.Name)
	}
}
