package domain

import (
	"strings"
	"time"
)

// Task belongs to exactly one project. It has no owner of its own; access is
// decided by the owning project's creator.
type Task struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	State     bool      `json:"state"`
	Project   string    `json:"project"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskPatch holds the fields an update may change. Nil fields are left untouched.
type TaskPatch struct {
	Name  *string `json:"name"`
	State *bool   `json:"state"`
}

func (p TaskPatch) IsEmpty() bool {
	return p.Name == nil && p.State == nil
}

func (p TaskPatch) Apply(t *Task) {
	if p.Name != nil {
		t.Name = strings.TrimSpace(*p.Name)
	}
	if p.State != nil {
		t.State = *p.State
	}
}
