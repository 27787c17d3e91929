// Package entities определяет доменные сущности сервиса напоминаний.
package entities

import (
	"time"

	"github.com/google/uuid"
)

// Reminder представляет напоминание.
type Reminder struct {
	ID          string     `json:"id" bson:"id" jsonschema:"required,format=uuid,description=Unique identifier for the reminder"`
	Title       string     `json:"title" bson:"title" jsonschema:"required,description=The title of the reminder"`
	Description *string    `json:"description" bson:"description" jsonschema:"required,description=Detailed description of the reminder"`
	DueDate     *time.Time `json:"due_date" bson:"due_date" jsonschema:"required,description=Due date for the reminder"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at" jsonschema:"required,description=Timestamp when the reminder was created"`
}

// NewReminder создает напоминание с новым идентификатором и временем создания.
func NewReminder(title string, description *string, dueDate *time.Time) *Reminder {
	return &Reminder{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		DueDate:     normalizeOptionalTime(dueDate),
		CreatedAt:   Now(),
	}
}

// Clone возвращает глубокую копию напоминания.
func (r *Reminder) Clone() *Reminder {
	c := *r
	if r.Description != nil {
		d := *r.Description
		c.Description = &d
	}
	if r.DueDate != nil {
		t := *r.DueDate
		c.DueDate = &t
	}
	return &c
}

// Patch описывает частичное обновление. nil-поле означает "не менять".
// Для описания и срока ClearX сбрасывает значение в null.
type Patch struct {
	Title            *string
	Description      *string
	ClearDescription bool
	DueDate          *time.Time
	ClearDueDate     bool
}

// IsEmpty сообщает, что патч ничего не меняет.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && !p.ClearDescription &&
		p.DueDate == nil && !p.ClearDueDate
}

// Apply применяет патч к копии напоминания. ID и CreatedAt не меняются.
func (p Patch) Apply(r *Reminder) *Reminder {
	updated := r.Clone()
	if p.Title != nil {
		updated.Title = *p.Title
	}
	switch {
	case p.ClearDescription:
		updated.Description = nil
	case p.Description != nil:
		d := *p.Description
		updated.Description = &d
	}
	switch {
	case p.ClearDueDate:
		updated.DueDate = nil
	case p.DueDate != nil:
		updated.DueDate = normalizeOptionalTime(p.DueDate)
	}
	return updated
}

// IsValidID сообщает, является ли строка идентификатором в формате UUID.
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
