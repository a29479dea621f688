package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusTodo  TaskStatus = "todo"
	TaskStatusDoing TaskStatus = "doing"
	TaskStatusDone  TaskStatus = "done"
)

// TaskPriority ranks tasks for scheduling.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// Task represents a unit of project work
type Task struct {
	ID          string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string       `json:"title" gorm:"type:varchar(255);not null"`
	Description string       `json:"description" gorm:"type:text"`
	Status      TaskStatus   `json:"status" gorm:"type:varchar(20);not null;default:'todo'"`
	Priority    TaskPriority `json:"priority" gorm:"type:varchar(20);not null;default:'medium'"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	CompanyID   *string      `json:"company_id,omitempty" gorm:"type:varchar(36);index"`
	Company     *Company     `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:RESTRICT"`
	AssigneeID  *string      `json:"assignee_id,omitempty" gorm:"type:varchar(36);index"`
	Assignee    *User        `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID;constraint:OnDelete:RESTRICT"`
	ProjectID   *string      `json:"project_id,omitempty" gorm:"type:varchar(36);index"`
	Project     *Project     `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:RESTRICT"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// BeforeCreate assigns an opaque identifier when none was provided
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
