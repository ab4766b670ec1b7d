package model

import (
	"time"
	"todolist/shared/model"
)

const (
	TableName  = "tasks"
	EntityName = "task"

	FieldID          = "id"
	FieldOwnerID     = "owner_id"
	FieldTitle       = "title"
	FieldMemo        = "memo"
	FieldCompletedAt = "completed_at"
	FieldCreatedAt   = "created_at"
)

type Task struct {
	ID          string     `db:"id"`
	OwnerID     string     `db:"owner_id"`
	Title       string     `db:"title"`
	Memo        string     `db:"memo"`
	CompletedAt *time.Time `db:"completed_at"`
	model.Metadata
}

func (t Task) IsCompleted() bool {
	return t.CompletedAt != nil
}

// Fields are the user-editable columns of a task.
type Fields struct {
	Title string `db:"title"`
	Memo  string `db:"memo"`
}
