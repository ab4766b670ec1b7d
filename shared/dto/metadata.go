package dto

import (
	"todolist/shared/constant"
	"todolist/shared/model"
	"todolist/shared/timezone"
)

type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = timezone.Format(model.CreatedAt, constant.DisplayDateFormat)
	m.ModifiedAt = timezone.Format(model.ModifiedAt, constant.DisplayDateFormat)
}
