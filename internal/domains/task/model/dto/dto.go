package dto

import (
	"todolist/internal/domains/task/model"
	"todolist/shared"
	"todolist/shared/constant"
	gDto "todolist/shared/dto"
	"todolist/shared/timezone"
)

type TaskRequest struct {
	Title string `form:"title" label:"title" validate:"notblank,max=100" mod:"trim"`
	Memo  string `form:"memo"  label:"memo"  validate:"max=2000"         mod:"trim"`
}

func (r *TaskRequest) ToFields() model.Fields {
	return model.Fields{
		Title: r.Title,
		Memo:  r.Memo,
	}
}

func (r *TaskRequest) FromModel(task model.Task) {
	r.Title = task.Title
	r.Memo = task.Memo
}

type TaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Memo        string `json:"memo"`
	Completed   bool   `json:"completed"`
	CompletedAt string `json:"completed_at"`
	gDto.Metadata
}

func (r *TaskResponse) FromModel(task model.Task) {
	r.ID = task.ID
	r.Title = task.Title
	r.Memo = task.Memo
	r.Completed = task.IsCompleted()

	if task.CompletedAt != nil {
		r.CompletedAt = timezone.Format(*task.CompletedAt, constant.DisplayDateFormat)
	}

	r.Metadata.FromModel(task.Metadata)
}

type GetTasksResponse struct {
	Tasks     []TaskResponse `json:"tasks"`
	Page      int            `json:"page"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetTasksResponse) FromModels(models []model.Task, totalData int, params gDto.QueryParams) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, params.Limit)
	r.Page = max(params.Page, 1)

	r.Tasks = make([]TaskResponse, len(models))
	for i, mod := range models {
		r.Tasks[i].FromModel(mod)
	}
}

func (r GetTasksResponse) HasPrevious() bool {
	return r.Page > 1
}

func (r GetTasksResponse) HasNext() bool {
	return r.Page < r.TotalPage
}
