package dto_test

import (
	"strings"
	"testing"
	"time"
	"todolist/internal/domains/task/model"
	"todolist/internal/domains/task/model/dto"
	gDto "todolist/shared/dto"
	gModel "todolist/shared/model"
	"todolist/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.TaskRequest
		wantErr string
	}{
		{name: "valid", req: dto.TaskRequest{Title: "Buy milk"}},
		{name: "blank title", req: dto.TaskRequest{Title: "   "}, wantErr: "title is required"},
		{name: "empty title", req: dto.TaskRequest{}, wantErr: "title is required"},
		{name: "title at limit", req: dto.TaskRequest{Title: strings.Repeat("a", 100)}},
		{name: "title too long", req: dto.TaskRequest{Title: strings.Repeat("a", 101)}, wantErr: "title must be at most 100 characters"},
		{name: "memo too long", req: dto.TaskRequest{Title: "ok", Memo: strings.Repeat("m", 2001)}, wantErr: "memo must be at most 2000 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestTaskRequest_ToFields(t *testing.T) {
	req := dto.TaskRequest{Title: "Buy milk", Memo: "2 litres"}

	assert.Equal(t, model.Fields{Title: "Buy milk", Memo: "2 litres"}, req.ToFields())

	var form dto.TaskRequest
	form.FromModel(model.Task{Title: "Walk dog", Memo: "park"})
	assert.Equal(t, dto.TaskRequest{Title: "Walk dog", Memo: "park"}, form)
}

func TestTaskResponse_FromModel(t *testing.T) {
	created := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	completed := created.Add(90 * time.Minute)

	var active dto.TaskResponse
	active.FromModel(model.Task{ID: "t1", Title: "Buy milk", Metadata: gModel.NewMetadata(created)})

	assert.Equal(t, "t1", active.ID)
	assert.False(t, active.Completed)
	assert.Empty(t, active.CompletedAt)
	assert.Equal(t, "May 1, 2024 08:00", active.CreatedAt)

	var done dto.TaskResponse
	done.FromModel(model.Task{ID: "t2", Title: "Walk dog", CompletedAt: &completed, Metadata: gModel.NewMetadata(created)})

	assert.True(t, done.Completed)
	assert.Equal(t, "May 1, 2024 09:30", done.CompletedAt)
}

func TestGetTasksResponse_FromModels(t *testing.T) {
	tasks := []model.Task{{ID: "a"}, {ID: "b"}}

	var res dto.GetTasksResponse
	res.FromModels(tasks, 45, gDto.QueryParams{Page: 2, Limit: 20})

	assert.Len(t, res.Tasks, 2)
	assert.Equal(t, 45, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
	assert.Equal(t, 2, res.Page)
	assert.True(t, res.HasPrevious())
	assert.True(t, res.HasNext())

	var empty dto.GetTasksResponse
	empty.FromModels(nil, 0, gDto.QueryParams{})

	assert.NotNil(t, empty.Tasks)
	assert.Equal(t, 1, empty.TotalPage)
	assert.Equal(t, 1, empty.Page)
	assert.False(t, empty.HasPrevious())
	assert.False(t, empty.HasNext())
}
