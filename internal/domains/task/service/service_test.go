package service_test

import (
	"context"
	"errors"
	"testing"
	"time"
	"todolist/config"
	"todolist/infras/otel/mocks"
	taskMocks "todolist/internal/domains/task/mocks"
	"todolist/internal/domains/task/model"
	"todolist/internal/domains/task/model/dto"
	"todolist/internal/domains/task/service"
	gDto "todolist/shared/dto"
	"todolist/shared/failure"
	gModel "todolist/shared/model"
	"todolist/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const owner = "owner-1"

func newService(t *testing.T) (*taskMocks.MockTask, service.Task) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := taskMocks.NewMockTask(ctrl)

	return repo, service.New(repo, &config.Config{}, mocks.NewOtel())
}

func activeTask() model.Task {
	return model.Task{
		ID:       "task-1",
		OwnerID:  owner,
		Title:    "Buy milk",
		Memo:     "2 litres",
		Metadata: gModel.NewMetadata(timezone.Now()),
	}
}

func completedTask() model.Task {
	task := activeTask()
	doneAt := timezone.Now().Add(-time.Hour)
	task.CompletedAt = &doneAt

	return task
}

func TestTaskService_ListActive(t *testing.T) {
	repo, svc := newService(t)
	params := gDto.QueryParams{Page: 1, Limit: 20}

	repo.EXPECT().
		ListActive(gomock.Any(), owner, params).
		Return([]model.Task{activeTask()}, 1, nil)

	res, err := svc.ListActive(context.Background(), owner, params)
	require.NoError(t, err)
	require.Len(t, res.Tasks, 1)
	assert.Equal(t, "Buy milk", res.Tasks[0].Title)
	assert.Equal(t, 1, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)

	repo.EXPECT().ListActive(gomock.Any(), owner, params).Return(nil, 0, errors.New("database error"))

	_, err = svc.ListActive(context.Background(), owner, params)
	assert.Error(t, err)
}

func TestTaskService_ListCompleted(t *testing.T) {
	repo, svc := newService(t)

	repo.EXPECT().
		ListCompleted(gomock.Any(), owner, gomock.Any()).
		Return([]model.Task{completedTask()}, 1, nil)

	res, err := svc.ListCompleted(context.Background(), owner, gDto.QueryParams{})
	require.NoError(t, err)
	require.Len(t, res.Tasks, 1)
	assert.True(t, res.Tasks[0].Completed)
	assert.NotEmpty(t, res.Tasks[0].CompletedAt)
}

func TestTaskService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *taskMocks.MockTask)
		wantErr   error
	}{
		{
			name: "owned task",
			setupMock: func(repo *taskMocks.MockTask) {
				repo.EXPECT().GetOwned(gomock.Any(), owner, "task-1").Return(activeTask(), nil)
			},
		},
		{
			name: "missing or foreign task",
			setupMock: func(repo *taskMocks.MockTask) {
				repo.EXPECT().GetOwned(gomock.Any(), owner, "task-1").Return(model.Task{}, nil)
			},
			wantErr: failure.ErrTaskNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, svc := newService(t)
			tt.setupMock(repo)

			res, err := svc.Get(context.Background(), owner, "task-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 404, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "task-1", res.ID)
			assert.Equal(t, "2 litres", res.Memo)
		})
	}
}

func TestTaskService_Create(t *testing.T) {
	repo, svc := newService(t)
	req := dto.TaskRequest{Title: "Buy milk", Memo: "2 litres"}

	repo.EXPECT().
		Create(gomock.Any(), owner, model.Fields{Title: "Buy milk", Memo: "2 litres"}).
		Return(activeTask(), nil)

	res, err := svc.Create(context.Background(), owner, req)
	require.NoError(t, err)
	assert.Equal(t, "task-1", res.ID)

	repo.EXPECT().Create(gomock.Any(), owner, gomock.Any()).Return(model.Task{}, errors.New("database error"))

	_, err = svc.Create(context.Background(), owner, req)
	require.Error(t, err)
	assert.Equal(t, 500, failure.GetCode(err))
}

func TestTaskService_Update(t *testing.T) {
	req := dto.TaskRequest{Title: "Buy oat milk"}

	t.Run("updates owned task", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().GetOwned(gomock.Any(), owner, "task-1").Return(activeTask(), nil)
		repo.EXPECT().Update(gomock.Any(), "task-1", model.Fields{Title: "Buy oat milk"}).Return(nil)

		require.NoError(t, svc.Update(context.Background(), owner, "task-1", req))
	})

	t.Run("completed task keeps completion", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().GetOwned(gomock.Any(), owner, "task-1").Return(completedTask(), nil)
		repo.EXPECT().Update(gomock.Any(), "task-1", model.Fields{Title: "Buy oat milk"}).Return(nil)
		repo.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		require.NoError(t, svc.Update(context.Background(), owner, "task-1", req))
	})

	t.Run("foreign task", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().GetOwned(gomock.Any(), owner, "task-1").Return(model.Task{}, nil)

		assert.ErrorIs(t, svc.Update(context.Background(), owner, "task-1", req), failure.ErrTaskNotFound)
	})
}

func TestTaskService_Complete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *taskMocks.MockTask)
		wantErr   error
		wantCode  int
	}{
		{
			name: "completes active task",
			setupMock: func(repo *taskMocks.MockTask) {
				repo.EXPECT().GetOwned(gomock.Any(), owner, "task-1").Return(activeTask(), nil)
				repo.EXPECT().Complete(gomock.Any(), "task-1", gomock.Any()).Return(true, nil)
			},
		},
		{
			name: "already completed",
			setupMock: func(repo *taskMocks.MockTask) {
				repo.EXPECT().GetOwned(gomock.Any(), owner, "task-1").Return(completedTask(), nil)
			},
			wantErr:  failure.ErrTaskAlreadyCompleted,
			wantCode: 409,
		},
		{
			name: "completed concurrently",
			setupMock: func(repo *taskMocks.MockTask) {
				repo.EXPECT().GetOwned(gomock.Any(), owner, "task-1").Return(activeTask(), nil)
				repo.EXPECT().Complete(gomock.Any(), "task-1", gomock.Any()).Return(false, nil)
			},
			wantErr:  failure.ErrTaskAlreadyCompleted,
			wantCode: 409,
		},
		{
			name: "foreign task",
			setupMock: func(repo *taskMocks.MockTask) {
				repo.EXPECT().GetOwned(gomock.Any(), owner, "task-1").Return(model.Task{}, nil)
			},
			wantErr:  failure.ErrTaskNotFound,
			wantCode: 404,
		},
		{
			name: "repository error",
			setupMock: func(repo *taskMocks.MockTask) {
				repo.EXPECT().GetOwned(gomock.Any(), owner, "task-1").Return(model.Task{}, errors.New("database error"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, svc := newService(t)
			tt.setupMock(repo)

			err := svc.Complete(context.Background(), owner, "task-1")

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestTaskService_Delete(t *testing.T) {
	repo, svc := newService(t)

	repo.EXPECT().GetOwned(gomock.Any(), owner, "task-1").Return(activeTask(), nil)
	repo.EXPECT().Delete(gomock.Any(), "task-1").Return(nil)

	require.NoError(t, svc.Delete(context.Background(), owner, "task-1"))

	repo.EXPECT().GetOwned(gomock.Any(), owner, "task-2").Return(model.Task{}, nil)

	assert.ErrorIs(t, svc.Delete(context.Background(), owner, "task-2"), failure.ErrTaskNotFound)
}
