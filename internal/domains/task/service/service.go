package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Task=MockTaskService

import (
	"context"
	"fmt"
	"todolist/config"
	"todolist/infras/otel"
	"todolist/internal/domains/task/model"
	"todolist/internal/domains/task/model/dto"
	"todolist/internal/domains/task/repository"
	"todolist/shared/constant"
	gDto "todolist/shared/dto"
	"todolist/shared/failure"
	"todolist/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Task operations always act on behalf of ownerID. A task owned by anyone
// else is reported as failure.ErrTaskNotFound.
type Task interface {
	ListActive(ctx context.Context, ownerID string, params gDto.QueryParams) (dto.GetTasksResponse, error)
	ListCompleted(ctx context.Context, ownerID string, params gDto.QueryParams) (dto.GetTasksResponse, error)
	Get(ctx context.Context, ownerID, id string) (dto.TaskResponse, error)
	Create(ctx context.Context, ownerID string, req dto.TaskRequest) (dto.TaskResponse, error)
	Update(ctx context.Context, ownerID, id string, req dto.TaskRequest) error
	Complete(ctx context.Context, ownerID, id string) error
	Delete(ctx context.Context, ownerID, id string) error
}

type serviceImpl struct {
	repo repository.Task
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Task, cfg *config.Config, otel otel.Otel) Task {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) ListActive(ctx context.Context, ownerID string, params gDto.QueryParams) (res dto.GetTasksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListActive")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tasks, total, err := s.repo.ListActive(ctx, ownerID, params)
	if err != nil {
		log.Error().Err(err).Str("owner_id", ownerID).Msg("failed to list active tasks")

		return res, fmt.Errorf("failed to list active tasks: %w", err)
	}

	res.FromModels(tasks, total, params)

	return res, nil
}

func (s *serviceImpl) ListCompleted(ctx context.Context, ownerID string, params gDto.QueryParams) (res dto.GetTasksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListCompleted")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tasks, total, err := s.repo.ListCompleted(ctx, ownerID, params)
	if err != nil {
		log.Error().Err(err).Str("owner_id", ownerID).Msg("failed to list completed tasks")

		return res, fmt.Errorf("failed to list completed tasks: %w", err)
	}

	res.FromModels(tasks, total, params)

	return res, nil
}

func (s *serviceImpl) getOwned(ctx context.Context, ownerID, id string) (model.Task, error) {
	task, err := s.repo.GetOwned(ctx, ownerID, id)
	if err != nil {
		log.Error().Err(err).Str("task_id", id).Msg("failed to get task")

		return task, fmt.Errorf("failed to get task: %w", err)
	}

	if task.ID == "" {
		return task, failure.ErrTaskNotFound
	}

	return task, nil
}

func (s *serviceImpl) Get(ctx context.Context, ownerID, id string) (res dto.TaskResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	task, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return res, err
	}

	res.FromModel(task)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, ownerID string, req dto.TaskRequest) (res dto.TaskResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	task, err := s.repo.Create(ctx, ownerID, req.ToFields())
	if err != nil {
		log.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create task")

		return res, fmt.Errorf("failed to create task: %w", err)
	}

	res.FromModel(task)

	return res, nil
}

// Update changes title and memo only. Completed tasks stay completed.
func (s *serviceImpl) Update(ctx context.Context, ownerID, id string, req dto.TaskRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.getOwned(ctx, ownerID, id); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, id, req.ToFields()); err != nil {
		log.Error().Err(err).Str("task_id", id).Msg("failed to update task")

		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

func (s *serviceImpl) Complete(ctx context.Context, ownerID, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Complete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	task, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if task.IsCompleted() {
		return failure.ErrTaskAlreadyCompleted
	}

	completed, err := s.repo.Complete(ctx, id, timezone.Now())
	if err != nil {
		log.Error().Err(err).Str("task_id", id).Msg("failed to complete task")

		return fmt.Errorf("failed to complete task: %w", err)
	}

	// a concurrent request completed it first
	if !completed {
		return failure.ErrTaskAlreadyCompleted
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, ownerID, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.getOwned(ctx, ownerID, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("task_id", id).Msg("failed to delete task")

		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
