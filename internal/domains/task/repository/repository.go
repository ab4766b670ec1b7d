package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"
	"todolist/infras/database"
	"todolist/infras/otel"
	"todolist/internal/domains/task/model"
	"todolist/shared"
	"todolist/shared/constant"
	gDto "todolist/shared/dto"
	gModel "todolist/shared/model"
	gRepo "todolist/shared/repository"
	"todolist/shared/timezone"

	"github.com/google/uuid"
)

// Task is owner-scoped storage. Lookups by id that take an owner never match
// another user's rows.
type Task interface {
	ListActive(ctx context.Context, ownerID string, params gDto.QueryParams) ([]model.Task, int, error)
	ListCompleted(ctx context.Context, ownerID string, params gDto.QueryParams) ([]model.Task, int, error)
	GetOwned(ctx context.Context, ownerID, id string) (model.Task, error)
	Create(ctx context.Context, ownerID string, fields model.Fields) (model.Task, error)
	Update(ctx context.Context, id string, fields model.Fields) error
	Delete(ctx context.Context, id string) error
	// Complete stamps completed_at on a task that is not yet completed. It
	// reports false when the task was already completed or does not exist.
	Complete(ctx context.Context, id string, completedAt time.Time) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Task]
	otel otel.Otel
}

func New(db *database.Connection, otel otel.Otel) Task {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Task](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func ownerFilter(ownerID string) gDto.Filter {
	return gDto.Filter{
		Field:    model.FieldOwnerID,
		Operator: gDto.FilterOperatorEq,
		Value:    ownerID,
		Table:    model.TableName,
	}
}

func completedFilter(completed bool) gDto.Filter {
	operator := gDto.FilterIsNull
	if completed {
		operator = gDto.FilterIsNotNull
	}

	return gDto.Filter{
		Field:    model.FieldCompletedAt,
		Operator: operator,
		Table:    model.TableName,
	}
}

func (r *repositoryImpl) list(ctx context.Context, filter gDto.FilterGroup, params gDto.QueryParams) ([]model.Task, int, error) {
	total, err := r.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	tasks, err := r.GetAll(ctx, params, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

func (r *repositoryImpl) ListActive(ctx context.Context, ownerID string, params gDto.QueryParams) ([]model.Task, int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".task.ListActive")
	defer scope.End()

	params.SortBy = model.FieldCreatedAt
	params.SortDir = gDto.SortDirDesc

	return r.list(ctx, gDto.And(ownerFilter(ownerID), completedFilter(false)), params)
}

func (r *repositoryImpl) ListCompleted(ctx context.Context, ownerID string, params gDto.QueryParams) ([]model.Task, int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".task.ListCompleted")
	defer scope.End()

	params.SortBy = model.FieldCompletedAt
	params.SortDir = gDto.SortDirDesc

	return r.list(ctx, gDto.And(ownerFilter(ownerID), completedFilter(true)), params)
}

// GetOwned returns the zero Task when id does not exist or belongs to
// someone else.
func (r *repositoryImpl) GetOwned(ctx context.Context, ownerID, id string) (model.Task, error) {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	filter.Filters = append(filter.Filters, ownerFilter(ownerID))

	task, err := r.Get(ctx, filter)
	if err != nil {
		return task, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

func (r *repositoryImpl) Create(ctx context.Context, ownerID string, fields model.Fields) (model.Task, error) {
	task := model.Task{
		ID:       uuid.NewString(),
		OwnerID:  ownerID,
		Title:    fields.Title,
		Memo:     fields.Memo,
		Metadata: gModel.NewMetadata(timezone.Now()),
	}

	if err := r.Insert(ctx, task); err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Update writes both editable columns, so an empty memo clears it.
func (r *repositoryImpl) Update(ctx context.Context, id string, fields model.Fields) error {
	updatedFields := map[string]any{
		model.FieldTitle:         fields.Title,
		model.FieldMemo:          fields.Memo,
		constant.FieldModifiedAt: timezone.Now(),
	}

	err := r.Repository.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id string) error {
	if _, err := r.Repository.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

func (r *repositoryImpl) Complete(ctx context.Context, id string, completedAt time.Time) (bool, error) {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	filter.Filters = append(filter.Filters, completedFilter(false))

	count, err := r.UpdateCount(ctx, map[string]any{
		model.FieldCompletedAt:   completedAt,
		constant.FieldModifiedAt: timezone.Now(),
	}, filter)
	if err != nil {
		return false, fmt.Errorf("failed to complete task: %w", err)
	}

	return count > 0, nil
}
