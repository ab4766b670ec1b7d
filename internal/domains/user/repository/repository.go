package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"todolist/infras/database"
	"todolist/infras/otel"
	"todolist/internal/domains/user/model"
	gDto "todolist/shared/dto"
	gRepo "todolist/shared/repository"
)

type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
}

func New(db *database.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// ByUsername matches a user by exact username.
func ByUsername(username string) gDto.FilterGroup {
	return gDto.And(gDto.Filter{
		Field:    model.FieldUsername,
		Operator: gDto.FilterOperatorEq,
		Value:    username,
		Table:    model.TableName,
	})
}

func ByID(id string) gDto.FilterGroup {
	return gDto.And(gDto.Filter{
		Field:    model.FieldID,
		Operator: gDto.FilterOperatorEq,
		Value:    id,
		Table:    model.TableName,
	})
}
