package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"
	"todolist/shared/constant"
	"todolist/shared/dto"
	"todolist/shared/model"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, 1, 2, 12, 30, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{CreatedAt: createdAt, ModifiedAt: modifiedAt})

	assert.Equal(t, "Jan 1, 2023 12:00", metadata.CreatedAt)
	assert.Equal(t, "Jan 2, 2023 12:30", metadata.ModifiedAt)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "valid page and limit",
			query:    "page=2&limit=20",
			expected: dto.QueryParams{Page: 2, Limit: 20},
		},
		{
			name:           "defaults when empty",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "no defaults when disabled",
			expected: dto.QueryParams{},
		},
		{
			name:           "invalid and negative values fall back",
			query:          "page=invalid&limit=-10",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "zero page falls back",
			query:          "page=0",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "limit is capped",
			query:    "limit=100000",
			expected: dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{
			name:     "sort parameters are ignored",
			query:    "sort_by=owner_id&sort_dir=ASC",
			expected: dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/current?"+tt.query, nil)

			queryParams := &dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, *queryParams)
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 0, dto.QueryParams{}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, dto.QueryParams{Page: 3, Limit: 10}.Offset())
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "owner_id", Value: "u-1", Operator: dto.FilterOperatorEq, Table: "tasks"},
			wantWhere: "tasks.owner_id = :owner_id",
			wantArgs:  map[string]any{"owner_id": "u-1"},
		},
		{
			name:      "not eq with arg name",
			filter:    dto.Filter{ArgName: "other", Field: "id", Value: "t-1", Operator: dto.FilterOperatorNotEq},
			wantWhere: "id != :other",
			wantArgs:  map[string]any{"other": "t-1"},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "completed_at", Operator: dto.FilterIsNull, Table: "tasks"},
			wantWhere: "tasks.completed_at IS NULL",
			wantArgs:  map[string]any{},
		},
		{
			name:      "is not null",
			filter:    dto.Filter{Field: "completed_at", Operator: dto.FilterIsNotNull},
			wantWhere: "completed_at IS NOT NULL",
			wantArgs:  map[string]any{},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "title", Operator: "like"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.And(
		dto.Filter{Field: "owner_id", Value: "u-1", Operator: dto.FilterOperatorEq},
		dto.FilterGroup{
			Operator: dto.FilterGroupOperatorOr,
			Filters: []any{
				dto.Filter{Field: "completed_at", Operator: dto.FilterIsNull},
				dto.Filter{Field: "title", Operator: "unsupported"},
				dto.Filter{ArgName: "task_id", Field: "id", Value: "t-1", Operator: dto.FilterOperatorEq},
			},
		},
		"ignored",
	)

	where, args := group.GetWhereClause()

	assert.Equal(t, "(owner_id = :owner_id AND (completed_at IS NULL OR id = :task_id))", where)
	assert.Equal(t, map[string]any{"owner_id": "u-1", "task_id": "t-1"}, args)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
