package model

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCreateTaskParams_Validate(t *testing.T) {
	tests := []struct {
		name      string
		params    CreateTaskParams
		wantField string
	}{
		{name: "minimal", params: CreateTaskParams{Title: "Teste", Description: "Descrição"}},
		{name: "empty description allowed", params: CreateTaskParams{Title: "T"}},
		{name: "every status", params: CreateTaskParams{Title: "T", Status: ptr(StatusDone)}},
		{name: "empty title", params: CreateTaskParams{Title: "", Description: "x"}, wantField: "title"},
		{name: "unknown status", params: CreateTaskParams{Title: "T", Status: ptr(Status("invalid"))}, wantField: "status"},
		{name: "empty status", params: CreateTaskParams{Title: "T", Status: ptr(Status(""))}, wantField: "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var errs validation.Errors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs, tt.wantField)
		})
	}
}

func TestUpdateTaskParams_Validate(t *testing.T) {
	assert.NoError(t, UpdateTaskParams{}.Validate())
	assert.NoError(t, UpdateTaskParams{Description: ptr("")}.Validate())
	assert.NoError(t, UpdateTaskParams{Status: ptr(StatusDoing)}.Validate())
	assert.Error(t, UpdateTaskParams{Title: ptr("")}.Validate())
	assert.Error(t, UpdateTaskParams{Status: ptr(Status("finalizado"))}.Validate())

	var errs validation.Errors
	require.ErrorAs(t, UpdateTaskParams{Title: ptr(""), Status: ptr(Status("x"))}.Validate(), &errs)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "status")
	assert.NotContains(t, errs, "Title")
}

func TestUpdateTaskParams_Apply(t *testing.T) {
	base := Task{ID: 7, Title: "Teste", Description: "Descrição", Status: StatusOpen}

	assert.Equal(t, base, UpdateTaskParams{}.Apply(base))

	got := UpdateTaskParams{Title: ptr("Atualizado"), Status: ptr(StatusDone)}.Apply(base)
	assert.Equal(t, Task{ID: 7, Title: "Atualizado", Description: "Descrição", Status: StatusDone}, got)

	got = UpdateTaskParams{Description: ptr("")}.Apply(base)
	assert.Equal(t, "", got.Description)
	assert.Equal(t, "Teste", got.Title)
}
