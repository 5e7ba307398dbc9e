package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/BuzzLyutic/task-crud-api/internal/model"
	"github.com/BuzzLyutic/task-crud-api/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
)

type TaskService struct {
	repo repo.TaskRepository
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(ctx context.Context, p model.CreateTaskParams) (model.Task, error) {
	if err := p.Validate(); err != nil { // Валидация входных данных на корректность
		return model.Task{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	status := model.StatusOpen // статус по умолчанию
	if p.Status != nil {
		status = *p.Status
	}

	return s.repo.Create(ctx, model.Task{
		Title:       p.Title,
		Description: p.Description,
		Status:      status,
	})
}

func (s *TaskService) Get(ctx context.Context, id int64) (model.Task, error) {
	return s.repo.Get(ctx, id)
}

func (s *TaskService) List(ctx context.Context) ([]model.Task, error) {
	return s.repo.List(ctx)
}

// Update сначала читает задачу (NotFound, если ее нет), затем накладывает
// только переданные поля и сохраняет. Блокировок нет: параллельные
// обновления одной задачи - последняя запись побеждает.
func (s *TaskService) Update(ctx context.Context, id int64, p model.UpdateTaskParams) (model.Task, error) {
	if err := p.Validate(); err != nil {
		return model.Task{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Task{}, err
	}

	return s.repo.Save(ctx, p.Apply(current))
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
