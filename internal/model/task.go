package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Status - состояние задачи, допустимы только значения из фиксированного набора
type Status string

const (
	StatusOpen  Status = "open"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateTaskParams - данные для создания задачи. Status == nil означает "по умолчанию open".
// json-теги задают имена полей в ошибках валидации
type CreateTaskParams struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      *Status `json:"status"`
}

func (p CreateTaskParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required),
		// description обязателен, но пустая строка допустима
		validation.Field(&p.Status, validation.NilOrNotEmpty, IsStatus),
	)
}

// UpdateTaskParams - частичное обновление, nil-поля не трогаются
type UpdateTaskParams struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *Status `json:"status"`
}

func (p UpdateTaskParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.NilOrNotEmpty),
		validation.Field(&p.Status, validation.NilOrNotEmpty, IsStatus),
	)
}

// Apply накладывает переданные поля на задачу и возвращает результат
func (p UpdateTaskParams) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	return t
}

// IsStatus - правило ozzo-validation: значение входит в перечисление статусов
var IsStatus = validation.In(StatusOpen, StatusDoing, StatusDone).
	Error("must be one of: open, doing, done")
