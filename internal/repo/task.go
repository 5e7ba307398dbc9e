package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/BuzzLyutic/task-crud-api/internal/model"
)

var (
	ErrorNotFound    = errors.New("not found")
	ErrorPersistence = errors.New("persistence error")
)

const otelName = "github.com/BuzzLyutic/task-crud-api/internal/repo"

const taskColumns = "id, title, description, status, created_at, updated_at"

type TaskRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo { // Конструктор
	return &TaskRepo{
		pool: pool,
	}
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	ctx, span := newOTELSpan(ctx, "TaskRepo.Create", "INSERT")
	defer span.End()

	// created_at и updated_at берут одно и то же now() внутри транзакции
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, description, status)
		VALUES ($1, $2, $3)
		RETURNING `+taskColumns,
		t.Title, t.Description, t.Status,
	).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, recordError(span, r.mapWriteError(err))
	}
	return t, nil
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (model.Task, error) {
	ctx, span := newOTELSpan(ctx, "TaskRepo.Get", "SELECT")
	defer span.End()

	var t model.Task
	err := r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1
	`, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Task{}, ErrorNotFound
	}
	if err != nil {
		return model.Task{}, recordError(span, fmt.Errorf("get task %d: %w", id, err))
	}
	return t, nil
}

func (r *TaskRepo) List(ctx context.Context) ([]model.Task, error) {
	ctx, span := newOTELSpan(ctx, "TaskRepo.List", "SELECT")
	defer span.End()

	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		ORDER BY id
	`)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("list tasks: %w", err))
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, recordError(span, fmt.Errorf("scan task: %w", err))
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, recordError(span, fmt.Errorf("list tasks: %w", err))
	}
	return tasks, nil
}

// Save перезаписывает изменяемые поля существующей задачи одним UPDATE.
// updated_at строго растет даже при одинаковых показаниях часов.
func (r *TaskRepo) Save(ctx context.Context, t model.Task) (model.Task, error) {
	ctx, span := newOTELSpan(ctx, "TaskRepo.Save", "UPDATE")
	defer span.End()

	err := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET title = $2,
		    description = $3,
		    status = $4,
		    updated_at = GREATEST(clock_timestamp(), updated_at + interval '1 microsecond')
		WHERE id = $1
		RETURNING `+taskColumns,
		t.ID, t.Title, t.Description, t.Status,
	).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) { // строку удалили между чтением и записью
		return model.Task{}, ErrorNotFound
	}
	if err != nil {
		return model.Task{}, recordError(span, r.mapWriteError(err))
	}
	return t, nil
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	ctx, span := newOTELSpan(ctx, "TaskRepo.Delete", "DELETE")
	defer span.End()

	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return recordError(span, fmt.Errorf("delete task %d: %w", id, err))
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

// Ping проверяет доступность БД, используется в /health
func (r *TaskRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// mapWriteError сворачивает любую ошибку записи в ErrorPersistence, сохраняя причину для логов
func (r *TaskRepo) mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%w: %s (sqlstate %s)", ErrorPersistence, pgErr.Message, pgErr.Code)
	}
	return fmt.Errorf("%w: %w", ErrorPersistence, err)
}

func newOTELSpan(ctx context.Context, name, operation string) (context.Context, trace.Span) {
	ctx, span := otel.Tracer(otelName).Start(ctx, name)
	span.SetAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", operation),
		attribute.String("db.sql.table", "tasks"),
	)
	return ctx, span
}

func recordError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
