package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-crud-api/internal/model"
	"github.com/BuzzLyutic/task-crud-api/internal/repo"
	"github.com/BuzzLyutic/task-crud-api/internal/service"
	"github.com/BuzzLyutic/task-crud-api/pkg/respond"
)

// TaskService - операции хранилища задач, которые нужны HTTP-слою
type TaskService interface {
	Create(ctx context.Context, p model.CreateTaskParams) (model.Task, error)
	Get(ctx context.Context, id int64) (model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
	Update(ctx context.Context, id int64, p model.UpdateTaskParams) (model.Task, error)
	Delete(ctx context.Context, id int64) error
}

type TaskHandler struct {
	service TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
	}
}

// Routes возвращает роутер ресурса, монтируется на /tasks
func (h *TaskHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Route("/{id}", func(r chi.Router) {
		r.Use(TaskIDCtx)
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
	})
	return r
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(w, r, &req, taskFields); err != nil {
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		h.validationError(w, r, err)
		return
	}

	task, err := h.service.Create(r.Context(), req.params())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/tasks/%d", task.ID))
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.service.Get(r.Context(), taskIDFrom(r.Context()))
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.List(r.Context())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []model.Task{} // всегда массив, даже пустой
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := decodeJSON(w, r, &req, taskFields); err != nil && !errors.Is(err, errEmptyBody) {
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		h.validationError(w, r, err)
		return
	}

	task, err := h.service.Update(r.Context(), taskIDFrom(r.Context()), req.params())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), taskIDFrom(r.Context())); err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.NoContent(w, r)
}

// statusFor - единственное место, где вид ошибки превращается в HTTP-код
func statusFor(err error) int {
	switch {
	case errors.Is(err, repo.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	default: // repo.ErrorPersistence и все непредвиденное
		return http.StatusInternalServerError
	}
}

func (h *TaskHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch code := statusFor(err); code {
	case http.StatusNotFound:
		respond.Error(w, r, code, "not found")
	case http.StatusBadRequest:
		h.validationError(w, r, err)
	default:
		h.logger.Error("internal error",
			zap.Error(err),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}

func (h *TaskHandler) validationError(w http.ResponseWriter, r *http.Request, err error) {
	if details := validationDetails(err); len(details) > 0 {
		respond.ErrorWithDetails(w, r, http.StatusBadRequest, "validation error", details)
		return
	}
	respond.Error(w, r, http.StatusBadRequest, "validation error")
}
