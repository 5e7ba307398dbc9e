package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"regexp"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/BuzzLyutic/task-crud-api/internal/model"
	"github.com/BuzzLyutic/task-crud-api/pkg/respond"
)

const maxBodyBytes = 1 << 20

// taskFields - допустимые ключи тела запроса, регистр учитывается
var taskFields = []string{"title", "description", "status"}

// createTaskRequest - тело POST /tasks. Указатели нужны, чтобы отличить
// отсутствующее поле от пустого значения
type createTaskRequest struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Status      *model.Status `json:"status"`
}

// Validate проверяет наличие обязательных полей, остальные правила берутся
// из model.CreateTaskParams
func (req createTaskRequest) Validate() error {
	presence := validation.ValidateStruct(&req,
		validation.Field(&req.Title, validation.NotNil),
		validation.Field(&req.Description, validation.NotNil),
	)
	return mergeValidation(presence, req.params().Validate())
}

func (req createTaskRequest) params() model.CreateTaskParams {
	p := model.CreateTaskParams{Status: req.Status}
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	return p
}

// updateTaskRequest - тело PUT /tasks/{id}, все поля необязательны
type updateTaskRequest struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Status      *model.Status `json:"status"`
}

func (req updateTaskRequest) Validate() error {
	return req.params().Validate()
}

func (req updateTaskRequest) params() model.UpdateTaskParams {
	return model.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}
}

// mergeValidation объединяет ошибки по полям; первая ошибка поля сохраняется.
// Ошибки не из ozzo-validation возвращаются как есть
func mergeValidation(errs ...error) error {
	merged := validation.Errors{}
	for _, err := range errs {
		if err == nil {
			continue
		}
		var fieldErrs validation.Errors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for field, fieldErr := range fieldErrs {
			if _, ok := merged[field]; !ok {
				merged[field] = fieldErr
			}
		}
	}
	return merged.Filter()
}

var errEmptyBody = errors.New("empty request body")

// decodeJSON строго разбирает тело: неизвестные поля (в том числе ключи
// в другом регистре), несовпадение типов и мусор после объекта считаются
// ошибкой. Сообщение можно отдавать клиенту
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, fields []string) error {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return describeDecodeError(err)
	}

	// encoding/json сопоставляет ключи без учета регистра, поэтому
	// сверяем их с тегами сами
	var keys map[string]json.RawMessage
	if json.Unmarshal(raw, &keys) == nil {
		for _, key := range slices.Sorted(maps.Keys(keys)) {
			if !slices.Contains(fields, key) {
				return fmt.Errorf("json: unknown field %q", key)
			}
		}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return describeDecodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}

func describeDecodeError(err error) error {
	var (
		syntaxErr   *json.SyntaxError
		typeErr     *json.UnmarshalTypeError
		maxBytesErr *http.MaxBytesError
	)
	switch {
	case errors.As(err, &syntaxErr):
		return fmt.Errorf("malformed JSON at offset %d", syntaxErr.Offset)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("malformed JSON")
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return errors.New("body must be a JSON object")
		}
		return fmt.Errorf("field %q must be of type %s", typeErr.Field, typeErr.Type)
	case errors.As(err, &maxBytesErr):
		return fmt.Errorf("body must not exceed %d bytes", maxBytesErr.Limit)
	default:
		// unknown field "x" и прочие ошибки encoding/json
		return err
	}
}

// validationDetails раскладывает ошибки ozzo-validation по полям
func validationDetails(err error) map[string]string {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return nil
	}
	details := make(map[string]string, len(errs))
	for field, fieldErr := range errs {
		details[field] = fieldErr.Error()
	}
	return details
}

type ctxKey int

const taskIDKey ctxKey = iota

// idPattern - десятичное целое, допускается только знак минус
var idPattern = regexp.MustCompile(`^-?[0-9]+$`)

// TaskIDCtx разбирает {id} до вызова обработчика: не целое число -> 400.
// Отрицательные id пропускаются дальше и дают 404
func TaskIDCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "id")
		if !idPattern.MatchString(raw) {
			respond.Error(w, r, http.StatusBadRequest, "id must be an integer")
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respond.Error(w, r, http.StatusBadRequest, "id must be an integer")
			return
		}
		ctx := context.WithValue(r.Context(), taskIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func taskIDFrom(ctx context.Context) int64 {
	id, _ := ctx.Value(taskIDKey).(int64)
	return id
}
