package respond

import (
	"net/http"

	"github.com/go-chi/render"
)

func JSON(w http.ResponseWriter, r *http.Request, code int, data interface{}) {
	render.Status(r, code)
	render.JSON(w, r, data)
}

func Error(w http.ResponseWriter, r *http.Request, code int, message string) {
	JSON(w, r, code, map[string]string{"error": message})
}

// ErrorWithDetails добавляет к ошибке разбор по полям
func ErrorWithDetails(w http.ResponseWriter, r *http.Request, code int, message string, details map[string]string) {
	JSON(w, r, code, map[string]interface{}{"error": message, "details": details})
}

func NoContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
