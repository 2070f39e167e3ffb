package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

// ErrInvalidID возвращается, если идентификатор в пути или query не является положительным числом
var ErrInvalidID = errors.New("invalid id")

// PathID извлекает положительный int64 параметр пути
func PathID(r *http.Request, name string) (int64, error) {
	return parseID(mux.Vars(r)[name])
}

// QueryID извлекает положительный int64 параметр query
func QueryID(r *http.Request, name string) (int64, error) {
	return parseID(r.URL.Query().Get(name))
}

// QueryString возвращает указатель на непустой параметр query
func QueryString(r *http.Request, name string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return nil
	}
	return &v
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
