package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

const (
	msgInternalError      = "внутренняя ошибка сервера"
	msgServiceUnavailable = "сервис временно недоступен, повторите запрос позже"
)

// ErrMissingVar возвращается, когда в URL нет ожидаемой переменной маршрута
var ErrMissingVar = errors.New("missing route variable")

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code           int      `json:"code"`
	Message        string   `json:"message"`
	AllowedActions []string `json:"allowedActions,omitempty"`
}

// DecodeJSON декодирует тело запроса, неизвестные поля отклоняются
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// PathInt64 читает числовую переменную маршрута gorilla/mux
func PathInt64(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, ErrMissingVar
	}
	return strconv.ParseInt(raw, 10, 64)
}

// RespondJSON пишет JSON ответ с указанным статусом; nil - пустое тело
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondConflict 409; allowedActions перечисляет действия, доступные из текущего статуса
func RespondConflict(w http.ResponseWriter, message string, allowedActions []string) {
	RespondJSON(w, http.StatusConflict, ErrorResponse{
		Code:           http.StatusConflict,
		Message:        message,
		AllowedActions: allowedActions,
	})
}

func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, message)
}

// RespondServiceUnavailable 503 при отказе хранилища или внешних сервисов
func RespondServiceUnavailable(w http.ResponseWriter) {
	RespondError(w, http.StatusServiceUnavailable, msgServiceUnavailable)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}
