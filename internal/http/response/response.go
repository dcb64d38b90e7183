// Package response формирует JSON-ответы обработчиков в едином виде:
// {"status":"OK","data":{...}} при успехе и {"status":"Error","error":"..."} при ошибке.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response ответ сервера. Error заполняется только при ошибке, Data только при успехе.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse ответ с ошибкой, используется в аннотациях @Failure.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

// Значения поля status.
const (
	StatusOK    = "OK"
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный ответ с данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Message возвращает успешный ответ вида {"data":{"message":msg}}.
func Message(msg string) Response {
	return StatusOKWithData(map[string]string{"message": msg})
}

// Error возвращает ответ с ошибкой msg.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError собирает нарушения правил валидатора в одно сообщение через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	msgs := make([]string, 0, len(errs))

	for _, err := range errs {
		field := err.Field()
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", field))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email", field))
		case "strong_password":
			msgs = append(msgs, fmt.Sprintf(
				"field %s must be at least 8 characters and contain lowercase, uppercase, digit and symbol", field))
		case "notblank":
			msgs = append(msgs, fmt.Sprintf("field %s must not be blank", field))
		case "bcrypt_max":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most 72 bytes", field))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s characters", field, err.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s characters", field, err.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", field))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(msgs, ", "),
	}
}
