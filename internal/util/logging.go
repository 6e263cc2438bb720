package util

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
)

// LogError логирует ошибку и возвращает её обёрнутой для передачи наверх
func LogError(message string, err error) error {
	log.Printf("%s: %v", message, err)
	return fmt.Errorf("%s: %w", message, err)
}

// LogInternalError логирует внутреннюю ошибку с корреляционным id.
// Возвращает id, по которому ошибку можно найти в логах —
// текст ошибки бэкенда клиенту не отдается
func LogInternalError(message string, err error) string {
	traceID := uuid.New().String()
	log.Printf("[trace_id=%s] %s: %v", traceID, message, err)
	return traceID
}

// HandleError отправляет клиенту стандартный JSON с ошибкой
func HandleError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := struct {
		Error struct {
			Code int    `json:"code"`
			Text string `json:"text"`
		} `json:"error"`
	}{}
	errorResponse.Error.Code = statusCode
	errorResponse.Error.Text = message

	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Printf("ошибка кодирования ответа об ошибке: %v", err)
	}
}
