package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// InternalErrorMessage is the only body clients see for unexpected failures.
const InternalErrorMessage = "Internal server error"

// RespondJSON 发送JSON响应
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// RespondError 发送错误响应
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"error": message})
}

// RespondInternalError 发送通用的 500 响应，细节只写日志
func RespondInternalError(w http.ResponseWriter, scope string, err error) {
	log.Printf("[%s] error processing request: %v", scope, err)
	RespondError(w, http.StatusInternalServerError, InternalErrorMessage)
}
