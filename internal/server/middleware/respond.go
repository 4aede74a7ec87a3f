package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/vintaclectic/RepoRadar/pkg/api"
)

// writeError отдает отказ middleware в том же JSON формате, что и
// handlers: {"error": "..."}. Клиент видит единую форму ошибок
// независимо от того, какой слой отклонил запрос.
func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: message})
}
