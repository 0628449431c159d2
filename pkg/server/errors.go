// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/mchmarny/sitestack/pkg/errors"
)

// Error codes specific to the HTTP surface.
const (
	ErrCodeRateLimitExceeded apperrors.ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrCodeMethodNotAllowed  apperrors.ErrorCode = "METHOD_NOT_ALLOWED"
)

// ErrorResponse is the JSON body of error responses from system endpoints
// and middleware. Site misses are answered with the error document instead.
type ErrorResponse struct {
	Code      apperrors.ErrorCode `json:"code"`
	Message   string              `json:"message"`
	Details   map[string]any      `json:"details,omitempty"`
	RequestID string              `json:"requestId"`
	Timestamp time.Time           `json:"timestamp"`
	Retryable bool                `json:"retryable"`
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code apperrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	respondJSON(w, statusCode, ErrorResponse{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

func respondJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write json response", "error", err)
	}
}
