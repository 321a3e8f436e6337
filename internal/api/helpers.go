// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/briefwire/briefwire/internal/logging"
	"github.com/briefwire/briefwire/internal/models"
	"github.com/briefwire/briefwire/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent
// log injection. Newlines, carriage returns, and other control
// characters could otherwise forge log entries.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Vary", "Accept-Encoding")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a simple ETag from data using FNV-1a hash
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().Str("code", sanitizeLogValue(code)).Str("error", sanitizeLogValue(err.Error())).Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil when validation passes, or a models.APIError carrying
// the VALIDATION_ERROR code and field details.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// queryParams parses typed query parameters, collecting every
// malformed value so the handler can reject the request instead of
// silently substituting defaults. Absent parameters take the default.
type queryParams struct {
	values url.Values
	errs   []paramError
}

// paramError records a query parameter that failed to parse.
type paramError struct {
	field   string
	value   string
	message string
}

func newQueryParams(r *http.Request) *queryParams {
	return &queryParams{values: r.URL.Query()}
}

// Int extracts an integer query parameter with a default value.
func (q *queryParams) Int(key string, defaultValue int) int {
	value := q.values.Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		q.fail(key, value, "must be an integer")
		return defaultValue
	}

	return intValue
}

// Bool extracts a boolean query parameter with a default value.
// Accepts the strconv.ParseBool forms ("1", "t", "true", ...).
func (q *queryParams) Bool(key string, defaultValue bool) bool {
	value := q.values.Get(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		q.fail(key, value, "must be a boolean")
		return defaultValue
	}

	return boolValue
}

// Float extracts a float query parameter. The second return reports
// whether the parameter was present and parseable, so callers can
// distinguish "absent" from "zero".
func (q *queryParams) Float(key string) (float64, bool) {
	value := q.values.Get(key)
	if value == "" {
		return 0, false
	}

	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		q.fail(key, value, "must be a number")
		return 0, false
	}

	return floatValue, true
}

func (q *queryParams) fail(key, value, problem string) {
	q.errs = append(q.errs, paramError{
		field:   key,
		value:   value,
		message: fmt.Sprintf("%s %s", key, problem),
	})
}

// Err returns a VALIDATION_ERROR covering every malformed parameter,
// in the same shape validateRequest produces, or nil when all
// parameters parsed.
func (q *queryParams) Err() *models.APIError {
	if len(q.errs) == 0 {
		return nil
	}

	if len(q.errs) == 1 {
		e := q.errs[0]
		return &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: e.message,
			Details: map[string]interface{}{
				"field": e.field,
				"tag":   "type",
				"value": e.value,
			},
		}
	}

	fields := make([]map[string]interface{}, len(q.errs))
	messages := make([]string, len(q.errs))
	for i, e := range q.errs {
		fields[i] = map[string]interface{}{
			"field":   e.field,
			"tag":     "type",
			"message": e.message,
		}
		messages[i] = e.message
	}
	return &models.APIError{
		Code:    "VALIDATION_ERROR",
		Message: strings.Join(messages, "; "),
		Details: map[string]interface{}{"fields": fields},
	}
}
