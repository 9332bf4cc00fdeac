// Package response writes API responses: JSON bodies, CSV downloads and
// RFC 7807 problems. Every response carries the X-Request-Id of the request.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/logisticsnet/logisticsnet/internal/api/middleware"
	"github.com/logisticsnet/logisticsnet/internal/api/models"
)

func setRequestID(w http.ResponseWriter, r *http.Request) string {
	requestID := middleware.GetRequestID(r.Context())
	if requestID != "" {
		w.Header().Set("X-Request-Id", requestID)
	}
	return requestID
}

// JSON writes data as a JSON body with the given status code. A nil data
// writes no body.
func JSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	setRequestID(w, r)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Accepted writes a 202 for work handed to the job queue. location, when set,
// points at a resource the client can poll.
func Accepted(w http.ResponseWriter, r *http.Request, location string, data any) {
	if location != "" {
		w.Header().Set("Location", location)
	}
	JSON(w, r, http.StatusAccepted, data)
}

// CSV writes body as a text/csv attachment named filename. extra headers are
// set before the status line, so they must be known up front.
func CSV(w http.ResponseWriter, r *http.Request, filename string, extra map[string]string, body []byte) {
	setRequestID(w, r)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	for k, v := range extra {
		w.Header().Set(k, v)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// Error writes problem with the request path as its instance.
func Error(w http.ResponseWriter, r *http.Request, problem *models.Problem) {
	problem.Instance = r.URL.Path
	problem.Write(w)
}

func writeStatus(w http.ResponseWriter, r *http.Request, status int, detail string) {
	Error(w, r, models.NewStatusProblem(status, middleware.GetRequestID(r.Context()), detail))
}

// BadRequest writes a 400 listing the invalid fields.
func BadRequest(w http.ResponseWriter, r *http.Request, detail string, errors []models.FieldError) {
	Error(w, r, models.NewBadRequest(middleware.GetRequestID(r.Context()), detail, errors))
}

// NotFound writes a 404.
func NotFound(w http.ResponseWriter, r *http.Request, detail string) {
	writeStatus(w, r, http.StatusNotFound, detail)
}

// Unprocessable writes a 422.
func Unprocessable(w http.ResponseWriter, r *http.Request, detail string) {
	writeStatus(w, r, http.StatusUnprocessableEntity, detail)
}

// InternalError writes a 500. detail is shown to clients, so it must not
// carry the underlying error.
func InternalError(w http.ResponseWriter, r *http.Request, detail string) {
	writeStatus(w, r, http.StatusInternalServerError, detail)
}

// ServiceUnavailable writes a 503.
func ServiceUnavailable(w http.ResponseWriter, r *http.Request, detail string) {
	writeStatus(w, r, http.StatusServiceUnavailable, detail)
}
