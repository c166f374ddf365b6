package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/tripcanvas/internal/domain"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errBadRequest marks failures detected before reaching the planner
// (malformed body, bad path parameter). They map to 422 like domain
// validation failures.
var errBadRequest = errors.New("bad request")

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status code and an ErrorResponse.
// Unexpected errors are logged and answered with a generic 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not_found", notFoundMessage(err)))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", unwrapMessage(err, domain.ErrValidation)))
	case errors.Is(err, errBadRequest):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", unwrapMessage(err, errBadRequest)))
	case errors.Is(err, domain.ErrLastTrip):
		writeJSON(w, http.StatusConflict, errorBody("conflict", domain.ErrLastTrip.Error()))
	case errors.As(err, &maxBytes):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("payload_too_large", "request body too large"))
	default:
		s.logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
	}
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// unwrapMessage extracts the human-readable part that follows a wrapped sentinel.
// e.g. "validation error: name is required" → "name is required"
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}

// notFoundMessage turns "trip 0190…: not found" into "trip 0190… not found".
func notFoundMessage(err error) string {
	msg := err.Error()
	suffix := ": " + domain.ErrNotFound.Error()
	if i := strings.LastIndex(msg, suffix); i >= 0 {
		head := msg[:i]
		if j := strings.LastIndex(head, ": "); j >= 0 {
			head = head[j+2:]
		}
		return head + " not found"
	}
	return msg
}

// decodeJSON reads the request body into dst, rejecting unknown fields.
// A body over the size limit surfaces as *http.MaxBytesError.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return fmt.Errorf("%w: request body is required", errBadRequest)
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		return fmt.Errorf("%w: malformed request body: %v", errBadRequest, err)
	}
	return nil
}

// pathUUID binds the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid format for parameter %s: %v", errBadRequest, name, err)
	}
	return id, nil
}

// tripAndCard binds both path IDs of a card route.
func tripAndCard(r *http.Request) (tripID, cardID uuid.UUID, err error) {
	if tripID, err = pathUUID(r, "tripId"); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if cardID, err = pathUUID(r, "cardId"); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return tripID, cardID, nil
}

// tripAndItem binds the tripId and itemId path parameters of the packing,
// tip and moodboard routes. Item ids are opaque strings.
func tripAndItem(r *http.Request) (tripID uuid.UUID, itemID string, err error) {
	if tripID, err = pathUUID(r, "tripId"); err != nil {
		return uuid.Nil, "", err
	}
	err = runtime.BindStyledParameterWithOptions("simple", "itemId", chi.URLParam(r, "itemId"), &itemID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: invalid format for parameter itemId: %v", errBadRequest, err)
	}
	return tripID, itemID, nil
}
