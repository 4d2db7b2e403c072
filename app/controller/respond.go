package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"legacy-peptides/cart"
	"legacy-peptides/models"
	"legacy-peptides/repository"
	"legacy-peptides/service"
)

// statusFor maps a service or repository error to its HTTP status
func statusFor(err error) int {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr),
		service.IsPromoRejection(err),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidStage),
		errors.Is(err, service.ErrEmptyNote),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInvalidPrice),
		errors.Is(err, cart.ErrUnknownPaymentMethod):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, cart.ErrInvalidTransition),
		errors.Is(err, cart.ErrPromoAlreadyApplied),
		errors.Is(err, cart.ErrSubmissionInProgress),
		errors.Is(err, cart.ErrSoldOut):
		return http.StatusConflict
	case errors.Is(err, service.ErrOrderSubmission):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// errorMessage is the text shown to the client. Internal failures keep their detail
// out of the response.
func errorMessage(err error, status int) string {
	switch {
	case errors.Is(err, service.ErrOrderSubmission):
		return service.ErrOrderSubmission.Error()
	case errors.Is(err, repository.ErrNotFound):
		return "Not found"
	case status == http.StatusInternalServerError:
		return "Internal server error"
	}
	return err.Error()
}

func writeError(w http.ResponseWriter, handler string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		zap.S().Errorf("❌ %s: %v", handler, err)
	} else {
		zap.S().Warnf("⚠️ %s: %v", handler, err)
	}

	body := models.ErrorResponse{Error: errorMessage(err, status)}
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		body.Error = "Please correct the highlighted fields"
		body.Fields = verr.Fields
	}
	writeJSON(w, handler, status, body)
}

func badRequest(w http.ResponseWriter, handler string, msg string) {
	zap.S().Warnf("⚠️ %s: %s", handler, msg)
	writeJSON(w, handler, http.StatusBadRequest, models.ErrorResponse{Error: msg})
}

func allowMethod(w http.ResponseWriter, r *http.Request, handler string, method string) bool {
	if r.Method != method {
		zap.S().Warnf("❌ %s: Method not allowed: %s", handler, r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, handler string, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Errorf("❌ %s: Error encoding response: %v", handler, err)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, handler string, v interface{}) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, handler, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	return true
}

// pathParts returns the non-empty segments of the path after prefix
func pathParts(r *http.Request, prefix string) []string {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}

func pathID(w http.ResponseWriter, r *http.Request, handler string, prefix string) (int64, bool) {
	parts := pathParts(r, prefix)
	if len(parts) == 0 {
		badRequest(w, handler, "id is required in path")
		return 0, false
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		badRequest(w, handler, fmt.Sprintf("Invalid id: %s", parts[0]))
		return 0, false
	}
	return id, true
}
