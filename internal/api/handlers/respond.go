package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/isdelr/interview-vault-be/internal/auth"
	"github.com/isdelr/interview-vault-be/internal/services"
	"github.com/rs/zerolog/log"
)

// maxBodyBytes caps request bodies. Answers carry serialized rich content,
// so the limit is generous.
const maxBodyBytes = 4 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names instead of Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// errBodyTooLarge is returned when a request body exceeds maxBodyBytes.
var errBodyTooLarge = errors.New("request body too large")

// decodeAndValidate decodes the JSON body into dst and validates it. Every
// failure is wrapped in services.ErrValidation.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: request body exceeds %d bytes", errBodyTooLarge, tooLarge.Limit)
		}
		return fmt.Errorf("%w: invalid request body", services.ErrValidation)
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", services.ErrValidation, err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", services.ErrValidation, strings.Join(msgs, "; "))
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError maps service errors to HTTP statuses. Unknown errors are logged
// and reported as 500 without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errBodyTooLarge):
		http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
	case errors.Is(err, services.ErrValidation):
		http.Error(w, strings.TrimPrefix(err.Error(), services.ErrValidation.Error()+": "), http.StatusBadRequest)
	case errors.Is(err, services.ErrAuthentication):
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, services.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, services.ErrConflict):
		http.Error(w, strings.TrimPrefix(err.Error(), services.ErrConflict.Error()+": "), http.StatusConflict)
	default:
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("Request failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// callerFromRequest builds the service caller from the validated token.
func callerFromRequest(r *http.Request) (services.Caller, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return services.Caller{}, false
	}
	return services.Caller{Username: claims.Username, Roles: claims.Roles}, true
}
