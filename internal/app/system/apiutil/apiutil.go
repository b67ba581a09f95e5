// internal/app/system/apiutil/apiutil.go

// Package apiutil holds the shared JSON response helpers for API handlers.
// Every endpoint writes through these so the envelope and error shape stay
// uniform across features.
package apiutil

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vitamove/vitamove-server/internal/domain/models"
)

// errorBody is the JSON error envelope: {"error": {"code": ..., "message": ...}}.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the uniform JSON error envelope.
func WriteError(w http.ResponseWriter, code int, message string) {
	label := "internal_error"
	switch code {
	case http.StatusBadRequest:
		label = "bad_request"
	case http.StatusUnauthorized:
		label = "unauthorized"
	case http.StatusForbidden:
		label = "forbidden"
	case http.StatusNotFound:
		label = "not_found"
	case http.StatusConflict:
		label = "conflict"
	case http.StatusUnprocessableEntity:
		label = "invalid_input"
	}
	WriteJSON(w, code, errorBody{Error: errorDetail{Code: label, Message: message}})
}

// DecodeBody decodes a JSON request body into dst, rejecting unknown fields.
func DecodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}

// ErrBadID is returned by ParseID for malformed ObjectID strings.
var ErrBadID = errors.New("invalid id")

// ParseID parses a hex ObjectID, normalizing all failures to ErrBadID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrBadID
	}
	return id, nil
}

// RequestLocale extracts the display locale from the request: the "locale"
// query parameter when it names a supported locale, otherwise "en".
func RequestLocale(r *http.Request) string {
	if l := r.URL.Query().Get("locale"); models.IsValidLocale(l) {
		return l
	}
	return models.LocaleEN
}

// NullableID is a PATCH-body field that distinguishes "absent" from
// "explicit null": Set is true only when the key appeared in the body, and
// an explicit null leaves Value empty, which callers treat as "clear the
// reference".
type NullableID struct {
	Set   bool
	Value string
}

func (n *NullableID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = ""
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}
