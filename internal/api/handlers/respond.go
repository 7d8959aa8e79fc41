package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/recipe-app/api/internal/api/middleware"
	"github.com/recipe-app/api/internal/api/types"
	"github.com/recipe-app/api/internal/api/validators"
	appErr "github.com/recipe-app/api/pkg/errors"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	types.WriteJSON(w, status, v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, types.APIResponse{Success: true, Data: data})
}

func writeList[T any](w http.ResponseWriter, r *http.Request, items []T) {
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    items,
		Meta: &types.Meta{
			RequestID: middleware.GetRequestID(r.Context()),
			Total:     int64(len(items)),
		},
	})
}

func writeError(w http.ResponseWriter, err error) {
	types.WriteError(w, err)
}

// decodeBody reads a JSON body into dst and runs the struct validator on it.
func decodeBody(w http.ResponseWriter, r *http.Request, v *validators.Validator, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return appErr.New(appErr.CodeInvalid, "request body is empty")
		}
		return appErr.Wrap(err, appErr.CodeInvalid, "invalid json")
	}
	return v.Struct(dst)
}

// pathID parses the {id} URL parameter. A malformed id cannot name a stored
// record, so it is reported as not found.
func pathID(r *http.Request, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, appErr.NotFound(entity)
	}
	return id, nil
}

// queryFlag reads boolean query flags such as assigned_only=1.
func queryFlag(r *http.Request, name string) bool {
	b, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && b
}
