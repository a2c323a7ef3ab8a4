package helpers

import (
	"encoding/json"
	"net/http"
)

// DecodeJSON decodes the request body into dest with DisallowUnknownFields.
// On failure it writes a 400 JSON error and returns false; callers should
// return immediately in that case. Field validation is not done here — the
// validation engine runs inside the services so that structural and business
// errors are reported together.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return false
	}
	return true
}
