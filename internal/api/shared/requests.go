package shared

import (
	"encoding/json"
	"net/http"

	"github.com/grocerhub/grocer-api/internal/httperr"
)

// DecodeJSON decodes the request body into v. The content negotiator has
// already verified the body is well-formed JSON; failures here are shape
// mismatches and surface as the same INVALID_JSON error.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return httperr.BadRequest("Request body must contain valid JSON").
			WithCode("INVALID_JSON").
			WithDetails("Please check the request body and try again.").
			Wrap(err)
	}
	return nil
}
