// internal/handlers/http/decode.go
package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"aps-bridge/internal/util"
)

// decodeJSON reads a single JSON object from the body, capped at limit bytes.
// An empty body is rejected, as is anything that is not valid JSON or that
// carries data after the first value.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	body := http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return util.BadInput("request body must be a JSON object")
		}
		return decodeErr(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return decodeErr(err)
	}
	return nil
}

func decodeErr(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return util.TooLarge("request body too large")
	}
	return util.BadInput("bad json")
}
