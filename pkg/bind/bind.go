// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/vypar/config"
	"github.com/shashiranjanraj/vypar/pkg/apperr"
	"github.com/shashiranjanraj/vypar/pkg/validate"
)

// maxBodyBytes returns the configured request body size limit (default 4 MB).
func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "4194304"), 10, 64)
	if err != nil || n <= 0 {
		return 4 << 20 // 4 MB
	}
	return n
}

// JSON decodes r.Body as JSON into dest and runs struct-tag validation.
// The body is capped at MAX_BODY_BYTES to prevent memory exhaustion.
// Malformed JSON, an oversized body, and validation failures all come back as
// an apperr validation error ready for the boundary translator.
func JSON(r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		// An absent body decodes as the zero value; validation decides
		// whether that is acceptable.
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperr.Validation([]string{"body: request body too large"})
		}
		return apperr.Validation([]string{"body: invalid JSON"})
	}

	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return apperr.Validation(errs)
	}

	return nil
}
