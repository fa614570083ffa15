package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"

	"taskapi/internal/core/domain"
	"taskapi/internal/core/model/response"
)

var ErrMalformedBody = domain.NewAppError(http.StatusBadRequest, "Malformed JSON body", nil)

// BindParams binds path parameters into dst and validates them.
func BindParams(c *gin.Context, dst any) []response.ValidationError {
	if err := c.ShouldBindUri(dst); err != nil {
		return []response.ValidationError{{Field: LocationParams, Location: LocationParams, Message: invalidValue}}
	}

	return ValidateStruct(LocationParams, dst)
}

// BindQuery binds the query string into dst and validates it.
func BindQuery(c *gin.Context, dst any) []response.ValidationError {
	if err := c.ShouldBindQuery(dst); err != nil {
		return []response.ValidationError{{Field: LocationQuery, Location: LocationQuery, Message: invalidValue}}
	}

	return ValidateStruct(LocationQuery, dst)
}

// BindBody decodes a JSON object body into dst field by field, so that every
// field with a wrong JSON type is reported, then validates the rest. It also
// returns the set of fields present in the body. An empty body counts as {}.
// A body that is not JSON at all yields ErrMalformedBody.
func BindBody(c *gin.Context, dst any) (map[string]bool, []response.ValidationError, error) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, nil, err
	}

	return DecodeBody(raw, dst)
}

func DecodeBody(raw []byte, dst any) (map[string]bool, []response.ValidationError, error) {
	provided := map[string]bool{}

	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}

	if !json.Valid(raw) {
		return nil, nil, ErrMalformedBody
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, []response.ValidationError{{Field: LocationBody, Location: LocationBody, Message: invalidValue}}, nil
	}

	var violations []response.ValidationError
	var failed []string

	target := reflect.ValueOf(dst).Elem()
	targetType := target.Type()

	for i := 0; i < targetType.NumField(); i++ {
		name := strings.SplitN(targetType.Field(i).Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}

		value, ok := fields[name]
		if !ok {
			continue
		}

		provided[name] = true

		if err := json.Unmarshal(value, target.Field(i).Addr().Interface()); err != nil {
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &typeErr) {
				return nil, nil, ErrMalformedBody
			}

			failed = append(failed, name)
			violations = append(violations, response.ValidationError{
				Field:    name,
				Location: LocationBody,
				Message:  invalidValue,
				Value:    value,
			})
		}
	}

	violations = append(violations, ValidateStruct(LocationBody, dst, failed...)...)

	return provided, violations, nil
}
