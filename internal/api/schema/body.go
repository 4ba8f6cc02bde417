package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

var (
	errRequestBodyInvalidJSON = func(err string) *Error {
		return &Error{
			Type:    "validation.requestBody.invalidJSON",
			Message: "Request body is not a valid JSON input.",
			Details: map[string]any{
				"error": err,
			},
		}
	}
	errRequestBodyParameterInvalidType = func(name, expectedType string) *Error {
		return &Error{
			Type:    "validation.requestBody.parameter.invalidType",
			Message: fmt.Sprintf("The request body parameter '%s' could not be assigned to the required type (%s).", name, expectedType),
			Details: map[string]any{
				"parameter":     name,
				"expected_type": expectedType,
			},
		}
	}
	errRequestBodyParameterMissing = func(name string) *Error {
		return &Error{
			Type:    "validation.requestBody.parameter.missing",
			Message: fmt.Sprintf("The request body parameter '%s' is required but was not present in the request.", name),
			Details: map[string]any{
				"parameter": name,
			},
		}
	}
	errRequestBodyParameterNumberOutOfRange = func(name string, value, min, max int64) *Error {
		comparison := ""
		if value < min {
			comparison = fmt.Sprintf("%d [given] < %d [min]", value, min)
		} else if value > max {
			comparison = fmt.Sprintf("%d [given] > %d [max]", value, max)
		}

		return &Error{
			Type:    "validation.requestBody.parameter.number.outOfRange",
			Message: fmt.Sprintf("The request body parameter '%s' is out of the required range (%s).", name, comparison),
			Details: map[string]any{
				"parameter": name,
				"value":     value,
				"min":       min,
				"max":       max,
			},
		}
	}
)

// UnmarshalBody parses and decodes a JSON request body and validates it using the 'required', 'min' and 'max' struct
// tags of T's top-level fields.
// An empty body is treated like an empty JSON object.
// 'required' fields have to be pointers.
func UnmarshalBody[T any](request *http.Request) (*T, []*Error, error) {
	body, err := io.ReadAll(request.Body)
	if err != nil {
		return nil, nil, err
	}

	target := new(T)
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, target); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				return nil, []*Error{errRequestBodyParameterInvalidType(typeErr.Field, typeErr.Type.String())}, nil
			}
			return nil, []*Error{errRequestBodyInvalidJSON(err.Error())}, nil
		}
	}

	errs, err := validateFields(target)
	if err != nil {
		return nil, nil, err
	}
	if len(errs) > 0 {
		return nil, errs, nil
	}
	return target, nil, nil
}

func validateFields(val any) ([]*Error, error) {
	ref := reflect.Indirect(reflect.ValueOf(val))
	if ref.Kind() != reflect.Struct {
		return nil, errors.New("illegal call to validateFields with non-struct parameter")
	}
	typ := ref.Type()

	var errs []*Error
	for i := 0; i < typ.NumField(); i++ {
		fieldDef := typ.Field(i)
		field := ref.Field(i)
		name := getFieldName(fieldDef)

		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				if strings.EqualFold(fieldDef.Tag.Get("required"), "true") {
					errs = append(errs, errRequestBodyParameterMissing(name))
				}
				continue
			}
			field = field.Elem()
		}

		var num int64
		switch {
		case field.CanInt():
			num = field.Int()
		case field.CanUint():
			num = int64(field.Uint())
		default:
			continue
		}
		min := parseBound(fieldDef.Tag.Get("min"), -1<<63)
		max := parseBound(fieldDef.Tag.Get("max"), 1<<63-1)
		if num < min || num > max {
			errs = append(errs, errRequestBodyParameterNumberOutOfRange(name, num, min, max))
		}
	}
	return errs, nil
}

func parseBound(raw string, def int64) int64 {
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getFieldName(def reflect.StructField) string {
	jsonVal, ok := def.Tag.Lookup("json")
	if !ok || jsonVal == "-" {
		return def.Name
	}
	name, _, _ := strings.Cut(jsonVal, ",")
	return name
}
