package swaggerkit

import (
	"net/http"
	"strconv"
	"strings"

	perr "scopetrack/internal/platform/errors"
)

// errorResponses are added to every operation that does not declare them
var errorResponses = []struct {
	status  int
	code    perr.ErrorCode
	message string
}{
	{http.StatusBadRequest, perr.ErrorCodeJSON, "invalid JSON: unexpected EOF"},
	{http.StatusUnprocessableEntity, perr.ErrorCodeValidation, "work_performed must be at most 20000"},
	{http.StatusInternalServerError, perr.ErrorCodePanic, "internal error"},
	{http.StatusServiceUnavailable, perr.ErrorCodeUnavailable, "scope store unavailable"},
}

// decorate lifts the swag output to OAS 3.0 and adds the error envelope to every operation
func decorate(spec map[string]any, o Options) {
	if v, _ := spec["openapi"].(string); v == "" || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	delete(spec, "swagger")
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": o.BaseURL}}
	}
	if info, ok := spec["info"].(map[string]any); ok && o.TitleSuffix != "" {
		title, _ := info["title"].(string)
		info["title"] = strings.TrimSpace(title + " " + o.TitleSuffix)
	}

	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = errorSchema()
	}

	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		ops, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, op := range ops {
			if op, ok := op.(map[string]any); ok {
				addErrors(child(op, "responses"))
			}
		}
	}
}

func addErrors(responses map[string]any) {
	for _, e := range errorResponses {
		key := strconv.Itoa(e.status)
		if _, ok := responses[key]; ok {
			continue
		}
		text := http.StatusText(e.status)
		responses[key] = map[string]any{
			"description": text,
			"content": map[string]any{"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": e.status,
					"status":      text,
					"code":        e.code,
					"kind":        e.code.String(),
					"error":       e.message,
				},
			}},
		}
	}
}

func errorSchema() map[string]any {
	prop := func(typ string) map[string]any { return map[string]any{"type": typ} }
	return map[string]any{
		"type":        "object",
		"description": "Error envelope",
		"properties": map[string]any{
			"status_code": prop("integer"),
			"status":      prop("string"),
			"code":        prop("integer"),
			"kind":        prop("string"),
			"error":       prop("string"),
			"field":       prop("string"),
			"request_id":  prop("string"),
		},
		"required": []any{"status_code", "status"},
	}
}

// child returns m[key] as a map, creating it when missing
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}
