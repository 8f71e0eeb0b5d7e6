//go:build swag

// Package docs holds the swagger template served by swaggerkit; regenerate with
// swag init -g cmd/scopetrack-api/main.go -o internal/services/api/docs --instanceName api
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/scopes/{project}": {
            "get": {
                "tags": ["Scopes"],
                "summary": "Get the stored checklist for a project",
                "parameters": [{"type": "string", "name": "project", "in": "path", "required": true}],
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/Scope"}}}
            },
            "put": {
                "tags": ["Scopes"],
                "summary": "Replace the checklist with explicit items",
                "parameters": [
                    {"type": "string", "name": "project", "in": "path", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReplaceInput"}}
                ],
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/Scope"}}}
            }
        },
        "/scopes/{project}/document": {
            "post": {
                "tags": ["Scopes"],
                "summary": "Upload a scope document and store its checklist",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"type": "string", "name": "project", "in": "path", "required": true},
                    {"type": "file", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "name": "format", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "created", "schema": {"$ref": "#/definitions/Scope"}},
                    "422": {"description": "extraction or validation error"}
                }
            }
        },
        "/logs/{project}": {
            "post": {
                "tags": ["Logs"],
                "summary": "Reconcile a daily log against the project scope",
                "parameters": [
                    {"type": "string", "name": "project", "in": "path", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitInput"}}
                ],
                "responses": {"200": {"description": "ok"}, "422": {"description": "validation or matching error"}}
            }
        },
        "/logs/{project}/history": {
            "get": {
                "tags": ["Logs"],
                "summary": "Recent reconciliation snapshots for a project",
                "parameters": [
                    {"type": "string", "name": "project", "in": "path", "required": true},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "ok"}, "503": {"description": "history disabled"}}
            }
        },
        "/drafts/{project}": {
            "get": {
                "tags": ["Drafts"],
                "summary": "Get the autofill draft for a project",
                "parameters": [{"type": "string", "name": "project", "in": "path", "required": true}],
                "responses": {"200": {"description": "ok"}}
            },
            "put": {
                "tags": ["Drafts"],
                "summary": "Replace the autofill draft for a project",
                "parameters": [{"type": "string", "name": "project", "in": "path", "required": true}],
                "responses": {"200": {"description": "ok"}}
            }
        },
        "/meta/health": {"get": {"tags": ["Meta"], "summary": "Health check", "responses": {"200": {"description": "ok"}}}},
        "/meta/ready": {"get": {"tags": ["Meta"], "summary": "Readiness probe with dependency checks", "responses": {"200": {"description": "ok"}}}},
        "/meta/version": {"get": {"tags": ["Meta"], "summary": "Build and version info", "responses": {"200": {"description": "ok"}}}},
        "/meta/matcher": {"get": {"tags": ["Meta"], "summary": "Active matching thresholds", "responses": {"200": {"description": "ok"}}}}
    },
    "definitions": {
        "Scope": {
            "type": "object",
            "properties": {
                "project_id": {"type": "string"},
                "items": {"type": "array", "items": {"type": "string"}},
                "count": {"type": "integer"}
            }
        },
        "ReplaceInput": {
            "type": "object",
            "required": ["items"],
            "properties": {"items": {"type": "array", "items": {"type": "string"}}}
        },
        "SubmitInput": {
            "type": "object",
            "properties": {
                "work_performed": {"type": "string"},
                "crew_notes": {"type": "string"},
                "safety_notes": {"type": "string"},
                "extra": {"type": "string"},
                "format": {"type": "string", "enum": ["text", "markdown", "json", "xlsx"]}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Scopetrack API",
	Description:      "Scope checklists, daily log reconciliation and progress reports",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
