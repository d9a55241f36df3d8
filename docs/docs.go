// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with: swag init -g main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/holdings": {
            "get": {"tags": ["holdings"], "summary": "List holdings", "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Owner ID", "name": "X-User-ID", "in": "header", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.HoldingListResponse"}},
                              "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}}},
            "post": {"tags": ["holdings"], "summary": "Add a holding", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Owner ID", "name": "X-User-ID", "in": "header", "required": true},
                               {"description": "Holding", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateHoldingRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.HoldingListResponse"}},
                              "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}}}
        },
        "/holdings/import": {
            "post": {"tags": ["holdings"], "summary": "Import holdings from CSV", "consumes": ["multipart/form-data"], "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Owner ID", "name": "X-User-ID", "in": "header", "required": true},
                               {"type": "file", "description": "Holdings CSV", "name": "holdings", "in": "formData", "required": true}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.ImportHoldingsResponse"}},
                              "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}}}
        },
        "/holdings/{id}": {
            "get": {"tags": ["holdings"], "summary": "Get a holding", "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Owner ID", "name": "X-User-ID", "in": "header", "required": true},
                               {"type": "integer", "description": "Holding ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}}},
            "put": {"tags": ["holdings"], "summary": "Update a holding", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Owner ID", "name": "X-User-ID", "in": "header", "required": true},
                               {"type": "integer", "description": "Holding ID", "name": "id", "in": "path", "required": true},
                               {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.HoldingListResponse"}}}},
            "delete": {"tags": ["holdings"], "summary": "Delete a holding",
                "parameters": [{"type": "integer", "description": "Owner ID", "name": "X-User-ID", "in": "header", "required": true},
                               {"type": "integer", "description": "Holding ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/grants": {
            "get": {"tags": ["grants"], "summary": "List grant tranches",
                "parameters": [{"type": "integer", "description": "Owner ID", "name": "X-User-ID", "in": "header", "required": true}],
                "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["grants"], "summary": "Add a grant tranche", "consumes": ["application/json"],
                "parameters": [{"type": "integer", "description": "Owner ID", "name": "X-User-ID", "in": "header", "required": true},
                               {"description": "Tranche", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/grants/{id}": {
            "delete": {"tags": ["grants"], "summary": "Delete a grant tranche",
                "parameters": [{"type": "integer", "description": "Owner ID", "name": "X-User-ID", "in": "header", "required": true},
                               {"type": "integer", "description": "Grant ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/settings": {
            "get": {"tags": ["settings"], "summary": "Get settings",
                "parameters": [{"type": "integer", "description": "Owner ID", "name": "X-User-ID", "in": "header", "required": true}],
                "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["settings"], "summary": "Update settings", "consumes": ["application/json"],
                "parameters": [{"type": "integer", "description": "Owner ID", "name": "X-User-ID", "in": "header", "required": true},
                               {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/portfolio/summary": {
            "get": {"tags": ["portfolio"], "summary": "Portfolio summary",
                "parameters": [{"type": "integer", "description": "Owner ID", "name": "X-User-ID", "in": "header", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/portfolio/grants": {
            "get": {"tags": ["portfolio"], "summary": "Employee equity grants",
                "parameters": [{"type": "integer", "description": "Owner ID", "name": "X-User-ID", "in": "header", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/portfolio/rebalance": {
            "get": {"tags": ["portfolio"], "summary": "Rebalancing drift",
                "parameters": [{"type": "integer", "description": "Owner ID", "name": "X-User-ID", "in": "header", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "models.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}, "message": {"type": "string"}}},
        "models.CreateHoldingRequest": {"type": "object", "required": ["currency", "kind", "name", "symbol"],
            "properties": {"name": {"type": "string"}, "kind": {"type": "string"}, "category": {"type": "string"},
                "symbol": {"type": "string"}, "quantity": {"type": "number"}, "cost_per_unit": {"type": "number"},
                "currency": {"type": "string"}, "manual_price": {"type": "number"}, "tax_rate": {"type": "number"},
                "notes": {"type": "string"}, "acquired_at": {"type": "string"}}},
        "models.HoldingListResponse": {"type": "object", "properties": {"holdings": {"type": "array", "items": {"type": "object"}},
            "warnings": {"type": "array", "items": {"type": "object"}}}},
        "models.ImportHoldingsResponse": {"type": "object", "properties": {"imported": {"type": "integer"},
            "holdings": {"type": "array", "items": {"type": "object"}}, "warnings": {"type": "array", "items": {"type": "object"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "networth API",
	Description:      "Household portfolio valuation across USD and ILS holdings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
