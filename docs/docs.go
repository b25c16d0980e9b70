// Package docs registers the OpenAPI document for the annotations in
// internal/handlers. Keep it in step with them; `swag init -g
// internal/handlers/swagger.go` regenerates it.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/users": {
            "post": {
                "description": "Store a user under a newly generated version 1 UUID",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Create a user",
                "parameters": [
                    {
                        "description": "User data",
                        "name": "user",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.User"}
                    }
                ],
                "responses": {
                    "201": {"description": "Empty body", "schema": {"type": "object"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Empty body", "schema": {"type": "object"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "description": "Read a user by its version 1 UUID",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get a user",
                "parameters": [
                    {"type": "string", "description": "User ID (UUID v1)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "404": {"description": "Empty body", "schema": {"type": "object"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Empty body", "schema": {"type": "object"}}
                }
            },
            "put": {
                "description": "Overwrite every field of a user, creating it when absent",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update a user",
                "parameters": [
                    {"type": "string", "description": "User ID (UUID v1)", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Complete user data",
                        "name": "user",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.User"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Empty body", "schema": {"type": "object"}}
                }
            },
            "delete": {
                "description": "Remove a user by its version 1 UUID",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Delete a user",
                "parameters": [
                    {"type": "string", "description": "User ID (UUID v1)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Empty body", "schema": {"type": "object"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Empty body", "schema": {"type": "object"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "models.Address": {
            "type": "object",
            "required": ["city", "country", "postal", "state", "streetAddress"],
            "properties": {
                "city": {"type": "string"},
                "country": {"type": "string"},
                "postal": {"type": "string"},
                "state": {"type": "string"},
                "streetAddress": {"type": "string"},
                "streetAddress2": {"type": "string"}
            }
        },
        "models.User": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "address": {"$ref": "#/definitions/models.Address"},
                "description": {"type": "string"},
                "dob": {"type": "string"},
                "name": {"type": "string"}
            }
        }
    },
    "tags": [
        {"description": "User management operations", "name": "users"}
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "User CRUD API",
	Description:      "User records in a key-value table, addressed by version 1 UUIDs.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
