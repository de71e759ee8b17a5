// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "tags": ["Index"],
                "summary": "Greeting",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/MessageResponse"}
                    }
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "Server is running"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Database reachable"},
                    "503": {"description": "Database unavailable"}
                }
            }
        },
        "/todo": {
            "get": {
                "tags": ["Todo"],
                "summary": "List todos",
                "description": "Returns every todo ordered by id. Timestamps are rendered in the server's local zone.",
                "produces": ["application/json"],
                "parameters": [
                    {
                        "type": "string",
                        "name": "desc",
                        "in": "query",
                        "description": "Accepted for compatibility; does not filter"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/TodoListResponse"}
                    },
                    "500": {
                        "description": "Store failure",
                        "schema": {"$ref": "#/definitions/ErrorResponse"}
                    }
                }
            },
            "post": {
                "tags": ["Todo"],
                "summary": "Create a todo",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "todo",
                        "required": true,
                        "schema": {"$ref": "#/definitions/TodoRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/TodoResponse"}
                    },
                    "400": {
                        "description": "Missing field or malformed start_time",
                        "schema": {"$ref": "#/definitions/ErrorResponse"}
                    },
                    "500": {
                        "description": "Store failure",
                        "schema": {"$ref": "#/definitions/ErrorResponse"}
                    }
                }
            }
        },
        "/todo/{id}": {
            "put": {
                "tags": ["Todo"],
                "summary": "Partially update a todo",
                "description": "Only the supplied fields are changed.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "todo",
                        "required": true,
                        "schema": {"$ref": "#/definitions/TodoRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/TodoResponse"}
                    },
                    "400": {
                        "description": "Invalid id or malformed start_time",
                        "schema": {"$ref": "#/definitions/ErrorResponse"}
                    },
                    "404": {
                        "description": "No todo with this id",
                        "schema": {"$ref": "#/definitions/ErrorResponse"}
                    }
                }
            },
            "delete": {
                "tags": ["Todo"],
                "summary": "Delete a todo",
                "description": "Returns the row as it was before deletion.",
                "produces": ["application/json"],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/TodoResponse"}
                    },
                    "400": {
                        "description": "Invalid id",
                        "schema": {"$ref": "#/definitions/ErrorResponse"}
                    },
                    "404": {
                        "description": "No todo with this id",
                        "schema": {"$ref": "#/definitions/ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "MessageResponse": {
            "type": "object",
            "properties": {
                "msg": {"type": "string", "example": "Hello World"}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "msg": {"type": "string", "example": "title is required"},
                "path": {"type": "string", "example": "/todo"}
            }
        },
        "TodoRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "example": "Buy milk"},
                "body": {"type": "string", "example": "2%"},
                "start_time": {"type": "string", "example": "2024-01-15 09:00:00 +0700"}
            }
        },
        "Todo": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "title": {"type": "string"},
                "body": {"type": "string"},
                "start_time": {"type": "string", "format": "date-time"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "TodoView": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "title": {"type": "string"},
                "body": {"type": "string"},
                "start_time": {"type": "string", "example": "2024-01-15 09:00:00 +07:00"},
                "created_at": {"type": "string", "example": "2024-01-10 19:00:00.123456 +07:00"}
            }
        },
        "TodoResponse": {
            "type": "object",
            "properties": {
                "msg": {"type": "string", "example": "Success"},
                "data": {"$ref": "#/definitions/Todo"}
            }
        },
        "TodoListResponse": {
            "type": "object",
            "properties": {
                "msg": {"type": "string", "example": "Success"},
                "datas": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/TodoView"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Todo API",
	Description:      "Minimal todo service backed by PostgreSQL",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
