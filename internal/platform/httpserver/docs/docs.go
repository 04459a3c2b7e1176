// Package docs registers the crudhub OpenAPI document with swag so that
// http-swagger can serve it at /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

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
        "/api/todos": {
            "get": {"tags": ["todos"], "summary": "List todos", "parameters": [{"name": "status", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Todo"}}}}},
            "post": {"tags": ["todos"], "summary": "Create a todo", "parameters": [{"name": "X-User-Id", "in": "header", "required": true, "type": "string"}, {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TodoInput"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Todo"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Error"}}}}
        },
        "/api/todos/{id}": {
            "get": {"tags": ["todos"], "summary": "Get a todo", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Todo"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}}},
            "put": {"tags": ["todos"], "summary": "Update a todo", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "X-User-Id", "in": "header", "required": true, "type": "string"}, {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TodoInput"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Todo"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}}},
            "delete": {"tags": ["todos"], "summary": "Delete a todo", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "X-User-Id", "in": "header", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}}}
        },
        "/api/crud-tasks": {
            "get": {"tags": ["tasks"], "summary": "List tasks", "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "limit", "in": "query", "type": "integer"}, {"name": "title", "in": "query", "type": "string"}, {"name": "status", "in": "query", "type": "string"}, {"name": "due_date", "in": "query", "type": "string", "format": "date-time"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/TaskPage"}}}},
            "post": {"tags": ["tasks"], "summary": "Create a task", "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TaskInput"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Task"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}}}
        },
        "/api/crud-tasks/{id}": {
            "get": {"tags": ["tasks"], "summary": "Get a task", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Task"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}}},
            "put": {"tags": ["tasks"], "summary": "Update a task", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TaskInput"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Task"}}}},
            "delete": {"tags": ["tasks"], "summary": "Delete a task", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/api/products": {
            "get": {"tags": ["products"], "summary": "List products", "parameters": [{"name": "limit", "in": "query", "type": "integer"}, {"name": "skip", "in": "query", "type": "integer"}, {"name": "name", "in": "query", "type": "string"}, {"name": "status", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ProductList"}}}},
            "post": {"tags": ["products"], "summary": "Create a product", "parameters": [{"name": "Idempotency-Key", "in": "header", "type": "string"}, {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProductInput"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Product"}}, "200": {"description": "Replayed", "schema": {"$ref": "#/definitions/Product"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Error"}}}}
        },
        "/api/products/search": {
            "get": {"tags": ["products"], "summary": "Search products", "parameters": [{"name": "q", "in": "query", "required": true, "type": "string"}, {"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"type": "object", "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/Product"}}}}}}}
        },
        "/api/products/{id}": {
            "get": {"tags": ["products"], "summary": "Get a product", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Product"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}}},
            "put": {"tags": ["products"], "summary": "Update a product", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}, {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProductInput"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Product"}}}},
            "delete": {"tags": ["products"], "summary": "Soft delete a product", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Product"}}}}
        },
        "/api/examples": {
            "get": {"tags": ["examples"], "summary": "List examples", "parameters": [{"name": "limit", "in": "query", "type": "integer"}, {"name": "skip", "in": "query", "type": "integer"}, {"name": "status", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ExampleList"}}}},
            "post": {"tags": ["examples"], "summary": "Create an example", "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExampleInput"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Example"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}}},
            "delete": {"tags": ["examples"], "summary": "Delete examples by status", "parameters": [{"name": "status", "in": "query", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"type": "object", "properties": {"deleted_count": {"type": "integer"}}}}}}
        },
        "/api/examples/search": {
            "get": {"tags": ["examples"], "summary": "Find examples by name", "parameters": [{"name": "name", "in": "query", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Example"}}}}}
        },
        "/api/examples/{id}": {
            "get": {"tags": ["examples"], "summary": "Get an example", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Example"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}}},
            "put": {"tags": ["examples"], "summary": "Update an example", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExampleInput"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Example"}}}},
            "delete": {"tags": ["examples"], "summary": "Delete an example", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/api/examples/{id}/status": {
            "patch": {"tags": ["examples"], "summary": "Change example status", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "body", "in": "body", "required": true, "schema": {"type": "object", "properties": {"status": {"type": "string"}}}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Example"}}}}
        },
        "/healthz": {
            "get": {"tags": ["platform"], "summary": "Liveness", "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "Error": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}}},
        "TodoInput": {"type": "object", "properties": {"title": {"type": "string", "maxLength": 100}, "description": {"type": "string", "maxLength": 500}, "status": {"type": "string", "enum": ["pending", "in-progress", "completed"]}}},
        "Todo": {"type": "object", "properties": {"id": {"type": "string"}, "owner_id": {"type": "string"}, "title": {"type": "string"}, "description": {"type": "string"}, "status": {"type": "string"}, "created_at": {"type": "string", "format": "date-time"}, "updated_at": {"type": "string", "format": "date-time"}}},
        "TaskInput": {"type": "object", "properties": {"title": {"type": "string", "maxLength": 100}, "description": {"type": "string", "maxLength": 500}, "status": {"type": "string", "enum": ["pending", "in-progress", "completed"]}, "due_date": {"type": "string", "format": "date-time"}}},
        "Task": {"type": "object", "properties": {"id": {"type": "string"}, "title": {"type": "string"}, "description": {"type": "string"}, "status": {"type": "string"}, "due_date": {"type": "string", "format": "date-time"}, "created_at": {"type": "string", "format": "date-time"}, "updated_at": {"type": "string", "format": "date-time"}}},
        "TaskPage": {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/Task"}}, "total": {"type": "integer"}, "page": {"type": "integer"}, "total_pages": {"type": "integer"}}},
        "ProductInput": {"type": "object", "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "price": {"type": "number", "minimum": 0}, "quantity": {"type": "integer", "minimum": 0}, "status": {"type": "string", "enum": ["active", "deleted"]}}},
        "Product": {"type": "object", "properties": {"id": {"type": "string", "format": "uuid"}, "name": {"type": "string"}, "description": {"type": "string"}, "price": {"type": "number"}, "quantity": {"type": "integer"}, "status": {"type": "string"}, "created_at": {"type": "string", "format": "date-time"}, "updated_at": {"type": "string", "format": "date-time"}}},
        "ProductList": {"type": "object", "properties": {"count": {"type": "integer"}, "items": {"type": "array", "items": {"$ref": "#/definitions/Product"}}}},
        "ExampleInput": {"type": "object", "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "status": {"type": "string", "enum": ["active", "inactive"]}}},
        "Example": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "description": {"type": "string"}, "status": {"type": "string"}, "created_at": {"type": "string", "format": "date-time"}, "updated_at": {"type": "string", "format": "date-time"}}},
        "ExampleList": {"type": "object", "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/Example"}}, "count": {"type": "integer"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "crudhub API",
	Description:      "CRUD services for todos, tasks, products and examples.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
