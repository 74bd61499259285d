package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School Inventory API",
        "description": "Stock tracking for school supplies and books with a material request workflow",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": ["http"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication", "description": "Sessions and passwords"},
        {"name": "Materials", "description": "Consumable supplies"},
        {"name": "Books", "description": "Textbooks and workbooks"},
        {"name": "Requests", "description": "Material request workflow"},
        {"name": "Users", "description": "Account administration"},
        {"name": "Admin", "description": "Registries and audit trail"},
        {"name": "Reports", "description": "Stock report downloads"}
    ],
    "paths": {
        "/login": {
            "post": {"tags": ["Authentication"], "summary": "Authenticate user", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}]}
        },
        "/refresh": {
            "post": {"tags": ["Authentication"], "summary": "Exchange a refresh token", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}]}
        },
        "/logout": {
            "post": {"tags": ["Authentication"], "summary": "Revoke sessions", "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/current-user": {
            "get": {"tags": ["Authentication"], "summary": "Current user", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/change-password": {
            "post": {"tags": ["Authentication"], "summary": "Change password", "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangePasswordRequest"}}], "security": [{"BearerAuth": []}]}
        },
        "/materials": {
            "get": {"tags": ["Materials"], "summary": "List materials", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "category", "in": "query", "type": "string"}, {"name": "low_stock", "in": "query", "type": "boolean"}, {"name": "out_of_stock", "in": "query", "type": "boolean"}], "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Materials"], "summary": "Create material", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MaterialRequest"}}], "security": [{"BearerAuth": []}]}
        },
        "/materials/{id}": {
            "get": {"tags": ["Materials"], "summary": "Get material", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}]},
            "put": {"tags": ["Materials"], "summary": "Update material", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MaterialRequest"}}], "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Materials"], "summary": "Delete material", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}]}
        },
        "/materials/{id}/quantity": {
            "patch": {"tags": ["Materials"], "summary": "Adjust material quantity", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdjustQuantityRequest"}}], "security": [{"BearerAuth": []}]}
        },
        "/categories": {
            "get": {"tags": ["Materials"], "summary": "List material categories", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/stats": {
            "get": {"tags": ["Materials"], "summary": "Material stock statistics", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/books": {
            "get": {"tags": ["Books"], "summary": "List books", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "search", "in": "query", "type": "string"}, {"name": "publisher", "in": "query", "type": "string"}, {"name": "grade", "in": "query", "type": "integer"}, {"name": "type", "in": "query", "type": "string", "description": "textbook or workbook"}, {"name": "low_stock", "in": "query", "type": "boolean"}, {"name": "out_of_stock", "in": "query", "type": "boolean"}], "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Books"], "summary": "Create book", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookRequest"}}], "security": [{"BearerAuth": []}]}
        },
        "/books/{id}": {
            "get": {"tags": ["Books"], "summary": "Get book", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}]},
            "put": {"tags": ["Books"], "summary": "Update book", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookRequest"}}], "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Books"], "summary": "Delete book", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}]}
        },
        "/books/{id}/quantity": {
            "patch": {"tags": ["Books"], "summary": "Adjust book quantity", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdjustQuantityRequest"}}], "security": [{"BearerAuth": []}]}
        },
        "/books/grades": {
            "get": {"tags": ["Books"], "summary": "List grades in use", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/books/publishers": {
            "get": {"tags": ["Books"], "summary": "List publishers", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/books/stats": {
            "get": {"tags": ["Books"], "summary": "Book stock statistics", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "type", "in": "query", "type": "string"}], "security": [{"BearerAuth": []}]}
        },
        "/requests": {
            "get": {"tags": ["Requests"], "summary": "List material requests", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "user_id", "in": "query", "type": "string"}, {"name": "material_id", "in": "query", "type": "string"}, {"name": "status", "in": "query", "type": "string"}, {"name": "date_from", "in": "query", "type": "string", "description": "YYYY-MM-DD"}, {"name": "date_to", "in": "query", "type": "string", "description": "YYYY-MM-DD"}], "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Requests"], "summary": "Submit material requests", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitRequestsRequest"}}], "security": [{"BearerAuth": []}]}
        },
        "/requests/{id}": {
            "get": {"tags": ["Requests"], "summary": "Get material request", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}]},
            "put": {"tags": ["Requests"], "summary": "Approve or reject a request", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProcessRequestRequest"}}], "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Requests"], "summary": "Cancel a pending request", "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}]}
        },
        "/requests/stats": {
            "get": {"tags": ["Requests"], "summary": "Request counts per status", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/requests/history/{user_id}": {
            "get": {"tags": ["Requests"], "summary": "Request history of a user", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "user_id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}]}
        },
        "/users": {
            "get": {"tags": ["Users"], "summary": "List users", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Users"], "summary": "Create user", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}], "security": [{"BearerAuth": []}]}
        },
        "/users/{id}": {
            "get": {"tags": ["Users"], "summary": "Get user", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}]},
            "put": {"tags": ["Users"], "summary": "Update user", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateUserRequest"}}], "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Users"], "summary": "Delete user", "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}]}
        },
        "/security-logs": {
            "get": {"tags": ["Admin"], "summary": "Query security logs", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "limit", "in": "query", "type": "integer"}, {"name": "event_type", "in": "query", "type": "string"}, {"name": "username", "in": "query", "type": "string"}], "security": [{"BearerAuth": []}]}
        },
        "/reports/materials": {
            "get": {"tags": ["Reports"], "summary": "Material stock report", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "format", "in": "query", "type": "string", "description": "csv or pdf"}, {"name": "search", "in": "query", "type": "string"}, {"name": "category", "in": "query", "type": "string"}, {"name": "low_stock", "in": "query", "type": "boolean"}, {"name": "out_of_stock", "in": "query", "type": "boolean"}], "security": [{"BearerAuth": []}]}
        },
        "/reports/books": {
            "get": {"tags": ["Reports"], "summary": "Book stock report", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "format", "in": "query", "type": "string", "description": "csv or pdf"}, {"name": "search", "in": "query", "type": "string"}, {"name": "publisher", "in": "query", "type": "string"}, {"name": "grade", "in": "query", "type": "integer"}, {"name": "type", "in": "query", "type": "string", "description": "textbook or workbook"}, {"name": "low_stock", "in": "query", "type": "boolean"}, {"name": "out_of_stock", "in": "query", "type": "boolean"}], "security": [{"BearerAuth": []}]}
        },
        "/admin/categories": {
            "get": {"tags": ["Admin"], "summary": "List categories", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Admin"], "summary": "Register a name", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TaxonomyRequest"}}], "security": [{"BearerAuth": []}]},
            "put": {"tags": ["Admin"], "summary": "Rename a name", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RenameTaxonomyRequest"}}], "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Admin"], "summary": "Delete an unused name", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TaxonomyRequest"}}], "security": [{"BearerAuth": []}]}
        },
        "/admin/categories/{name}": {
            "delete": {"tags": ["Admin"], "summary": "Delete an unused name", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "name", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}]}
        },
        "/admin/publishers": {
            "get": {"tags": ["Admin"], "summary": "List publishers", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Admin"], "summary": "Register a name", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TaxonomyRequest"}}], "security": [{"BearerAuth": []}]},
            "put": {"tags": ["Admin"], "summary": "Rename a name", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RenameTaxonomyRequest"}}], "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Admin"], "summary": "Delete an unused name", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TaxonomyRequest"}}], "security": [{"BearerAuth": []}]}
        },
        "/admin/publishers/{name}": {
            "delete": {"tags": ["Admin"], "summary": "Delete an unused name", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"name": "name", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}]}
        }
    },
    "definitions": {
        "LoginRequest": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}}, "required": ["username", "password"]},
        "RefreshTokenRequest": {"type": "object", "properties": {"refresh_token": {"type": "string"}}, "required": ["refresh_token"]},
        "ChangePasswordRequest": {"type": "object", "properties": {"user_id": {"type": "string"}, "current_password": {"type": "string"}, "new_password": {"type": "string"}}, "required": ["new_password"]},
        "MaterialRequest": {"type": "object", "properties": {"name": {"type": "string"}, "category": {"type": "string"}, "quantity": {"type": "integer"}, "min_threshold": {"type": "integer"}, "max_threshold": {"type": "integer"}, "notes": {"type": "string"}}, "required": ["name", "category"]},
        "BookRequest": {"type": "object", "properties": {"type": {"type": "string", "enum": ["textbook", "workbook"]}, "subject": {"type": "string"}, "grade": {"type": "integer", "minimum": 1, "maximum": 7}, "publisher": {"type": "string"}, "author": {"type": "string"}, "quantity": {"type": "integer"}, "notes": {"type": "string"}}, "required": ["type", "subject", "grade"]},
        "AdjustQuantityRequest": {"type": "object", "properties": {"change": {"type": "integer"}}, "required": ["change"]},
        "TaxonomyRequest": {"type": "object", "properties": {"name": {"type": "string"}}, "required": ["name"]},
        "RenameTaxonomyRequest": {"type": "object", "properties": {"old_name": {"type": "string"}, "name": {"type": "string"}}, "required": ["old_name", "name"]},
        "RequestItem": {"type": "object", "properties": {"material_id": {"type": "string"}, "requested_quantity": {"type": "integer"}}},
        "SubmitRequestsRequest": {"type": "object", "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/RequestItem"}}, "notes": {"type": "string"}, "material_id": {"type": "string"}, "requested_quantity": {"type": "integer"}}},
        "ProcessRequestRequest": {"type": "object", "properties": {"status": {"type": "string", "enum": ["approved", "rejected"]}, "admin_notes": {"type": "string"}}, "required": ["status"]},
        "CreateUserRequest": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}, "full_name": {"type": "string"}, "company": {"type": "string"}, "role": {"type": "string", "enum": ["user", "admin"]}}, "required": ["username", "password"]},
        "UpdateUserRequest": {"type": "object", "properties": {"full_name": {"type": "string"}, "company": {"type": "string"}, "role": {"type": "string", "enum": ["user", "admin"]}}},
        "Pagination": {"type": "object", "properties": {"page": {"type": "integer"}, "page_size": {"type": "integer"}, "total_count": {"type": "integer"}}},
        "APIError": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "status": {"type": "integer"}}},
        "ResponseEnvelope": {"type": "object", "properties": {"data": {"type": "object"}, "error": {"$ref": "#/definitions/APIError"}, "pagination": {"$ref": "#/definitions/Pagination"}, "meta": {"type": "object"}}}
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
