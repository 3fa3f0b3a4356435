// Package docs registers the OpenAPI document served at /swagger.
//
// Regenerate with: swag init -g cmd/api/main.go -o internal/docs
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
        "/users": {
            "get": {"tags": ["users"], "summary": "List users", "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "Paginated users"}, "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}},
            "post": {"tags": ["users"], "summary": "Create user", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateUserRequest"}}],
                "responses": {"201": {"description": "User created"}, "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}, "409": {"description": "Duplicate username", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/users/{id}": {
            "get": {"tags": ["users"], "summary": "Get user", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "User"}, "404": {"description": "User not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/users/{id}/deposit": {
            "post": {"tags": ["users"], "summary": "Deposit", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.AmountRequest"}}
                ],
                "responses": {"200": {"description": "Updated user"}, "404": {"description": "User not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/users/{id}/withdraw": {
            "post": {"tags": ["users"], "summary": "Withdraw", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.AmountRequest"}}
                ],
                "responses": {"200": {"description": "Updated user"}, "422": {"description": "Insufficient funds", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/users/{id}/trades": {
            "get": {"tags": ["trades"], "summary": "List trades", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "Paginated trades"}, "404": {"description": "User not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/assets": {
            "get": {"tags": ["assets"], "summary": "List assets", "produces": ["application/json"],
                "responses": {"200": {"description": "Paginated assets"}}},
            "post": {"tags": ["assets"], "summary": "Create asset", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateAssetRequest"}}],
                "responses": {"201": {"description": "Asset created"}, "409": {"description": "Duplicate asset", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/assets/{id}": {
            "get": {"tags": ["assets"], "summary": "Get asset", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Asset"}, "404": {"description": "Asset not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}},
            "put": {"tags": ["assets"], "summary": "Update asset", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateAssetRequest"}}
                ],
                "responses": {"200": {"description": "Updated asset"}, "404": {"description": "Asset not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}},
            "delete": {"tags": ["assets"], "summary": "Delete asset", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Asset deleted"}, "409": {"description": "Asset in use", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/portfolios": {
            "post": {"tags": ["portfolios"], "summary": "Create portfolio", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreatePortfolioRequest"}}],
                "responses": {"201": {"description": "Portfolio created"}, "409": {"description": "Portfolio already exists", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/portfolios/{user_id}": {
            "get": {"tags": ["portfolios"], "summary": "Get portfolio", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Portfolio"}, "404": {"description": "Portfolio not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/portfolios/{user_id}/value": {
            "get": {"tags": ["portfolios"], "summary": "Portfolio value", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Value", "schema": {"$ref": "#/definitions/handlers.ValueResponse"}}}}
        },
        "/portfolios/{user_id}/holdings": {
            "get": {"tags": ["portfolios"], "summary": "List holdings", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Holdings"}, "404": {"description": "Portfolio not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/portfolios/{user_id}/holdings/{asset_id}": {
            "get": {"tags": ["portfolios"], "summary": "Get holding", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "user_id", "in": "path", "required": true},
                    {"type": "string", "name": "asset_id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "Holding"}, "404": {"description": "Holding not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/trades/{user_id}/buy": {
            "post": {"tags": ["trades"], "summary": "Buy", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "user_id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.BuyRequest"}}
                ],
                "responses": {"200": {"description": "Trade settled"}, "422": {"description": "Insufficient funds", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}, "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}, "503": {"description": "Transient store failure", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/trades/{user_id}/sell": {
            "post": {"tags": ["trades"], "summary": "Sell", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "user_id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SellRequest"}}
                ],
                "responses": {"200": {"description": "Trade settled"}, "422": {"description": "Insufficient quantity", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}, "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}, "503": {"description": "Transient store failure", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/leaderboard": {
            "get": {"tags": ["leaderboard"], "summary": "Leaderboard", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "top_n", "in": "query"}],
                "responses": {"200": {"description": "Leaderboard"}, "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/leaderboard/ranks": {
            "post": {"tags": ["leaderboard"], "summary": "Recompute ranks", "produces": ["application/json"],
                "responses": {"200": {"description": "Number of users ranked"}}}
        }
    },
    "definitions": {
        "handlers.ErrorDetail": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}}},
        "handlers.ErrorResponse": {"type": "object", "properties": {"error": {"$ref": "#/definitions/handlers.ErrorDetail"}}},
        "handlers.CreateUserRequest": {"type": "object", "required": ["username"], "properties": {"username": {"type": "string"}, "opening_balance": {"type": "string", "example": "1000.00"}}},
        "handlers.AmountRequest": {"type": "object", "properties": {"amount": {"type": "string", "example": "250.00"}}},
        "handlers.CreateAssetRequest": {"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}, "price": {"type": "string", "example": "50.00"}}},
        "handlers.UpdateAssetRequest": {"type": "object", "properties": {"name": {"type": "string"}, "price": {"type": "string"}}},
        "handlers.CreatePortfolioRequest": {"type": "object", "required": ["user_id"], "properties": {"user_id": {"type": "string"}}},
        "handlers.ValueResponse": {"type": "object", "properties": {"user_id": {"type": "string"}, "value": {"type": "string"}, "display": {"type": "string"}}},
        "handlers.BuyRequest": {"type": "object", "required": ["asset_id", "quantity"], "properties": {"asset_id": {"type": "string"}, "quantity": {"type": "integer"}, "price": {"type": "string"}}},
        "handlers.SellRequest": {"type": "object", "required": ["asset_id", "quantity"], "properties": {"asset_id": {"type": "string"}, "quantity": {"type": "integer"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Gemtrade API",
	Description:      "Gamified paper-trading ledger: wallets, portfolios, atomic trade settlement and a gem leaderboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
