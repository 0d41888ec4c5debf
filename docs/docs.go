// Package docs registers the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "http://swagger.io/terms/",
        "contact": {
            "name": "API Support",
            "url": "http://www.swagger.io/support",
            "email": "support@swagger.io"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login as the admin",
                "parameters": [
                    {"description": "request body", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.AdminLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.AdminLoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Err"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Err"}}
                }
            }
        },
        "/auth/check": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Report whether the admin account exists",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.AdminCheckResponse"}}
                }
            }
        },
        "/tickets/generate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Issue a ticket",
                "parameters": [
                    {"description": "request body", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.GenerateTicketRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.TicketResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Err"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Err"}}
                }
            }
        },
        "/tickets/list": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "List tickets, most recent first",
                "parameters": [
                    {"type": "string", "description": "active, used or cancelled", "name": "status", "in": "query"},
                    {"type": "string", "description": "owner email", "name": "email", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.TicketListResponse"}}
                }
            }
        },
        "/tickets/validate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Validate a ticket at the gate",
                "parameters": [
                    {"description": "scan payload", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.ScanPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ValidationOutcome"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Err"}}
                }
            }
        },
        "/tickets/{ticketID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Get a ticket",
                "parameters": [
                    {"type": "string", "description": "Ticket ID", "name": "ticketID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.TicketResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Err"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ScanPayload": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "ticket_id": {"type": "string"}
            }
        },
        "domain.Ticket": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "eventName": {"type": "string"},
                "id": {"type": "string"},
                "price": {"type": "number"},
                "purchaseDate": {"type": "string"},
                "status": {"type": "string", "enum": ["active", "used", "cancelled"]},
                "used": {"type": "boolean"}
            }
        },
        "domain.ValidationOutcome": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "request.AdminLoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "request.GenerateTicketRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "eventName": {"type": "string"},
                "price": {"type": "number"}
            }
        },
        "response.AdminCheckResponse": {
            "type": "object",
            "properties": {
                "exists": {"type": "boolean"},
                "username": {"type": "string"}
            }
        },
        "response.AdminLoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"}
            }
        },
        "response.Err": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "status_text": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "response.TicketListResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "tickets": {"type": "array", "items": {"$ref": "#/definitions/domain.Ticket"}}
            }
        },
        "response.TicketResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "ticket": {"$ref": "#/definitions/domain.Ticket"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer token",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Event Ticket API",
	Description:      "Ticket issuance, gate validation and account management.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
