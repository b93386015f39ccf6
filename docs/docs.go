// Package docs registers the Swagger specification served at /swagger.
// Regenerate with `swag init -g cmd/server/main.go` after changing
// handler annotations.
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
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/v1/clients": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["clients"],
                "summary": "List clients",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["clients"],
                "summary": "Create a client",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/v1/clients/{client_id}/contacts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["contacts"],
                "summary": "List a client's contacts",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["contacts"],
                "summary": "Create a contact, optionally inviting it to the portal",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/v1/clients/{client_id}/contacts/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["contacts"],
                "summary": "Export a client's contacts as a spreadsheet",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/contacts/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["contacts"],
                "summary": "Update a contact, optionally inviting it to the portal",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["contacts"],
                "summary": "Delete a contact",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/v1/invites": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["invites"],
                "summary": "Invite a client contact to the portal",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Agency CRM API",
	Description:      "Contact and client management for the agency back office, including portal invitations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
