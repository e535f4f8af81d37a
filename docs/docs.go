// Package docs holds the OpenAPI description served under /swagger.
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
        "/render": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["render"],
                "summary": "Structure an assistant reply",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/api.TextRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/structurer.RenderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/destinations/extract": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["destinations"],
                "summary": "Extract destination candidates",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/api.TextRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/destinations.ExtractResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/destinations/{name}/images": {
            "get": {
                "produces": ["application/json"],
                "tags": ["destinations"],
                "summary": "Resolve images for a destination",
                "parameters": [{"type": "string", "in": "path", "name": "name", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ResolvedDestination"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/strips": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["strips"],
                "summary": "Start an image strip",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/api.TextRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/types.StripSnapshot"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/strips/{stripID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["strips"],
                "summary": "Get an image strip",
                "parameters": [{"type": "string", "in": "path", "name": "stripID", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StripSnapshot"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["strips"],
                "summary": "Replace the reply behind a strip",
                "parameters": [
                    {"type": "string", "in": "path", "name": "stripID", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/api.TextRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StripSnapshot"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            },
            "delete": {
                "tags": ["strips"],
                "summary": "Tear down an image strip",
                "parameters": [{"type": "string", "in": "path", "name": "stripID", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/strips/{stripID}/cells/{name}/events": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["strips"],
                "summary": "Post a display event for a cell",
                "parameters": [
                    {"type": "string", "in": "path", "name": "stripID", "required": true},
                    {"type": "string", "in": "path", "name": "name", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/types.CellEvent"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ResolvedDestination"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/planner/prompt": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["planner"],
                "summary": "Build a trip planning prompt",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/planner.TripRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/planner.PromptResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/planner/suggestions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["planner"],
                "summary": "Starter prompts for an empty chat",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/chat/message": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Send a chat message",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/types.SendMessageRequest"}}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.Response"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/chat/list": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "List chat threads",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.Response"}}}
            }
        },
        "/chat/history/{chatID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Get a chat thread",
                "parameters": [{"type": "string", "in": "path", "name": "chatID", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.Response"}}}
            }
        },
        "/chat/{chatID}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Delete a chat thread",
                "parameters": [{"type": "string", "in": "path", "name": "chatID", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Response"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.Response"}}}
            }
        },
        "/session": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Check the session token",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "503": {"description": "Service Unavailable"}}
            }
        }
    },
    "definitions": {
        "api.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "message": {"type": "string", "example": "Operation successful"},
                "error": {"type": "string", "example": "Resource not found"}
            }
        },
        "api.TextRequest": {
            "type": "object",
            "properties": {"text": {"type": "string", "example": "Day 1: Arrive in Paris"}}
        },
        "structurer.RenderResponse": {
            "type": "object",
            "properties": {
                "blocks": {"type": "array", "items": {"type": "object"}},
                "html": {"type": "string"}
            }
        },
        "destinations.ExtractResponse": {
            "type": "object",
            "properties": {
                "destinations": {"type": "array", "items": {"type": "string"}},
                "candidates": {"type": "array", "items": {"$ref": "#/definitions/types.DestinationCandidate"}}
            }
        },
        "types.DestinationCandidate": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "score": {"type": "integer"}}
        },
        "types.ResolvedDestination": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "images": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string", "enum": ["loading", "ready", "error"]},
                "current_index": {"type": "integer"}
            }
        },
        "types.StripSnapshot": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "cells": {"type": "array", "items": {"$ref": "#/definitions/types.ResolvedDestination"}}
            }
        },
        "types.CellEvent": {
            "type": "object",
            "required": ["type"],
            "properties": {
                "type": {"type": "string", "enum": ["image_error", "next", "prev", "select"]},
                "index": {"type": "integer", "minimum": 0}
            }
        },
        "types.SendMessageRequest": {
            "type": "object",
            "required": ["message"],
            "properties": {"message": {"type": "string"}, "chat_id": {"type": "string"}}
        },
        "planner.TripRequest": {
            "type": "object",
            "required": ["destination"],
            "properties": {
                "destination": {"type": "string", "example": "Lisbon"},
                "days": {"type": "integer", "maximum": 30, "minimum": 1, "example": 5},
                "budget": {"type": "string", "enum": ["Low", "Medium", "High"]},
                "activities": {"type": "array", "items": {"type": "string"}},
                "walking": {"type": "string", "enum": ["high", "moderate", "low"]},
                "dietary": {"type": "string", "enum": ["No Preference", "Vegetarian", "Non-Vegetarian"]},
                "accommodation": {"type": "array", "items": {"type": "string"}}
            }
        },
        "planner.PromptResponse": {
            "type": "object",
            "properties": {"prompt": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Voyage API",
	Description:      "Structures travel-assistant replies, extracts destinations and resolves their images.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
