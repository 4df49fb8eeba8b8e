// Package docs registers the OpenAPI description served by the swagger UI.
// Keep this in sync with the handler annotations when routes change.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/users/reg/": {
            "post": {
                "tags": ["User"],
                "summary": "Registrate user",
                "description": "Create new user instance",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "required": ["username", "password", "password_repeat"],
                            "properties": {
                                "username": {"type": "string"},
                                "email": {"type": "string"},
                                "password": {"type": "string"},
                                "password_repeat": {"type": "string"}
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created user",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "id": {"type": "string", "format": "uuid"},
                                "username": {"type": "string"},
                                "email": {"type": "string"}
                            }
                        }
                    },
                    "400": {"description": "Validation errors"}
                }
            }
        },
        "/users/auth/": {
            "post": {
                "tags": ["User"],
                "summary": "Authenticate user",
                "description": "Get access and refresh JWT token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "required": ["username", "password"],
                            "properties": {
                                "username": {"type": "string"},
                                "password": {"type": "string"}
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Token pair",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "access": {"type": "string"},
                                "refresh": {"type": "string"}
                            }
                        }
                    },
                    "401": {"description": "No active account found with the given credentials"}
                }
            }
        },
        "/users/refresh/": {
            "post": {
                "tags": ["User"],
                "summary": "Refresh token pair",
                "description": "Rotate a refresh token into a new access/refresh pair",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "required": ["refresh"],
                            "properties": {"refresh": {"type": "string"}}
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "Token pair"},
                    "401": {"description": "Invalid refresh token"}
                }
            }
        },
        "/users/list/": {
            "get": {
                "tags": ["User"],
                "summary": "Get users",
                "description": "Get list of all users",
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Users"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/posts/create/": {
            "post": {
                "tags": ["Post"],
                "summary": "Create post",
                "description": "Create new post instance",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "required": ["title", "body"],
                            "properties": {
                                "title": {"type": "string", "maxLength": 50},
                                "body": {"type": "string", "maxLength": 1000}
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {"description": "Created post"},
                    "400": {"description": "Validation errors"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/posts/list/": {
            "get": {
                "tags": ["Post"],
                "summary": "Posts list",
                "description": "Get list of posts owned by the caller",
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Posts"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/posts/{id}/": {
            "delete": {
                "tags": ["Post"],
                "summary": "Delete post",
                "description": "Delete a post owned by the caller",
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No content"},
                    "401": {"description": "Unauthorized"},
                    "404": {"description": "Not found or not owned"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "BBoom test application API",
	Description:      "User registration/authentication and owner-scoped posts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
