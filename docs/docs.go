// Package docs registers the API description served under /swagger.
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
        "/": {
            "get": {
                "description": "Public catalog of all trailers, most recent first",
                "produces": ["text/html"],
                "tags": ["pages"],
                "summary": "Home page",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "string"}}
                }
            }
        },
        "/__healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}}
                }
            }
        },
        "/admin": {
            "get": {
                "produces": ["text/html"],
                "tags": ["admin"],
                "summary": "Admin page with upload form",
                "parameters": [
                    {"type": "string", "description": "Admin key", "name": "key", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "403": {"description": "Forbidden", "schema": {"type": "string"}}
                }
            }
        },
        "/admin/delete/{slug}": {
            "post": {
                "produces": ["text/plain"],
                "tags": ["admin"],
                "summary": "Delete a trailer",
                "parameters": [
                    {"type": "string", "description": "Video slug", "name": "slug", "in": "path", "required": true},
                    {"type": "string", "description": "Admin key", "name": "key", "in": "query", "required": true}
                ],
                "responses": {
                    "303": {"description": "Redirect to the admin page"},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}},
                    "403": {"description": "Forbidden", "schema": {"type": "string"}}
                }
            }
        },
        "/admin/upload": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["text/plain"],
                "tags": ["admin"],
                "summary": "Upload a trailer",
                "parameters": [
                    {"type": "string", "description": "Admin key", "name": "key", "in": "query", "required": true},
                    {"type": "string", "description": "Title", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "Description", "name": "description", "in": "formData"},
                    {"type": "string", "description": "Link to the full video", "name": "fullUrl", "in": "formData"},
                    {"type": "file", "description": "Video file", "name": "video", "in": "formData", "required": true}
                ],
                "responses": {
                    "303": {"description": "Redirect to the admin page"},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}},
                    "403": {"description": "Forbidden", "schema": {"type": "string"}}
                }
            }
        },
        "/sw.js": {
            "get": {
                "produces": ["application/javascript"],
                "tags": ["pages"],
                "summary": "Service worker script",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}}
                }
            }
        },
        "/watch/{slug}": {
            "get": {
                "produces": ["text/html"],
                "tags": ["pages"],
                "summary": "Watch page",
                "parameters": [
                    {"type": "string", "description": "Video slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "404": {"description": "Not Found", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.HealthResponse": {
            "type": "object",
            "properties": {
                "bucket": {"type": "string"},
                "hasAdminKey": {"type": "boolean"},
                "hasSupabaseKey": {"type": "boolean"},
                "hasSupabaseUrl": {"type": "boolean"},
                "ok": {"type": "boolean"},
                "version": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Trailer Portal",
	Description:      "Public trailer catalog with a key-protected admin interface.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
