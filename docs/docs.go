// Package docs registers the OpenAPI description served under /swagger.
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
        "/api/movies": {
            "get": {
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "List Movies",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/movie.Movie"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Create Movie",
                "parameters": [
                    {"description": "Movie Data", "name": "movie", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpserver.MovieRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/movie.Movie"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}}
                }
            }
        },
        "/api/movies/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Get Movie",
                "parameters": [
                    {"type": "integer", "description": "Movie ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/movie.Movie"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Update Movie",
                "parameters": [
                    {"type": "integer", "description": "Movie ID", "name": "id", "in": "path", "required": true},
                    {"description": "Movie Data", "name": "movie", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpserver.MovieRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/movie.Movie"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "tags": ["movies"],
                "summary": "Delete Movie",
                "parameters": [
                    {"type": "integer", "description": "Movie ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}}
                }
            }
        },
        "/healthcheck": {
            "get": {
                "tags": ["health"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpserver.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "httpserver.APIResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "info": {"type": "string"},
                "message": {"type": "string"},
                "result": {}
            }
        },
        "httpserver.MovieRequest": {
            "type": "object",
            "properties": {
                "director": {"type": "string", "maxLength": 255},
                "genre": {"type": "string", "maxLength": 100},
                "id": {"type": "integer"},
                "imdbRating": {"type": "number"},
                "releaseYear": {"type": "integer"},
                "title": {"type": "string", "maxLength": 255}
            }
        },
        "movie.Movie": {
            "type": "object",
            "properties": {
                "director": {"type": "string"},
                "genre": {"type": "string"},
                "id": {"type": "integer"},
                "imdbRating": {"type": "number"},
                "releaseYear": {"type": "integer"},
                "title": {"type": "string"}
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
	Title:            "Movie API",
	Description:      "CRUD API for movies.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
