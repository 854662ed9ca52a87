// Package docs registra la especificación OpenAPI de la API JSON.
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
        "/api/reports": {
            "post": {
                "consumes": ["multipart/form-data", "application/json"],
                "produces": ["application/json"],
                "summary": "Crear reporte de mascota perdida/encontrada",
                "parameters": [
                    {"type": "string", "description": "JSON del reporte", "name": "report", "in": "formData", "required": true},
                    {"type": "file", "description": "Foto", "name": "photo", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/reports.reportResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/reports.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/reports.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/reports.errorResponse"}}
                }
            }
        },
        "/api/assistant/description": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Generar descripción del reporte",
                "parameters": [
                    {"description": "Atributos del draft", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/assistant.generateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/assistant.generateResponse"}},
                    "401": {"description": "Unauthorized"},
                    "502": {"description": "Bad Gateway"}
                }
            }
        }
    },
    "definitions": {
        "reports.coordinates": {
            "type": "object",
            "properties": {"lat": {"type": "number"}, "lng": {"type": "number"}}
        },
        "reports.reportResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "status": {"type": "string", "enum": ["Lost", "Found"]},
                "name": {"type": "string"},
                "species": {"type": "string"},
                "breed": {"type": "string"},
                "color": {"type": "string"},
                "age": {"type": "string"},
                "gender": {"type": "string", "enum": ["", "Male", "Female", "Unknown"]},
                "isMicrochipped": {"type": "boolean"},
                "date": {"type": "string"},
                "location": {"type": "string"},
                "description": {"type": "string"},
                "contactName": {"type": "string"},
                "contactPhone": {"type": "string"},
                "contactEmail": {"type": "string"},
                "photo": {"type": "string"},
                "coordinates": {"$ref": "#/definitions/reports.coordinates"},
                "createdAt": {"type": "string"}
            }
        },
        "reports.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "fields": {"type": "array", "items": {"type": "string"}}
            }
        },
        "assistant.generateRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "name": {"type": "string"},
                "species": {"type": "string"},
                "breed": {"type": "string"},
                "color": {"type": "string"},
                "age": {"type": "string"},
                "gender": {"type": "string"},
                "isMicrochipped": {"type": "boolean"},
                "location": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "assistant.generateResponse": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "remote": {"type": "boolean"}
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
	Title:            "Pet Lost & Found API",
	Description:      "Reportes de mascotas perdidas y encontradas.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
