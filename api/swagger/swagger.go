package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Office Space API",
        "description": "Office occupancy tracking and legacy roster import",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Offices", "description": "Office occupancy roster"},
        {"name": "Occupants", "description": "Individual occupant records"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Store unavailable"}
                }
            }
        },
        "/api/offices": {
            "get": {
                "tags": ["Offices"],
                "summary": "List occupants grouped by office",
                "responses": {
                    "200": {"description": "OK"},
                    "500": {"description": "Store error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/offices/export": {
            "get": {
                "tags": ["Offices"],
                "summary": "Download the occupancy roster",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "description": "csv (default) or pdf"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/offices/{officeId}/occupants": {
            "post": {
                "tags": ["Offices"],
                "summary": "Add an occupant to an office",
                "parameters": [
                    {"name": "officeId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateOccupantRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/occupants/{id}": {
            "put": {
                "tags": ["Occupants"],
                "summary": "Update an occupant",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateOccupantRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "delete": {
                "tags": ["Occupants"],
                "summary": "Delete an occupant",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "OccupantView": {
            "type": "object",
            "properties": {
                "occupant_id": {"type": "integer"},
                "full_name": {"type": "string"},
                "appointment_type": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "temporary": {"type": "boolean"}
            }
        },
        "CreateOccupantRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "appointment_type": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "temporary": {"type": "boolean"}
            },
            "required": ["name"]
        },
        "UpdateOccupantRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "temporary": {"type": "boolean"}
            },
            "required": ["name"]
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "string"}
            }
        }
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
