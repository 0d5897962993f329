package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Compass API",
        "description": "Course catalog aggregation and schedule expansion service",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Catalog", "description": "Provider catalog browsing"},
        {"name": "Selections", "description": "Cascading selection sessions"},
        {"name": "Calendar", "description": "Per-user event collections"},
        {"name": "Planner", "description": "Weekly planning assistant"}
    ],
    "paths": {
        "/providers": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List registered providers",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/providers/{provider}/years": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List academic years",
                "parameters": [
                    {"name": "provider", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Upstream failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/providers/{provider}/years/{year}/terms": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List terms within a year",
                "parameters": [
                    {"name": "provider", "in": "path", "required": true, "type": "string"},
                    {"name": "year", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/providers/{provider}/terms/{termId}/subjects": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List subjects in a term",
                "parameters": [
                    {"name": "provider", "in": "path", "required": true, "type": "string"},
                    {"name": "termId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/providers/{provider}/terms/{termId}/subjects/{subject}/courses": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List courses under a subject",
                "parameters": [
                    {"name": "provider", "in": "path", "required": true, "type": "string"},
                    {"name": "termId", "in": "path", "required": true, "type": "string"},
                    {"name": "subject", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/providers/{provider}/terms/{termId}/subjects/{subject}/courses/{course}/sections": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List sections of a course",
                "parameters": [
                    {"name": "provider", "in": "path", "required": true, "type": "string"},
                    {"name": "termId", "in": "path", "required": true, "type": "string"},
                    {"name": "subject", "in": "path", "required": true, "type": "string"},
                    {"name": "course", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/providers/{provider}/outline": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Fetch a detailed section outline",
                "parameters": [
                    {"name": "provider", "in": "path", "required": true, "type": "string"},
                    {"name": "year", "in": "query", "required": true, "type": "string"},
                    {"name": "term", "in": "query", "required": true, "type": "string"},
                    {"name": "dept", "in": "query", "required": true, "type": "string"},
                    {"name": "course", "in": "query", "required": true, "type": "string"},
                    {"name": "section", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/providers/{provider}/cache": {
            "delete": {
                "tags": ["Catalog"],
                "summary": "Drop a provider's cached catalog responses",
                "parameters": [
                    {"name": "provider", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/selections": {
            "post": {
                "tags": ["Selections"],
                "summary": "Start a selection session",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selections/{id}": {
            "get": {
                "tags": ["Selections"],
                "summary": "Snapshot a selection session",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Selections"],
                "summary": "Discard a selection session",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/selections/{id}/{level}": {
            "put": {
                "tags": ["Selections"],
                "summary": "Advance a selection one level",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "level", "in": "path", "required": true, "type": "string", "enum": ["provider", "year", "term", "subject", "course"]},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChooseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendars/events": {
            "get": {
                "tags": ["Calendar"],
                "summary": "List calendar events",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Calendar"],
                "summary": "Add a manual event",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ManualEventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendars/events/{id}": {
            "delete": {
                "tags": ["Calendar"],
                "summary": "Remove one event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/calendars/sections": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Expand a section into dated events",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddSectionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "No expandable patterns", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendars/outlines": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Expand a section outline into dated events",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddOutlineRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "No expandable items", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendars/courses/{courseKey}": {
            "delete": {
                "tags": ["Calendar"],
                "summary": "Remove every event of a course",
                "parameters": [
                    {"name": "courseKey", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendars/snapshot": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Restore the calendar from its snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Calendar"],
                "summary": "Persist the calendar snapshot",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/calendars/export/ics": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Export the calendar as iCalendar",
                "produces": ["text/calendar"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/calendars/export/csv": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Export the calendar as CSV",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/calendars/export/pdf": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Export the calendar as PDF",
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/planner/plan": {
            "post": {
                "tags": ["Planner"],
                "summary": "Generate a weekly plan proposal",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PlanRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Planner disabled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/apply": {
            "post": {
                "tags": ["Planner"],
                "summary": "Merge accepted proposals into the calendar",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ApplyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "ChooseRequest": {
            "type": "object",
            "properties": {
                "provider": {"type": "string"},
                "year": {"type": "string"},
                "termId": {"type": "string"},
                "subject": {"type": "string"},
                "course": {"type": "string"}
            }
        },
        "AddSectionRequest": {
            "type": "object",
            "properties": {
                "provider": {"type": "string"},
                "year": {"type": "string"},
                "termId": {"type": "string"},
                "subject": {"type": "string"},
                "course": {"type": "string"},
                "sectionId": {"type": "string"},
                "startDate": {"type": "string", "format": "date-time"},
                "endDate": {"type": "string", "format": "date-time"}
            },
            "required": ["provider", "year", "termId", "subject", "course", "sectionId", "startDate", "endDate"]
        },
        "AddOutlineRequest": {
            "type": "object",
            "properties": {
                "provider": {"type": "string"},
                "year": {"type": "string"},
                "term": {"type": "string"},
                "dept": {"type": "string"},
                "course": {"type": "string"},
                "section": {"type": "string"}
            },
            "required": ["provider", "year", "term", "dept", "course", "section"]
        },
        "ManualEventRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "start": {"type": "string", "format": "date-time"},
                "end": {"type": "string", "format": "date-time"},
                "allDay": {"type": "boolean"}
            },
            "required": ["title", "start", "end"]
        },
        "PlanRequest": {
            "type": "object",
            "properties": {
                "prompt": {"type": "string"}
            },
            "required": ["prompt"]
        },
        "ApplyRequest": {
            "type": "object",
            "properties": {
                "events": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/Event"}
                }
            },
            "required": ["events"]
        },
        "Event": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "start": {"type": "string", "format": "date-time"},
                "end": {"type": "string", "format": "date-time"},
                "allDay": {"type": "boolean"},
                "eventType": {"type": "string"},
                "courseKey": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
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
