package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Study Planner API",
        "description": "Availability, class schedule and study planning service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "Availability", "description": "Recurring time blocks and one-off exceptions"},
        {"name": "Class Schedule", "description": "Weekly classes mirrored into unavailable blocks"},
        {"name": "Preferences", "description": "Work hours, study block lengths and preferred days"},
        {"name": "Scheduler", "description": "Conflict validation, slot generation and task assignment"}
    ],
    "paths": {
        "/availability/blocks": {
            "get": {
                "tags": ["Availability"],
                "summary": "List time blocks",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Availability"],
                "summary": "Create time block",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTimeBlockRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/blocks/{id}": {
            "put": {
                "tags": ["Availability"],
                "summary": "Update time block",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTimeBlockRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Block is owned by a class", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Availability"],
                "summary": "Delete time block",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/exceptions": {
            "get": {
                "tags": ["Availability"],
                "summary": "List exceptions",
                "parameters": [
                    {"name": "start", "in": "query", "type": "string", "format": "date"},
                    {"name": "end", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Availability"],
                "summary": "Create exception",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateExceptionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/exceptions/{id}": {
            "delete": {
                "tags": ["Availability"],
                "summary": "Delete exception",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/class-schedule": {
            "get": {
                "tags": ["Class Schedule"],
                "summary": "List classes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Class Schedule"],
                "summary": "Create class",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClassScheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/class-schedule/{id}": {
            "put": {
                "tags": ["Class Schedule"],
                "summary": "Replace class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClassScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Class Schedule"],
                "summary": "Delete class and its mirrored blocks",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/user-preferences": {
            "get": {
                "tags": ["Preferences"],
                "summary": "Get preferences",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Preferences"],
                "summary": "Replace preferences",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdatePreferencesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Invalid preferences", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/scheduler/validate": {
            "post": {
                "tags": ["Scheduler"],
                "summary": "Validate candidate schedule",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ValidateScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/scheduler/time-slots": {
            "post": {
                "tags": ["Scheduler"],
                "summary": "Generate study slots",
                "parameters": [
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/PlanRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Scheduler disabled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/scheduler/optimal-schedule": {
            "post": {
                "tags": ["Scheduler"],
                "summary": "Assign tasks to slots",
                "parameters": [
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/PlanRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Scheduler disabled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/scheduler/optimal-schedule/export": {
            "post": {
                "tags": ["Scheduler"],
                "summary": "Export optimal schedule",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/PlanRequest"}}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}}
                }
            }
        }
    },
    "definitions": {
        "CreateTimeBlockRequest": {
            "type": "object",
            "properties": {
                "day_of_week": {"type": "integer", "minimum": 0, "maximum": 6},
                "start_time": {"type": "string", "example": "09:00"},
                "end_time": {"type": "string", "example": "10:30"},
                "block_type": {"type": "string", "enum": ["preferred", "available", "unavailable"]},
                "is_recurring": {"type": "boolean"},
                "start_date": {"type": "string", "format": "date"},
                "end_date": {"type": "string", "format": "date"}
            },
            "required": ["day_of_week", "start_time", "end_time"]
        },
        "UpdateTimeBlockRequest": {
            "type": "object",
            "properties": {
                "day_of_week": {"type": "integer", "minimum": 0, "maximum": 6},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "block_type": {"type": "string", "enum": ["preferred", "available", "unavailable"]},
                "is_recurring": {"type": "boolean"},
                "start_date": {"type": "string", "format": "date"},
                "end_date": {"type": "string", "format": "date"},
                "clear_start_date": {"type": "boolean"},
                "clear_end_date": {"type": "boolean"}
            }
        },
        "CreateExceptionRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "format": "date"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "block_type": {"type": "string", "enum": ["preferred", "available", "unavailable"]},
                "reason": {"type": "string"}
            },
            "required": ["date", "start_time", "end_time"]
        },
        "ClassScheduleRequest": {
            "type": "object",
            "properties": {
                "course_code": {"type": "string"},
                "day_of_week": {"type": "integer", "minimum": 0, "maximum": 6},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "location": {"type": "string"},
                "recurring_start": {"type": "string", "format": "date"},
                "recurring_end": {"type": "string", "format": "date"}
            },
            "required": ["course_code", "day_of_week", "start_time", "end_time"]
        },
        "WorkHours": {
            "type": "object",
            "properties": {
                "start": {"type": "string", "example": "09:00"},
                "end": {"type": "string", "example": "17:00"}
            }
        },
        "UpdatePreferencesRequest": {
            "type": "object",
            "properties": {
                "work_hours": {"$ref": "#/definitions/WorkHours"},
                "study_blocks": {"type": "array", "items": {"type": "integer"}},
                "break_duration": {"type": "integer"},
                "preferred_days": {"type": "array", "items": {"type": "string"}},
                "pomodoro_duration": {"type": "integer"}
            },
            "required": ["work_hours", "study_blocks", "preferred_days"]
        },
        "CandidateScheduleItem": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "format": "date"},
                "start": {"type": "string"},
                "end": {"type": "string"},
                "label": {"type": "string"}
            }
        },
        "ValidateScheduleRequest": {
            "type": "object",
            "properties": {
                "candidateSchedule": {"type": "array", "items": {"$ref": "#/definitions/CandidateScheduleItem"}}
            }
        },
        "PlanRequest": {
            "type": "object",
            "properties": {
                "tasks": {"type": "array", "items": {"type": "object"}},
                "userPreferences": {"$ref": "#/definitions/UpdatePreferencesRequest"},
                "availableTime": {"type": "object"},
                "constraints": {"type": "object"}
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
