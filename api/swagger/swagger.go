package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Audition Directory API",
        "description": "Company directory with derived audition status and upcoming ranking",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Directory", "description": "Companies ranked by their most relevant audition"},
        {"name": "Auditions", "description": "Audition status and rank keys"}
    ],
    "paths": {
        "/companies": {
            "get": {
                "tags": ["Directory"],
                "summary": "List companies with audition status and rank",
                "parameters": [
                    {"name": "today", "in": "query", "type": "string", "format": "date", "description": "Reference date, defaults to today in the directory timezone"},
                    {"name": "sort", "in": "query", "type": "string", "enum": ["upcoming", "name"]},
                    {"name": "upcoming", "in": "query", "type": "boolean", "description": "Only companies with an upcoming audition"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CompanyListEnvelope"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/companies/export": {
            "get": {
                "tags": ["Directory"],
                "summary": "Download companies with upcoming auditions",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "today", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Exports disabled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/companies/{id}": {
            "get": {
                "tags": ["Directory"],
                "summary": "Get company detail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "today", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auditions/{id}": {
            "get": {
                "tags": ["Auditions"],
                "summary": "Get audition with status and rank key",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "today", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auditions/evaluate": {
            "post": {
                "tags": ["Auditions"],
                "summary": "Classify and rank an ad-hoc audition",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EvaluateAuditionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Status": {
            "type": "object",
            "properties": {
                "category": {"type": "string", "enum": ["OPEN_CALL", "POST_DEADLINE", "CLOSED", "PAST_AUDITION"]},
                "label": {"type": "string"},
                "foreground": {"type": "string"},
                "background": {"type": "string"}
            }
        },
        "Rank": {
            "type": "object",
            "properties": {
                "tier": {"type": "integer", "enum": [1, 2, 3, 4]},
                "date": {"type": "string", "format": "date"},
                "key": {"type": "integer", "format": "int64"}
            }
        },
        "ScheduleEntry": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "date": {"type": "string", "format": "date"}
            }
        },
        "Audition": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "company_id": {"type": "string"},
                "title": {"type": "string"},
                "deadline_mode": {"type": "string", "enum": ["FIXED_DATE", "ASAP", "ALWAYS_OPEN"]},
                "deadline_date": {"type": "string", "format": "date"},
                "audition_schedule_mode": {"type": "string", "enum": ["SINGLE_DATE", "VARIOUS_DATES", "TO_BE_ARRANGED"]},
                "audition_date": {"type": "string", "format": "date"},
                "schedule_entries": {"type": "array", "items": {"$ref": "#/definitions/ScheduleEntry"}},
                "schedule_note": {"type": "string"},
                "status": {"$ref": "#/definitions/Status"},
                "rank_key": {"type": "integer", "format": "int64"},
                "rank": {"$ref": "#/definitions/Rank"}
            }
        },
        "Company": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "website": {"type": "string"},
                "rank_key": {"type": "integer", "format": "int64"},
                "rank": {"$ref": "#/definitions/Rank"},
                "auditions": {"type": "array", "items": {"$ref": "#/definitions/Audition"}}
            }
        },
        "EvaluateAuditionRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "deadline_mode": {"type": "string"},
                "deadline_date": {"type": "string", "format": "date"},
                "audition_schedule_mode": {"type": "string"},
                "audition_date": {"type": "string", "format": "date"},
                "schedule_entries": {"type": "array", "items": {"$ref": "#/definitions/ScheduleEntry"}},
                "schedule_note": {"type": "string"},
                "today": {"type": "string", "format": "date"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        },
        "CompanyListEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/Company"}},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {
                    "type": "object",
                    "properties": {
                        "cache_hit": {"type": "boolean"},
                        "processing_time_ms": {"type": "integer"}
                    }
                }
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
