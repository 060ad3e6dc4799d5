package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Tutorboard API",
        "description": "Parent-facing tutor dashboard: children, timelines, test trends, class records and private comments",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [
        {"BearerAuth": []}
    ],
    "tags": [
        {"name": "Tutor", "description": "Parent views of their children's tutoring"},
        {"name": "Comments", "description": "Private parent and teacher messages"}
    ],
    "paths": {
        "/tutor/dashboard": {
            "get": {
                "tags": ["Tutor"],
                "summary": "Parent dashboard",
                "description": "Children of the caller with their classes, today's attendance and pending assignment counts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutor/children/{childId}/timeline": {
            "get": {
                "tags": ["Tutor"],
                "summary": "Child activity timeline",
                "description": "Up to 50 lessons, test results and assignments, newest first",
                "parameters": [
                    {"name": "childId", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "classId", "in": "query", "type": "string", "format": "uuid"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Malformed id", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not your child", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutor/children/{childId}/test-trend": {
            "get": {
                "tags": ["Tutor"],
                "summary": "Child test score trend",
                "description": "Up to 20 most recent test results, oldest first",
                "parameters": [
                    {"name": "childId", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "classId", "in": "query", "type": "string", "format": "uuid"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not your child", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutor/children/{childId}/class-records": {
            "get": {
                "tags": ["Tutor"],
                "summary": "Child class records",
                "description": "Lesson-by-lesson records per enrolled class with attendance, assignments and tests",
                "parameters": [
                    {"name": "childId", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "classId", "in": "query", "type": "string", "format": "uuid"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not your child", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutor/children/{childId}/class-records/export": {
            "get": {
                "tags": ["Tutor"],
                "summary": "Download child class records",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "childId", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "classId", "in": "query", "type": "string", "format": "uuid"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Attachment", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Exports disabled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutor/comments": {
            "post": {
                "tags": ["Comments"],
                "summary": "Post a private comment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCommentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Target not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutor/comments/{studentId}": {
            "get": {
                "tags": ["Comments"],
                "summary": "List private comments about a student",
                "description": "Comments the caller wrote or received, oldest first",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateCommentRequest": {
            "type": "object",
            "required": ["targetId", "content"],
            "properties": {
                "targetId": {"type": "string", "format": "uuid"},
                "studentId": {"type": "string", "format": "uuid"},
                "contextType": {"type": "string", "maxLength": 50},
                "contextId": {"type": "string", "maxLength": 100},
                "content": {"type": "string", "maxLength": 4000},
                "imageUrl": {"type": "string", "format": "uri"}
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
