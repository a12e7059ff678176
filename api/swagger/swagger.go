package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Acadia Planner API",
        "description": "Personal study planning service: subjects, tasks, availability and weekly schedule generation.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Auth", "description": "Account registration and sessions"},
        {"name": "Subjects", "description": "Subjects the user studies"},
        {"name": "Tasks", "description": "Study tasks feeding the planner"},
        {"name": "Availability", "description": "Weekly availability windows"},
        {"name": "Preferences", "description": "Break pacing preferences"},
        {"name": "Planner", "description": "Schedule generation, grid view and exports"}
    ],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register an account",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Username or email taken"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in with username and password",
                "responses": {
                    "200": {"description": "Token pair", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Rotate a refresh token",
                "responses": {
                    "200": {"description": "New token pair"},
                    "401": {"description": "Invalid or expired refresh token"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke the current refresh token",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "Logged out"}}
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current account profile",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Profile"}}
            }
        },
        "/auth/change-password": {
            "post": {
                "tags": ["Auth"],
                "summary": "Change the account password",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "Password changed"}}
            }
        },
        "/subjects": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List subjects",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Paginated subjects", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Subjects"],
                "summary": "Create subject",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/subjects/{id}": {
            "get": {
                "tags": ["Subjects"],
                "summary": "Get subject",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Subject"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Subjects"],
                "summary": "Update subject",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Updated"}}
            },
            "delete": {
                "tags": ["Subjects"],
                "summary": "Delete subject, detaching its tasks",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/tasks": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List tasks",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Paginated tasks"}}
            },
            "post": {
                "tags": ["Tasks"],
                "summary": "Create task",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/tasks/progress": {
            "get": {
                "tags": ["Tasks"],
                "summary": "Per-status task counts",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Progress summary"}}
            }
        },
        "/tasks/{id}": {
            "get": {
                "tags": ["Tasks"],
                "summary": "Get task",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Task"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Tasks"],
                "summary": "Update task; scheduled tasks revert to pending",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Updated"}}
            },
            "delete": {
                "tags": ["Tasks"],
                "summary": "Delete task",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/tasks/{id}/complete": {
            "post": {
                "tags": ["Tasks"],
                "summary": "Mark task completed",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Completed task"}}
            }
        },
        "/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "List weekly availability slots",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Slots ordered by day and start"}}
            },
            "put": {
                "tags": ["Availability"],
                "summary": "Replace the whole weekly availability",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Stored slots"}}
            }
        },
        "/preferences": {
            "get": {
                "tags": ["Preferences"],
                "summary": "Get study preferences or defaults",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Preferences"}}
            },
            "put": {
                "tags": ["Preferences"],
                "summary": "Create or replace study preferences",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Stored preferences"}}
            }
        },
        "/planner/generate": {
            "post": {
                "tags": ["Planner"],
                "summary": "Generate and store a fresh weekly schedule",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Generated plan with blocks, breaks and unplaceable tasks"},
                    "400": {"description": "Invalid task, slot or preference data"}
                }
            }
        },
        "/planner/schedule": {
            "get": {
                "tags": ["Planner"],
                "summary": "Stored schedule as a seven-day grid",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Weekly grid"}}
            }
        },
        "/planner/export": {
            "post": {
                "tags": ["Planner"],
                "summary": "Export the stored schedule to CSV or PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Signed download link"},
                    "404": {"description": "No schedule to export"}
                }
            }
        },
        "/planner/export/{token}": {
            "get": {
                "tags": ["Planner"],
                "summary": "Download an exported schedule file",
                "produces": ["application/octet-stream"],
                "responses": {
                    "200": {"description": "File stream"},
                    "401": {"description": "Invalid or expired token"}
                }
            }
        },
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {"200": {"description": "Ready"}}
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "totalCount": {"type": "integer"}
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
