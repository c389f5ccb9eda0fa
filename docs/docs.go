// Package docs registers the swagger document served under /swagger.
// Keep it in step with the handler annotations.
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
        "/campaigns": {
            "get": {"tags": ["Campaigns"], "summary": "List campaigns", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Campaign"}}}}},
            "post": {
                "description": "Campaigns with a scheduled date start as scheduled, others as draft",
                "tags": ["Campaigns"],
                "summary": "Create a campaign",
                "parameters": [{"description": "campaign", "name": "campaign", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.campaignRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Campaign"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/campaigns/{id}": {
            "get": {
                "tags": ["Campaigns"], "summary": "Get a campaign",
                "parameters": [{"type": "string", "description": "campaign id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Campaign"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/campaigns/{id}/launch": {
            "post": {
                "description": "The current contact count becomes the campaign's population",
                "tags": ["Campaigns"], "summary": "Launch a draft or scheduled campaign",
                "parameters": [{"type": "string", "description": "campaign id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Campaign"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/campaigns/{id}/progress": {
            "post": {
                "tags": ["Campaigns"], "summary": "Overwrite delivery counters",
                "parameters": [
                    {"type": "string", "description": "campaign id", "name": "id", "in": "path", "required": true},
                    {"description": "counters", "name": "progress", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.Progress"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Campaign"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/campaigns/{id}/toggle": {
            "post": {
                "tags": ["Campaigns"], "summary": "Pause or resume a campaign",
                "parameters": [{"type": "string", "description": "campaign id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Campaign"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/contacts": {
            "get": {
                "description": "Optional case-insensitive search over name and phone number",
                "tags": ["Contacts"], "summary": "List contacts",
                "parameters": [{"type": "string", "description": "search term", "name": "q", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Contact"}}}}
            },
            "delete": {"tags": ["Contacts"], "summary": "Remove every contact", "responses": {"204": {"description": "No Content"}}}
        },
        "/contacts/export": {
            "get": {
                "description": "Downloads every contact as comma separated text",
                "produces": ["text/plain"],
                "tags": ["Contacts"], "summary": "Export contacts",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/contacts/import": {
            "post": {
                "description": "Accepts tabular text either as the raw body or as a multipart \"file\" field",
                "consumes": ["text/plain", "multipart/form-data"],
                "tags": ["Contacts"], "summary": "Import contacts",
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Contact"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/receipts/{messageId}": {
            "get": {
                "description": "Looks up a cached webhook delivery receipt by message id",
                "tags": ["Messages"], "summary": "Delivery receipt",
                "parameters": [{"type": "string", "description": "webhook message id", "name": "messageId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cache.Receipt"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/start": {
            "post": {
                "description": "Starts the background process that delivers running campaigns in batches",
                "tags": ["Control"], "summary": "Start the campaign dispatcher",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}}
            }
        },
        "/stats": {
            "get": {
                "description": "Counts of contacts, templates and campaigns with delivery totals, computed on request",
                "tags": ["Dashboard"], "summary": "Dashboard totals",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Dashboard"}}}
            }
        },
        "/status": {
            "get": {
                "tags": ["Control"], "summary": "Dispatcher state",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.statusResponse"}}}
            }
        },
        "/stop": {
            "post": {
                "description": "Stops the background delivery process",
                "tags": ["Control"], "summary": "Stop the campaign dispatcher",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}}
            }
        },
        "/templates": {
            "get": {"tags": ["Templates"], "summary": "List templates", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Template"}}}}},
            "post": {
                "description": "Variables are extracted from the header text, body and footer",
                "tags": ["Templates"], "summary": "Create a template",
                "parameters": [{"description": "template fields", "name": "template", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.TemplateFields"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Template"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/templates/{id}": {
            "get": {
                "tags": ["Templates"], "summary": "Get a template",
                "parameters": [{"type": "string", "description": "template id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Template"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "put": {
                "tags": ["Templates"], "summary": "Replace a template's fields",
                "parameters": [
                    {"type": "string", "description": "template id", "name": "id", "in": "path", "required": true},
                    {"description": "template fields", "name": "template", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.TemplateFields"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Template"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "description": "Fails with 409 while a campaign refers to the template",
                "tags": ["Templates"], "summary": "Delete a template",
                "parameters": [{"type": "string", "description": "template id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/templates/{id}/preview": {
            "post": {
                "description": "Without bindings the sample values are used",
                "tags": ["Templates"], "summary": "Render a template",
                "parameters": [
                    {"type": "string", "description": "template id", "name": "id", "in": "path", "required": true},
                    {"description": "variable bindings", "name": "bindings", "in": "body", "schema": {"$ref": "#/definitions/handler.previewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Preview"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "cache.Receipt": {"type": "object", "properties": {"messageId": {"type": "string"}, "campaignId": {"type": "string"}, "to": {"type": "string"}, "sentAt": {"type": "string"}}},
        "domain.Button": {"type": "object", "properties": {"kind": {"type": "string"}, "label": {"type": "string"}, "value": {"type": "string"}}},
        "domain.Campaign": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}, "name": {"type": "string"},
                "template_id": {"type": "string"}, "template_name": {"type": "string"},
                "status": {"type": "string", "enum": ["draft", "scheduled", "running", "paused", "completed"]},
                "total_contacts": {"type": "integer"}, "sent_count": {"type": "integer"},
                "success_count": {"type": "integer"}, "failed_count": {"type": "integer"},
                "scheduled_date": {"type": "string"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}
            }
        },
        "domain.CampaignStats": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"}, "by_status": {"type": "object", "additionalProperties": {"type": "integer"}},
                "total_contacts": {"type": "integer"}, "sent_count": {"type": "integer"},
                "success_count": {"type": "integer"}, "failed_count": {"type": "integer"}
            }
        },
        "domain.Contact": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}, "phone_number": {"type": "string"}, "name": {"type": "string"},
                "variables": {"type": "object", "additionalProperties": {"type": "string"}},
                "variable_order": {"type": "array", "items": {"type": "string"}}, "created_at": {"type": "string"}
            }
        },
        "domain.Progress": {
            "type": "object",
            "properties": {"total_contacts": {"type": "integer"}, "sent_count": {"type": "integer"}, "success_count": {"type": "integer"}, "failed_count": {"type": "integer"}}
        },
        "domain.Template": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}, "name": {"type": "string"},
                "category": {"type": "string", "enum": ["marketing", "transactional", "authentication", "utility"]},
                "header": {"$ref": "#/definitions/domain.TemplateHeader"},
                "body": {"type": "string"}, "footer": {"type": "string"},
                "buttons": {"type": "array", "items": {"$ref": "#/definitions/domain.Button"}},
                "variables": {"type": "array", "items": {"type": "string"}},
                "created_at": {"type": "string"}, "updated_at": {"type": "string"}
            }
        },
        "domain.TemplateFields": {
            "type": "object",
            "properties": {
                "name": {"type": "string"}, "category": {"type": "string"},
                "header": {"$ref": "#/definitions/domain.TemplateHeader"},
                "body": {"type": "string"}, "footer": {"type": "string"},
                "buttons": {"type": "array", "items": {"$ref": "#/definitions/domain.Button"}}
            }
        },
        "domain.TemplateHeader": {"type": "object", "properties": {"type": {"type": "string", "enum": ["text", "media"]}, "content": {"type": "string"}}},
        "handler.campaignRequest": {"type": "object", "properties": {"name": {"type": "string"}, "template_id": {"type": "string"}, "scheduled_date": {"type": "string"}}},
        "handler.errorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "handler.statusResponse": {"type": "object", "properties": {"configured": {"type": "boolean"}, "running": {"type": "boolean"}, "subscribers": {"type": "integer"}}},
        "handler.previewRequest": {"type": "object", "properties": {"bindings": {"type": "object", "additionalProperties": {"type": "string"}}}},
        "service.Dashboard": {
            "type": "object",
            "properties": {
                "contacts": {"type": "integer"}, "templates": {"type": "integer"},
                "campaigns": {"$ref": "#/definitions/domain.CampaignStats"}, "success_rate": {"type": "number"}
            }
        },
        "service.Preview": {
            "type": "object",
            "properties": {"header": {"type": "string"}, "body": {"type": "string"}, "footer": {"type": "string"}, "buttons": {"type": "array", "items": {"type": "string"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:6060",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Campaign Manager API",
	Description:      "Message templates, contact lists and campaign delivery tracking",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
