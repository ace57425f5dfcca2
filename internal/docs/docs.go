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
        "/api/sensors": {
            "get": {
                "description": "Full stored snapshot: global reading, rooms, currentRoom, devices, rules, timestamp, plus any extra keys written by clients.",
                "produces": ["application/json"],
                "tags": ["store"],
                "summary": "Current sensor snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Snapshot"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/update": {
            "post": {
                "description": "Shallow merge: every top-level key in the body replaces the stored value, the timestamp is refreshed, everything else is untouched.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["store"],
                "summary": "Merge into the snapshot",
                "parameters": [{"description": "Partial snapshot", "name": "body", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.UpdateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "put": {
                "description": "Same as POST.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["store"],
                "summary": "Merge into the snapshot",
                "parameters": [{"description": "Partial snapshot", "name": "body", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.UpdateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["store"],
                "summary": "Store health",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Status"}}}
            }
        },
        "/api/v1/assessment": {
            "get": {
                "produces": ["application/json"],
                "tags": ["monitoring"],
                "summary": "Assess air quality",
                "parameters": [{"type": "string", "description": "\"all\" or a room; defaults to the selected room", "name": "scope", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Assessment"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/scenarios": {
            "get": {
                "produces": ["application/json"],
                "tags": ["monitoring"],
                "summary": "List preset scenarios",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}}
            }
        },
        "/api/v1/control/edit": {
            "post": {
                "description": "Applies the edit to one room (global becomes the room mean) or to all rooms, then re-runs automation.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["control"],
                "summary": "Edit a reading",
                "parameters": [{"description": "Edit", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.EditRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SnapshotView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/control/room": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["control"],
                "summary": "Select the displayed room",
                "parameters": [{"description": "Room or \"all\"", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RoomRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SnapshotView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/control/device": {
            "post": {
                "description": "Manual override; stands until automation runs again.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["control"],
                "summary": "Switch a device",
                "parameters": [{"description": "Device", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.DeviceRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SnapshotView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/control/fan": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["control"],
                "summary": "Set intake fan speed",
                "parameters": [{"description": "Speed 0-100", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.FanRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SnapshotView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/control/rule": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["control"],
                "summary": "Enable or disable a rule",
                "parameters": [{"description": "Rule", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RuleRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SnapshotView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/control/scenario": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["control"],
                "summary": "Apply a preset scenario",
                "parameters": [{"description": "good | moderate | poor | reset", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ScenarioRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SnapshotView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/v1/control/automation": {
            "post": {
                "produces": ["application/json"],
                "tags": ["control"],
                "summary": "Re-run automation",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SnapshotView"}}}
            }
        },
        "/api/v1/events": {
            "get": {
                "description": "The dashboard log. Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'); a date-only 'to' covers the whole day. Newest first.",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List events",
                "parameters": [
                    {"type": "string", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "description": "End of range. Date-only treated as end of day.", "name": "to", "in": "query"},
                    {"enum": ["UPDATE", "EDIT", "ROOM", "DEVICE", "FAN_SPEED", "RULE", "SCENARIO", "AUTOMATION", "SIMULATION"], "type": "string", "description": "Event type", "name": "type", "in": "query"},
                    {"type": "integer", "description": "Maximum number of events", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/ws": {
            "get": {
                "description": "WebSocket. Sends {\"type\":\"snapshot\",\"data\":{snapshot,assessment}} immediately and then every interval.",
                "tags": ["monitoring"],
                "summary": "Snapshot stream",
                "parameters": [
                    {"type": "string", "description": "Assessed scope; defaults to the selected room", "name": "scope", "in": "query"},
                    {"type": "string", "description": "Go duration, max 10s", "name": "interval", "in": "query"},
                    {"type": "integer", "description": "Milliseconds, max 10000", "name": "interval_ms", "in": "query"}
                ],
                "responses": {"101": {"description": "Switching Protocols"}}
            }
        }
    },
    "definitions": {
        "errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "models.Reading": {
            "type": "object",
            "properties": {
                "pm25": {"type": "integer", "example": 12},
                "co2": {"type": "integer", "example": 450},
                "voc": {"type": "integer", "example": 20},
                "humidity": {"type": "integer", "example": 55},
                "temp": {"type": "number", "example": 28}
            }
        },
        "models.FanState": {
            "type": "object",
            "properties": {"active": {"type": "boolean"}, "speed": {"type": "integer", "example": 75}}
        },
        "models.SwitchState": {
            "type": "object",
            "properties": {"active": {"type": "boolean"}}
        },
        "models.DeviceState": {
            "type": "object",
            "properties": {
                "intakeFan": {"$ref": "#/definitions/models.FanState"},
                "hepaFilter": {"$ref": "#/definitions/models.SwitchState"},
                "airPurifier": {"$ref": "#/definitions/models.SwitchState"},
                "windowServo": {"$ref": "#/definitions/models.SwitchState"}
            }
        },
        "models.RuleSet": {
            "type": "object",
            "properties": {
                "pm25": {"type": "boolean"},
                "co2": {"type": "boolean"},
                "voc": {"type": "boolean"},
                "humidity": {"type": "boolean"}
            }
        },
        "models.Snapshot": {
            "type": "object",
            "properties": {
                "pm25": {"type": "integer"},
                "co2": {"type": "integer"},
                "voc": {"type": "integer"},
                "humidity": {"type": "integer"},
                "temp": {"type": "number"},
                "rooms": {"type": "object", "additionalProperties": {"$ref": "#/definitions/models.Reading"}},
                "currentRoom": {"type": "string", "example": "all"},
                "devices": {"$ref": "#/definitions/models.DeviceState"},
                "rules": {"$ref": "#/definitions/models.RuleSet"},
                "timestamp": {"type": "string", "format": "date-time"}
            }
        },
        "models.Assessment": {
            "type": "object",
            "properties": {
                "scope": {"type": "string", "example": "kitchen"},
                "reading": {"$ref": "#/definitions/models.Reading"},
                "score": {"type": "integer", "example": 35},
                "label": {"type": "string", "enum": ["EXCELLENT", "MODERATE", "POOR"]},
                "timestamp": {"type": "string", "format": "date-time"}
            }
        },
        "models.Status": {
            "type": "object",
            "properties": {"status": {"type": "string", "example": "online"}, "timestamp": {"type": "string", "format": "date-time"}}
        },
        "handlers.UpdateResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean", "example": true}, "data": {"type": "object"}}
        },
        "handlers.SnapshotView": {
            "type": "object",
            "properties": {
                "snapshot": {"$ref": "#/definitions/models.Snapshot"},
                "assessment": {"$ref": "#/definitions/models.Assessment"}
            }
        },
        "handlers.EditRequest": {
            "type": "object",
            "required": ["field", "value"],
            "properties": {"scope": {"type": "string", "example": "kitchen"}, "field": {"type": "string", "example": "co2"}, "value": {"type": "number", "example": 1100}}
        },
        "handlers.RoomRequest": {
            "type": "object",
            "required": ["room"],
            "properties": {"room": {"type": "string", "example": "bedroom"}}
        },
        "handlers.DeviceRequest": {
            "type": "object",
            "required": ["device", "active"],
            "properties": {"device": {"type": "string", "example": "intakeFan"}, "active": {"type": "boolean", "example": true}, "speed": {"type": "integer", "example": 60}}
        },
        "handlers.FanRequest": {
            "type": "object",
            "required": ["speed"],
            "properties": {"speed": {"type": "integer", "example": 40}}
        },
        "handlers.RuleRequest": {
            "type": "object",
            "required": ["rule", "enabled"],
            "properties": {"rule": {"type": "string", "example": "co2"}, "enabled": {"type": "boolean", "example": false}}
        },
        "handlers.ScenarioRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string", "example": "poor"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Air Quality Dashboard API",
	Description:      "Sensor store, control panel actions, assessments and the event log.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
