// Package docs registers the OpenAPI description served at /swagger/*.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.HealthResponse"}}
                }
            }
        },
        "/call/start": {
            "post": {
                "description": "Creates a call session and returns the assistant greeting",
                "produces": ["application/json"],
                "tags": ["Call"],
                "summary": "Start a call",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/call.StartResponse"}},
                    "429": {"description": "Rate limit exceeded", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "500": {"description": "Failed to create session", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/call/process": {
            "post": {
                "description": "Records the user message and returns the assistant reply. Provider failures yield a demo reply.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Call"],
                "summary": "Process a user utterance",
                "parameters": [
                    {"description": "User message", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/call.ProcessRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/call.ProcessResponse"}},
                    "400": {"description": "Missing sessionId or userMessage", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "404": {"description": "Unknown session", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "409": {"description": "Session ended or busy", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "429": {"description": "Rate limit exceeded", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/call/end": {
            "post": {
                "description": "Completes the session and returns its metadata with the generated summary",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Call"],
                "summary": "End a call",
                "parameters": [
                    {"description": "Session to end", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/call.EndRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/call.EndResponse"}},
                    "400": {"description": "Missing sessionId", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "404": {"description": "Unknown session", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "409": {"description": "Session already ended or busy", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/call/{sessionId}": {
            "get": {
                "description": "Returns the full session snapshot including transcript and summary",
                "produces": ["application/json"],
                "tags": ["Call"],
                "summary": "Get call details",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/call.SessionResponse"}},
                    "404": {"description": "Unknown session", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/speech/to-text": {
            "post": {
                "description": "Transcribes base64 encoded audio. Returns a mock transcript when no speech provider is configured.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Speech"],
                "summary": "Speech to text",
                "parameters": [
                    {"description": "Audio payload", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/speech.ToTextRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/speech.ToTextResponse"}},
                    "400": {"description": "Missing or malformed audioData", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "502": {"description": "Speech provider failed", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/speech/to-speech": {
            "post": {
                "description": "Synthesizes text and returns base64 encoded audio",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Speech"],
                "summary": "Text to speech",
                "parameters": [
                    {"description": "Text payload", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/speech.ToSpeechRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/speech.ToSpeechResponse"}},
                    "400": {"description": "Missing text", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "502": {"description": "Speech provider failed", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/speech/token": {
            "get": {
                "description": "Issues a short-lived speech token, or DEMO_TOKEN when no speech key is configured",
                "produces": ["application/json"],
                "tags": ["Speech"],
                "summary": "Browser speech token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/speech.Token"}},
                    "502": {"description": "Token issuance failed", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/speech/config": {
            "get": {
                "description": "Returns region, language and voice settings for the browser speech SDK",
                "produces": ["application/json"],
                "tags": ["Speech"],
                "summary": "Speech configuration",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/speech.Settings"}}
                }
            }
        }
    },
    "definitions": {
        "common.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "SESSION_NOT_FOUND"},
                "message": {"type": "string", "example": "Session not found"},
                "info": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "common.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "environment": {"type": "string", "example": "development"}
            }
        },
        "call.StartResponse": {
            "type": "object",
            "properties": {
                "sessionId": {"type": "string"},
                "greeting": {"type": "string"}
            }
        },
        "call.ProcessRequest": {
            "type": "object",
            "required": ["sessionId", "userMessage"],
            "properties": {
                "sessionId": {"type": "string"},
                "userMessage": {"type": "string", "maxLength": 4000}
            }
        },
        "call.ProcessResponse": {
            "type": "object",
            "properties": {
                "response": {"type": "string"},
                "sessionId": {"type": "string"}
            }
        },
        "call.EndRequest": {
            "type": "object",
            "required": ["sessionId"],
            "properties": {
                "sessionId": {"type": "string"}
            }
        },
        "call.EndResponse": {
            "type": "object",
            "properties": {
                "metadata": {"$ref": "#/definitions/call.Metadata"}
            }
        },
        "call.Metadata": {
            "type": "object",
            "properties": {
                "sessionId": {"type": "string"},
                "startTime": {"type": "string", "format": "date-time"},
                "endTime": {"type": "string", "format": "date-time"},
                "duration": {"type": "integer"},
                "messageCount": {"type": "integer"},
                "summary": {"$ref": "#/definitions/entities.Summary"}
            }
        },
        "call.TurnResponse": {
            "type": "object",
            "properties": {
                "role": {"type": "string", "enum": ["user", "assistant"]},
                "text": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"}
            }
        },
        "call.SessionResponse": {
            "type": "object",
            "properties": {
                "sessionId": {"type": "string"},
                "status": {"type": "string", "enum": ["created", "active", "completed"]},
                "startTime": {"type": "string", "format": "date-time"},
                "endTime": {"type": "string", "format": "date-time"},
                "duration": {"type": "integer"},
                "processing": {"type": "boolean"},
                "transcript": {"type": "array", "items": {"$ref": "#/definitions/call.TurnResponse"}},
                "summary": {"$ref": "#/definitions/entities.Summary"}
            }
        },
        "entities.Summary": {
            "type": "object",
            "properties": {
                "reason": {"type": "string"},
                "customerNeeds": {"type": "array", "items": {"type": "string"}},
                "aiActions": {"type": "array", "items": {"type": "string"}},
                "followUp": {"type": "string"},
                "sentiment": {"type": "string", "enum": ["Positive", "Neutral", "Negative"]},
                "keyPoints": {"type": "array", "items": {"type": "string"}},
                "messageCount": {"type": "integer"},
                "userMessageCount": {"type": "integer"},
                "aiMessageCount": {"type": "integer"},
                "duration": {"type": "integer"},
                "timestamp": {"type": "string", "format": "date-time"},
                "generatedBy": {"type": "string", "enum": ["language-model", "rule-based"]},
                "model": {"type": "string"}
            }
        },
        "speech.ToTextRequest": {
            "type": "object",
            "required": ["audioData"],
            "properties": {
                "sessionId": {"type": "string"},
                "audioData": {"type": "string", "format": "byte"}
            }
        },
        "speech.ToTextResponse": {
            "type": "object",
            "properties": {
                "text": {"type": "string"}
            }
        },
        "speech.ToSpeechRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {
                "sessionId": {"type": "string"},
                "text": {"type": "string", "maxLength": 4000}
            }
        },
        "speech.ToSpeechResponse": {
            "type": "object",
            "properties": {
                "audioData": {"type": "string", "format": "byte"}
            }
        },
        "speech.Token": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "region": {"type": "string"},
                "expiresIn": {"type": "integer", "example": 600}
            }
        },
        "speech.Settings": {
            "type": "object",
            "properties": {
                "region": {"type": "string"},
                "language": {"type": "string"},
                "voiceConfig": {
                    "type": "object",
                    "properties": {
                        "voiceName": {"type": "string"},
                        "speechRate": {"type": "string"},
                        "speechPitch": {"type": "string"},
                        "audioFormat": {"type": "string"}
                    }
                }
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
	Title:            "CashNDrive Call Assistant API",
	Description:      "Voice call assistant backend: call sessions, language-model replies, summaries and speech conversion.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
