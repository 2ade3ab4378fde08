// Package docs содержит Swagger-описание API для gin-swagger.
// Шаблон ведется вручную вместе с аннотациями хэндлеров.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Проверка доступности",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/messages": {
            "get": {
                "description": "Сообщения, которые видит участник из заголовка user, старые первыми",
                "produces": ["application/json"],
                "tags": ["messages"],
                "summary": "Видимые сообщения",
                "parameters": [
                    {"type": "string", "description": "Имя участника", "name": "user", "in": "header"},
                    {"type": "integer", "description": "Только последние N", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Message"}}},
                    "422": {"description": "limit не целое число", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["messages"],
                "summary": "Отправить сообщение",
                "parameters": [
                    {"type": "string", "description": "Имя отправителя", "name": "user", "in": "header", "required": true},
                    {"description": "Сообщение", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.MessageRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Message"}},
                    "422": {"description": "Невалидное тело или отправитель не активен", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/messages/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["messages"],
                "summary": "Изменить свое сообщение",
                "parameters": [
                    {"type": "string", "description": "Имя отправителя", "name": "user", "in": "header", "required": true},
                    {"type": "string", "description": "ID сообщения", "name": "id", "in": "path", "required": true},
                    {"description": "Новое содержимое", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.MessageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Message"}},
                    "401": {"description": "Чужое или системное сообщение", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}},
                    "404": {"description": "Сообщение не найдено", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}},
                    "422": {"description": "Невалидное тело или отправитель не активен", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["messages"],
                "summary": "Удалить свое сообщение",
                "parameters": [
                    {"type": "string", "description": "Имя отправителя", "name": "user", "in": "header", "required": true},
                    {"type": "string", "description": "ID сообщения", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Чужое или системное сообщение", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}},
                    "404": {"description": "Сообщение не найдено", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/participants": {
            "get": {
                "produces": ["application/json"],
                "tags": ["participants"],
                "summary": "Активные участники",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Participant"}}}
                }
            },
            "post": {
                "description": "Регистрирует участника и объявляет о его входе",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["participants"],
                "summary": "Войти в чат",
                "parameters": [
                    {"description": "Имя участника", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterParticipantRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Participant"}},
                    "409": {"description": "Имя занято", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}},
                    "422": {"description": "Пустое или зарезервированное имя", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/status": {
            "post": {
                "tags": ["participants"],
                "summary": "Подтвердить присутствие",
                "parameters": [
                    {"type": "string", "description": "Имя участника", "name": "user", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Участник не активен", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/ws": {
            "get": {
                "description": "Websocket: события created/updated/deleted по сообщениям, которые видит участник",
                "tags": ["feed"],
                "summary": "Живая лента сообщений",
                "parameters": [
                    {"type": "string", "description": "Имя участника", "name": "user", "in": "header"},
                    {"type": "string", "description": "Имя участника, если заголовок недоступен", "name": "user", "in": "query"}
                ],
                "responses": {
                    "101": {"description": "Switching Protocols"},
                    "422": {"description": "Имя не указано", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "apperrors.AppError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {},
                "domain": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "apperrors.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/apperrors.AppError"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            }
        },
        "dto.MessageRequest": {
            "type": "object",
            "required": ["text", "to", "type"],
            "properties": {
                "text": {"type": "string"},
                "to": {"type": "string"},
                "type": {"type": "string", "enum": ["message", "private_message"]}
            }
        },
        "dto.RegisterParticipantRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 255}
            }
        },
        "models.Message": {
            "type": "object",
            "properties": {
                "from": {"type": "string"},
                "id": {"type": "string"},
                "text": {"type": "string"},
                "time": {"type": "string"},
                "to": {"type": "string"},
                "type": {"type": "string", "enum": ["message", "private_message", "status"]}
            }
        },
        "models.Participant": {
            "type": "object",
            "properties": {
                "lastStatus": {"type": "integer"},
                "name": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "chatroom API",
	Description:      "Чат-комната: участники, сообщения, живая лента.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
