// Package swagger registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o api/swagger
package swagger

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
        "/api/dmv-calculations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dmv-calculations"],
                "summary": "List DMV calculations",
                "parameters": [
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Number of items per page (default 20)", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["dmv-calculations"],
                "summary": "Create a DMV calculation",
                "parameters": [
                    {"description": "Calculation input", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.CalculationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/dmv-calculations/preview": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Validates the record and derives its tax totals; nothing is stored",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["dmv-calculations"],
                "summary": "Preview a DMV calculation",
                "parameters": [
                    {"description": "Calculation input", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.CalculationRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/dmv-calculations/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dmv-calculations"],
                "summary": "Get a DMV calculation",
                "parameters": [{"type": "integer", "description": "Calculation ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["dmv-calculations"],
                "summary": "Update a DMV calculation",
                "parameters": [
                    {"type": "integer", "description": "Calculation ID", "name": "id", "in": "path", "required": true},
                    {"description": "Calculation input", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.CalculationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dmv-calculations"],
                "summary": "Delete a DMV calculation",
                "parameters": [{"type": "integer", "description": "Calculation ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/market-listings": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["market-listings"],
                "summary": "Create a market listing",
                "parameters": [
                    {"description": "Listing", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.CreateListingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/market-listings/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["market-listings"],
                "summary": "Get a market listing",
                "parameters": [{"type": "integer", "description": "Listing ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"type": "string"},
                "status": {"type": "string"},
                "statusCode": {"type": "integer"}
            }
        },
        "service.CalculationRequest": {
            "type": "object",
            "properties": {
                "dateOfCalculation": {"type": "string"},
                "vehicleType": {"type": "integer"},
                "fuelType": {"type": "integer"},
                "euroExhaustStandard": {"type": "integer"},
                "engineType": {"type": "integer"},
                "co2EmissionsGramsPerKm": {"type": "integer"},
                "engineDisplacementCcm": {"type": "integer"},
                "enginePowerKw": {"type": "integer"},
                "hasAtLeastEightSeats": {"type": "boolean"},
                "dieselParticlesAboveLimit": {"type": "boolean"},
                "vehicleValue": {"type": "string"},
                "baseTaxRatePercent": {"type": "string"},
                "additionalTaxRatePercent": {"type": "string"},
                "marketListingId": {"type": "integer"}
            }
        },
        "service.CreateListingRequest": {
            "type": "object",
            "required": ["externalId", "make"],
            "properties": {
                "externalId": {"type": "string"},
                "source": {"type": "string"},
                "make": {"type": "string"},
                "model": {"type": "string"},
                "firstRegistration": {"type": "string"},
                "price": {"type": "string"},
                "currency": {"type": "string"},
                "co2EmissionsGramsPerKm": {"type": "integer"},
                "fuelType": {"type": "integer"},
                "enginePowerKw": {"type": "integer"},
                "url": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "DMV Calculation API",
	Description:      "Validates vehicle records and derives DMV tax totals.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
