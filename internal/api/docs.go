package api

import "github.com/swaggo/swag"

const docTemplate = `{
  "openapi": "3.0.3",
  "info": {
    "title": "{{.Title}}",
    "description": "{{escape .Description}}",
    "version": "{{.Version}}"
  },
  "paths": {
    "/healthz": {
      "get": {
        "operationId": "getHealth",
        "tags": ["health"],
        "responses": {
          "200": {"description": "Service healthy", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}},
          "503": {"description": "A dependency is down", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}}
        }
      }
    },
    "/api/v1/payments": {
      "get": {
        "operationId": "listPayments",
        "tags": ["payments"],
        "parameters": [
          {"name": "status", "in": "query", "required": false, "schema": {"type": "string"}},
          {"name": "completed_after", "in": "query", "required": false, "schema": {"type": "string", "format": "date"}}
        ],
        "responses": {
          "200": {"description": "Payments", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}},
          "400": {"description": "Unknown status", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}}
        }
      },
      "post": {
        "operationId": "createPayment",
        "tags": ["payments"],
        "parameters": [
          {"name": "Idempotency-Key", "in": "header", "required": false, "schema": {"type": "string", "maxLength": 255}}
        ],
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CreatePaymentRequest"}}}
        },
        "responses": {
          "201": {"description": "Payment created", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}},
          "400": {"description": "Invalid request", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}},
          "404": {"description": "Claim not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}},
          "409": {"description": "Claim not approved or duplicate reference", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}},
          "422": {"description": "Idempotency key reused with a different body", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}}
        }
      }
    },
    "/api/v1/payments/{id}": {
      "get": {
        "operationId": "getPayment",
        "tags": ["payments"],
        "parameters": [{"$ref": "#/components/parameters/PaymentID"}],
        "responses": {
          "200": {"description": "Payment", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}},
          "404": {"description": "Payment not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}}
        }
      }
    },
    "/api/v1/payments/claim/{claimId}": {
      "get": {
        "operationId": "listPaymentsByClaim",
        "tags": ["payments"],
        "parameters": [
          {"name": "claimId", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64", "minimum": 1}}
        ],
        "responses": {
          "200": {"description": "Payments for the claim", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}}
        }
      }
    },
    "/api/v1/payments/reference/{reference}": {
      "get": {
        "operationId": "getPaymentByReference",
        "tags": ["payments"],
        "parameters": [
          {"name": "reference", "in": "path", "required": true, "schema": {"type": "string", "minLength": 1, "maxLength": 100}}
        ],
        "responses": {
          "200": {"description": "Payment", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}},
          "404": {"description": "Payment not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}}
        }
      }
    },
    "/api/v1/payments/{id}/processing": {
      "post": {"operationId": "markPaymentProcessing", "tags": ["lifecycle"], "parameters": [{"$ref": "#/components/parameters/PaymentID"}],
      "responses": {
        "200": {"description": "Payment after the transition", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}},
        "404": {"description": "Payment not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}},
        "409": {"description": "Transition not allowed from the current status", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}}
      }}
    },
    "/api/v1/payments/{id}/complete": {
      "post": {"operationId": "markPaymentCompleted", "tags": ["lifecycle"], "parameters": [{"$ref": "#/components/parameters/PaymentID"}],
      "responses": {
        "200": {"description": "Payment after the transition", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}},
        "404": {"description": "Payment not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}},
        "409": {"description": "Transition not allowed from the current status", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}}
      }}
    },
    "/api/v1/payments/{id}/fail": {
      "post": {"operationId": "markPaymentFailed", "tags": ["lifecycle"], "parameters": [{"$ref": "#/components/parameters/PaymentID"}],
      "responses": {
        "200": {"description": "Payment after the transition", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}},
        "404": {"description": "Payment not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}},
        "409": {"description": "Transition not allowed from the current status", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}}
      }}
    },
    "/api/v1/payments/{id}/refund": {
      "post": {"operationId": "markPaymentRefunded", "tags": ["lifecycle"], "parameters": [{"$ref": "#/components/parameters/PaymentID"}],
      "responses": {
        "200": {"description": "Payment after the transition", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}},
        "404": {"description": "Payment not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}},
        "409": {"description": "Transition not allowed from the current status", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/APIResponse"}}}}
      }}
    }
  },
  "components": {
    "parameters": {
      "PaymentID": {"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64", "minimum": 1}}
    },
    "schemas": {
      "CreatePaymentRequest": {
        "type": "object",
        "required": ["claim_id", "amount", "payment_method", "transaction_reference", "processed_by"],
        "properties": {
          "claim_id": {"type": "integer", "format": "int64", "minimum": 1},
          "amount": {"oneOf": [{"type": "number"}, {"type": "string"}]},
          "payment_method": {"type": "string", "minLength": 1},
          "transaction_reference": {"type": "string", "minLength": 1},
          "processed_by": {"type": "string", "minLength": 1, "maxLength": 100},
          "notes": {"type": "string", "maxLength": 500}
        }
      },
      "Payment": {
        "type": "object",
        "properties": {
          "id": {"type": "integer", "format": "int64"},
          "claim_id": {"type": "integer", "format": "int64"},
          "amount": {"type": "string"},
          "payment_method": {"type": "string", "enum": ["BANK_TRANSFER", "CHECK", "CREDIT_CARD", "CASH"]},
          "payment_method_display_name": {"type": "string"},
          "payment_status": {"type": "string", "enum": ["PENDING", "PROCESSING", "COMPLETED", "FAILED", "REFUNDED"]},
          "transaction_reference": {"type": "string"},
          "payment_date": {"type": "string", "format": "date"},
          "processed_by": {"type": "string"},
          "notes": {"type": "string"}
        }
      },
      "ErrorDetail": {
        "type": "object",
        "required": ["code", "message"],
        "properties": {
          "code": {"type": "string"},
          "message": {"type": "string"},
          "details": {"type": "object", "additionalProperties": {"type": "string"}}
        }
      },
      "APIResponse": {
        "type": "object",
        "required": ["success"],
        "properties": {
          "success": {"type": "boolean"},
          "data": {},
          "error": {"$ref": "#/components/schemas/ErrorDetail"}
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
	Title:            "claimpay API",
	Description:      "Records payments against approved insurance claims and tracks their lifecycle.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
