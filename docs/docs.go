// Package docs holds the OpenAPI description served under /swagger.
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
		"/login": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Login form",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			},
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Login (form)",
				"produces": [
					"application/json"
				],
				"responses": {
					"303": {
						"description": "See Other"
					},
					"401": {
						"description": "Unauthorized"
					},
					"422": {
						"description": "Unprocessable Entity"
					},
					"502": {
						"description": "Bad Gateway"
					}
				},
				"consumes": [
					"application/x-www-form-urlencoded"
				]
			}
		},
		"/logout": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Logout (form)",
				"produces": [
					"application/json"
				],
				"responses": {
					"303": {
						"description": "See Other"
					}
				}
			}
		},
		"/api/v1/auth/login/": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Login",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.loginResponse"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"502": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"parameters": [
					{
						"description": "payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.loginRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			},
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Login (wrong method)",
				"produces": [
					"application/json"
				],
				"responses": {
					"405": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/v1/auth/logout/": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Logout",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/v1/users/me/": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Current user (proxy)",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.UserProfile"
						}
					},
					"401": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/dashboard": {
			"get": {
				"tags": [
					"dashboard"
				],
				"summary": "Dashboard overview",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/dashboard/analytics": {
			"get": {
				"tags": [
					"dashboard"
				],
				"summary": "Loan and fleet analytics",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/dashboard/profile": {
			"get": {
				"tags": [
					"dashboard"
				],
				"summary": "Current staff profile",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/dashboard/users": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "List users",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/dashboard/users/{id}": {
			"put": {
				"tags": [
					"users"
				],
				"summary": "Update a user",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"422": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"consumes": [
					"application/json"
				]
			},
			"delete": {
				"tags": [
					"users"
				],
				"summary": "Delete a user",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"403": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/dashboard/users/{id}/toggle": {
			"post": {
				"tags": [
					"users"
				],
				"summary": "Activate or deactivate a user",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"403": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/dashboard/e-bikes": {
			"get": {
				"tags": [
					"e-bikes"
				],
				"summary": "List e-bikes",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			},
			"post": {
				"tags": [
					"e-bikes"
				],
				"summary": "Add an e-bike",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"422": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/dashboard/e-bikes/{id}": {
			"put": {
				"tags": [
					"e-bikes"
				],
				"summary": "Update an e-bike",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"422": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"consumes": [
					"application/json"
				]
			},
			"delete": {
				"tags": [
					"e-bikes"
				],
				"summary": "Remove an e-bike",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/dashboard/categories": {
			"get": {
				"tags": [
					"categories"
				],
				"summary": "List categories",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			},
			"post": {
				"tags": [
					"categories"
				],
				"summary": "Add a category",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"422": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/dashboard/categories/{id}": {
			"put": {
				"tags": [
					"categories"
				],
				"summary": "Update a category",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"consumes": [
					"application/json"
				]
			},
			"delete": {
				"tags": [
					"categories"
				],
				"summary": "Remove a category",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/dashboard/loans": {
			"get": {
				"tags": [
					"loans"
				],
				"summary": "List loans from the applicant endpoint",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/dashboard/loan-applications": {
			"get": {
				"tags": [
					"loans"
				],
				"summary": "List loan applications",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/dashboard/loan-applications/{id}": {
			"get": {
				"tags": [
					"loans"
				],
				"summary": "Get a loan application",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"patch": {
				"tags": [
					"loans"
				],
				"summary": "Edit a loan application",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"consumes": [
					"application/json"
				]
			},
			"delete": {
				"tags": [
					"loans"
				],
				"summary": "Delete a loan application",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/dashboard/loan-applications/{id}/status": {
			"post": {
				"tags": [
					"loans"
				],
				"summary": "Approve, reject or requeue an application",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"422": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.loanStatusRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/dashboard/wallet-payments": {
			"get": {
				"tags": [
					"wallet"
				],
				"summary": "Wallet balance and payment history",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/health": {
			"get": {
				"tags": [
					"health"
				],
				"summary": "Liveness probe",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/health/ready": {
			"get": {
				"tags": [
					"health"
				],
				"summary": "Readiness probe",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"503": {
						"description": "Service Unavailable"
					}
				}
			}
		}
	},
	"definitions": {
		"handler.errorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				},
				"redirect": {
					"type": "string"
				}
			}
		},
		"handler.loginRequest": {
			"type": "object",
			"required": [
				"email",
				"password"
			],
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"remember": {
					"type": "boolean"
				}
			}
		},
		"handler.loginResponse": {
			"type": "object",
			"properties": {
				"user": {
					"$ref": "#/definitions/domain.UserProfile"
				}
			}
		},
		"handler.loanStatusRequest": {
			"type": "object",
			"required": [
				"status"
			],
			"properties": {
				"status": {
					"type": "string",
					"enum": [
						"pending",
						"under_review",
						"approved",
						"rejected"
					]
				},
				"rejection_reason": {
					"type": "string"
				}
			}
		},
		"domain.UserProfile": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"email": {
					"type": "string"
				},
				"username": {
					"type": "string"
				},
				"first_name": {
					"type": "string"
				},
				"last_name": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"is_active": {
					"type": "boolean"
				},
				"is_admin": {
					"type": "boolean"
				},
				"phone": {
					"type": "string"
				},
				"picture_url": {
					"type": "string"
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:		  "1.0",
	Host:			 "",
	BasePath:		 "/",
	Schemes:		  []string{},
	Title:			"Gari Mobility Admin Dashboard",
	Description:	  "Session-backed admin dashboard over the Gari Mobility e-bike backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:		"{{",
	RightDelim:	   "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
