// Package docs registers the OpenAPI description served at /api/swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
		"/auth/register": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "User Registration",
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"description": "Payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/domain.RegisterRequest"
						}
					}
				]
			}
		},
		"/auth/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "User Login",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"description": "Payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/domain.LoginRequest"
						}
					}
				]
			}
		},
		"/auth/me": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Current user",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/auth/profile": {
			"put": {
				"tags": [
					"auth"
				],
				"summary": "Update profile",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"description": "Payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/domain.ProfileUpdate"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/auth/logout": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Logout",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/jobs": {
			"get": {
				"tags": [
					"jobs"
				],
				"summary": "List active jobs",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Page (default 1)",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page size (1-100)",
						"name": "limit",
						"in": "query"
					}
				]
			},
			"post": {
				"tags": [
					"jobs"
				],
				"summary": "Create a new job",
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"description": "Payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/domain.Job"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/jobs/{id}": {
			"get": {
				"tags": [
					"jobs"
				],
				"summary": "Get job",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Job ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"jobs"
				],
				"summary": "Update a job",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Job ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/domain.Job"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"jobs"
				],
				"summary": "Delete a job",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Job ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/jobs/company/my-jobs": {
			"get": {
				"tags": [
					"jobs"
				],
				"summary": "List my jobs",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Page (default 1)",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page size (1-100)",
						"name": "limit",
						"in": "query"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/internships": {
			"get": {
				"tags": [
					"internships"
				],
				"summary": "List open internships",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Page (default 1)",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page size (1-100)",
						"name": "limit",
						"in": "query"
					}
				]
			},
			"post": {
				"tags": [
					"internships"
				],
				"summary": "Create a new internship",
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"description": "Payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/domain.Internship"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/internships/{id}": {
			"get": {
				"tags": [
					"internships"
				],
				"summary": "Get internship",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Internship ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"internships"
				],
				"summary": "Update an internship",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Internship ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/domain.Internship"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"internships"
				],
				"summary": "Delete an internship",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Internship ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/internships/company/my-internships": {
			"get": {
				"tags": [
					"internships"
				],
				"summary": "List my internships",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Page (default 1)",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page size (1-100)",
						"name": "limit",
						"in": "query"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/applications/apply": {
			"post": {
				"tags": [
					"applications"
				],
				"summary": "Apply to a job",
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"description": "Payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/domain.ApplyRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/applications/my-applications": {
			"get": {
				"tags": [
					"applications"
				],
				"summary": "Get my applications",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/applications/company": {
			"get": {
				"tags": [
					"applications"
				],
				"summary": "List applications to my jobs",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Stage",
						"name": "stage",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Name, email or skill",
						"name": "q",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Job ID",
						"name": "jobId",
						"in": "query"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/applications/{id}/status": {
			"put": {
				"tags": [
					"applications"
				],
				"summary": "Update application status",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Application ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/domain.StatusChange"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/applications/{id}/withdraw": {
			"delete": {
				"tags": [
					"applications"
				],
				"summary": "Withdraw an application",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Application ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/applications/stats": {
			"get": {
				"tags": [
					"applications"
				],
				"summary": "Application statistics",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/internship-applications/apply": {
			"post": {
				"tags": [
					"internship-applications"
				],
				"summary": "Apply to an internship",
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"description": "Payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/domain.InternshipApplyRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/internship-applications/my-applications": {
			"get": {
				"tags": [
					"internship-applications"
				],
				"summary": "Get my internship applications",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/internship-applications/company": {
			"get": {
				"tags": [
					"internship-applications"
				],
				"summary": "List applicants to my internships",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Stage",
						"name": "stage",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Name, email or skill",
						"name": "q",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Internship ID",
						"name": "internshipId",
						"in": "query"
					},
					{
						"type": "number",
						"description": "Minimum GPA (0-4)",
						"name": "minGpa",
						"in": "query"
					},
					{
						"type": "string",
						"description": "University contains",
						"name": "university",
						"in": "query"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/internship-applications/{id}/status": {
			"put": {
				"tags": [
					"internship-applications"
				],
				"summary": "Update internship application status",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Application ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/domain.StatusChange"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/internship-applications/{id}/withdraw": {
			"delete": {
				"tags": [
					"internship-applications"
				],
				"summary": "Withdraw an internship application",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Application ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/internship-applications/company/stats": {
			"get": {
				"tags": [
					"internship-applications"
				],
				"summary": "Internship applicant statistics",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/internship-applications/company/export": {
			"get": {
				"tags": [
					"internship-applications"
				],
				"summary": "Export applicants",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "file"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"produces": [
					"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/simulasi/submit": {
			"post": {
				"tags": [
					"simulasi"
				],
				"summary": "Submit an assessment",
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"description": "Payload",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/domain.SubmitRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/simulasi/my-results": {
			"get": {
				"tags": [
					"simulasi"
				],
				"summary": "My assessment results",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/simulasi/result/{id}": {
			"get": {
				"tags": [
					"simulasi"
				],
				"summary": "Get one of my results",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Result ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/simulasi/leaderboards": {
			"get": {
				"tags": [
					"simulasi"
				],
				"summary": "All leaderboards",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Entries per category (1-100)",
						"name": "limit",
						"in": "query"
					}
				]
			}
		},
		"/simulasi/leaderboard/{categoryId}": {
			"get": {
				"tags": [
					"simulasi"
				],
				"summary": "Category leaderboard",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Category",
						"name": "categoryId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "Entries (1-100)",
						"name": "limit",
						"in": "query"
					}
				]
			}
		},
		"/simulasi/leaderboard/{categoryId}/export": {
			"get": {
				"tags": [
					"simulasi"
				],
				"summary": "Export a leaderboard",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "file"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"produces": [
					"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Category",
						"name": "categoryId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/health": {
			"get": {
				"tags": [
					"health"
				],
				"summary": "Health check",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"response.Response": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"message": {
					"type": "string"
				},
				"data": {},
				"errors": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"requestId": {
					"type": "string"
				}
			}
		},
		"domain.RegisterRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"role": {
					"type": "string",
					"enum": [
						"candidate",
						"company"
					]
				},
				"companyName": {
					"type": "string"
				}
			},
			"required": [
				"name",
				"email",
				"password",
				"role"
			]
		},
		"domain.LoginRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"password"
			]
		},
		"domain.ProfileUpdate": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"companyName": {
					"type": "string"
				}
			},
			"required": [
				"name"
			]
		},
		"domain.Salary": {
			"type": "object",
			"properties": {
				"min": {
					"type": "number"
				},
				"max": {
					"type": "number"
				},
				"currency": {
					"type": "string",
					"enum": [
						"IDR",
						"USD"
					]
				}
			}
		},
		"domain.Job": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"companyId": {
					"type": "string"
				},
				"companyName": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"department": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"employmentType": {
					"type": "string",
					"enum": [
						"full-time",
						"part-time",
						"contract",
						"freelance"
					]
				},
				"experienceLevel": {
					"type": "string",
					"enum": [
						"entry",
						"junior",
						"mid",
						"senior",
						"lead"
					]
				},
				"locationMode": {
					"type": "string",
					"enum": [
						"onsite",
						"remote",
						"hybrid"
					]
				},
				"location": {
					"type": "string"
				},
				"salary": {
					"$ref": "#/definitions/domain.Salary"
				},
				"requirements": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"skills": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"benefits": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"status": {
					"type": "string",
					"enum": [
						"active",
						"draft",
						"paused",
						"closed"
					]
				},
				"applicationCount": {
					"type": "integer"
				}
			},
			"required": [
				"title",
				"description",
				"employmentType",
				"locationMode"
			]
		},
		"domain.Internship": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"companyId": {
					"type": "string"
				},
				"companyName": {
					"type": "string"
				},
				"position": {
					"type": "string"
				},
				"department": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"durationMonths": {
					"type": "integer"
				},
				"locationMode": {
					"type": "string",
					"enum": [
						"onsite",
						"remote",
						"hybrid"
					]
				},
				"location": {
					"type": "string"
				},
				"stipend": {
					"$ref": "#/definitions/domain.Salary"
				},
				"requirements": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"skills": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"benefits": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"quota": {
					"type": "integer"
				},
				"status": {
					"type": "string",
					"enum": [
						"open",
						"draft",
						"closed"
					]
				},
				"applicationCount": {
					"type": "integer"
				}
			},
			"required": [
				"position",
				"description",
				"durationMonths",
				"locationMode"
			]
		},
		"domain.ApplyRequest": {
			"type": "object",
			"properties": {
				"jobId": {
					"type": "string"
				},
				"candidateSkills": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"coverLetter": {
					"type": "string"
				}
			},
			"required": [
				"jobId"
			]
		},
		"domain.InternshipApplyRequest": {
			"type": "object",
			"properties": {
				"internshipId": {
					"type": "string"
				},
				"university": {
					"type": "string"
				},
				"major": {
					"type": "string"
				},
				"semester": {
					"type": "integer"
				},
				"gpa": {
					"type": "number"
				},
				"candidateSkills": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"coverLetter": {
					"type": "string"
				}
			},
			"required": [
				"internshipId",
				"university",
				"major",
				"semester",
				"gpa"
			]
		},
		"domain.StatusChange": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"notes": {
					"type": "string"
				},
				"score": {
					"type": "number"
				}
			},
			"required": [
				"status"
			]
		},
		"domain.Breakdown": {
			"type": "object",
			"properties": {
				"technical": {
					"type": "number"
				},
				"creativity": {
					"type": "number"
				},
				"efficiency": {
					"type": "number"
				},
				"communication": {
					"type": "number"
				}
			}
		},
		"domain.SubmitRequest": {
			"type": "object",
			"properties": {
				"categoryId": {
					"type": "string"
				},
				"totalScore": {
					"type": "number"
				},
				"maxScore": {
					"type": "number"
				},
				"breakdown": {
					"$ref": "#/definitions/domain.Breakdown"
				},
				"timeSpentSeconds": {
					"type": "integer"
				}
			},
			"required": [
				"categoryId",
				"maxScore"
			]
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "SimHire API",
	Description:      "Job and internship hiring pipelines with simulated-work assessments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
