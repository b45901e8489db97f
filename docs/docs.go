package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "FUP Dashboard Backend",
    "description": "Shipment demurrage risk: upload FUP sheets, filter, group and export them",
    "version": "1.0"
  },
  "basePath": "/",
  "paths": {
    "/healthz": {"get": {"tags": ["health"], "responses": {"200": {"description": "OK"}, "503": {"description": "store unavailable"}}}},
    "/api/datasets": {"post": {"tags": ["datasets"], "summary": "Upload FUP sheet", "consumes": ["multipart/form-data"], "parameters": [{"name": "file", "in": "formData", "type": "file", "required": true}], "responses": {"201": {"description": "dataset summary"}, "400": {"description": "bad upload"}, "422": {"description": "sheet missing or empty"}}}},
    "/api/datasets/latest": {"get": {"tags": ["datasets"], "summary": "Latest dataset", "responses": {"200": {"description": "dataset summary"}, "404": {"description": "no dataset"}}}},
    "/api/datasets/{id}": {
      "get": {"tags": ["datasets"], "summary": "Dataset metadata and filter options", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "dataset summary"}, "404": {"description": "not found"}}},
      "delete": {"tags": ["datasets"], "summary": "Delete dataset", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"204": {"description": "deleted"}, "404": {"description": "not found"}}}
    },
    "/api/datasets/{id}/view": {"post": {"tags": ["views"], "summary": "Run the risk pipeline", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "request", "in": "body", "schema": {"type": "object"}}], "responses": {"200": {"description": "pipeline result"}, "400": {"description": "invalid request"}, "404": {"description": "not found"}}}},
    "/api/datasets/{id}/export": {"post": {"tags": ["views"], "summary": "Export view as xlsx", "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"], "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "request", "in": "body", "schema": {"type": "object"}}], "responses": {"200": {"description": "workbook"}}}},
    "/metrics": {"get": {"tags": ["health"], "summary": "Prometheus metrics", "responses": {"200": {"description": "OK"}}}}
  }
}`

func init() {
	swag.Register(swag.Name, &s{})
}

type s struct{}

func (s *s) ReadDoc() string {
	return docTemplate
}
