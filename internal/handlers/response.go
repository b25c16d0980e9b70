package handlers

import (
	"encoding/json"
	"fmt"

	"user-crud-api/pkg/lambda"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// emptyBody encodes as {} and is sent whenever a response carries no detail
var emptyBody = struct{}{}

// responseHeaders are attached to every response
func responseHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                     "application/json",
		"Access-Control-Allow-Origin":      "*",
		"Access-Control-Allow-Credentials": "true",
	}
}

// success builds a 2xx response with a JSON body
func success(status int, body interface{}) (*lambda.Response, error) {
	return buildResponse(status, body)
}

// failure builds an error response; body is either emptyBody or an ErrorResponse
func failure(status int, body interface{}) (*lambda.Response, error) {
	return buildResponse(status, body)
}

func buildResponse(status int, body interface{}) (*lambda.Response, error) {
	if body == nil {
		body = emptyBody
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response body: %w", err)
	}
	return &lambda.Response{
		StatusCode: status,
		Headers:    responseHeaders(),
		Body:       encoded,
	}, nil
}
