package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"user-crud-api/pkg/lambda"
	"user-crud-api/pkg/server"
)

// headers attached when the container cannot be built
var fallbackHeaders = map[string]string{
	"Content-Type":                     "application/json",
	"Access-Control-Allow-Origin":      "*",
	"Access-Control-Allow-Credentials": "true",
}

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	container, err := server.GetConnectionManager().GetContainer(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to initialize container")
		return internalError(), nil
	}

	req, err := lambda.FromAPIGateway(event)
	if err != nil {
		container.Logger.WithError(err).Warn("Unreadable API Gateway event")
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusUnprocessableEntity,
			Headers:    fallbackHeaders,
			Body:       `{"error":"Malformed JSON body."}`,
		}, nil
	}

	resp, err := container.UserHandler.Route(ctx, req)
	if err != nil {
		container.Logger.WithError(err).Error("Failed to build response")
		return internalError(), nil
	}
	return resp.ToAPIGateway(), nil
}

func internalError() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusInternalServerError,
		Headers:    fallbackHeaders,
		Body:       `{}`,
	}
}

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	awslambda.StartWithOptions(handler, awslambda.WithEnableSIGTERM(shutdown))
}

// shutdown releases the warm container when the runtime stops the sandbox
func shutdown() {
	if err := server.GetConnectionManager().Cleanup(); err != nil {
		logrus.WithError(err).Error("Failed to close container")
	}
}
