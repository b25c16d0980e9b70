package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"user-crud-api/pkg/lambda"
)

const usersPath = "/users"

// Route dispatches a request to the matching user operation. A panic in a
// handler is logged and answered with 500.
func (h *UserHandler) Route(ctx context.Context, req *lambda.Request) (resp *lambda.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.WithFields(logrus.Fields{
				"method": req.Method,
				"path":   req.Path,
				"panic":  fmt.Sprint(r),
			}).Error("Handler panicked")
			resp, err = failure(http.StatusInternalServerError, emptyBody)
		}
	}()

	if !isUsersPath(req) {
		return notFound()
	}

	switch strings.ToUpper(req.Method) {
	case http.MethodPost:
		return h.HandleCreate(ctx, req)
	case http.MethodGet:
		return h.HandleGet(ctx, req)
	case http.MethodPut:
		return h.HandleUpdate(ctx, req)
	case http.MethodDelete:
		return h.HandleDelete(ctx, req)
	default:
		return notFound()
	}
}

func isUsersPath(req *lambda.Request) bool {
	if req.PathParams["id"] != "" {
		return true
	}
	path := strings.TrimSuffix(req.Path, "/")
	return path == usersPath || strings.HasPrefix(req.Path, usersPath+"/")
}

func notFound() (*lambda.Response, error) {
	return failure(http.StatusNotFound, ErrorResponse{Error: "Not found"})
}
