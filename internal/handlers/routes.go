package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"user-crud-api/pkg/lambda"
)

// RegisterRoutes mounts the user endpoints on a gin router. The bare
// collection path is routed for every verb, with and without a trailing
// slash, so a missing id reaches the handler and is answered with 422.
func RegisterRoutes(router gin.IRouter, h *UserHandler) {
	users := router.Group(usersPath)
	for _, path := range []string{"", "/"} {
		users.POST(path, Gin(h.HandleCreate))
		users.GET(path, Gin(h.HandleGet))
		users.PUT(path, Gin(h.HandleUpdate))
		users.DELETE(path, Gin(h.HandleDelete))
	}
	users.GET("/:id", Gin(h.HandleGet))
	users.PUT("/:id", Gin(h.HandleUpdate))
	users.DELETE("/:id", Gin(h.HandleDelete))
}

// Gin adapts a serverless handler to a gin handler so the local server and
// the Lambda functions share one code path
func Gin(fn lambda.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := requestFromGin(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "Unreadable request body."})
			return
		}

		resp, err := fn(c.Request.Context(), req)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, emptyBody)
			return
		}

		for k, v := range resp.Headers {
			c.Header(k, v)
		}
		c.Data(resp.StatusCode, resp.Headers["Content-Type"], resp.Body)
	}
}

func requestFromGin(c *gin.Context) (*lambda.Request, error) {
	var body []byte
	if c.Request.Body != nil {
		var err error
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, err
		}
	}

	headers := make(map[string]string, len(c.Request.Header))
	for k := range c.Request.Header {
		headers[k] = c.Request.Header.Get(k)
	}

	query := make(map[string]string)
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			query[k] = v[0]
		}
	}

	params := make(map[string]string, len(c.Params))
	for _, p := range c.Params {
		params[p.Key] = p.Value
	}

	return &lambda.Request{
		Method:      c.Request.Method,
		Path:        c.Request.URL.Path,
		Headers:     headers,
		QueryParams: query,
		Body:        body,
		PathParams:  params,
		RequestID:   c.GetString("request_id"),
	}, nil
}
