package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"user-crud-api/internal/models"
	"user-crud-api/internal/repositories"
	"user-crud-api/pkg/lambda"
)

const missingIDMessage = "ID Parameter required."

// UserHandler handles user-related requests
type UserHandler struct {
	repo   repositories.UserRepository
	logger logrus.FieldLogger
}

// NewUserHandler creates a new user handler
func NewUserHandler(repo repositories.UserRepository, logger logrus.FieldLogger) *UserHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &UserHandler{
		repo:   repo,
		logger: logger,
	}
}

// HandleGet serves GET /users/{id}
//
// @Summary Get a user
// @Description Read a user by its version 1 UUID
// @Tags users
// @Produce json
// @Param id path string true "User ID (UUID v1)"
// @Success 200 {object} models.User
// @Failure 404 {object} object "Empty body"
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} object "Empty body"
// @Router /users/{id} [get]
func (h *UserHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	id, resp, err := h.requireID(req)
	if resp != nil || err != nil {
		return resp, err
	}

	result, err := h.repo.Read(ctx, id)
	if err != nil {
		return failure(http.StatusInternalServerError, emptyBody)
	}
	if result.Item == nil {
		return failure(http.StatusNotFound, emptyBody)
	}
	return success(http.StatusOK, result.Item)
}

// HandleCreate serves POST /users
//
// @Summary Create a user
// @Description Store a user under a newly generated version 1 UUID
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.User true "User data"
// @Success 201 {object} object "Empty body"
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} object "Empty body"
// @Router /users [post]
func (h *UserHandler) HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	user, resp, err := h.requireUser(req)
	if resp != nil || err != nil {
		return resp, err
	}

	if err := h.repo.Create(ctx, user); err != nil {
		return h.repositoryFailure(err)
	}
	return success(http.StatusCreated, emptyBody)
}

// HandleUpdate serves PUT /users/{id}
//
// @Summary Update a user
// @Description Overwrite every field of a user, creating it when absent
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID (UUID v1)"
// @Param user body models.User true "Complete user data"
// @Success 200 {object} models.User
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} object "Empty body"
// @Router /users/{id} [put]
func (h *UserHandler) HandleUpdate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	id, resp, err := h.requireID(req)
	if resp != nil || err != nil {
		return resp, err
	}
	user, resp, err := h.requireUser(req)
	if resp != nil || err != nil {
		return resp, err
	}

	attrs, err := h.repo.Update(ctx, id, user)
	if err != nil {
		return h.repositoryFailure(err)
	}
	if attrs == nil {
		return success(http.StatusOK, emptyBody)
	}
	return success(http.StatusOK, attrs)
}

// HandleDelete serves DELETE /users/{id}
//
// @Summary Delete a user
// @Description Remove a user by its version 1 UUID
// @Tags users
// @Produce json
// @Param id path string true "User ID (UUID v1)"
// @Success 200 {object} object "Empty body"
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} object "Empty body"
// @Router /users/{id} [delete]
func (h *UserHandler) HandleDelete(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	id, resp, err := h.requireID(req)
	if resp != nil || err != nil {
		return resp, err
	}

	result, err := h.repo.Delete(ctx, id)
	if err != nil {
		return h.repositoryFailure(err)
	}
	if result.Attributes == nil {
		return success(http.StatusOK, emptyBody)
	}
	return success(http.StatusOK, result.Attributes)
}

// requireID extracts and validates the id path parameter. A non-nil response
// means the request was rejected and must be returned as is.
func (h *UserHandler) requireID(req *lambda.Request) (string, *lambda.Response, error) {
	id := userID(req)
	if id == "" {
		resp, err := failure(http.StatusUnprocessableEntity, ErrorResponse{Error: missingIDMessage})
		return "", resp, err
	}

	if err := models.ValidateID(id); err != nil {
		h.logger.WithFields(logrus.Fields{
			"id":    id,
			"error": err.Error(),
		}).Info("Invalid ID [" + id + "]")
		resp, err := failure(http.StatusUnprocessableEntity, emptyBody)
		return "", resp, err
	}
	return id, nil, nil
}

// requireUser decodes and validates the request body
func (h *UserHandler) requireUser(req *lambda.Request) (*models.User, *lambda.Response, error) {
	if len(strings.TrimSpace(string(req.Body))) == 0 {
		resp, err := failure(http.StatusUnprocessableEntity, ErrorResponse{Error: "Request body required."})
		return nil, resp, err
	}

	var user models.User
	if err := json.Unmarshal(req.Body, &user); err != nil {
		h.logger.WithError(err).Info("Malformed user payload")
		resp, err := failure(http.StatusUnprocessableEntity, ErrorResponse{Error: "Malformed JSON body."})
		return nil, resp, err
	}

	if err := user.Validate(); err != nil {
		h.logger.WithError(err).Info("Invalid user payload")
		resp, err := failure(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return nil, resp, err
	}
	return &user, nil, nil
}

// repositoryFailure maps a repository error to a response without exposing
// backend detail
func (h *UserHandler) repositoryFailure(err error) (*lambda.Response, error) {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return failure(http.StatusUnprocessableEntity, ErrorResponse{Error: ve.Message})
	}
	return failure(http.StatusInternalServerError, emptyBody)
}

// userID reads the id path parameter, falling back to the first path segment
// after /users/ when the integration does not populate path parameters
func userID(req *lambda.Request) string {
	if id := req.PathParams["id"]; id != "" {
		return id
	}
	idx := strings.Index(req.Path, usersPath+"/")
	if idx < 0 {
		return ""
	}
	rest := strings.TrimLeft(req.Path[idx+len(usersPath)+1:], "/")
	segment, _, _ := strings.Cut(rest, "/")
	return segment
}
