package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"user-crud-api/internal/adapters/store"
	"user-crud-api/internal/models"
)

// updateUserExpression overwrites every mutable attribute. name and state are
// DynamoDB reserved words and go through attribute name aliases.
const updateUserExpression = "SET " +
	"#name = :name, " +
	"dob = :dob, " +
	"streetAddress = :streetAddress, " +
	"streetAddress2 = :streetAddress2, " +
	"city = :city, " +
	"#state = :state, " +
	"country = :country, " +
	"postal = :postal, " +
	"description = :description, " +
	"updatedAt = :updatedAt"

var reservedWordAliases = map[string]string{
	"#name":  "name",
	"#state": "state",
}

// userRepository implements UserRepository on top of a store.Gateway
type userRepository struct {
	gateway   store.Gateway
	tableName string
	logger    logrus.FieldLogger
	now       func() time.Time
	newID     func() (uuid.UUID, error)
}

// Option customises a repository
type Option func(*userRepository)

// WithClock overrides the time source used for createdAt and updatedAt
func WithClock(now func() time.Time) Option {
	return func(r *userRepository) { r.now = now }
}

// WithIDGenerator overrides the UUID v1 generator
func WithIDGenerator(newID func() (uuid.UUID, error)) Option {
	return func(r *userRepository) { r.newID = newID }
}

// NewUserRepository creates a new gateway-backed user repository
func NewUserRepository(gateway store.Gateway, tableName string, logger logrus.FieldLogger, opts ...Option) UserRepository {
	if logger == nil {
		logger = logrus.New()
	}

	r := &userRepository{
		gateway:   gateway,
		tableName: tableName,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewUUID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user == nil {
		return &models.ValidationError{Field: "user", Message: "user payload is required"}
	}

	id, err := r.newID()
	if err != nil {
		return r.fail("create", "", user, err)
	}

	item := store.Item{
		"id":          id.String(),
		"name":        user.Name,
		"dob":         user.DOB,
		"description": user.Description,
		"createdAt":   r.now().UnixMilli(),
	}
	for k, v := range addressAttributes(user.Address) {
		item[k] = v
	}

	_, err = r.gateway.Put(ctx, &store.PutInput{
		TableName: r.tableName,
		Item:      item,
	})
	if err != nil {
		return r.fail("create", "", user, err)
	}
	return nil
}

// Read retrieves a user by ID
func (r *userRepository) Read(ctx context.Context, id string) (*store.GetOutput, error) {
	out, err := r.gateway.Get(ctx, &store.GetInput{
		TableName: r.tableName,
		Key:       store.Key{"id": id},
	})
	if err != nil {
		return nil, r.fail("read", id, nil, err)
	}
	return out, nil
}

// Update updates an existing user
func (r *userRepository) Update(ctx context.Context, id string, user *models.User) (store.Item, error) {
	if user == nil {
		return nil, &models.ValidationError{Field: "user", Message: "user payload is required"}
	}

	values := map[string]interface{}{
		":name":        user.Name,
		":dob":         user.DOB,
		":description": user.Description,
		":updatedAt":   r.now().UnixMilli(),
	}
	for k, v := range addressAttributes(user.Address) {
		values[":"+k] = v
	}

	out, err := r.gateway.Update(ctx, &store.UpdateInput{
		TableName:                 r.tableName,
		Key:                       store.Key{"id": id},
		UpdateExpression:          updateUserExpression,
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  reservedWordAliases,
		ReturnValues:              store.ReturnAllNew,
	})
	if err != nil {
		return nil, r.fail("update", id, user, err)
	}
	return out.Attributes, nil
}

// Delete deletes a user by ID
func (r *userRepository) Delete(ctx context.Context, id string) (*store.DeleteOutput, error) {
	out, err := r.gateway.Delete(ctx, &store.DeleteInput{
		TableName: r.tableName,
		Key:       store.Key{"id": id},
	})
	if err != nil {
		return nil, r.fail("delete", id, nil, err)
	}
	return out, nil
}

// fail logs the backend failure with its triggering input and returns the
// opaque error handed to callers
func (r *userRepository) fail(op, id string, user *models.User, err error) error {
	fields := logrus.Fields{
		"operation": op,
		"table":     r.tableName,
		"error":     err.Error(),
	}
	if id != "" {
		fields["id"] = id
	}
	if user != nil {
		if payload, mErr := json.Marshal(user); mErr == nil {
			fields["payload"] = string(payload)
		}
	}
	r.logger.WithFields(fields).Error("Failed to " + op + " user")

	return NewBackendError(op, id, err)
}

// addressAttributes flattens an address into item attributes. A missing
// second street line is stored as an explicit null.
func addressAttributes(a models.Address) map[string]interface{} {
	var street2 interface{}
	if s := a.SecondaryStreet(); s != nil {
		street2 = *s
	}
	return map[string]interface{}{
		"streetAddress":  a.StreetAddress,
		"streetAddress2": street2,
		"city":           a.City,
		"state":          a.State,
		"country":        a.Country,
		"postal":         a.Postal,
	}
}
