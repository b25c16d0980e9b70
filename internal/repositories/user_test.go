package repositories

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"user-crud-api/internal/adapters/store"
	"user-crud-api/internal/models"
)

const testTable = "users-test"

var fixedID = uuid.MustParse("c5b1a2e0-8f3d-11ee-b9d1-0242ac120002")

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func setupRepo(t *testing.T, opts ...Option) (UserRepository, *store.MemoryGateway, *test.Hook, *fakeClock) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	gw := store.NewMemoryGateway()
	clock := &fakeClock{t: time.UnixMilli(1700000000000)}

	opts = append([]Option{
		WithClock(clock.now),
		WithIDGenerator(func() (uuid.UUID, error) { return fixedID, nil }),
	}, opts...)
	return NewUserRepository(gw, testTable, logger, opts...), gw, hook, clock
}

func stringPtr(s string) *string {
	return &s
}

func sampleUser() *models.User {
	return &models.User{
		Name: "Jane Smith",
		DOB:  "1990-04-12",
		Address: models.Address{
			StreetAddress: "1 Main St",
			City:          "Melbourne",
			State:         "VIC",
			Country:       "Australia",
			Postal:        "3000",
		},
		Description: "prefers email contact",
	}
}

func TestUserRepository_CreateThenRead(t *testing.T) {
	repo, gw, _, _ := setupRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, sampleUser()); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if gw.Len(testTable) != 1 {
		t.Fatalf("expected 1 stored item, got %d", gw.Len(testTable))
	}

	out, err := repo.Read(ctx, fixedID.String())
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if out.Item == nil {
		t.Fatal("Read() returned no item after Create()")
	}

	want := map[string]interface{}{
		"id":            fixedID.String(),
		"name":          "Jane Smith",
		"dob":           "1990-04-12",
		"streetAddress": "1 Main St",
		"city":          "Melbourne",
		"state":         "VIC",
		"country":       "Australia",
		"postal":        "3000",
		"description":   "prefers email contact",
		"createdAt":     int64(1700000000000),
	}
	for k, v := range want {
		if out.Item[k] != v {
			t.Errorf("item[%s] = %v, want %v", k, out.Item[k], v)
		}
	}

	street2, present := out.Item["streetAddress2"]
	if !present || street2 != nil {
		t.Errorf("streetAddress2 = %v (present %v), want explicit null", street2, present)
	}
	if _, present := out.Item["updatedAt"]; present {
		t.Error("updatedAt must be absent until the first update")
	}
}

func TestUserRepository_CreateKeepsSecondStreetLine(t *testing.T) {
	repo, _, _, _ := setupRepo(t)
	ctx := context.Background()

	user := sampleUser()
	user.Address.StreetAddress2 = stringPtr("Unit 4")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	out, _ := repo.Read(ctx, fixedID.String())
	if out.Item["streetAddress2"] != "Unit 4" {
		t.Errorf("streetAddress2 = %v, want Unit 4", out.Item["streetAddress2"])
	}
}

func TestUserRepository_CreateMintsVersionOneIDs(t *testing.T) {
	logger, _ := test.NewNullLogger()
	gw := store.NewMemoryGateway()
	repo := NewUserRepository(gw, testTable, logger)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.Create(ctx, sampleUser()); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
	}
	if gw.Len(testTable) != 3 {
		t.Errorf("expected 3 distinct items, got %d", gw.Len(testTable))
	}
}

func TestUserRepository_ReadMissing(t *testing.T) {
	repo, _, hook, _ := setupRepo(t)

	out, err := repo.Read(context.Background(), fixedID.String())
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if out.Item != nil {
		t.Errorf("Read() item = %v, want nil", out.Item)
	}
	if len(hook.AllEntries()) != 0 {
		t.Errorf("not found must not be logged, got %d entries", len(hook.AllEntries()))
	}
}

func TestUserRepository_UpdateThenRead(t *testing.T) {
	repo, _, _, clock := setupRepo(t)
	ctx := context.Background()
	id := fixedID.String()

	if err := repo.Create(ctx, sampleUser()); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	clock.advance(time.Minute)
	changed := sampleUser()
	changed.Name = "Jane Doe"
	changed.Address.State = "NSW"
	changed.Address.StreetAddress2 = stringPtr("Level 2")
	changed.Description = "moved"

	attrs, err := repo.Update(ctx, id, changed)
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if attrs["name"] != "Jane Doe" || attrs["state"] != "NSW" {
		t.Errorf("Update() attributes = %v", attrs)
	}

	out, _ := repo.Read(ctx, id)
	checks := map[string]interface{}{
		"name":           "Jane Doe",
		"state":          "NSW",
		"streetAddress2": "Level 2",
		"description":    "moved",
		"createdAt":      int64(1700000000000),
		"updatedAt":      int64(1700000060000),
	}
	for k, v := range checks {
		if out.Item[k] != v {
			t.Errorf("item[%s] = %v, want %v", k, out.Item[k], v)
		}
	}

	// a second update clears the optional line and moves updatedAt forward
	clock.advance(time.Second)
	if _, err := repo.Update(ctx, id, sampleUser()); err != nil {
		t.Fatalf("second Update() failed: %v", err)
	}
	out, _ = repo.Read(ctx, id)
	if out.Item["streetAddress2"] != nil {
		t.Errorf("streetAddress2 = %v, want null after full overwrite", out.Item["streetAddress2"])
	}
	if out.Item["updatedAt"].(int64) <= 1700000060000 {
		t.Errorf("updatedAt did not advance: %v", out.Item["updatedAt"])
	}
}

func TestUserRepository_DeleteThenRead(t *testing.T) {
	repo, _, _, _ := setupRepo(t)
	ctx := context.Background()
	id := fixedID.String()

	if err := repo.Create(ctx, sampleUser()); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if _, err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	out, err := repo.Read(ctx, id)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if out.Item != nil {
		t.Errorf("Read() after Delete() = %v, want not found", out.Item)
	}
}

func TestUserRepository_BackendFailures(t *testing.T) {
	outage := errors.New("dial tcp 10.0.0.1:443: i/o timeout")
	id := fixedID.String()

	tests := []struct {
		name string
		op   store.Operation
		call func(repo UserRepository) error
	}{
		{"create", store.OpPut, func(repo UserRepository) error {
			return repo.Create(context.Background(), sampleUser())
		}},
		{"read", store.OpGet, func(repo UserRepository) error {
			_, err := repo.Read(context.Background(), id)
			return err
		}},
		{"update", store.OpUpdate, func(repo UserRepository) error {
			_, err := repo.Update(context.Background(), id, sampleUser())
			return err
		}},
		{"delete", store.OpDelete, func(repo UserRepository) error {
			_, err := repo.Delete(context.Background(), id)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, gw, hook, _ := setupRepo(t)
			gw.FailOn(tt.op, outage)

			err := tt.call(repo)
			if !IsInternal(err) {
				t.Fatalf("error = %v, want ErrInternal", err)
			}
			if err.Error() != "Internal Server Error" {
				t.Errorf("error message = %q, want opaque message", err.Error())
			}
			if errors.Is(err, outage) || strings.Contains(err.Error(), "timeout") {
				t.Error("backend detail leaked through the returned error")
			}

			var backendErr *BackendError
			if !errors.As(err, &backendErr) || !errors.Is(backendErr.Detail(), outage) {
				t.Errorf("BackendError detail = %v, want backend error", backendErr)
			}

			entry := hook.LastEntry()
			if entry == nil || entry.Level != logrus.ErrorLevel {
				t.Fatalf("expected an error log entry, got %v", entry)
			}
			if entry.Data["operation"] != tt.name || !strings.Contains(entry.Data["error"].(string), "timeout") {
				t.Errorf("log fields = %v", entry.Data)
			}
			if tt.name == "create" || tt.name == "update" {
				if !strings.Contains(entry.Data["payload"].(string), "Jane Smith") {
					t.Errorf("payload not logged: %v", entry.Data)
				}
			}
		})
	}
}

func TestUserRepository_RejectsNilPayload(t *testing.T) {
	repo, _, _, _ := setupRepo(t)
	ctx := context.Background()

	var ve *models.ValidationError
	if err := repo.Create(ctx, nil); !errors.As(err, &ve) {
		t.Errorf("Create(nil) error = %v, want ValidationError", err)
	}
	if _, err := repo.Update(ctx, fixedID.String(), nil); !errors.As(err, &ve) {
		t.Errorf("Update(nil) error = %v, want ValidationError", err)
	}
}
