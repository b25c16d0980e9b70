package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

// runGatewayContract exercises the behaviour every Gateway must share
func runGatewayContract(t *testing.T, gw Gateway) {
	ctx := context.Background()
	const table = "users"

	t.Run("get missing returns nil item", func(t *testing.T) {
		out, err := gw.Get(ctx, &GetInput{TableName: table, Key: Key{"id": "missing"}})
		if err != nil {
			t.Fatalf("Get() failed: %v", err)
		}
		if out.Item != nil {
			t.Errorf("Get() item = %v, want nil", out.Item)
		}
	})

	t.Run("put then get", func(t *testing.T) {
		item := Item{"id": "a1", "name": "Ann", "streetAddress2": nil, "createdAt": int64(1700000000000)}
		if _, err := gw.Put(ctx, &PutInput{TableName: table, Item: item}); err != nil {
			t.Fatalf("Put() failed: %v", err)
		}

		out, err := gw.Get(ctx, &GetInput{TableName: table, Key: Key{"id": "a1"}})
		if err != nil {
			t.Fatalf("Get() failed: %v", err)
		}
		if out.Item["name"] != "Ann" {
			t.Errorf("name = %v, want Ann", out.Item["name"])
		}
		v, present := out.Item["streetAddress2"]
		if !present || v != nil {
			t.Errorf("streetAddress2 = %v (present %v), want explicit nil", v, present)
		}
		if got := fmt.Sprint(out.Item["createdAt"]); got != "1700000000000" && got != "1.7e+12" {
			t.Errorf("createdAt = %v, want 1700000000000", got)
		}
	})

	t.Run("update returns all new attributes", func(t *testing.T) {
		out, err := gw.Update(ctx, &UpdateInput{
			TableName:        table,
			Key:              Key{"id": "a1"},
			UpdateExpression: "SET #name = :name, city = :city",
			ExpressionAttributeValues: map[string]interface{}{
				":name": "Anne",
				":city": "Perth",
			},
			ExpressionAttributeNames: map[string]string{"#name": "name"},
			ReturnValues:             ReturnAllNew,
		})
		if err != nil {
			t.Fatalf("Update() failed: %v", err)
		}
		if out.Attributes["name"] != "Anne" || out.Attributes["city"] != "Perth" || out.Attributes["id"] != "a1" {
			t.Errorf("Update() attributes = %v", out.Attributes)
		}

		got, err := gw.Get(ctx, &GetInput{TableName: table, Key: Key{"id": "a1"}})
		if err != nil {
			t.Fatalf("Get() failed: %v", err)
		}
		if got.Item["name"] != "Anne" {
			t.Errorf("stored name = %v, want Anne", got.Item["name"])
		}
	})

	t.Run("update absent key creates item", func(t *testing.T) {
		out, err := gw.Update(ctx, &UpdateInput{
			TableName:                 table,
			Key:                       Key{"id": "fresh"},
			UpdateExpression:          "SET description = :d",
			ExpressionAttributeValues: map[string]interface{}{":d": "new"},
			ReturnValues:              ReturnAllNew,
		})
		if err != nil {
			t.Fatalf("Update() failed: %v", err)
		}
		if out.Attributes["id"] != "fresh" || out.Attributes["description"] != "new" {
			t.Errorf("Update() attributes = %v", out.Attributes)
		}
	})

	t.Run("invalid expression fails", func(t *testing.T) {
		_, err := gw.Update(ctx, &UpdateInput{
			TableName:        table,
			Key:              Key{"id": "a1"},
			UpdateExpression: "REMOVE name",
		})
		if !errors.Is(err, ErrInvalidExpression) {
			t.Errorf("Update() error = %v, want ErrInvalidExpression", err)
		}
	})

	t.Run("delete returns old attributes on request", func(t *testing.T) {
		out, err := gw.Delete(ctx, &DeleteInput{TableName: table, Key: Key{"id": "fresh"}, ReturnValues: ReturnAllOld})
		if err != nil {
			t.Fatalf("Delete() failed: %v", err)
		}
		if out.Attributes["description"] != "new" {
			t.Errorf("Delete() attributes = %v", out.Attributes)
		}
	})

	t.Run("delete then get is not found", func(t *testing.T) {
		if _, err := gw.Delete(ctx, &DeleteInput{TableName: table, Key: Key{"id": "a1"}}); err != nil {
			t.Fatalf("Delete() failed: %v", err)
		}
		out, err := gw.Get(ctx, &GetInput{TableName: table, Key: Key{"id": "a1"}})
		if err != nil {
			t.Fatalf("Get() failed: %v", err)
		}
		if out.Item != nil {
			t.Errorf("Get() after delete = %v, want nil", out.Item)
		}
		// deleting again is a no-op
		if _, err := gw.Delete(ctx, &DeleteInput{TableName: table, Key: Key{"id": "a1"}}); err != nil {
			t.Errorf("second Delete() failed: %v", err)
		}
	})

	t.Run("tables are isolated", func(t *testing.T) {
		if _, err := gw.Put(ctx, &PutInput{TableName: "other", Item: Item{"id": "x"}}); err != nil {
			t.Fatalf("Put() failed: %v", err)
		}
		out, err := gw.Get(ctx, &GetInput{TableName: table, Key: Key{"id": "x"}})
		if err != nil {
			t.Fatalf("Get() failed: %v", err)
		}
		if out.Item != nil {
			t.Errorf("item leaked across tables: %v", out.Item)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		var gwErr *GatewayError
		_, err := gw.Get(ctx, &GetInput{TableName: "", Key: Key{"id": "a"}})
		if !errors.Is(err, ErrMissingTable) || !errors.As(err, &gwErr) {
			t.Errorf("Get() without table error = %v", err)
		}
		_, err = gw.Get(ctx, &GetInput{TableName: table, Key: Key{}})
		if !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Get() without key error = %v", err)
		}
		_, err = gw.Put(ctx, &PutInput{TableName: table, Item: Item{"name": "no id"}})
		if !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Put() without id error = %v", err)
		}
	})
}

// jsonEqual compares two values through their JSON encoding
func jsonEqual(t *testing.T, a, b interface{}) bool {
	t.Helper()
	ja, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	jb, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(ja) == string(jb)
}
