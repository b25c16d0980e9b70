package store

import (
	"fmt"
	"strings"
)

// ApplyUpdate evaluates a SET update expression against item and returns the
// resulting item together with the attributes that were assigned. It covers the
// subset of the DynamoDB expression grammar that single-item overwrites use:
//
//	SET attr = :value, #alias = :other
//
// Backends without a native expression engine call it to emulate updates.
func ApplyUpdate(item Item, in *UpdateInput) (Item, Item, error) {
	expr := strings.TrimSpace(in.UpdateExpression)
	if len(expr) < 4 || !strings.EqualFold(expr[:4], "SET ") {
		return nil, nil, fmt.Errorf("%w: only SET clauses are supported: %q", ErrInvalidExpression, in.UpdateExpression)
	}

	keyName, _, err := in.Key.partition()
	if err != nil {
		return nil, nil, err
	}

	result := item.clone()
	if result == nil {
		result = make(Item)
		for k, v := range in.Key {
			result[k] = v
		}
	}
	updated := make(Item)

	for _, clause := range strings.Split(expr[4:], ",") {
		lhs, rhs, ok := strings.Cut(clause, "=")
		if !ok {
			return nil, nil, fmt.Errorf("%w: malformed assignment %q", ErrInvalidExpression, strings.TrimSpace(clause))
		}

		name := strings.TrimSpace(lhs)
		if strings.HasPrefix(name, "#") {
			resolved, found := in.ExpressionAttributeNames[name]
			if !found {
				return nil, nil, fmt.Errorf("%w: undefined attribute name %s", ErrInvalidExpression, name)
			}
			name = resolved
		}
		if name == "" {
			return nil, nil, fmt.Errorf("%w: empty attribute name", ErrInvalidExpression)
		}
		if name == keyName {
			return nil, nil, fmt.Errorf("%w: key attribute %s cannot be updated", ErrInvalidExpression, name)
		}

		placeholder := strings.TrimSpace(rhs)
		if !strings.HasPrefix(placeholder, ":") {
			return nil, nil, fmt.Errorf("%w: value %q must be a placeholder", ErrInvalidExpression, placeholder)
		}
		value, found := in.ExpressionAttributeValues[placeholder]
		if !found {
			return nil, nil, fmt.Errorf("%w: undefined attribute value %s", ErrInvalidExpression, placeholder)
		}

		result[name] = value
		updated[name] = value
	}

	return result, updated, nil
}

// projectUpdate picks the attributes an update call returns
func projectUpdate(returnValues string, old, updated, assigned Item) Item {
	switch returnValues {
	case ReturnAllNew:
		return updated.clone()
	case ReturnUpdatedNew:
		return assigned.clone()
	case ReturnAllOld:
		return old.clone()
	default:
		return nil
	}
}
