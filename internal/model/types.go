package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"erp-datastore/internal/apperrors"
)

// StringList stores a list of tags (e.g. user roles) as a JSON array in a
// text column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	b, err := blobBytes(value)
	if err != nil {
		return &apperrors.SerializationError{Column: "roles", Err: err}
	}
	if err := json.Unmarshal(b, l); err != nil {
		return &apperrors.SerializationError{Column: "roles", Err: err}
	}
	return nil
}

// Contains reports whether the list carries the given tag.
func (l StringList) Contains(tag string) bool {
	for _, t := range l {
		if t == tag {
			return true
		}
	}
	return false
}

// SettingsMap stores an opaque key-value settings blob as JSON in a text
// column.
type SettingsMap map[string]interface{}

// Value implements driver.Valuer.
func (m SettingsMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (m *SettingsMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	b, err := blobBytes(value)
	if err != nil {
		return &apperrors.SerializationError{Column: "settings", Err: err}
	}
	if err := json.Unmarshal(b, m); err != nil {
		return &apperrors.SerializationError{Column: "settings", Err: err}
	}
	return nil
}

func blobBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported column type %T", value)
	}
}
