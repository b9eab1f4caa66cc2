// internal/models/base.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

type BaseModel struct {
	gorm.Model
}

// StringSlice is a JSONB column holding a list of strings.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan unmarshals a JSONB column into the slice.
func (s *StringSlice) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("StringSlice: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, s)
}

// IntSlice is a JSONB column holding a list of integers (e.g. peak hours).
type IntSlice []int

func (s IntSlice) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan unmarshals a JSONB column into the slice.
func (s *IntSlice) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("IntSlice: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, s)
}

// Contains reports whether v is present in the slice.
func (s IntSlice) Contains(v int) bool {
	for _, n := range s {
		if n == v {
			return true
		}
	}
	return false
}

// JSONMap is a free-form JSONB column.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal(map[string]interface{}{})
	}
	return json.Marshal(m)
}

// Scan unmarshals JSONB bytes into the map.
func (m *JSONMap) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("JSONMap: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, m)
}
