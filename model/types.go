package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONMap is a custom type for storing JSON data as JSONB
type JSONMap map[string]interface{}

// Scan implements the sql.Scanner interface for reading from database
func (j *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*j = JSONMap{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONMap value")
	}

	if len(bytes) == 0 {
		*j = JSONMap{}
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Value implements the driver.Valuer interface for writing to database
func (j JSONMap) Value() (driver.Value, error) {
	if len(j) == 0 {
		return []byte("{}"), nil // Return empty JSON object instead of nil
	}
	return json.Marshal(j)
}

// Probabilities stores the classifier's per-class probability vector as JSONB
type Probabilities map[string]float64

// Scan implements the sql.Scanner interface for reading from database
func (p *Probabilities) Scan(value interface{}) error {
	if value == nil {
		*p = Probabilities{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal probabilities value")
	}

	if len(bytes) == 0 {
		*p = Probabilities{}
		return nil
	}

	return json.Unmarshal(bytes, p)
}

// Value implements the driver.Valuer interface for writing to database
func (p Probabilities) Value() (driver.Value, error) {
	if len(p) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(p)
}
