package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// JSONBMap is a custom type for PostgreSQL JSONB columns that maps to map[string]interface{}
type JSONBMap map[string]interface{}

// Value implements driver.Valuer interface
func (j JSONBMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONBMap) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSONBMap)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*j = make(JSONBMap)
		return nil
	}

	if len(bytes) == 0 {
		*j = make(JSONBMap)
		return nil
	}

	result := make(JSONBMap)
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*j = result
	return nil
}

// AuditEvent is one entry in the administrative action log
type AuditEvent struct {
	Time    time.Time `json:"time" db:"event_time"`
	Action  string    `json:"action" db:"action"`
	Details JSONBMap  `json:"details" db:"details"`
}

// NewAuditEvent creates an audit event stamped with the current time
func NewAuditEvent(action string, details map[string]interface{}) AuditEvent {
	if details == nil {
		details = make(map[string]interface{})
	}
	return AuditEvent{
		Time:    time.Now().UTC(),
		Action:  action,
		Details: JSONBMap(details),
	}
}
