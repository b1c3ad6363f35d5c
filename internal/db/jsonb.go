/*-------------------------------------------------------------------------
 *
 * jsonb.go
 *    JSONB map type for jsonb columns
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/db/jsonb.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

/* JSONBMap maps a jsonb column to a Go map */
type JSONBMap map[string]interface{}

/* Value implements driver.Valuer */
func (m JSONBMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

/* Scan implements sql.Scanner */
func (m *JSONBMap) Scan(src interface{}) error {
	if src == nil {
		*m = make(JSONBMap)
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONBMap", src)
	}

	if len(data) == 0 {
		*m = make(JSONBMap)
		return nil
	}
	return json.Unmarshal(data, m)
}

/* FromMap converts a plain map into a JSONBMap */
func FromMap(m map[string]interface{}) JSONBMap {
	if m == nil {
		return make(JSONBMap)
	}
	return JSONBMap(m)
}

/* ToMap converts a JSONBMap back into a plain map */
func ToMap(m JSONBMap) map[string]interface{} {
	if m == nil {
		return make(map[string]interface{})
	}
	return map[string]interface{}(m)
}
