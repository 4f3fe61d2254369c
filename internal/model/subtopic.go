package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SubtopicPerformance tracks per-subtopic correctness for the current
// attempt. Total is always recomputed from the live question list, never
// carried forward, so it cannot drift when questions are added.
type SubtopicPerformance struct {
	Name   string `json:"name"`
	Scored int    `json:"scored"`
	Total  int    `json:"total"`
}

// SubtopicPerformanceMap is keyed by subtopic name and stored as jsonb.
type SubtopicPerformanceMap map[string]SubtopicPerformance

func (m SubtopicPerformanceMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal subtopic performance: %w", err)
	}
	return string(b), nil
}

func (m *SubtopicPerformanceMap) Scan(value interface{}) error {
	if value == nil {
		*m = SubtopicPerformanceMap{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for subtopic performance", value)
	}
	return json.Unmarshal(b, m)
}
