package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AttemptRecord is a frozen snapshot of scoring taken when a session is
// completed. Records are append-only and never mutated afterwards.
type AttemptRecord struct {
	ScorePercentage               int                    `json:"score_percentage"`
	ScoreCorrect                  int                    `json:"score_correct"`
	ScoreTotal                    int                    `json:"score_total"`
	PracticeDate                  time.Time              `json:"practice_date"`
	HistoricalSubtopicPerformance SubtopicPerformanceMap `json:"historical_subtopic_performance"`
}

// AttemptList holds a session's attempt history, oldest first.
type AttemptList []AttemptRecord

func (l AttemptList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal attempt list: %w", err)
	}
	return string(b), nil
}

func (l *AttemptList) Scan(value interface{}) error {
	if value == nil {
		*l = AttemptList{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for attempt list", value)
	}
	return json.Unmarshal(b, l)
}
