package publish

import (
	"encoding/json"

	"bookery/audit"
)

// wireRecord 审计记录的外发线格式。
type wireRecord struct {
	ID              string  `json:"id"`
	UserID          string  `json:"userId"`
	ActionType      int     `json:"actionType"`
	Action          string  `json:"action"`
	TableName       string  `json:"tableName"`
	EventTime       int64   `json:"eventTime"`
	OldValues       *string `json:"oldValues,omitempty"`
	NewValues       *string `json:"newValues,omitempty"`
	AffectedColumns *string `json:"affectedColumns,omitempty"`
	PrimaryKey      string  `json:"primaryKey"`
}

func marshalRecord(rec *audit.Record) ([]byte, error) {
	return json.Marshal(wireRecord{
		ID:              rec.ID,
		UserID:          rec.UserID,
		ActionType:      int(rec.Action),
		Action:          rec.Action.String(),
		TableName:       rec.TableName,
		EventTime:       rec.EventTime.UnixNano(),
		OldValues:       rec.OldValues,
		NewValues:       rec.NewValues,
		AffectedColumns: rec.AffectedColumns,
		PrimaryKey:      rec.PrimaryKey,
	})
}
