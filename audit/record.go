package audit

import (
	"time"

	"bookery/data/track"
)

// DefaultTable 审计记录的默认落库表名。
const DefaultTable = "AuditTrails"

// Schema 审计表建表语句（sqlite 方言，测试与示例用）。
const Schema = `CREATE TABLE IF NOT EXISTS "AuditTrails" (
	"Id" TEXT PRIMARY KEY,
	"UserId" TEXT,
	"ActionType" INTEGER NOT NULL,
	"TableName" TEXT NOT NULL,
	"EventTime" TIMESTAMP NOT NULL,
	"OldValues" TEXT,
	"NewValues" TEXT,
	"AffectedColumns" TEXT,
	"PrimaryKey" TEXT NOT NULL
)`

// Record 已固化的审计记录（持久态）。
// OldValues/NewValues/AffectedColumns 按动作类型可为空；PrimaryKey 必填。
type Record struct {
	ID              string
	UserID          string
	Action          ActionType
	TableName       string
	EventTime       time.Time
	OldValues       *string
	NewValues       *string
	AffectedColumns *string
	PrimaryKey      string
}

// recordRow 让审计记录借道统一的跟踪/刷写通道落库。
// 审计上下文依据该包装类型排除自身记录，避免"审计审计"。
type recordRow struct {
	rec   *Record
	table string
}

func (r *recordRow) TableName() string { return r.table }

func (r *recordRow) Fields() []track.Field {
	return []track.Field{
		{Column: "Id", Value: r.rec.ID, PrimaryKey: true},
		{Column: "UserId", Value: r.rec.UserID},
		{Column: "ActionType", Value: int(r.rec.Action)},
		{Column: "TableName", Value: r.rec.TableName},
		{Column: "EventTime", Value: r.rec.EventTime},
		{Column: "OldValues", Value: r.rec.OldValues},
		{Column: "NewValues", Value: r.rec.NewValues},
		{Column: "AffectedColumns", Value: r.rec.AffectedColumns},
		{Column: "PrimaryKey", Value: r.rec.PrimaryKey},
	}
}

func (r *recordRow) Assign(column string, value any) error {
	// 审计记录主键由应用侧生成，不存在待回填字段
	return nil
}
