package audited

import (
	"bookery/data/track"
)

// AuditFields 返回审计列的字段模型，供实体的 Fields() 追加。
func (a *Auditable) AuditFields() []track.Field {
	return []track.Field{
		{Column: "CreatedBy", Value: a.CreatedBy},
		{Column: "CreatedOn", Value: a.CreatedOn},
		{Column: "LastModifiedBy", Value: a.LastModifiedBy},
		{Column: "LastModifiedOn", Value: a.LastModifiedOn},
	}
}

// AssignAuditField 尝试回填审计列。
// 返回 false 表示列名不属于审计列，由实体自行处理。
func (a *Auditable) AssignAuditField(column string, value any) (bool, error) {
	switch column {
	case "CreatedBy":
		s, err := track.AsString(value)
		if err != nil {
			return true, err
		}
		a.CreatedBy = s
	case "CreatedOn":
		t, err := track.AsTime(value)
		if err != nil {
			return true, err
		}
		a.CreatedOn = t
	case "LastModifiedBy":
		s, err := track.AsString(value)
		if err != nil {
			return true, err
		}
		a.LastModifiedBy = s
	case "LastModifiedOn":
		t, err := track.AsNullTime(value)
		if err != nil {
			return true, err
		}
		a.LastModifiedOn = t
	default:
		return false, nil
	}
	return true, nil
}
