package accommodation

import (
	"bookery/data/track"
	"bookery/domain/audited"
	"bookery/validation"
)

// Room 房型。主键为存储引擎生成的自增整数，
// 新增后由保存流程回填。
type Room struct {
	audited.Auditable

	ID           int64
	LodgingID    string
	Name         string
	Description  string
	BedCount     int
	MaxOccupancy int
	MaxAdults    int
	Rate         float64
}

func (r *Room) GetID() int64 { return r.ID }

func (r *Room) TableName() string { return "Room" }

func (r *Room) Fields() []track.Field {
	fields := []track.Field{
		{Column: "Id", Value: r.ID, PrimaryKey: true, AutoIncrement: true},
		{Column: "LodgingId", Value: r.LodgingID},
		{Column: "Name", Value: r.Name},
		{Column: "Description", Value: r.Description},
		{Column: "BedCount", Value: r.BedCount},
		{Column: "MaxOccupancy", Value: r.MaxOccupancy},
		{Column: "MaxAdults", Value: r.MaxAdults},
		{Column: "Rate", Value: r.Rate},
	}
	return append(fields, r.AuditFields()...)
}

func (r *Room) Assign(column string, value any) error {
	if done, err := r.AssignAuditField(column, value); done {
		return err
	}
	var err error
	switch column {
	case "Id":
		r.ID, err = track.AsInt64(value)
	case "LodgingId":
		r.LodgingID, err = track.AsString(value)
	case "Name":
		r.Name, err = track.AsString(value)
	case "Description":
		r.Description, err = track.AsString(value)
	case "BedCount":
		r.BedCount, err = track.AsInt(value)
	case "MaxOccupancy":
		r.MaxOccupancy, err = track.AsInt(value)
	case "MaxAdults":
		r.MaxAdults, err = track.AsInt(value)
	case "Rate":
		r.Rate, err = track.AsFloat64(value)
	}
	return err
}

// Validate 房型基础校验。
func (r *Room) Validate() error {
	if err := validation.ValidateRequired(r.LodgingID, "所属房源"); err != nil {
		return err
	}
	if err := validation.ValidateRequired(r.Name, "房型名称"); err != nil {
		return err
	}
	if err := validation.ValidatePositive(r.BedCount, "床位数"); err != nil {
		return err
	}
	if err := validation.ValidatePositive(r.MaxOccupancy, "最大入住人数"); err != nil {
		return err
	}
	return nil
}
