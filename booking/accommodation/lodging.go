// Package accommodation 提供住宿域实体：房源（Lodging）与房型（Room）。
// 实体自带字段模型，接入变更跟踪与审计通道。
package accommodation

import (
	"github.com/google/uuid"

	"bookery/data/track"
	"bookery/domain/audited"
	"bookery/validation"
)

// Lodging 房源（酒店、民宿等）。主键为应用侧生成的 uuid 字符串。
type Lodging struct {
	audited.Auditable

	ID          string
	Name        string
	Description string
	Teaser      string
	Address     string
	City        string
	PhoneNr     string
	Email       string
	Website     string
	Rate        float64
	Discount    float64

	// Rooms 导航集合，经 include 装载，不参与列映射
	Rooms []*Room
}

// NewLodging 创建房源并分配主键。
func NewLodging(name string) *Lodging {
	return &Lodging{ID: uuid.NewString(), Name: name}
}

func (l *Lodging) GetID() string { return l.ID }

func (l *Lodging) TableName() string { return "Lodging" }

func (l *Lodging) Fields() []track.Field {
	fields := []track.Field{
		{Column: "Id", Value: l.ID, PrimaryKey: true},
		{Column: "Name", Value: l.Name},
		{Column: "Description", Value: l.Description},
		{Column: "Teaser", Value: l.Teaser},
		{Column: "Address", Value: l.Address},
		{Column: "City", Value: l.City},
		{Column: "PhoneNr", Value: l.PhoneNr},
		{Column: "Email", Value: l.Email},
		{Column: "Website", Value: l.Website},
		{Column: "Rate", Value: l.Rate},
		{Column: "Discount", Value: l.Discount},
	}
	return append(fields, l.AuditFields()...)
}

func (l *Lodging) Assign(column string, value any) error {
	if done, err := l.AssignAuditField(column, value); done {
		return err
	}
	var err error
	switch column {
	case "Id":
		l.ID, err = track.AsString(value)
	case "Name":
		l.Name, err = track.AsString(value)
	case "Description":
		l.Description, err = track.AsString(value)
	case "Teaser":
		l.Teaser, err = track.AsString(value)
	case "Address":
		l.Address, err = track.AsString(value)
	case "City":
		l.City, err = track.AsString(value)
	case "PhoneNr":
		l.PhoneNr, err = track.AsString(value)
	case "Email":
		l.Email, err = track.AsString(value)
	case "Website":
		l.Website, err = track.AsString(value)
	case "Rate":
		l.Rate, err = track.AsFloat64(value)
	case "Discount":
		l.Discount, err = track.AsFloat64(value)
	}
	return err
}

// Validate 房源基础校验。
func (l *Lodging) Validate() error {
	if err := validation.ValidateRequired(l.ID, "房源ID"); err != nil {
		return err
	}
	if err := validation.ValidateRequired(l.Name, "房源名称"); err != nil {
		return err
	}
	if l.Email != "" {
		if err := validation.ValidateEmail(l.Email); err != nil {
			return err
		}
	}
	if l.Discount < 0 || l.Discount > 100 {
		return validation.NewValidationError("折扣必须介于0与100之间")
	}
	return nil
}
