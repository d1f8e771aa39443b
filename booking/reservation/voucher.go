package reservation

import (
	"strings"

	"github.com/google/uuid"

	"bookery/data/track"
	"bookery/domain/audited"
	"bookery/validation"
)

// Voucher 房源促销优惠券。
type Voucher struct {
	audited.Auditable

	ID               int64
	Code             string
	Title            string
	ShortDescription string
	Rate             float64
	Active           bool
	LodgingID        string
}

// NewVoucher 创建优惠券并分配券码。
func NewVoucher(title, lodgingID string, rate float64) *Voucher {
	return &Voucher{
		Code:      strings.ToUpper(uuid.NewString()[:13]),
		Title:     title,
		LodgingID: lodgingID,
		Rate:      rate,
		Active:    true,
	}
}

func (v *Voucher) GetID() int64 { return v.ID }

func (v *Voucher) TableName() string { return "Voucher" }

func (v *Voucher) Fields() []track.Field {
	fields := []track.Field{
		{Column: "Id", Value: v.ID, PrimaryKey: true, AutoIncrement: true},
		{Column: "Code", Value: v.Code},
		{Column: "Title", Value: v.Title},
		{Column: "ShortDescription", Value: v.ShortDescription},
		{Column: "Rate", Value: v.Rate},
		{Column: "Active", Value: v.Active},
		{Column: "LodgingId", Value: v.LodgingID},
	}
	return append(fields, v.AuditFields()...)
}

func (v *Voucher) Assign(column string, value any) error {
	if done, err := v.AssignAuditField(column, value); done {
		return err
	}
	var err error
	switch column {
	case "Id":
		v.ID, err = track.AsInt64(value)
	case "Code":
		v.Code, err = track.AsString(value)
	case "Title":
		v.Title, err = track.AsString(value)
	case "ShortDescription":
		v.ShortDescription, err = track.AsString(value)
	case "Rate":
		v.Rate, err = track.AsFloat64(value)
	case "Active":
		v.Active, err = track.AsBool(value)
	case "LodgingId":
		v.LodgingID, err = track.AsString(value)
	}
	return err
}

// Validate 优惠券基础校验。
func (v *Voucher) Validate() error {
	if err := validation.ValidateRequired(v.Code, "券码"); err != nil {
		return err
	}
	if err := validation.ValidateRequired(v.Title, "券标题"); err != nil {
		return err
	}
	if err := validation.ValidateRequired(v.LodgingID, "所属房源"); err != nil {
		return err
	}
	if err := validation.ValidatePositiveAmount(v.Rate, "券面额"); err != nil {
		return err
	}
	return nil
}
