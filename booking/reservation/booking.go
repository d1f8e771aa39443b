// Package reservation 提供预订域实体：预订（Booking）与优惠券（Voucher）。
package reservation

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"bookery/data/track"
	"bookery/domain/audited"
	"bookery/validation"
)

// Booking 一次住宿预订。主键为存储引擎生成的自增整数。
type Booking struct {
	audited.Auditable

	ID          int64
	ReferenceNr string
	GuestName   string
	Email       string
	PhoneNr     string
	StartDate   time.Time
	EndDate     time.Time
	Adults      int
	Children    int
	RoomID      int64
	LodgingID   string
	UserID      string
}

// NewBooking 创建预订并分配引用号。
func NewBooking(guestName, lodgingID string, roomID int64, start, end time.Time) *Booking {
	return &Booking{
		ReferenceNr: newReferenceNr(),
		GuestName:   guestName,
		LodgingID:   lodgingID,
		RoomID:      roomID,
		StartDate:   start,
		EndDate:     end,
		Adults:      1,
	}
}

// newReferenceNr 生成短引用号（uuid 前段大写）。
func newReferenceNr() string {
	return "BK-" + strings.ToUpper(uuid.NewString()[:8])
}

func (b *Booking) GetID() int64 { return b.ID }

func (b *Booking) TableName() string { return "Booking" }

func (b *Booking) Fields() []track.Field {
	fields := []track.Field{
		{Column: "Id", Value: b.ID, PrimaryKey: true, AutoIncrement: true},
		{Column: "ReferenceNr", Value: b.ReferenceNr},
		{Column: "GuestName", Value: b.GuestName},
		{Column: "Email", Value: b.Email},
		{Column: "PhoneNr", Value: b.PhoneNr},
		{Column: "StartDate", Value: b.StartDate},
		{Column: "EndDate", Value: b.EndDate},
		{Column: "Adults", Value: b.Adults},
		{Column: "Children", Value: b.Children},
		{Column: "RoomId", Value: b.RoomID},
		{Column: "LodgingId", Value: b.LodgingID},
		{Column: "UserId", Value: b.UserID},
	}
	return append(fields, b.AuditFields()...)
}

func (b *Booking) Assign(column string, value any) error {
	if done, err := b.AssignAuditField(column, value); done {
		return err
	}
	var err error
	switch column {
	case "Id":
		b.ID, err = track.AsInt64(value)
	case "ReferenceNr":
		b.ReferenceNr, err = track.AsString(value)
	case "GuestName":
		b.GuestName, err = track.AsString(value)
	case "Email":
		b.Email, err = track.AsString(value)
	case "PhoneNr":
		b.PhoneNr, err = track.AsString(value)
	case "StartDate":
		b.StartDate, err = track.AsTime(value)
	case "EndDate":
		b.EndDate, err = track.AsTime(value)
	case "Adults":
		b.Adults, err = track.AsInt(value)
	case "Children":
		b.Children, err = track.AsInt(value)
	case "RoomId":
		b.RoomID, err = track.AsInt64(value)
	case "LodgingId":
		b.LodgingID, err = track.AsString(value)
	case "UserId":
		b.UserID, err = track.AsString(value)
	}
	return err
}

// Validate 预订基础校验。
func (b *Booking) Validate() error {
	if err := validation.ValidateRequired(b.ReferenceNr, "预订引用号"); err != nil {
		return err
	}
	if err := validation.ValidateRequired(b.GuestName, "客人姓名"); err != nil {
		return err
	}
	if err := validation.ValidateRequired(b.LodgingID, "所属房源"); err != nil {
		return err
	}
	if b.Email != "" {
		if err := validation.ValidateEmail(b.Email); err != nil {
			return err
		}
	}
	if err := validation.ValidateDateOrder(b.StartDate, b.EndDate, "入住"); err != nil {
		return err
	}
	if err := validation.ValidatePositive(b.Adults, "成人数量"); err != nil {
		return err
	}
	if b.Children < 0 {
		return validation.NewValidationError("儿童数量不能为负数")
	}
	return nil
}
