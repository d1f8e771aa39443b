package reservation

import (
	"context"

	"bookery/audit"
	"bookery/data/repo"
	"bookery/result"
)

// Service 预订域应用服务。
type Service struct {
	dbctx    *audit.Context
	bookings *repo.Repository[*Booking]
	vouchers *repo.Repository[*Voucher]
}

// NewService 创建预订域服务。
func NewService(dbctx *audit.Context) (*Service, error) {
	bookings, err := repo.New(dbctx, func() *Booking { return &Booking{} })
	if err != nil {
		return nil, err
	}
	vouchers, err := repo.New(dbctx, func() *Voucher { return &Voucher{} })
	if err != nil {
		return nil, err
	}
	return &Service{dbctx: dbctx, bookings: bookings, vouchers: vouchers}, nil
}

// Bookings 预订仓储。
func (s *Service) Bookings() *repo.Repository[*Booking] { return s.bookings }

// Vouchers 优惠券仓储。
func (s *Service) Vouchers() *repo.Repository[*Voucher] { return s.vouchers }

// PlaceBooking 登记新预订。
func (s *Service) PlaceBooking(booking *Booking) result.TypedResult[*Booking] {
	return s.bookings.Create(booking)
}

// CancelBooking 按主键登记删除预订。
func (s *Service) CancelBooking(ctx context.Context, id int64) result.TypedResult[*Booking] {
	return repo.DeleteEntityByID(ctx, s.bookings, id)
}

// GetBooking 按主键查询预订。
func (s *Service) GetBooking(ctx context.Context, id int64) result.TypedResult[*Booking] {
	return repo.FindEntityByID(ctx, s.bookings, id, false)
}

// FindBookingByReference 按引用号查询预订。
func (s *Service) FindBookingByReference(ctx context.Context, refNr string) result.TypedResult[*Booking] {
	res := s.bookings.FindByCondition(ctx, repo.Filter{
		Where: "ReferenceNr = ?", Args: []any{refNr},
	}, false)
	if !res.Succeeded {
		return result.TypedResult[*Booking]{Result: res.Result}
	}
	if len(res.Data) == 0 {
		return result.FailData[*Booking]("预订不存在: " + refNr)
	}
	return result.SuccessData(res.Data[0])
}

// ListBookingsByLodging 按房源分页查询预订，按入住日期排序。
func (s *Service) ListBookingsByLodging(ctx context.Context, lodgingID string, page, pageSize int) (result.PaginatedResult[*Booking], error) {
	return s.bookings.FindPage(ctx, repo.Filter{
		Where: "LodgingId = ?", Args: []any{lodgingID},
	}, page, pageSize, "StartDate")
}

// IssueVoucher 登记新优惠券。
func (s *Service) IssueVoucher(voucher *Voucher) result.TypedResult[*Voucher] {
	return s.vouchers.Create(voucher)
}

// DeactivateVoucher 按主键停用优惠券。
func (s *Service) DeactivateVoucher(ctx context.Context, id int64) result.TypedResult[*Voucher] {
	res := repo.FindEntityByID(ctx, s.vouchers, id, true)
	if !res.Succeeded {
		return res
	}
	res.Data.Active = false
	return res
}

// Save 提交全部登记的变更。
func (s *Service) Save(ctx context.Context, userID string) result.TypedResult[int64] {
	return s.bookings.Save(ctx, userID)
}
