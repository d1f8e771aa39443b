package accommodation

import (
	"context"

	"bookery/audit"
	"bookery/data/repo"
	"bookery/result"
)

// Service 住宿域应用服务：组合房源与房型仓储，
// 写操作登记后统一经 Save 落库并审计。
type Service struct {
	dbctx    *audit.Context
	lodgings *repo.Repository[*Lodging]
	rooms    *repo.Repository[*Room]
}

// NewService 创建住宿域服务。
func NewService(dbctx *audit.Context, opts ...repo.Option[*Lodging]) (*Service, error) {
	lodgingOpts := append([]repo.Option[*Lodging]{
		repo.WithInclude(IncludeRooms, LoadRooms),
	}, opts...)

	lodgings, err := repo.New(dbctx, func() *Lodging { return &Lodging{} }, lodgingOpts...)
	if err != nil {
		return nil, err
	}
	rooms, err := repo.New(dbctx, func() *Room { return &Room{} })
	if err != nil {
		return nil, err
	}
	return &Service{dbctx: dbctx, lodgings: lodgings, rooms: rooms}, nil
}

// Lodgings 房源仓储。
func (s *Service) Lodgings() *repo.Repository[*Lodging] { return s.lodgings }

// Rooms 房型仓储。
func (s *Service) Rooms() *repo.Repository[*Room] { return s.rooms }

// RegisterLodging 登记新房源。
func (s *Service) RegisterLodging(lodging *Lodging) result.TypedResult[*Lodging] {
	return s.lodgings.Create(lodging)
}

// AddRoom 为房源登记新房型。
func (s *Service) AddRoom(room *Room) result.TypedResult[*Room] {
	return s.rooms.Create(room)
}

// GetLodging 按主键查询房源，可选装载房型集合。
func (s *Service) GetLodging(ctx context.Context, id string, withRooms bool) result.TypedResult[*Lodging] {
	var includes []string
	if withRooms {
		includes = append(includes, IncludeRooms)
	}
	return repo.FindEntityByID(ctx, s.lodgings, id, false, includes...)
}

// ListLodgings 按城市分页查询房源，city 为空时查询全部。
func (s *Service) ListLodgings(ctx context.Context, city string, page, pageSize int) (result.PaginatedResult[*Lodging], error) {
	filter := repo.Filter{}
	if city != "" {
		filter = repo.Filter{Where: "City = ?", Args: []any{city}}
	}
	return s.lodgings.FindPage(ctx, filter, page, pageSize, "Name")
}

// RemoveRoom 按主键登记删除房型。
func (s *Service) RemoveRoom(ctx context.Context, id int64) result.TypedResult[*Room] {
	return repo.DeleteEntityByID(ctx, s.rooms, id)
}

// Save 提交全部登记的变更。
func (s *Service) Save(ctx context.Context, userID string) result.TypedResult[int64] {
	return s.lodgings.Save(ctx, userID)
}
