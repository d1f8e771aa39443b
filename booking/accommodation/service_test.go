package accommodation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"bookery/audit"
	coredb "bookery/storage/database"
	"bookery/storage/database/basic"
)

func newTestService(t *testing.T) (*Service, coredb.IDatabase) {
	t.Helper()
	db, err := basic.New(coredb.DBConfig{
		Driver:       "sqlite",
		Database:     ":memory:",
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	for _, ddl := range []string{LodgingSchema, RoomSchema, audit.Schema} {
		_, err = db.Exec(ctx, ddl)
		require.NoError(t, err)
	}

	dbctx, err := audit.NewContext(db)
	require.NoError(t, err)
	svc, err := NewService(dbctx)
	require.NoError(t, err)
	return svc, db
}

// TestLodgingValidate 房源校验规则
func TestLodgingValidate(t *testing.T) {
	l := NewLodging("Seaside Inn")
	require.NoError(t, l.Validate())

	assert.Error(t, (&Lodging{ID: "x"}).Validate())          // 缺名称
	assert.Error(t, (&Lodging{Name: "x"}).Validate())        // 缺ID
	l.Email = "not-an-email"
	assert.Error(t, l.Validate())
	l.Email = "host@example.com"
	require.NoError(t, l.Validate())
	l.Discount = 120
	assert.Error(t, l.Validate())
}

// TestRoomValidate 房型校验规则
func TestRoomValidate(t *testing.T) {
	r := &Room{LodgingID: "l1", Name: "Double", BedCount: 2, MaxOccupancy: 2}
	require.NoError(t, r.Validate())

	assert.Error(t, (&Room{Name: "x", BedCount: 1, MaxOccupancy: 1}).Validate())
	assert.Error(t, (&Room{LodgingID: "l1", BedCount: 1, MaxOccupancy: 1}).Validate())
	assert.Error(t, (&Room{LodgingID: "l1", Name: "x", MaxOccupancy: 1}).Validate())
}

// TestServiceRegisterAndGet 登记房源与房型，include 装载房型集合
func TestServiceRegisterAndGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	lodging := NewLodging("Seaside Inn")
	lodging.City = "Cape Town"
	require.True(t, svc.RegisterLodging(lodging).Succeeded)
	require.True(t, svc.Save(ctx, "host-1").Succeeded)

	for _, name := range []string{"Double", "Single"} {
		room := &Room{LodgingID: lodging.ID, Name: name, BedCount: 2, MaxOccupancy: 2}
		require.True(t, svc.AddRoom(room).Succeeded)
	}
	require.True(t, svc.Save(ctx, "host-1").Succeeded)

	res := svc.GetLodging(ctx, lodging.ID, true)
	require.True(t, res.Succeeded)
	require.Len(t, res.Data.Rooms, 2)
	// 房型按名称排序
	assert.Equal(t, "Double", res.Data.Rooms[0].Name)
	assert.Equal(t, "Single", res.Data.Rooms[1].Name)

	plain := svc.GetLodging(ctx, lodging.ID, false)
	require.True(t, plain.Succeeded)
	assert.Empty(t, plain.Data.Rooms)
}

// TestServiceListLodgings 按城市分页
func TestServiceListLodgings(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, city := range []string{"Cape Town", "Cape Town", "Durban"} {
		l := NewLodging("Inn " + city)
		l.City = city
		require.True(t, svc.RegisterLodging(l).Succeeded)
	}
	require.True(t, svc.Save(ctx, "host-1").Succeeded)

	page, err := svc.ListLodgings(ctx, "Cape Town", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)

	all, err := svc.ListLodgings(ctx, "", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, all.TotalCount)
	assert.Equal(t, 2, all.TotalPages)
	assert.True(t, all.HasNextPage())
}

// TestServiceAuditTrail 保存产生审计记录并盖戳
func TestServiceAuditTrail(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	lodging := NewLodging("Seaside Inn")
	require.True(t, svc.RegisterLodging(lodging).Succeeded)
	require.True(t, svc.Save(ctx, "host-1").Succeeded)

	assert.Equal(t, "host-1", lodging.CreatedBy)
	assert.False(t, lodging.CreatedOn.IsZero())

	var count int
	require.NoError(t, db.QueryRow(ctx,
		`SELECT COUNT(*) FROM "AuditTrails" WHERE "TableName" = 'Lodging'`).Scan(&count))
	assert.Equal(t, 1, count)
}

// TestServiceRemoveRoom 删除房型
func TestServiceRemoveRoom(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	lodging := NewLodging("Seaside Inn")
	require.True(t, svc.RegisterLodging(lodging).Succeeded)
	room := &Room{LodgingID: lodging.ID, Name: "Double", BedCount: 2, MaxOccupancy: 2}
	require.True(t, svc.AddRoom(room).Succeeded)
	require.True(t, svc.Save(ctx, "host-1").Succeeded)

	require.True(t, svc.RemoveRoom(ctx, room.ID).Succeeded)
	require.True(t, svc.Save(ctx, "host-1").Succeeded)

	var count int
	require.NoError(t, db.QueryRow(ctx, `SELECT COUNT(*) FROM "Room"`).Scan(&count))
	assert.Zero(t, count)

	missing := svc.RemoveRoom(ctx, 999)
	assert.False(t, missing.Succeeded)
	assert.Contains(t, missing.Messages, "Entity with ID 999 not found.")
}
