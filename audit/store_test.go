package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// TestStoreListByTable 按表名分页读取审计记录
func TestStoreListByTable(t *testing.T) {
	c, db := newTestContext(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		p := &product{Name: name, Price: 1}
		c.Add(p)
		_, err := c.SaveChanges(ctx, "test-user-id")
		require.NoError(t, err)
	}

	store, err := NewStore(db)
	require.NoError(t, err)

	page, err := store.ListByTable(ctx, "Product", 1, 2)
	require.NoError(t, err)
	assert.True(t, page.Succeeded)
	assert.Equal(t, 3, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Data, 2)
	assert.True(t, page.HasNextPage())
	assert.False(t, page.HasPreviousPage())

	for _, rec := range page.Data {
		assert.Equal(t, "Product", rec.TableName)
		assert.Equal(t, ActionCreate, rec.Action)
		assert.Equal(t, "test-user-id", rec.UserID)
		assert.False(t, rec.EventTime.IsZero())
	}
}

// TestStoreNullUserID 外部写入的 UserId 为 NULL 的行可读出
func TestStoreNullUserID(t *testing.T) {
	_, db := newTestContext(t)
	ctx := context.Background()

	_, err := db.Exec(ctx, `INSERT INTO "AuditTrails"
		("Id", "UserId", "ActionType", "TableName", "EventTime", "PrimaryKey")
		VALUES ('rec-1', NULL, 1, 'Product', '2026-01-02 03:04:05', '{"Id":1}')`)
	require.NoError(t, err)

	store, err := NewStore(db)
	require.NoError(t, err)

	page, err := store.ListByTable(ctx, "Product", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Empty(t, page.Data[0].UserID)
	assert.Equal(t, ActionCreate, page.Data[0].Action)
}

// TestStoreListByEntity 按主键序列化值定位单个实体的历史
func TestStoreListByEntity(t *testing.T) {
	c, db := newTestContext(t)
	ctx := context.Background()

	p := &product{Name: "Test Product", Price: 9.99}
	c.Add(p)
	_, err := c.SaveChanges(ctx, "test-user-id")
	require.NoError(t, err)

	p.Price = 19.99
	_, err = c.SaveChanges(ctx, "test-user-id")
	require.NoError(t, err)

	other := &product{Name: "Other", Price: 1}
	c.Add(other)
	_, err = c.SaveChanges(ctx, "test-user-id")
	require.NoError(t, err)

	store, err := NewStore(db)
	require.NoError(t, err)

	page, err := store.ListByEntity(ctx, "Product", `{"Id":1}`, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)

	// 事件时间倒序：最新的变更在前
	require.Len(t, page.Data, 2)
	assert.Equal(t, ActionUpdate, page.Data[0].Action)
	assert.Equal(t, ActionCreate, page.Data[1].Action)
}

// TestStoreListByUser 按操作人过滤
func TestStoreListByUser(t *testing.T) {
	c, db := newTestContext(t)
	ctx := context.Background()

	p := &product{Name: "A", Price: 1}
	c.Add(p)
	_, err := c.SaveChanges(ctx, "alice")
	require.NoError(t, err)

	q := &product{Name: "B", Price: 2}
	c.Add(q)
	_, err = c.SaveChanges(ctx, "bob")
	require.NoError(t, err)

	store, err := NewStore(db)
	require.NoError(t, err)

	page, err := store.ListByUser(ctx, "alice", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "alice", page.Data[0].UserID)
}

// TestStoreInvalidPaging 非法分页参数
func TestStoreInvalidPaging(t *testing.T) {
	_, db := newTestContext(t)

	store, err := NewStore(db)
	require.NoError(t, err)

	_, err = store.ListByTable(context.Background(), "Product", 0, 10)
	require.Error(t, err)
	_, err = store.ListByTable(context.Background(), "Product", 1, 0)
	require.Error(t, err)
}

// TestStoreNilDB 空数据库实例构造失败
func TestStoreNilDB(t *testing.T) {
	_, err := NewStore(nil)
	require.Error(t, err)
}
