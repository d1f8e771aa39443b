package audit

import (
	"context"
	"database/sql"

	"bookery/errors"
	"bookery/result"
	"bookery/storage/database"
	sqlstmt "bookery/storage/database/sql"
)

// Store 审计记录的只读查询入口。
// 写入由 Context 统一完成，Store 只负责分页读取。
type Store struct {
	db    database.IDatabase
	table string
}

// NewStore 创建审计查询入口。
func NewStore(db database.IDatabase, opts ...StoreOption) (*Store, error) {
	if db == nil {
		return nil, errors.NewError(errors.ErrCodeInvalidInput, "数据库实例不能为空")
	}
	s := &Store{db: db, table: DefaultTable}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// StoreOption 查询入口可选配置。
type StoreOption func(*Store)

// WithStoreTable 指定审计记录所在表名。
func WithStoreTable(table string) StoreOption {
	return func(s *Store) {
		if table != "" {
			s.table = table
		}
	}
}

// ListByTable 按实体表名分页查询审计记录，按事件时间倒序。
func (s *Store) ListByTable(ctx context.Context, tableName string, page, pageSize int) (result.PaginatedResult[Record], error) {
	return s.list(ctx, `TableName = ?`, []any{tableName}, page, pageSize)
}

// ListByUser 按操作人分页查询审计记录，按事件时间倒序。
func (s *Store) ListByUser(ctx context.Context, userID string, page, pageSize int) (result.PaginatedResult[Record], error) {
	return s.list(ctx, `UserId = ?`, []any{userID}, page, pageSize)
}

// ListByEntity 按实体表名与主键序列化值定位单个实体的完整变更历史。
func (s *Store) ListByEntity(ctx context.Context, tableName, primaryKey string, page, pageSize int) (result.PaginatedResult[Record], error) {
	return s.list(ctx, `TableName = ? AND PrimaryKey = ?`, []any{tableName, primaryKey}, page, pageSize)
}

func (s *Store) list(ctx context.Context, cond string, args []any, page, pageSize int) (result.PaginatedResult[Record], error) {
	if page < 1 || pageSize < 1 {
		return result.PaginatedResult[Record]{}, errors.NewError(errors.ErrCodeInvalidInput, "分页参数必须为正数")
	}

	stmt := sqlstmt.New(s.db)

	var total int
	row := stmt.Select("COUNT(*)").From(s.table).Where(cond, args...).QueryRow(ctx)
	if err := row.Scan(&total); err != nil {
		return result.PaginatedResult[Record]{}, errors.WrapError(err, errors.ErrCodeDatabase, "统计审计记录失败")
	}

	rows, err := stmt.Select(
		"Id", "UserId", "ActionType", "TableName", "EventTime",
		"OldValues", "NewValues", "AffectedColumns", "PrimaryKey",
	).From(s.table).
		Where(cond, args...).
		OrderBy("EventTime DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Query(ctx)
	if err != nil {
		return result.PaginatedResult[Record]{}, errors.WrapError(err, errors.ErrCodeDatabase, "查询审计记录失败")
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var action int
		var userID sql.NullString
		if err := rows.Scan(
			&rec.ID, &userID, &action, &rec.TableName, &rec.EventTime,
			&rec.OldValues, &rec.NewValues, &rec.AffectedColumns, &rec.PrimaryKey,
		); err != nil {
			return result.PaginatedResult[Record]{}, errors.WrapError(err, errors.ErrCodeDatabase, "读取审计记录失败")
		}
		rec.UserID = userID.String
		rec.Action = ActionType(action)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return result.PaginatedResult[Record]{}, errors.WrapError(err, errors.ErrCodeDatabase, "遍历审计记录失败")
	}

	return result.SuccessPaginated(records, total, page, pageSize)
}
