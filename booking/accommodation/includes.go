package accommodation

import (
	"context"

	"bookery/errors"
	"bookery/storage/database"
	sqlstmt "bookery/storage/database/sql"
)

// IncludeRooms 装载房源下属房型集合的关联名。
const IncludeRooms = "Rooms"

// LoadRooms 装载指定房源的全部房型，按名称排序。
// 注册为仓储的 IncludeLoader 使用。
func LoadRooms(ctx context.Context, db database.IDatabase, lodging *Lodging) error {
	proto := &Room{}
	fields := proto.Fields()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.Column
	}

	rows, err := sqlstmt.New(db).Select(cols...).
		From(proto.TableName()).
		Where("LodgingId = ?", lodging.ID).
		OrderBy("Name").
		Query(ctx)
	if err != nil {
		return errors.WrapError(err, errors.ErrCodeDatabase, "查询房型失败")
	}
	defer rows.Close()

	lodging.Rooms = nil
	for rows.Next() {
		room := &Room{}
		values := make([]any, len(cols))
		dests := make([]any, len(cols))
		for i := range values {
			dests[i] = &values[i]
		}
		if err := rows.Scan(dests...); err != nil {
			return errors.WrapError(err, errors.ErrCodeDatabase, "读取房型行失败")
		}
		for i, col := range cols {
			if err := room.Assign(col, values[i]); err != nil {
				return errors.WrapError(err, errors.ErrCodeDatabase, "装载房型列失败")
			}
		}
		lodging.Rooms = append(lodging.Rooms, room)
	}
	return rows.Err()
}
