package track

import (
	"context"

	"bookery/errors"
	database "bookery/storage/database"
	sqlstmt "bookery/storage/database/sql"
)

// Flush 在单个事务内把暂存的新增/修改/删除写入存储，
// 返回受影响的行数。
//
// 顺序保证：条目按注册顺序依次执行；
// 自增主键在对应 INSERT 执行后立即回填到实体；
// 成功提交后工作集重置基线（新增/修改→Unchanged，删除→移出）。
//
// 失败语义：任何一条语句失败即回滚整个事务并返回错误，
// 工作集保持原样，调用方可修正后重试。
func (t *Tracker) Flush(ctx context.Context, db database.IDatabase) (int64, error) {
	t.DetectChanges()

	pending := make([]*Entry, 0, len(t.entries))
	for _, e := range t.entries {
		switch e.state {
		case StateAdded, StateModified, StateDeleted:
			pending = append(pending, e)
		}
	}
	if len(pending) == 0 {
		return 0, nil
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, errors.WrapError(err, errors.ErrCodeDatabase, "开启事务失败")
	}

	var rows int64
	stmt := sqlstmt.New(tx)
	for _, e := range pending {
		var n int64
		switch e.state {
		case StateAdded:
			n, err = flushInsert(ctx, stmt, e)
		case StateModified:
			n, err = flushUpdate(ctx, stmt, e)
		case StateDeleted:
			n, err = flushDelete(ctx, stmt, e)
		}
		if err != nil {
			_ = tx.Rollback()
			return 0, errors.WrapError(err, errors.ErrCodeDatabase, "写入暂存变更失败")
		}
		rows += n
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.WrapError(err, errors.ErrCodeDatabase, "提交事务失败")
	}

	t.acceptChanges()
	return rows, nil
}

func flushInsert(ctx context.Context, stmt sqlstmt.ISql, e *Entry) (int64, error) {
	var (
		cols        []string
		vals        []any
		pendingAuto string
	)
	for _, f := range e.record.Fields() {
		if e.IsTemporary(f) {
			// 值由存储引擎生成，不参与 INSERT，执行后回填
			if f.PrimaryKey {
				pendingAuto = f.Column
			}
			continue
		}
		cols = append(cols, f.Column)
		vals = append(vals, f.Value)
	}

	res, err := stmt.InsertInto(e.record.TableName()).
		Columns(cols...).
		Values(vals...).
		Exec(ctx)
	if err != nil {
		return 0, err
	}

	if pendingAuto != "" {
		id, err := res.LastInsertId()
		if err != nil {
			return 0, err
		}
		if err := e.record.Assign(pendingAuto, id); err != nil {
			return 0, err
		}
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}

func flushUpdate(ctx context.Context, stmt sqlstmt.ISql, e *Entry) (int64, error) {
	b := stmt.Update(e.record.TableName())
	for _, f := range e.record.Fields() {
		if f.PrimaryKey {
			continue
		}
		b = b.Set(f.Column, f.Value)
	}
	for _, f := range e.record.Fields() {
		if f.PrimaryKey {
			b = b.Where(f.Column+" = ?", f.Value)
		}
	}

	res, err := b.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func flushDelete(ctx context.Context, stmt sqlstmt.ISql, e *Entry) (int64, error) {
	b := stmt.DeleteFrom(e.record.TableName())
	for _, f := range e.record.Fields() {
		if f.PrimaryKey {
			b = b.Where(f.Column+" = ?", f.Value)
		}
	}

	res, err := b.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
