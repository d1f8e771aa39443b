package audit

import (
	"encoding/json"
	"time"

	"bookery/data/track"
	"bookery/errors"

	"github.com/google/uuid"
)

// Entry 一次保存周期内、单个变更对象的审计捕获（瞬态）。
// 生命周期严格限定在一次 Flush 周期内；
// 含待生成字段的条目保留到第二次（延迟）Flush 前。
type Entry struct {
	// TableName 实体类型的逻辑名
	TableName string

	// UserID 执行变更的操作人
	UserID string

	// Action 动作分类；Modified 状态只有在出现真实差异字段后才细化为 Update
	Action ActionType

	// KeyValues 主键列值（非生成键在构建时填充，生成键延迟回填）
	KeyValues *Values

	// OldValues 变更前镜像（Update/Delete）
	OldValues *Values

	// NewValues 变更后镜像（Create/Update）
	NewValues *Values

	// ChangedColumns 发生变化的列名（按字段声明顺序）
	ChangedColumns []string

	// TemporaryColumns 此刻值尚由存储引擎待生成的列
	TemporaryColumns []string

	tracked *track.Entry
}

// HasTemporaryProperties 是否存在待生成字段。
func (e *Entry) HasTemporaryProperties() bool {
	return len(e.TemporaryColumns) > 0
}

// newEntry 按被跟踪条目构建审计捕获。
//
// 逐字段规则（与跟踪状态相关）：
//   - 待生成字段记入 TemporaryColumns，本轮跳过；
//   - 主键字段只进 KeyValues，永远不算"变更数据"；
//   - Added：当前值进 NewValues；Deleted：原值进 OldValues；
//   - Modified：仅当字段被标记为已修改（脏标记蕴含原值≠当前值）
//     时才同时记录新旧值——被触碰但未变化的字段不产生审计内容。
//
// 没有任何变更列的 Added/Modified/Deleted 条目仍然产出
// 头部信息审计（"这一行被一次保存触碰过"）。
func newEntry(te *track.Entry, userID string) *Entry {
	e := &Entry{
		TableName: te.Record().TableName(),
		UserID:    userID,
		Action:    actionFor(te.State()),
		KeyValues: NewValues(),
		OldValues: NewValues(),
		NewValues: NewValues(),
		tracked:   te,
	}

	for _, f := range te.Record().Fields() {
		if te.IsTemporary(f) {
			e.TemporaryColumns = append(e.TemporaryColumns, f.Column)
			continue
		}
		if f.PrimaryKey {
			e.KeyValues.Set(f.Column, f.Value)
			continue
		}

		switch te.State() {
		case track.StateAdded:
			e.Action = ActionCreate
			e.NewValues.Set(f.Column, f.Value)
			e.ChangedColumns = append(e.ChangedColumns, f.Column)

		case track.StateDeleted:
			e.Action = ActionDelete
			e.OldValues.Set(f.Column, te.OriginalValue(f.Column))
			e.ChangedColumns = append(e.ChangedColumns, f.Column)

		case track.StateModified:
			// 脏标记只在原值与当前值真实不同时才置位
			if te.IsModified(f.Column) {
				e.Action = ActionUpdate
				e.OldValues.Set(f.Column, te.OriginalValue(f.Column))
				e.NewValues.Set(f.Column, f.Value)
				e.ChangedColumns = append(e.ChangedColumns, f.Column)
			}
		}
	}
	return e
}

func actionFor(state track.EntryState) ActionType {
	switch state {
	case track.StateAdded:
		return ActionCreate
	case track.StateModified:
		return ActionUpdate
	case track.StateDeleted:
		return ActionDelete
	default:
		return ActionNone
	}
}

// resolve 第一次 Flush 之后回填待生成字段的真实值：
// 主键进 KeyValues，其余进 NewValues。
func (e *Entry) resolve() {
	pending := make(map[string]bool, len(e.TemporaryColumns))
	for _, col := range e.TemporaryColumns {
		pending[col] = true
	}
	for _, f := range e.tracked.Record().Fields() {
		if !pending[f.Column] {
			continue
		}
		if f.PrimaryKey {
			e.KeyValues.Set(f.Column, f.Value)
		} else {
			e.NewValues.Set(f.Column, f.Value)
		}
	}
	e.TemporaryColumns = nil
}

// ToRecord 把瞬态捕获固化为待持久化的审计记录。
// 空的新旧值镜像序列化为 NULL（而非空对象），主键序列化必填。
func (e *Entry) ToRecord() (*Record, error) {
	keyJSON, err := json.Marshal(e.KeyValues)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrCodeInternal, "序列化审计主键失败")
	}

	rec := &Record{
		ID:         uuid.NewString(),
		UserID:     e.UserID,
		Action:     e.Action,
		TableName:  e.TableName,
		EventTime:  time.Now().UTC(),
		PrimaryKey: string(keyJSON),
	}

	if e.OldValues.Len() > 0 {
		data, err := json.Marshal(e.OldValues)
		if err != nil {
			return nil, errors.WrapError(err, errors.ErrCodeInternal, "序列化审计旧值失败")
		}
		s := string(data)
		rec.OldValues = &s
	}
	if e.NewValues.Len() > 0 {
		data, err := json.Marshal(e.NewValues)
		if err != nil {
			return nil, errors.WrapError(err, errors.ErrCodeInternal, "序列化审计新值失败")
		}
		s := string(data)
		rec.NewValues = &s
	}
	if len(e.ChangedColumns) > 0 {
		data, err := json.Marshal(e.ChangedColumns)
		if err != nil {
			return nil, errors.WrapError(err, errors.ErrCodeInternal, "序列化受影响列失败")
		}
		s := string(data)
		rec.AffectedColumns = &s
	}

	return rec, nil
}
