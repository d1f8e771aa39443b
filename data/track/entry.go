package track

// EntryState 被跟踪条目的生命周期状态。
type EntryState int

const (
	// StateDetached 未被工作集跟踪
	StateDetached EntryState = iota

	// StateUnchanged 已跟踪且与快照一致
	StateUnchanged

	// StateAdded 暂存的新增
	StateAdded

	// StateModified 暂存的修改
	StateModified

	// StateDeleted 暂存的删除
	StateDeleted
)

func (s EntryState) String() string {
	switch s {
	case StateUnchanged:
		return "Unchanged"
	case StateAdded:
		return "Added"
	case StateModified:
		return "Modified"
	case StateDeleted:
		return "Deleted"
	default:
		return "Detached"
	}
}

// Entry 工作集中的一个被跟踪条目。
// 原值快照在附加时拍摄，脏字段标记由 DetectChanges 维护。
type Entry struct {
	record   IRecord
	state    EntryState
	original map[string]any
	modified map[string]bool
}

func newEntry(r IRecord, state EntryState) *Entry {
	e := &Entry{
		record:   r,
		state:    state,
		modified: make(map[string]bool),
	}
	e.snapshot()
	return e
}

// snapshot 以当前字段值重置原值快照。
func (e *Entry) snapshot() {
	fields := e.record.Fields()
	e.original = make(map[string]any, len(fields))
	for _, f := range fields {
		e.original[f.Column] = f.Value
	}
}

// Record 返回被跟踪实体。
func (e *Entry) Record() IRecord { return e.record }

// State 返回当前状态。
func (e *Entry) State() EntryState { return e.state }

// OriginalValue 返回指定列在快照中的原值。
func (e *Entry) OriginalValue(column string) any { return e.original[column] }

// IsModified 返回指定列是否被标记为已修改（由 DetectChanges 计算）。
func (e *Entry) IsModified(column string) bool { return e.modified[column] }

// IsTemporary 判断字段值此刻是否仍由存储引擎待生成
// （仅对暂存新增的自增列成立）。
func (e *Entry) IsTemporary(f Field) bool {
	return e.state == StateAdded && f.AutoIncrement && isUnresolvedKey(f.Value)
}

// HasTemporary 判断条目是否存在待生成字段。
func (e *Entry) HasTemporary() bool {
	for _, f := range e.record.Fields() {
		if e.IsTemporary(f) {
			return true
		}
	}
	return false
}

// detect 重新计算脏字段标记；对 Unchanged 条目返回是否存在差异。
func (e *Entry) detect() bool {
	dirty := false
	for _, f := range e.record.Fields() {
		if f.PrimaryKey {
			continue
		}
		if !equalValues(e.original[f.Column], f.Value) {
			e.modified[f.Column] = true
			dirty = true
		} else {
			delete(e.modified, f.Column)
		}
	}
	return dirty
}
