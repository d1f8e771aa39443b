package track

// Tracker 一次工作单元的被跟踪对象工作集。
//
// 约束：一个 Tracker 等价于一个工作单元，不支持跨并发请求共享；
// 并发保护由上层按"每请求一个上下文"的使用纪律保证。
type Tracker struct {
	entries []*Entry
	index   map[IRecord]*Entry
}

// NewTracker 创建空工作集。
func NewTracker() *Tracker {
	return &Tracker{index: make(map[IRecord]*Entry)}
}

// Entries 返回全部条目（按注册顺序）。
func (t *Tracker) Entries() []*Entry {
	return t.entries
}

// Entry 返回实体对应的条目，未跟踪时返回 nil。
func (t *Tracker) Entry(r IRecord) *Entry {
	return t.index[r]
}

func (t *Tracker) register(r IRecord, state EntryState) *Entry {
	e := newEntry(r, state)
	t.entries = append(t.entries, e)
	t.index[r] = e
	return e
}

// Attach 以 Unchanged 状态跟踪实体并拍摄原值快照。
// 跟踪型查询在扫描出每一行后调用；重复附加返回既有条目。
func (t *Tracker) Attach(r IRecord) *Entry {
	if e, ok := t.index[r]; ok {
		return e
	}
	return t.register(r, StateUnchanged)
}

// Add 暂存一条新增。
func (t *Tracker) Add(r IRecord) *Entry {
	if e, ok := t.index[r]; ok {
		e.state = StateAdded
		return e
	}
	return t.register(r, StateAdded)
}

// Update 暂存一条修改。
//
// 已跟踪实体保留附加时的快照（可精确 diff）；
// 未跟踪实体以当前值作为快照 —— 即"全字段更新"，
// 没有可对比的原值，diff 结果为空但条目依然成立。
func (t *Tracker) Update(r IRecord) *Entry {
	if e, ok := t.index[r]; ok {
		if e.state == StateUnchanged {
			e.state = StateModified
		}
		return e
	}
	return t.register(r, StateModified)
}

// Remove 暂存一条删除。
// 尚未落库的新增直接退化为 Detached（无事可删）。
func (t *Tracker) Remove(r IRecord) *Entry {
	if e, ok := t.index[r]; ok {
		if e.state == StateAdded {
			e.state = StateDetached
			return e
		}
		e.state = StateDeleted
		return e
	}
	return t.register(r, StateDeleted)
}

// DetectChanges 显式脏扫描：
//   - Unchanged 条目若与快照存在差异，提升为 Modified；
//   - Modified 条目重新计算逐字段脏标记。
func (t *Tracker) DetectChanges() {
	for _, e := range t.entries {
		switch e.state {
		case StateUnchanged:
			if e.detect() {
				e.state = StateModified
			}
		case StateModified:
			e.detect()
		}
	}
}

// acceptChanges Flush 成功后的整理：
// 新增/修改条目重置为 Unchanged 并以当前值重拍快照，
// 删除与游离条目移出工作集。
func (t *Tracker) acceptChanges() {
	kept := t.entries[:0]
	for _, e := range t.entries {
		switch e.state {
		case StateAdded, StateModified:
			e.state = StateUnchanged
			e.modified = make(map[string]bool)
			e.snapshot()
			kept = append(kept, e)
		case StateUnchanged:
			kept = append(kept, e)
		default:
			delete(t.index, e.record)
		}
	}
	t.entries = kept
}

// Clear 清空工作集（所有条目游离）。
func (t *Tracker) Clear() {
	t.entries = nil
	t.index = make(map[IRecord]*Entry)
}
