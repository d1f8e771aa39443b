// Package audit 提供变更审计持久层：
// 在一次保存操作前后截获工作集中的每个变更，计算字段级差异，
// 并将其作为审计记录与业务数据一起落库。
package audit

// ActionType 审计动作分类。
// 持久化为小整数，新增值只能追加在末尾。
type ActionType int

const (
	ActionNone ActionType = iota
	ActionCreate
	ActionUpdate
	ActionDelete
)

func (a ActionType) String() string {
	switch a {
	case ActionCreate:
		return "Create"
	case ActionUpdate:
		return "Update"
	case ActionDelete:
		return "Delete"
	default:
		return "None"
	}
}
