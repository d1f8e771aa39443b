// Package track 提供"被跟踪对象工作集"：
// 在一次工作单元内暂存新增/修改/删除，在 Flush 时一次性落库。
//
// 设计要点：
//   - 实体通过显式的字段模型接口（IRecord）枚举自身列，
//     避免运行时反射遍历属性；
//   - 每个被跟踪条目持有附加（Attach）时刻的原值快照，
//     DetectChanges 据此计算脏字段；
//   - 自增主键在插入前处于"未解析"状态，Flush 后回填到实体。
package track

import (
	"fmt"
	"time"
)

// Field 描述实体的一个列及其当前值。
type Field struct {
	// Column 数据库列名
	Column string

	// Value 当前值（必须是可比较的标量：数值、字符串、布尔、time.Time 或相应指针）
	Value any

	// PrimaryKey 是否主键列
	PrimaryKey bool

	// AutoIncrement 是否由存储引擎生成（自增），插入前值未知
	AutoIncrement bool
}

// IRecord 实体字段模型接口。
// 每个持久化实体类型按声明顺序枚举自身字段，并支持按列回填值
// （查询扫描与生成键回填都经由 Assign）。
type IRecord interface {
	// TableName 返回实体对应的逻辑表名
	TableName() string

	// Fields 按稳定顺序返回全部列与当前值
	Fields() []Field

	// Assign 按列名回填值（需处理驱动返回的原始类型，见 As* 辅助函数）
	Assign(column string, value any) error
}

// equalValues 比较两个字段值是否相等。
// 字段值约定为标量，time.Time 需要用 Equal 比较（时区归一化）。
func equalValues(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	}
	if ap, ok := a.(*time.Time); ok {
		bp, ok := b.(*time.Time)
		if !ok {
			return false
		}
		if ap == nil || bp == nil {
			return ap == bp
		}
		return ap.Equal(*bp)
	}
	return a == b
}

// isUnresolvedKey 判断自增键值是否尚未由存储引擎生成。
// 约定自增键为整数，零值表示未解析。
func isUnresolvedKey(v any) bool {
	switch n := v.(type) {
	case int64:
		return n == 0
	case int:
		return n == 0
	case int32:
		return n == 0
	case uint64:
		return n == 0
	case nil:
		return true
	default:
		return false
	}
}

// As* 辅助：把驱动返回的原始扫描值转换为实体字段类型。
// sqlite 驱动返回 int64/float64/string/[]byte/time.Time/nil。

// AsInt64 转换为 int64。
func AsInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("track: cannot convert %T to int64", v)
	}
}

// AsInt 转换为 int。
func AsInt(v any) (int, error) {
	n, err := AsInt64(v)
	return int(n), err
}

// AsFloat64 转换为 float64。
func AsFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("track: cannot convert %T to float64", v)
	}
}

// AsString 转换为 string。
func AsString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("track: cannot convert %T to string", v)
	}
}

// AsBool 转换为 bool（sqlite 以整数存储布尔）。
func AsBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case int64:
		return b != 0, nil
	case int:
		return b != 0, nil
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("track: cannot convert %T to bool", v)
	}
}

// timeLayouts 驱动可能返回的文本时间格式。
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// AsTime 转换为 time.Time。
func AsTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		return parseTime(t)
	case []byte:
		return parseTime(string(t))
	case nil:
		return time.Time{}, nil
	default:
		return time.Time{}, fmt.Errorf("track: cannot convert %T to time.Time", v)
	}
}

// AsNullTime 转换为 *time.Time，nil/NULL 保持 nil。
func AsNullTime(v any) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	t, err := AsTime(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("track: unrecognized time format %q", s)
}
