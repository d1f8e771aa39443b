package domain

import (
	"errors"
	"fmt"
)

// ErrEntityNotFound 实体未找到的哨兵错误，用 errors.Is 匹配。
var ErrEntityNotFound = errors.New("entity not found")

// NotFoundError 携带实体表名与主键的未找到错误。
// 消息格式即仓储对外暴露的失败消息。
type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Entity with ID %v not found.", e.ID)
}

// Is 让 errors.Is(err, ErrEntityNotFound) 命中本类型。
func (e *NotFoundError) Is(target error) bool { return target == ErrEntityNotFound }

// NewNotFoundError 创建指定实体与主键的未找到错误。
func NewNotFoundError(entity string, id any) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound 判断错误（或其错误链）是否为实体未找到。
func IsNotFound(err error) bool { return errors.Is(err, ErrEntityNotFound) }
