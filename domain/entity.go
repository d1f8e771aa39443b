// Package domain 定义领域实体的核心接口体系
//
// 设计原则：
// 1. 接口最小化 - 每个接口只包含必需的方法
// 2. 组合优于继承 - 通过接口组合构建复杂类型
// 3. 泛型支持 - 提供类型安全的 ID 类型
package domain

import "time"

// IObject 最基础的对象接口，所有实体的根接口。
// 使用泛型支持不同的 ID 类型（int64、string、UUID等）。
type IObject[T comparable] interface {
	// GetID 返回对象的唯一标识
	GetID() T
}

// IValidatable 可验证接口。
// 实现此接口的实体可以验证自身状态的有效性。
type IValidatable interface {
	// Validate 验证实体状态是否有效
	// 返回 error 表示验证失败，nil 表示验证成功
	Validate() error
}

// IAuditable 审计追踪接口。
// 实现此接口的实体在保存时由审计上下文盖戳创建/修改信息；
// 未解析出操作人时不做任何盖戳。
type IAuditable interface {
	// 创建信息
	GetCreatedBy() string
	GetCreatedOn() time.Time

	// 最后修改信息（LastModifiedOn 为 nil 表示从未修改）
	GetLastModifiedBy() string
	GetLastModifiedOn() *time.Time

	// 设置审计信息（由基础设施层调用）
	SetCreatedInfo(by string, at time.Time)
	SetModifiedInfo(by string, at time.Time)
}
