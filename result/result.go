// Package result 提供统一的操作结果包装。
//
// 设计原则：
// 1. 仓储/服务层对外永远返回 Result，而非裸 error；
// 2. 失败信息以消息列表形式携带，调用方必须检查 Succeeded 后再使用 Data；
// 3. 分页结果内置分页算术（总页数、前后页判断），构造时校验参数。
package result

// Result 不带负载的操作结果。
type Result struct {
	Succeeded bool     `json:"succeeded"`
	Messages  []string `json:"messages"`
}

// Success 创建成功结果（无消息）。
func Success() Result {
	return Result{Succeeded: true}
}

// SuccessWith 创建带单条消息的成功结果。
func SuccessWith(message string) Result {
	return Result{Succeeded: true, Messages: []string{message}}
}

// Fail 创建带单条消息的失败结果。
func Fail(message string) Result {
	return Result{Succeeded: false, Messages: []string{message}}
}

// FailAll 创建带多条消息的失败结果。
func FailAll(messages []string) Result {
	if messages == nil {
		messages = []string{}
	}
	return Result{Succeeded: false, Messages: messages}
}

// TypedResult 带负载的操作结果。
// Data 只有在 Succeeded 为 true 时才有意义。
type TypedResult[T any] struct {
	Result
	Data T `json:"data"`
}

// SuccessData 创建带负载的成功结果。
func SuccessData[T any](data T) TypedResult[T] {
	return TypedResult[T]{Result: Success(), Data: data}
}

// FailData 创建带单条消息的失败结果，负载为零值。
func FailData[T any](message string) TypedResult[T] {
	return TypedResult[T]{Result: Fail(message)}
}

// FailDataAll 创建带多条消息的失败结果，负载为零值。
func FailDataAll[T any](messages []string) TypedResult[T] {
	return TypedResult[T]{Result: FailAll(messages)}
}
