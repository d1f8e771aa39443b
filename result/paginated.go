package result

import (
	"bookery/errors"
)

// PaginatedResult 分页结果。
//
// 分页算术在构造时计算一次：
//   - TotalPages = ceil(TotalCount / PageSize)
//   - HasPreviousPage = CurrentPage > 1
//   - HasNextPage = CurrentPage < TotalPages
//
// Data 是否已按页切片由调用方负责，分页算术只依赖 count/page/pageSize，
// 与 Data 长度无关。
type PaginatedResult[T any] struct {
	Succeeded   bool     `json:"succeeded"`
	Messages    []string `json:"messages"`
	Data        []T      `json:"data"`
	CurrentPage int      `json:"currentPage"`
	TotalPages  int      `json:"totalPages"`
	TotalCount  int      `json:"totalCount"`
	PageSize    int      `json:"pageSize"`
}

// HasPreviousPage 是否存在上一页。
func (p PaginatedResult[T]) HasPreviousPage() bool { return p.CurrentPage > 1 }

// HasNextPage 是否存在下一页。
func (p PaginatedResult[T]) HasNextPage() bool { return p.CurrentPage < p.TotalPages }

func newPaginated[T any](succeeded bool, data []T, messages []string, count, page, pageSize int) (PaginatedResult[T], error) {
	if page <= 0 {
		return PaginatedResult[T]{}, errors.NewError(errors.ErrCodeInvalidInput, "page number must be greater than zero")
	}
	if pageSize <= 0 {
		return PaginatedResult[T]{}, errors.NewError(errors.ErrCodeInvalidInput, "page size must be greater than zero")
	}
	if data == nil {
		data = []T{}
	}
	if messages == nil {
		messages = []string{}
	}
	totalPages := count / pageSize
	if count%pageSize != 0 {
		totalPages++
	}
	return PaginatedResult[T]{
		Succeeded:   succeeded,
		Messages:    messages,
		Data:        data,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  count,
		PageSize:    pageSize,
	}, nil
}

// SuccessPaginated 创建分页成功结果。
// page 或 pageSize 不为正数时构造失败。
func SuccessPaginated[T any](data []T, count, page, pageSize int) (PaginatedResult[T], error) {
	return newPaginated(true, data, nil, count, page, pageSize)
}

// FailPaginated 创建分页失败结果。
func FailPaginated[T any](messages []string, page, pageSize int) (PaginatedResult[T], error) {
	return newPaginated[T](false, nil, messages, 0, page, pageSize)
}
