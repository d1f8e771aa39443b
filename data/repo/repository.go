// Package repo 提供基于审计上下文的通用仓储。
//
// 仓储的写操作只做"登记"：Create/Update/Delete 登记到变更跟踪器，
// 直到 Save 才统一落库并产生审计记录。读操作默认不跟踪，
// 传入 trackChanges 后查询结果进入跟踪器，后续修改可被探测。
package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookery/audit"
	"bookery/cache"
	"bookery/data/track"
	"bookery/domain"
	"bookery/errors"
	"bookery/logging"
	"bookery/result"
	"bookery/storage/database"
	sqlstmt "bookery/storage/database/sql"
)

// Filter 查询条件（?占位符表达式与参数）。
type Filter struct {
	Where string
	Args  []any
}

// IncludeLoader 关联数据装载器：在主实体装载后补齐导航数据。
// 装载器通过闭包持有自己需要的查询依赖。
type IncludeLoader[T track.IRecord] func(ctx context.Context, db database.IDatabase, entity T) error

// Repository 通用仓储，T 必须是带字段模型的可跟踪实体。
type Repository[T track.IRecord] struct {
	dbctx    *audit.Context
	factory  func() T
	includes map[string]IncludeLoader[T]
	cache    *cache.Cache[string, []T]
	logger   logging.Logger
}

// Option 仓储可选配置。
type Option[T track.IRecord] func(*Repository[T])

// WithInclude 注册命名的关联装载器。
func WithInclude[T track.IRecord](name string, loader IncludeLoader[T]) Option[T] {
	return func(r *Repository[T]) {
		if name != "" && loader != nil {
			r.includes[name] = loader
		}
	}
}

// WithReadCache 为非跟踪读启用 LRU 缓存，成功保存后整体失效。
func WithReadCache[T track.IRecord](maxSize int, ttl time.Duration) Option[T] {
	return func(r *Repository[T]) {
		r.cache = cache.New[string, []T](cache.Config{
			Name:    r.factory().TableName() + "_read",
			MaxSize: maxSize,
			TTL:     ttl,
		})
	}
}

// WithLogger 指定日志实现。
func WithLogger[T track.IRecord](logger logging.Logger) Option[T] {
	return func(r *Repository[T]) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New 创建仓储。factory 构造空实体，供行扫描与表结构推断使用。
func New[T track.IRecord](dbctx *audit.Context, factory func() T, opts ...Option[T]) (*Repository[T], error) {
	if dbctx == nil {
		return nil, errors.NewError(errors.ErrCodeInvalidInput, "审计上下文不能为空")
	}
	if factory == nil {
		return nil, errors.NewError(errors.ErrCodeInvalidInput, "实体工厂不能为空")
	}
	r := &Repository[T]{
		dbctx:    dbctx,
		factory:  factory,
		includes: make(map[string]IncludeLoader[T]),
		logger:   logging.GetLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Context 底层审计上下文。
func (r *Repository[T]) Context() *audit.Context { return r.dbctx }

// FindAll 查询全部实体。
// trackChanges 为真时结果进入变更跟踪器；includes 指定要装载的关联。
func (r *Repository[T]) FindAll(ctx context.Context, trackChanges bool, includes ...string) result.TypedResult[[]T] {
	return r.FindByCondition(ctx, Filter{}, trackChanges, includes...)
}

// FindByCondition 按条件查询实体。
func (r *Repository[T]) FindByCondition(ctx context.Context, filter Filter, trackChanges bool, includes ...string) result.TypedResult[[]T] {
	// 非跟踪读走读穿缓存，Save 成功后整体失效。
	if !trackChanges && r.cache != nil {
		entities, err := r.cache.GetOrLoad(r.cacheKey(filter, includes), func() ([]T, error) {
			return r.query(ctx, filter, includes)
		})
		if err != nil {
			return result.FailData[[]T](errors.RootMessage(err))
		}
		return result.SuccessData(entities)
	}

	entities, err := r.query(ctx, filter, includes)
	if err != nil {
		return result.FailData[[]T](errors.RootMessage(err))
	}
	if trackChanges {
		for _, e := range entities {
			r.dbctx.Attach(e)
		}
	}
	return result.SuccessData(entities)
}

// FindByID 按主键查询单个实体。
func (r *Repository[T]) FindByID(ctx context.Context, id any, trackChanges bool, includes ...string) result.TypedResult[T] {
	pk := r.primaryKeyColumn()
	res := r.FindByCondition(ctx, Filter{Where: pk + " = ?", Args: []any{id}}, trackChanges, includes...)
	if !res.Succeeded {
		return result.TypedResult[T]{Result: res.Result}
	}
	if len(res.Data) == 0 {
		return result.FailData[T](domain.NewNotFoundError(r.factory().TableName(), id).Error())
	}
	return result.SuccessData(res.Data[0])
}

// FindEntityByID 以实体主键自身的类型定位实体，键类型在编译期校验。
func FindEntityByID[I comparable, T interface {
	track.IRecord
	domain.IObject[I]
}](ctx context.Context, r *Repository[T], id I, trackChanges bool, includes ...string) result.TypedResult[T] {
	return r.FindByID(ctx, id, trackChanges, includes...)
}

// DeleteEntityByID 以实体主键自身的类型定位并登记删除。
func DeleteEntityByID[I comparable, T interface {
	track.IRecord
	domain.IObject[I]
}](ctx context.Context, r *Repository[T], id I) result.TypedResult[T] {
	return r.DeleteByID(ctx, id)
}

// FindPage 按条件分页查询（不跟踪），orderBy 为空时按主键排序。
func (r *Repository[T]) FindPage(ctx context.Context, filter Filter, page, pageSize int, orderBy string) (result.PaginatedResult[T], error) {
	count := r.Count(ctx, filter)
	if !count.Succeeded {
		return result.FailPaginated[T](count.Messages, page, pageSize)
	}

	if orderBy == "" {
		orderBy = r.primaryKeyColumn()
	}
	proto := r.factory()
	fields := proto.Fields()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.Column
	}

	builder := sqlstmt.New(r.dbctx.DB()).Select(cols...).From(proto.TableName())
	if filter.Where != "" {
		builder = builder.Where(filter.Where, filter.Args...)
	}
	rows, err := builder.OrderBy(orderBy).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Query(ctx)
	if err != nil {
		return result.PaginatedResult[T]{}, errors.WrapError(err, errors.ErrCodeDatabase, "分页查询实体失败")
	}
	defer rows.Close()

	entities, err := r.scan(rows, cols)
	if err != nil {
		return result.PaginatedResult[T]{}, err
	}
	return result.SuccessPaginated(entities, int(count.Data), page, pageSize)
}

// Count 按条件统计实体数量。
func (r *Repository[T]) Count(ctx context.Context, filter Filter) result.TypedResult[int64] {
	stmt := sqlstmt.New(r.dbctx.DB())
	builder := stmt.Select("COUNT(*)").From(r.factory().TableName())
	if filter.Where != "" {
		builder = builder.Where(filter.Where, filter.Args...)
	}
	var total int64
	if err := builder.QueryRow(ctx).Scan(&total); err != nil {
		return result.FailData[int64](errors.RootMessage(
			errors.WrapError(err, errors.ErrCodeDatabase, "统计实体失败")))
	}
	return result.SuccessData(total)
}

// Exists 检查指定主键的实体是否存在。
func (r *Repository[T]) Exists(ctx context.Context, id any) result.TypedResult[bool] {
	pk := r.primaryKeyColumn()
	res := r.Count(ctx, Filter{Where: pk + " = ?", Args: []any{id}})
	if !res.Succeeded {
		return result.TypedResult[bool]{Result: res.Result}
	}
	return result.SuccessData(res.Data > 0)
}

// Create 登记新增。实现 IValidatable 的实体先通过验证。
func (r *Repository[T]) Create(entity T) result.TypedResult[T] {
	if err := r.validate(entity); err != nil {
		return result.FailData[T](errors.RootMessage(err))
	}
	r.dbctx.Add(entity)
	return result.SuccessData(entity)
}

// Update 登记修改。未被跟踪的实体按全字段更新登记。
func (r *Repository[T]) Update(entity T) result.TypedResult[T] {
	if err := r.validate(entity); err != nil {
		return result.FailData[T](errors.RootMessage(err))
	}
	r.dbctx.Update(entity)
	return result.SuccessData(entity)
}

// Delete 登记删除。
func (r *Repository[T]) Delete(entity T) result.TypedResult[T] {
	r.dbctx.Remove(entity)
	return result.SuccessData(entity)
}

// DeleteByID 按主键定位实体并登记删除。
func (r *Repository[T]) DeleteByID(ctx context.Context, id any) result.TypedResult[T] {
	res := r.FindByID(ctx, id, true)
	if !res.Succeeded {
		return res
	}
	r.dbctx.Remove(res.Data)
	return result.SuccessData(res.Data)
}

// Save 提交全部登记的变更并写入审计记录。
// 成功后非跟踪读缓存整体失效；Data 为业务行影响行数。
func (r *Repository[T]) Save(ctx context.Context, userID string) result.TypedResult[int64] {
	rows, err := r.dbctx.SaveChanges(ctx, userID)
	if err != nil {
		r.logger.Error(ctx, "保存变更失败",
			logging.String("table", r.factory().TableName()),
			logging.Error(errors.RootCause(err)))
		return result.FailData[int64](errors.RootMessage(err))
	}
	if r.cache != nil {
		r.cache.Clear()
	}
	return result.SuccessData(rows)
}

// query 执行查询并装载关联。
func (r *Repository[T]) query(ctx context.Context, filter Filter, includes []string) ([]T, error) {
	proto := r.factory()
	fields := proto.Fields()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.Column
	}

	stmt := sqlstmt.New(r.dbctx.DB())
	builder := stmt.Select(cols...).From(proto.TableName())
	if filter.Where != "" {
		builder = builder.Where(filter.Where, filter.Args...)
	}

	rows, err := builder.Query(ctx)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrCodeDatabase, "查询实体失败")
	}
	defer rows.Close()

	entities, err := r.scan(rows, cols)
	if err != nil {
		return nil, err
	}

	for _, name := range includes {
		loader, ok := r.includes[name]
		if !ok {
			return nil, errors.NewError(errors.ErrCodeInvalidInput,
				fmt.Sprintf("未注册的关联装载器: %s", name))
		}
		for _, entity := range entities {
			if err := loader(ctx, r.dbctx.DB(), entity); err != nil {
				return nil, err
			}
		}
	}
	return entities, nil
}

// scan 把结果集按字段模型装载为实体切片。
func (r *Repository[T]) scan(rows database.IRows, cols []string) ([]T, error) {
	var entities []T
	for rows.Next() {
		entity := r.factory()
		values := make([]any, len(cols))
		dests := make([]any, len(cols))
		for i := range values {
			dests[i] = &values[i]
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, errors.WrapError(err, errors.ErrCodeDatabase, "读取实体行失败")
		}
		for i, col := range cols {
			if err := entity.Assign(col, values[i]); err != nil {
				return nil, errors.WrapError(err, errors.ErrCodeDatabase,
					fmt.Sprintf("装载列 %s 失败", col))
			}
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapError(err, errors.ErrCodeDatabase, "遍历实体行失败")
	}
	return entities, nil
}

func (r *Repository[T]) validate(entity T) error {
	if v, ok := any(entity).(domain.IValidatable); ok {
		return v.Validate()
	}
	return nil
}

func (r *Repository[T]) primaryKeyColumn() string {
	for _, f := range r.factory().Fields() {
		if f.PrimaryKey {
			return f.Column
		}
	}
	// 无主键的实体不应使用按键操作
	panic("repo: entity has no primary key column")
}

func (r *Repository[T]) cacheKey(filter Filter, includes []string) string {
	return fmt.Sprintf("%s|%v|%s", filter.Where, filter.Args, strings.Join(includes, ","))
}
