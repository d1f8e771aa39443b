package audit

import (
	"context"
	"time"

	"bookery/data/track"
	"bookery/domain"
	"bookery/errors"
	"bookery/logging"
	"bookery/storage/database"
)

// IPublisher 审计记录落库后的外发接口。
// 发布失败不影响业务提交，只记录日志。
type IPublisher interface {
	Publish(ctx context.Context, rec *Record) error
}

// Context 带变更审计的持久化上下文。
// 跟踪业务对象的变化，保存时同事务写入业务行，
// 并把每行的变更镜像固化为审计记录。
type Context struct {
	db        database.IDatabase
	tracker   *track.Tracker
	table     string
	logger    logging.Logger
	publisher IPublisher
}

// Option 上下文可选配置。
type Option func(*Context)

// WithAuditTable 指定审计记录落库表名。
func WithAuditTable(table string) Option {
	return func(c *Context) {
		if table != "" {
			c.table = table
		}
	}
}

// WithLogger 指定日志实现。
func WithLogger(logger logging.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPublisher 指定审计记录外发实现。
func WithPublisher(p IPublisher) Option {
	return func(c *Context) {
		c.publisher = p
	}
}

// NewContext 创建审计上下文。
func NewContext(db database.IDatabase, opts ...Option) (*Context, error) {
	if db == nil {
		return nil, errors.NewError(errors.ErrCodeInvalidInput, "数据库实例不能为空")
	}
	c := &Context{
		db:      db,
		tracker: track.NewTracker(),
		table:   DefaultTable,
		logger:  logging.GetLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// DB 底层数据库实例。
func (c *Context) DB() database.IDatabase { return c.db }

// Tracker 变更跟踪器。
func (c *Context) Tracker() *track.Tracker { return c.tracker }

// Attach 以未变更状态纳入跟踪。
func (c *Context) Attach(r track.IRecord) { c.tracker.Attach(r) }

// Add 标记为新增。
func (c *Context) Add(r track.IRecord) { c.tracker.Add(r) }

// Update 标记为已修改。
func (c *Context) Update(r track.IRecord) { c.tracker.Update(r) }

// Remove 标记为删除。
func (c *Context) Remove(r track.IRecord) { c.tracker.Remove(r) }

// SaveChanges 提交全部待定变更并写入审计记录。
//
// userID 为空时退化为普通保存，不产生审计。
//
// 否则执行两段式提交：
//  1. 刷新变更探测，为可审计实体补记创建/修改人与时间；
//  2. 捕获每个待定条目的变更镜像；含待生成键的条目延迟处理；
//  3. 第一次刷写：业务行 + 无延迟依赖的审计记录同事务落库；
//  4. 回填存储生成的键，固化延迟条目，第二次刷写仅含审计记录。
//
// 返回值为第一次刷写的业务行影响行数。
// 两次刷写位于不同事务：第一次成功而第二次失败时，业务数据已
// 提交而延迟审计记录缺失，调用方依据返回的错误自行补救。
func (c *Context) SaveChanges(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return c.tracker.Flush(ctx, c.db)
	}

	c.tracker.DetectChanges()
	c.stampAuditable(userID)
	c.tracker.DetectChanges()

	entries := c.buildEntries(userID)

	var deferred []*Entry
	var records []*Record
	for _, e := range entries {
		if e.HasTemporaryProperties() {
			deferred = append(deferred, e)
			continue
		}
		rec, err := e.ToRecord()
		if err != nil {
			return 0, err
		}
		records = append(records, rec)
		c.tracker.Add(&recordRow{rec: rec, table: c.table})
	}

	rows, err := c.tracker.Flush(ctx, c.db)
	if err != nil {
		return 0, err
	}

	if len(deferred) > 0 {
		for _, e := range deferred {
			e.resolve()
			rec, err := e.ToRecord()
			if err != nil {
				return rows, err
			}
			records = append(records, rec)
			c.tracker.Add(&recordRow{rec: rec, table: c.table})
		}
		if _, err := c.tracker.Flush(ctx, c.db); err != nil {
			return rows, errors.WrapError(err, errors.ErrCodeDatabase, "延迟审计记录写入失败")
		}
	}

	c.publish(ctx, records)
	return rows, nil
}

// stampAuditable 为可审计实体补记操作人与时间。
func (c *Context) stampAuditable(userID string) {
	now := time.Now().UTC()
	for _, te := range c.tracker.Entries() {
		auditable, ok := te.Record().(domain.IAuditable)
		if !ok {
			continue
		}
		switch te.State() {
		case track.StateAdded:
			auditable.SetCreatedInfo(userID, now)
		case track.StateModified:
			auditable.SetModifiedInfo(userID, now)
		}
	}
}

// buildEntries 捕获全部待定条目的审计镜像。
// 审计记录自身的行不参与捕获。
func (c *Context) buildEntries(userID string) []*Entry {
	var entries []*Entry
	for _, te := range c.tracker.Entries() {
		if _, isAudit := te.Record().(*recordRow); isAudit {
			continue
		}
		switch te.State() {
		case track.StateAdded, track.StateModified, track.StateDeleted:
			entries = append(entries, newEntry(te, userID))
		}
	}
	return entries
}

// publish 尽力外发已落库的审计记录，失败仅记日志。
func (c *Context) publish(ctx context.Context, records []*Record) {
	if c.publisher == nil {
		return
	}
	for _, rec := range records {
		if err := c.publisher.Publish(ctx, rec); err != nil {
			c.logger.Warn(ctx, "审计记录外发失败",
				logging.String("table", rec.TableName),
				logging.Error(err))
		}
	}
}
