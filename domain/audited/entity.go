// Package audited 提供审计场景下的实体通用实现。
// 嵌入 Auditable 即获得创建/修改盖戳能力，由审计上下文在保存时调用。
package audited

import (
	"time"
)

// Auditable 通用审计字段（用于嵌入）。
// LastModifiedOn 为指针：从未修改过的实体保持 NULL。
type Auditable struct {
	CreatedBy      string     `json:"created_by"`
	CreatedOn      time.Time  `json:"created_on"`
	LastModifiedBy string     `json:"last_modified_by"`
	LastModifiedOn *time.Time `json:"last_modified_on,omitempty"`
}

func (a *Auditable) GetCreatedBy() string          { return a.CreatedBy }
func (a *Auditable) GetCreatedOn() time.Time       { return a.CreatedOn }
func (a *Auditable) GetLastModifiedBy() string     { return a.LastModifiedBy }
func (a *Auditable) GetLastModifiedOn() *time.Time { return a.LastModifiedOn }

func (a *Auditable) SetCreatedInfo(by string, at time.Time) {
	a.CreatedBy = by
	a.CreatedOn = at
}

func (a *Auditable) SetModifiedInfo(by string, at time.Time) {
	a.LastModifiedBy = by
	a.LastModifiedOn = &at
}
