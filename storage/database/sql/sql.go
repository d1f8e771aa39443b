package sql

import (
	core "bookery/storage/database"
	"bookery/storage/database/dialect"
)

// Sql ISql 的默认实现，绑定一个 IDatabase 与其方言。
type Sql struct {
	db      core.IDatabase
	dialect dialect.Dialect
}

// New 创建 SQL 构建入口，方言从 db 推断。
func New(db core.IDatabase) ISql {
	return &Sql{db: db, dialect: dialect.FromDatabase(db)}
}

func (s *Sql) Select(columns ...string) ISelectBuilder {
	return &selectBuilder{db: s.db, dialect: s.dialect, cols: columns}
}

func (s *Sql) InsertInto(table string) IInsertBuilder {
	return &insertBuilder{db: s.db, dialect: s.dialect, table: table}
}

func (s *Sql) Update(table string) IUpdateBuilder {
	return &updateBuilder{db: s.db, dialect: s.dialect, table: table}
}

func (s *Sql) DeleteFrom(table string) IDeleteBuilder {
	return &deleteBuilder{db: s.db, dialect: s.dialect, table: table}
}

func (s *Sql) GetDB() core.IDatabase { return s.db }
