package sqlbuilder

import (
	"github.com/Masterminds/squirrel"
)

// Dialect описывает различия SQL между поддерживаемыми СУБД
type Dialect struct {
	name             string
	builder          squirrel.StatementBuilderType
	supportsRowLocks bool
}

// Postgres диалект PostgreSQL: плейсхолдеры $1, поддержка SELECT ... FOR UPDATE
func Postgres() Dialect {
	return Dialect{
		name:             "postgres",
		builder:          squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		supportsRowLocks: true,
	}
}

// SQLite диалект SQLite: плейсхолдеры ?, блокировки строк не поддерживаются
// (сериализация обеспечивается транзакциями BEGIN IMMEDIATE)
func SQLite() Dialect {
	return Dialect{
		name:             "sqlite",
		builder:          squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		supportsRowLocks: false,
	}
}

// Name имя диалекта
func (d Dialect) Name() string {
	return d.name
}

// SupportsRowLocks поддерживает ли СУБД SELECT ... FOR UPDATE
func (d Dialect) SupportsRowLocks() bool {
	return d.supportsRowLocks
}

// Select начинает построение SELECT
func (d Dialect) Select(columns ...string) squirrel.SelectBuilder {
	return d.builder.Select(columns...)
}

// Insert начинает построение INSERT
func (d Dialect) Insert(table string) squirrel.InsertBuilder {
	return d.builder.Insert(table)
}

// Update начинает построение UPDATE
func (d Dialect) Update(table string) squirrel.UpdateBuilder {
	return d.builder.Update(table)
}

// Delete начинает построение DELETE
func (d Dialect) Delete(table string) squirrel.DeleteBuilder {
	return d.builder.Delete(table)
}
