package db

import (
	"fmt"

	"github.com/ClickHouse/ch-go/proto"
)

// PersistableObject batches rows of a single table together with the input
// builder that turns them into columnar form.
type PersistableObject[T any] struct {
	input func([]T) proto.Input
	table string
	query string

	items []T
}

func (p *PersistableObject[T]) Append(item T) {
	p.items = append(p.items, item)
}

func (p *PersistableObject[T]) Len() int {
	return len(p.items)
}

// ExportPersist returns the arguments for DBService.Persist.
func (p *PersistableObject[T]) ExportPersist() (string, string, proto.Input, int) {
	return fmt.Sprintf(p.query, p.table), p.table, p.input(p.items), len(p.items)
}

// DeletableObject links a delete query with its table and arguments.
type DeletableObject struct {
	query string
	table string
	args  []any
}

func (d DeletableObject) Query() string {
	return fmt.Sprintf(d.query, d.table)
}

func (d DeletableObject) Args() []any {
	return d.args
}
