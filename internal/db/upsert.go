package db

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const upsertBatchSize = 500

// Upsert writes records keyed by their primary key. Existing rows have every
// non-key column overwritten, so repeating a batch leaves the table unchanged.
// Records repeating a key within the batch collapse to the last one. It
// returns the number of distinct records written.
func Upsert[T any](tx *gorm.DB, table string, records []T) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	records, err := lastByKey(tx, records)
	if err != nil {
		return 0, fmt.Errorf("upsert %s: %w", table, err)
	}
	err = tx.Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(records, upsertBatchSize).Error
	if err != nil {
		return 0, fmt.Errorf("upsert %s: %w", table, err)
	}
	return len(records), nil
}

// UpsertOne is Upsert for single-document endpoints. A nil record writes nothing.
func UpsertOne[T any](tx *gorm.DB, table string, record *T) (int, error) {
	if record == nil {
		return 0, nil
	}
	return Upsert(tx, table, []T{*record})
}

// lastByKey drops every record whose primary key reappears later in the
// batch. Postgres refuses to update the same row twice in one statement.
func lastByKey[T any](tx *gorm.DB, records []T) ([]T, error) {
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, err
	}
	pks := stmt.Schema.PrimaryFields
	if len(pks) == 0 {
		return records, nil
	}

	ctx := context.Background()
	if tx.Statement != nil && tx.Statement.Context != nil {
		ctx = tx.Statement.Context
	}

	index := make(map[string]int, len(records))
	out := make([]T, 0, len(records))
	for i := range records {
		rv := reflect.ValueOf(&records[i]).Elem()
		var key strings.Builder
		for _, f := range pks {
			v, _ := f.ValueOf(ctx, rv)
			if ts, ok := v.(time.Time); ok {
				v = ts.UnixNano()
			}
			fmt.Fprintf(&key, "%v\x00", v)
		}
		if j, ok := index[key.String()]; ok {
			out[j] = records[i]
			continue
		}
		index[key.String()] = len(out)
		out = append(out, records[i])
	}
	return out, nil
}
