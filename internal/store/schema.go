package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/schema/field"

	"github.com/terappia/terapp/ent/schema"
)

// Table names.
const (
	tableSurveyEvents = "survey_events"
	tableSubmissions  = "submissions"
	tableLLMRequests  = "llm_request_events"
)

// tableSchemas maps each history table to its declaration. Every table
// also gets an integer primary key named id.
var tableSchemas = []struct {
	name   string
	schema ent.Interface
}{
	{tableSurveyEvents, schema.SurveyEvent{}},
	{tableSubmissions, schema.Submission{}},
	{tableLLMRequests, schema.LLMRequestEvent{}},
}

func migrate(ctx context.Context, drv *entsql.Driver) error {
	stmts, err := ddl()
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// ddl renders the CREATE statements for every history table.
func ddl() ([]string, error) {
	var stmts []string
	for _, t := range tableSchemas {
		var (
			fields  []ent.Field
			indexes []ent.Index
		)
		for _, m := range t.schema.Mixin() {
			fields = append(fields, m.Fields()...)
			indexes = append(indexes, m.Indexes()...)
		}
		fields = append(fields, t.schema.Fields()...)
		indexes = append(indexes, t.schema.Indexes()...)

		cols := []string{quote("id") + " INTEGER PRIMARY KEY AUTOINCREMENT"}
		for _, f := range fields {
			col, err := column(f.Descriptor())
			if err != nil {
				return nil, fmt.Errorf("table %s: %w", t.name, err)
			}
			cols = append(cols, col)
		}
		stmts = append(stmts, fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
			quote(t.name), strings.Join(cols, ", ")))

		for _, ix := range indexes {
			d := ix.Descriptor()
			create := "CREATE INDEX"
			if d.Unique {
				create = "CREATE UNIQUE INDEX"
			}
			quoted := make([]string, len(d.Fields))
			for i, f := range d.Fields {
				quoted[i] = quote(f)
			}
			stmts = append(stmts, fmt.Sprintf("%s IF NOT EXISTS %s ON %s (%s)",
				create, quote(t.name+"_"+strings.Join(d.Fields, "_")), quote(t.name), strings.Join(quoted, ", ")))
		}
	}
	return stmts, nil
}

// column renders one column definition. Every column is NOT NULL.
func column(d *field.Descriptor) (string, error) {
	var typ string
	switch d.Info.Type {
	case field.TypeString:
		typ = "TEXT"
	case field.TypeBool, field.TypeInt, field.TypeInt8, field.TypeInt16, field.TypeInt32, field.TypeInt64:
		typ = "INTEGER"
	case field.TypeFloat32, field.TypeFloat64:
		typ = "REAL"
	default:
		return "", fmt.Errorf("field %s: unsupported type %s", d.Name, d.Info.Type)
	}

	parts := []string{quote(d.Name), typ, "NOT NULL"}
	if d.Unique {
		parts = append(parts, "UNIQUE")
	}
	if d.Default != nil {
		parts = append(parts, "DEFAULT "+literal(d.Default))
	}
	return strings.Join(parts, " "), nil
}

func quote(ident string) string {
	return "`" + ident + "`"
}

// literal renders a field default as an SQL literal.
func literal(v any) string {
	switch v := v.(type) {
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case bool:
		if v {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(v)
	}
}
