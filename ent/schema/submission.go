package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Submission records one prediction request and its outcome.
type Submission struct {
	ent.Schema
}

func (Submission) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (Submission) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id"),
		field.String("api_url").
			Default(""),
		field.String("responses").
			Comment("JSON body sent to the prediction endpoint"),
		field.Int("status_code").
			Default(0).
			Comment("HTTP status, 0 when no response arrived"),
		field.Bool("success").
			Default(false),
		field.String("prediction").
			Default("").
			Comment("Raw JSON body of a successful response"),
		field.String("depression_risk").
			Default(""),
		field.Float("probability").
			Default(0),
		field.Int64("latency_ms").
			Default(0),
		field.String("error_message").
			Default(""),
	}
}

func (Submission) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
