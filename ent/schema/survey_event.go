package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SurveyEvent records the lifecycle of one survey session.
type SurveyEvent struct {
	ent.Schema
}

func (SurveyEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SurveyEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id"),
		field.String("action").
			Comment("start, submit or abandon"),
		field.Int("questions").
			Default(0),
		field.Int("answered").
			Default(0),
	}
}

func (SurveyEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
