package mapper

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/terappia/terapp/internal/question"
)

// identity is the part of every record's data shared by all question types.
var identity = map[string]any{
	"id":          map[string]any{"type": "string", "minLength": 1},
	"title":       map[string]any{"type": "string"},
	"description": nullable("string"),
}

// Fields with a default accept an explicit null, which decodes to the
// zero value and then takes the default like a missing field.
var (
	stringList = map[string]any{
		"type":  []any{"array", "null"},
		"items": map[string]any{"type": "string"},
	}
	optionalString = nullable("string")
	optionalNumber = nullable("number")
)

func nullable(typ string) map[string]any {
	return map[string]any{"type": []any{typ, "null"}}
}

// dataSchemas describe the accepted shape of `data` per question type.
// Unknown extra properties are tolerated.
var dataSchemas = map[question.Kind]map[string]any{
	question.KindAlternative: objectSchema(map[string]any{
		"alternatives": stringList,
		"labels":       stringList,
	}),
	question.KindDate: objectSchema(map[string]any{
		"min": optionalString,
		"max": optionalString,
	}),
	question.KindNumber: objectSchema(map[string]any{
		"placeholder": optionalString,
		"min":         optionalNumber,
		"max":         optionalNumber,
	}),
	question.KindSlider: objectSchema(map[string]any{
		"min":          map[string]any{"type": "number"},
		"max":          map[string]any{"type": "number"},
		"step":         map[string]any{"type": "number"},
		"defaultValue": map[string]any{"type": "number"},
		"labels":       stringList,
	}, "min", "max", "step", "defaultValue"),
}

func objectSchema(props map[string]any, required ...string) map[string]any {
	all := make(map[string]any, len(identity)+len(props))
	for k, v := range identity {
		all[k] = v
	}
	for k, v := range props {
		all[k] = v
	}
	req := []any{"id", "title"}
	for _, r := range required {
		req = append(req, r)
	}
	return map[string]any{
		"type":       "object",
		"properties": all,
		"required":   req,
	}
}

var (
	compileOnce sync.Once
	compiled    map[question.Kind]*jsonschema.Schema
	compileErr  error
)

// schemaFor returns the compiled data schema of kind, or nil when the kind
// is not recognized.
func schemaFor(kind question.Kind) (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled, compileErr = compileSchemas()
	})
	if compileErr != nil {
		return nil, compileErr
	}
	return compiled[kind], nil
}

func compileSchemas() (map[question.Kind]*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	out := make(map[question.Kind]*jsonschema.Schema, len(dataSchemas))
	for kind, def := range dataSchemas {
		// The compiler wants a decoded JSON value, not a Go map literal
		// with typed slices, so round-trip through encoding/json.
		b, err := json.Marshal(def)
		if err != nil {
			return nil, fmt.Errorf("marshal %s schema: %w", kind, err)
		}
		var doc any
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("parse %s schema: %w", kind, err)
		}
		url := fmt.Sprintf("schema://question/%s.json", kind)
		if err := c.AddResource(url, doc); err != nil {
			return nil, fmt.Errorf("add %s schema: %w", kind, err)
		}
		s, err := c.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", kind, err)
		}
		out[kind] = s
	}
	return out, nil
}
