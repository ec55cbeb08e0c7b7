package todo

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

// Schema names, one per record shape.
const (
	SchemaTemplate = "template"
	SchemaList     = "list"
	SchemaDay      = "day"
	SchemaReward   = "reward"
	SchemaPoints   = "points"
	SchemaHistory  = "history"
)

var (
	schemasOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	schemasErr  error
)

func compileSchemas() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	names := []string{SchemaTemplate, SchemaList, SchemaDay, SchemaReward, SchemaPoints, SchemaHistory}
	for _, name := range names {
		data, err := schemaFiles.ReadFile("schemas/" + name + ".json")
		if err != nil {
			schemasErr = err
			return
		}
		if err := compiler.AddResource(schemaURL(name), bytes.NewReader(data)); err != nil {
			schemasErr = fmt.Errorf("todo: schema %s: %w", name, err)
			return
		}
	}
	schemas = make(map[string]*jsonschema.Schema, len(names))
	for _, name := range names {
		s, err := compiler.Compile(schemaURL(name))
		if err != nil {
			schemasErr = fmt.Errorf("todo: schema %s: %w", name, err)
			return
		}
		schemas[name] = s
	}
}

func schemaURL(name string) string {
	return "taskrace:///" + name + ".json"
}

// SchemaFor names the schema a record stored at collection/key must satisfy.
func SchemaFor(collection, key string) (string, bool) {
	switch collection {
	case CollectionTemplates:
		return SchemaTemplate, true
	case CollectionLists:
		return SchemaList, true
	case CollectionDays:
		return SchemaDay, true
	case CollectionHistory:
		return SchemaHistory, true
	case CollectionStore:
		if key == PointsKey {
			return SchemaPoints, true
		}
		return SchemaReward, true
	}
	return "", false
}

// Validate checks a raw JSON record against the named schema.
func Validate(schema string, data []byte) error {
	schemasOnce.Do(compileSchemas)
	if schemasErr != nil {
		return schemasErr
	}
	s, ok := schemas[schema]
	if !ok {
		return fmt.Errorf("todo: unknown schema %q", schema)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("todo: %s: %w", schema, err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("todo: %s: %w", schema, err)
	}
	return nil
}
