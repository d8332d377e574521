package contracts

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"listing-feed-service/internal/schemas"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	// Register every embedded schema as a resource first so they can
	// reference each other via $ref, then compile.
	err := fs.WalkDir(schemas.SchemasFS, "payloads", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := schemas.SchemasFS.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		return compiler.AddResource(path, file)
	})
	if err != nil {
		log.Fatalf("error adding schema resources: %v", err)
	}

	err = fs.WalkDir(schemas.SchemasFS, "payloads", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		schema, err := compiler.Compile(path)
		if err != nil {
			log.Printf("WARNING: could not compile schema %s: %v. Skipping.", path, err)
			return nil
		}
		compiledSchemas[keyFromPath(path)] = schema
		return nil
	})
	if err != nil {
		log.Fatalf("error compiling schemas: %v", err)
	}
}

// keyFromPath turns "payloads/listing.v1.json" into "listing.v1".
func keyFromPath(path string) string {
	key := strings.TrimPrefix(path, "payloads/")
	return strings.TrimSuffix(key, ".json")
}

// Validate checks raw JSON against a registered schema key. An unknown key
// is a programming error and fails loudly.
func Validate(schemaKey string, data []byte) error {
	schema, ok := compiledSchemas[schemaKey]
	if !ok {
		return fmt.Errorf("no schema registered for key %q", schemaKey)
	}

	var decoded interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("payload is not valid JSON: %w", err)
	}
	if err := schema.Validate(decoded); err != nil {
		return fmt.Errorf("payload failed %s validation: %w", schemaKey, err)
	}
	return nil
}

// ValidateListingPayload checks one raw listing object.
func ValidateListingPayload(data []byte) error {
	return Validate("listing.v1", data)
}

// ValidateMessageEvent checks one inbound broker message event.
func ValidateMessageEvent(data []byte) error {
	return Validate("message-event.v1", data)
}
