package anime

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// envelope is the {"data": ...} wrapper the Jikan API puts around payloads
type envelope struct {
	Data yaml.Node `yaml:"data"`
}

// Decode reads records from r. Each YAML document (JSON is accepted as
// well) may hold a single record, a list of records, or either wrapped
// in a {data: ...} envelope.
func Decode(r io.Reader) ([]Record, error) {
	dec := yaml.NewDecoder(r)

	var records []Record
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse records: %w", err)
		}

		recs, err := decodeNode(&doc)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}

	return records, nil
}

func decodeNode(node *yaml.Node) ([]Record, error) {
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, nil
		}
		node = node.Content[0]
	}

	switch node.Kind {
	case yaml.SequenceNode:
		var recs []Record
		if err := node.Decode(&recs); err != nil {
			return nil, fmt.Errorf("failed to decode record list: %w", err)
		}
		return recs, nil

	case yaml.MappingNode:
		if hasKey(node, "data") {
			var env envelope
			if err := node.Decode(&env); err != nil {
				return nil, fmt.Errorf("failed to decode envelope: %w", err)
			}
			return decodeNode(&env.Data)
		}
		var rec Record
		if err := node.Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
		return []Record{rec}, nil

	case 0:
		return nil, nil

	default:
		return nil, fmt.Errorf("unexpected %s at line %d, want a record or a list", kindName(node.Kind), node.Line)
	}
}

func hasKey(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "node"
	}
}

// LoadFile decodes all records in the file at path
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	recs, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}
