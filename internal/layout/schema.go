package layout

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/pixil98/go-invgui/internal/gui"
)

//go:embed schema.json
var schemaSource string

var definitionSchema = jsonschema.MustCompileString("layout.schema.json", schemaSource)

// ValidateJSON checks a JSON encoded definition against the layout schema.
func ValidateJSON(data []byte) error {
	v, err := decodeJSON(data)
	if err != nil {
		return err
	}
	return validateDocument(v)
}

// ValidateAsset checks the spec of a JSON asset file against the layout
// schema. Other files are left to the asset decoder.
func ValidateAsset(path string, data []byte) error {
	if filepath.Ext(path) != ".json" {
		return nil
	}

	var asset struct {
		Spec json.RawMessage `json:"spec"`
	}
	if err := json.Unmarshal(data, &asset); err != nil {
		return fmt.Errorf("decoding asset: %w", err)
	}
	if len(asset.Spec) == 0 {
		return nil
	}

	if err := ValidateJSON(asset.Spec); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}
	return v, nil
}

func validateDocument(v any) error {
	if err := definitionSchema.Validate(v); err != nil {
		return fmt.Errorf("%w: %w", gui.ErrInvalidConfiguration, err)
	}
	return nil
}
