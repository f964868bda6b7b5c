package livefile

import (
	"encoding/json"
	"fmt"

	"github.com/ccswitch/ccswitch/internal/config/errz"
	"github.com/pelletier/go-toml/v2"
)

// Codec encodes and decodes one live-file format. Claude and Gemini use JSON
// live files; Codex uses TOML (~/.codex/config.toml).
type Codec interface {
	// Decode parses data into a Document. Empty input yields an empty Document.
	Decode(data []byte) (Document, error)
	// Encode serializes doc with stable, human-readable formatting.
	Encode(doc Document) ([]byte, error)
}

type jsonCodec struct{}

func (jsonCodec) Decode(data []byte) (Document, error) {
	if len(data) == 0 {
		return Document{}, nil
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object: %v", errz.ErrParse, err)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

func (jsonCodec) Encode(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encode JSON document: %v", errz.ErrParse, err)
	}
	return append(data, '\n'), nil
}

type tomlCodec struct{}

func (tomlCodec) Decode(data []byte) (Document, error) {
	if len(data) == 0 {
		return Document{}, nil
	}
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: not a TOML document: %v", errz.ErrParse, err)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

func (tomlCodec) Encode(doc Document) ([]byte, error) {
	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: encode TOML document: %v", errz.ErrParse, err)
	}
	return data, nil
}
