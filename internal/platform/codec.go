package platform

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/workspace/internal/errors"
)

// Codec encodes and decodes a client store's file format.
type Codec interface {
	// Format names the encoding, e.g. "json".
	Format() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSONCodec reads and writes JSON documents. Numbers decode as json.Number
// so values the tool does not own round-trip without float conversion.
type JSONCodec struct{}

func (JSONCodec) Format() string { return "json" }

func (JSONCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after top-level value")
	}
	return nil
}

// TOMLCodec reads and writes TOML documents.
type TOMLCodec struct{}

func (TOMLCodec) Format() string { return "toml" }

func (TOMLCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (TOMLCodec) Unmarshal(data []byte, v any) error {
	return toml.Unmarshal(data, v)
}

// envelope wraps a value so formats that require a top-level table can
// carry it.
type envelope[T any] struct {
	V T `json:"v" toml:"v"`
}

// Normalize returns v in the generic form c decodes files into, so a typed
// entry can be compared with one read from disk.
func Normalize(c Codec, v any) (any, error) {
	return Convert[any](c, v)
}

// Convert re-encodes v through c into a T.
func Convert[T any](c Codec, v any) (T, error) {
	var out envelope[T]
	data, err := c.Marshal(envelope[any]{V: v})
	if err != nil {
		return out.V, errors.Wrapf(err, "encoding %s entry", c.Format())
	}
	if err := c.Unmarshal(data, &out); err != nil {
		return out.V, errors.Wrapf(err, "decoding %s entry", c.Format())
	}
	return out.V, nil
}
