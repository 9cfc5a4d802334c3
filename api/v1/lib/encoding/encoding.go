// Package encoding defines the wire codec contract consumed by the
// scheduler HTTP client: encoding an outbound call and decoding a stream of
// inbound events, parameterized by content-type ("json" or "protobuf").
package encoding

import (
	"fmt"
	"io"
)

// Marshaler is satisfied by any value that can be handed directly to a
// Client's configured Codec for encoding. It exists so httpcli stays
// decoupled from the concrete scheduler.Call/Event types: any message type
// from any "calls" package qualifies.
type Marshaler interface{}

// Encoder writes a single message to the underlying stream.
type Encoder interface {
	Encode(m interface{}) error
}

// Decoder reads a single message from the underlying stream.
type Decoder interface {
	Decode(m interface{}) error
}

// EncoderFunc adapts a plain function to the Encoder interface.
type EncoderFunc func(m interface{}) error

func (f EncoderFunc) Encode(m interface{}) error { return f(m) }

// DecoderFunc adapts a plain function to the Decoder interface.
type DecoderFunc func(m interface{}) error

func (f DecoderFunc) Decode(m interface{}) error { return f(m) }

// Codec bundles a content-type name with encoder/decoder constructors.
// Registered codecs are looked up by Name ("json", "protobuf").
type Codec struct {
	Name        string
	Type        string // wire Content-Type, e.g. "application/json"
	NewEncoder  func(w io.Writer) Encoder
	NewDecoder  func(r io.Reader) Decoder
}

var registry = map[string]Codec{}

// Register adds a codec under its Name. Called from each codec
// sub-package's init().
func Register(c Codec) {
	registry[c.Name] = c
}

// CodecFor looks up a previously-registered codec by name ("json" or
// "protobuf"). It returns an error naming the unknown format rather than
// panicking, since the format string ultimately comes from user-supplied
// configuration.
func CodecFor(name string) (Codec, error) {
	c, ok := registry[name]
	if !ok {
		return Codec{}, fmt.Errorf("encoding: unknown data format %q", name)
	}
	return c, nil
}
