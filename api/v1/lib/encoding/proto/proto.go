// Package proto registers the "protobuf" codec: gogo/protobuf's reflective
// Marshal/Unmarshal (struct-tag driven, no protoc-generated code required)
// over RecordIO-framed messages, Content-Type application/x-protobuf.
package proto

import (
	"fmt"
	"io"

	gogoproto "github.com/gogo/protobuf/proto"

	"github.com/mesos/mesos-go/api/v1/lib/encoding"
	"github.com/mesos/mesos-go/api/v1/lib/encoding/recordio"
)

const ContentType = "application/x-protobuf"

func init() {
	encoding.Register(encoding.Codec{
		Name:       "protobuf",
		Type:       ContentType,
		NewEncoder: newEncoder,
		NewDecoder: newDecoder,
	})
}

func newEncoder(w io.Writer) encoding.Encoder {
	fw := recordio.NewWriter(w)
	return encoding.EncoderFunc(func(m interface{}) error {
		pm, ok := m.(gogoproto.Message)
		if !ok {
			return fmt.Errorf("proto: %T does not implement proto.Message", m)
		}
		b, err := gogoproto.Marshal(pm)
		if err != nil {
			return err
		}
		return fw.WriteFrame(b)
	})
}

func newDecoder(r io.Reader) encoding.Decoder {
	fr := recordio.NewReader(r)
	return encoding.DecoderFunc(func(m interface{}) error {
		pm, ok := m.(gogoproto.Message)
		if !ok {
			return fmt.Errorf("proto: %T does not implement proto.Message", m)
		}
		frame, err := fr.ReadFrame()
		if err != nil {
			return err
		}
		return gogoproto.Unmarshal(frame, pm)
	})
}
