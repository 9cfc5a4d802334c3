// Package json registers the "json" codec: plain encoding/json over
// RecordIO-framed messages, Content-Type application/json.
package json

import (
	"encoding/json"
	"io"

	"github.com/mesos/mesos-go/api/v1/lib/encoding"
	"github.com/mesos/mesos-go/api/v1/lib/encoding/recordio"
)

const ContentType = "application/json"

func init() {
	encoding.Register(encoding.Codec{
		Name:       "json",
		Type:       ContentType,
		NewEncoder: newEncoder,
		NewDecoder: newDecoder,
	})
}

func newEncoder(w io.Writer) encoding.Encoder {
	fw := recordio.NewWriter(w)
	return encoding.EncoderFunc(func(m interface{}) error {
		b, err := json.Marshal(m)
		if err != nil {
			return err
		}
		return fw.WriteFrame(b)
	})
}

func newDecoder(r io.Reader) encoding.Decoder {
	fr := recordio.NewReader(r)
	return encoding.DecoderFunc(func(m interface{}) error {
		frame, err := fr.ReadFrame()
		if err != nil {
			return err
		}
		return json.Unmarshal(frame, m)
	})
}
