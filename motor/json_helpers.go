package motor

import (
	"encoding/json"
	"fmt"
	"io"
)

type jsonHelper struct{}

var helper = &jsonHelper{}

// StdlibDecoder wraps encoding/json.Decoder to implement RecordDecoder
type StdlibDecoder struct {
	decoder *json.Decoder
}

func (s *StdlibDecoder) Token() (json.Token, error) {
	return s.decoder.Token()
}

func (s *StdlibDecoder) Decode(v interface{}) error {
	return s.decoder.Decode(v)
}

func (s *StdlibDecoder) More() bool {
	return s.decoder.More()
}

func (s *StdlibDecoder) InputOffset() int64 {
	return s.decoder.InputOffset()
}

func (h *jsonHelper) skipValue(decoder RecordDecoder) error {
	token, err := decoder.Token()
	if err != nil {
		return err
	}

	switch token {
	case json.Delim('{'):
		return h.skipObject(decoder)
	case json.Delim('['):
		return h.skipArray(decoder)
	}

	return nil
}

func (h *jsonHelper) skipObject(decoder RecordDecoder) error {
	for decoder.More() {
		if _, err := decoder.Token(); err != nil {
			return err
		}
		if err := h.skipValue(decoder); err != nil {
			return err
		}
	}
	_, err := decoder.Token()
	return err
}

func (h *jsonHelper) skipArray(decoder RecordDecoder) error {
	for decoder.More() {
		if err := h.skipValue(decoder); err != nil {
			return err
		}
	}
	_, err := decoder.Token()
	return err
}

// expectDelim consumes the next token and checks it is the given delimiter
func (h *jsonHelper) expectDelim(decoder RecordDecoder, delim json.Delim) error {
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if token != delim {
		return fmt.Errorf("expected %v delimiter, got %v", delim, token)
	}
	return nil
}

func newRecordDecoder(r io.Reader) RecordDecoder {
	return &StdlibDecoder{decoder: json.NewDecoder(r)}
}
