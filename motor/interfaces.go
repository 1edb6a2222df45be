package motor

import (
	"context"
	"encoding/json"

	"github.com/pb33f/reqgrid/motor/model"
)

// RecordSource supplies request records. The embedded fixture is one source;
// JSON and HAR files are others. Any future data source implements this.
type RecordSource interface {
	// Name identifies the source in titles and logs
	Name() string

	// Load reads every record, validating each one
	Load(ctx context.Context) ([]model.Record, error)
}

// RecordDecoder provides JSON token decoding for the streaming loaders
type RecordDecoder interface {
	// Token returns the next JSON token in the input stream
	Token() (json.Token, error)

	// Decode decodes the next JSON value into v
	Decode(v interface{}) error

	// More reports whether there is another element in the current array or object
	More() bool

	// InputOffset returns the input stream byte offset of the current decoder position
	InputOffset() int64
}
