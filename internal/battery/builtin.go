package battery

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sync"
)

//go:embed assets/battery.schema.json
var batterySchemaJSON []byte

//go:embed assets/builtin.yaml
var builtinYAML []byte

var (
	builtinOnce sync.Once
	builtinBat  *Battery
	builtinErr  error
)

// Builtin returns the embedded default battery. It goes through the same
// load path as external files, so the shipped tables are held to the
// same schema and version rules.
func Builtin() (*Battery, error) {
	builtinOnce.Do(func() {
		builtinBat, builtinErr = Parse(builtinYAML)
		if builtinErr != nil {
			builtinErr = fmt.Errorf("embedded battery: %w", builtinErr)
		}
	})
	return builtinBat, builtinErr
}

// MustBuiltin returns the embedded battery or panics. Intended for tests
// and package initialization where a broken embed is unrecoverable.
func MustBuiltin() *Battery {
	b, err := Builtin()
	if err != nil {
		panic(err)
	}
	return b
}

func bytesReader(b []byte) io.Reader {
	return bytes.NewReader(b)
}
