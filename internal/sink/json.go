package sink

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// WriteJSON writes v to path as indented JSON. Districts keep their nested
// contact lists, unlike the flattened CSV projection.
func WriteJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "sink: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrapf(err, "sink: encode json to %s", path)
	}

	zap.L().Info("sink: json written", zap.String("path", path))
	return nil
}
