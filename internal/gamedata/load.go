package gamedata

import (
	"errors"
	"io/fs"
	"log"
	"os"

	gameerr "github.com/KirkDiggler/horde-survivor/internal/errors"
	"gopkg.in/yaml.v3"
)

// Load reads path over the built-in defaults. Keys missing from the file
// keep their default; lists such as abilities and stages replace the
// default list whole. An empty path or a missing file yields the defaults.
func Load(path string) (*Document, error) {
	doc := Default()
	if path == "" {
		return doc, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("GameData: %s not found, using built-in data", path)
		return doc, nil
	}
	if err != nil {
		return nil, gameerr.Wrapf(err, "failed to read game data %s", path)
	}

	if err := Parse(data, doc); err != nil {
		return nil, gameerr.Wrapf(err, "game data %s", path)
	}
	return doc, nil
}

// Parse decodes data into doc and validates the result
func Parse(data []byte, doc *Document) error {
	if err := yaml.Unmarshal(data, doc); err != nil {
		return gameerr.WrapWithCode(err, gameerr.CodeValidation, "invalid yaml")
	}
	return doc.Validate()
}

// Marshal renders doc as YAML
func Marshal(doc *Document) ([]byte, error) {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, gameerr.Wrap(err, "failed to marshal game data")
	}
	return out, nil
}
