package world

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/evanschultz/float-worldbook/pkg/models"
)

// ErrUnsupportedFormat is returned for world files that are neither YAML nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported world file format")

// LoadFile reads a world from a .yaml, .yml or .json file.
func LoadFile(path string) (models.World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.World{}, fmt.Errorf("read world file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(data)
	case ".json":
		return DecodeJSON(data)
	default:
		return models.World{}, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// DecodeYAML parses a YAML world document.
func DecodeYAML(data []byte) (models.World, error) {
	var w models.World
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		if errors.Is(err, io.EOF) {
			return w, nil
		}
		return models.World{}, fmt.Errorf("decode yaml world: %w", err)
	}
	return w, nil
}

// DecodeJSON parses a JSON world document.
func DecodeJSON(data []byte) (models.World, error) {
	var w models.World
	if err := json.Unmarshal(data, &w); err != nil {
		return models.World{}, fmt.Errorf("decode json world: %w", err)
	}
	return w, nil
}
