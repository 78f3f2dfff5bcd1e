package patterns

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sheikhrachel/termlife/model"
)

// ErrInvalidPatternFile is wrapped by LoadFile and Parse for malformed input
var ErrInvalidPatternFile = errors.New("invalid pattern file")

// patternFile is the on-disk layout:
//
//	name: my-gun
//	cells:
//	  - [5, 9]
//	  - [6, 9]
type patternFile struct {
	Name  string  `yaml:"name"`
	Cells [][]int `yaml:"cells"`
}

// LoadFile reads a YAML pattern from path. The file name (without extension)
// is used when the file does not carry a name.
func LoadFile(path string) (Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pattern{}, errors.Wrapf(err, "[LoadFile] failed to read file: %+v", path)
	}

	p, err := Parse(data)
	if err != nil {
		return Pattern{}, errors.Wrapf(err, "[LoadFile] failed to parse file: %+v", path)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// Parse decodes a YAML pattern document
func Parse(data []byte) (Pattern, error) {
	var f patternFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Pattern{}, errors.Wrap(ErrInvalidPatternFile, err.Error())
	}
	if len(f.Cells) == 0 {
		return Pattern{}, errors.Wrap(ErrInvalidPatternFile, "no cells")
	}

	cells := make([]model.Point, 0, len(f.Cells))
	for i, c := range f.Cells {
		if len(c) != 2 {
			return Pattern{}, errors.Wrapf(ErrInvalidPatternFile, "cell %d: want [x, y], got %v", i, c)
		}
		if c[0] < 0 || c[1] < 0 {
			return Pattern{}, errors.Wrapf(ErrInvalidPatternFile, "cell %d: negative coordinate %v", i, c)
		}
		cells = append(cells, model.Point{X: c[0], Y: c[1]})
	}
	return Pattern{Name: f.Name, Cells: cells}, nil
}
