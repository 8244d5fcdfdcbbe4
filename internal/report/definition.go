package report

import (
	"embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/reportdiff/internal/query"
)

var (
	// ErrInvalidDefinition is returned for report definitions that fail
	// validation.
	ErrInvalidDefinition = errors.New("report: invalid definition")
)

//go:embed definitions/*.yaml
var builtin embed.FS

// Mode is how a row's selections are aligned.
type Mode string

const (
	// ModeDiscrete aligns every path separately after keyword filtering and
	// de-duplication.
	ModeDiscrete Mode = "discrete"
	// ModeContinuous aligns the first selection of the first path as one text.
	ModeContinuous Mode = "continuous"
)

// Row is one line of the comparison table.
type Row struct {
	Category string   `yaml:"category"`
	Item     string   `yaml:"item"`
	Mode     Mode     `yaml:"mode"`
	Paths    []string `yaml:"paths"`
	Keywords []string `yaml:"keywords"`
	// Header rows show their first selection side by side without alignment.
	Header bool `yaml:"header"`

	parsed []query.Path
}

// Definition describes which parts of two reports are compared.
type Definition struct {
	Name         string  `yaml:"name"`
	KeywordRatio float64 `yaml:"keyword_ratio"`
	Rows         []Row   `yaml:"rows"`
}

// LoadDefinition reads a YAML definition from path.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}
	return ParseDefinition(data)
}

// Builtin returns a definition shipped with the binary, by file name
// without extension (for example "monetary-report").
func Builtin(name string) (*Definition, error) {
	data, err := builtin.ReadFile("definitions/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: no builtin definition %q", ErrInvalidDefinition, name)
	}
	return ParseDefinition(data)
}

// ParseDefinition decodes and validates a YAML definition.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	if err := def.applyDefaults(); err != nil {
		return nil, err
	}
	return &def, nil
}

func (d *Definition) applyDefaults() error {
	if d.KeywordRatio <= 0 {
		d.KeywordRatio = query.DefaultKeywordRatio
	}
	if len(d.Rows) == 0 {
		return fmt.Errorf("%w: no rows", ErrInvalidDefinition)
	}

	for i := range d.Rows {
		row := &d.Rows[i]
		if row.Mode == "" {
			row.Mode = ModeDiscrete
		}
		if row.Mode != ModeDiscrete && row.Mode != ModeContinuous {
			return fmt.Errorf("%w: row %d: unknown mode %q", ErrInvalidDefinition, i+1, row.Mode)
		}
		if len(row.Paths) == 0 {
			return fmt.Errorf("%w: row %d: no paths", ErrInvalidDefinition, i+1)
		}

		row.parsed = row.parsed[:0]
		for _, expr := range row.Paths {
			p, err := query.Parse(expr)
			if err != nil {
				return fmt.Errorf("%w: row %d: %v", ErrInvalidDefinition, i+1, err)
			}
			row.parsed = append(row.parsed, p)
		}
	}
	return nil
}
