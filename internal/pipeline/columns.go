package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvaldelvira/corredor/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrLastColumn is returned when hiding a column would leave the board with
// no visible stage columns.
var ErrLastColumn = errors.New("at least one stage column must stay visible")

// ColumnPrefs holds the per-device board column visibility preference.
// It is persisted locally and never synced.
type ColumnPrefs struct {
	hidden map[domain.Stage]bool
}

// NewColumnPrefs returns prefs with every stage column visible.
func NewColumnPrefs() *ColumnPrefs {
	return &ColumnPrefs{hidden: make(map[domain.Stage]bool)}
}

// Visible returns the visible stage columns in board order.
func (p *ColumnPrefs) Visible() []domain.Stage {
	var out []domain.Stage
	for _, s := range domain.Stages {
		if !p.hidden[s] {
			out = append(out, s)
		}
	}
	return out
}

// IsVisible reports whether the column for s is shown.
func (p *ColumnPrefs) IsVisible(s domain.Stage) bool {
	return !p.hidden[s]
}

// Hide hides the column for s. Hiding the last visible column is rejected
// with ErrLastColumn and the visible set is left unchanged.
func (p *ColumnPrefs) Hide(s domain.Stage) error {
	if !domain.ValidStage(s) {
		return fmt.Errorf("unknown stage %q", s)
	}
	if p.hidden[s] {
		return nil
	}
	if len(p.Visible()) <= 1 {
		return ErrLastColumn
	}
	p.hidden[s] = true
	return nil
}

// Show makes the column for s visible again.
func (p *ColumnPrefs) Show(s domain.Stage) {
	delete(p.hidden, s)
}

// columnPrefsFile is the on-disk YAML shape.
type columnPrefsFile struct {
	HiddenColumns []string `yaml:"hidden_columns"`
}

// LoadColumnPrefs reads prefs from path. A missing file yields all-visible
// prefs; stages unknown to this build are ignored.
func LoadColumnPrefs(path string) (*ColumnPrefs, error) {
	p := NewColumnPrefs()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return nil, fmt.Errorf("reading column prefs: %w", err)
	}

	var file columnPrefsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing column prefs: %w", err)
	}
	for _, name := range file.HiddenColumns {
		s := domain.Stage(name)
		if domain.ValidStage(s) {
			p.hidden[s] = true
		}
	}
	// Never start with an empty board, whatever the file says.
	if len(p.Visible()) == 0 {
		p.hidden = make(map[domain.Stage]bool)
	}
	return p, nil
}

// Save writes the prefs to path, creating parent directories as needed.
func (p *ColumnPrefs) Save(path string) error {
	var file columnPrefsFile
	for _, s := range domain.Stages {
		if p.hidden[s] {
			file.HiddenColumns = append(file.HiddenColumns, string(s))
		}
	}
	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encoding column prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating prefs directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing column prefs: %w", err)
	}
	return nil
}
