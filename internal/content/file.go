// Package content loads, validates and watches board content files.
package content

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tinytelemetry/pokerclock/internal/model"
	"github.com/tinytelemetry/pokerclock/internal/validate"
)

// ErrInvalidKey is returned for keys that cannot name a grid area.
var ErrInvalidKey = errors.New("invalid content key")

type fileDoc struct {
	Layout  []string   `yaml:"layout"`
	Entries []entryDoc `yaml:"entries" validate:"required,min=1,unique=Key,dive"`
}

type entryDoc struct {
	Key     string      `yaml:"key" validate:"required,ne=."`
	Label   string      `yaml:"label"`
	Text    string      `yaml:"text"`
	Kind    string      `yaml:"kind" validate:"omitempty,oneof=stat title ticker payouts"`
	Ticker  *tickerDoc  `yaml:"ticker" validate:"required_if=Kind ticker"`
	Payouts []payoutDoc `yaml:"payouts" validate:"omitempty,dive"`
}

// tickerDoc anchors either at an absolute instant or at an offset from the
// moment the source was opened.
type tickerDoc struct {
	Mode   string         `yaml:"mode" validate:"required,oneof=clock countdown elapsed"`
	Anchor *time.Time     `yaml:"anchor"`
	Offset *time.Duration `yaml:"offset"`
}

type payoutDoc struct {
	Spot       int     `yaml:"spot" validate:"min=1"`
	Percentage float64 `yaml:"percentage" validate:"gte=0,lte=100"`
}

// Parse decodes and validates a content document. Relative ticker offsets
// resolve against base.
func Parse(data []byte, base time.Time) (model.Content, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return model.Content{}, fmt.Errorf("decode content: %w", err)
	}
	if err := validate.Struct(doc); err != nil {
		return model.Content{}, err
	}

	c := model.Content{
		Entries: make([]model.StatEntry, 0, len(doc.Entries)),
		Layout:  model.Layout{Areas: doc.Layout},
	}
	for _, e := range doc.Entries {
		if strings.ContainsAny(e.Key, " \t\r\n") {
			return model.Content{}, fmt.Errorf("%w: %q contains whitespace", ErrInvalidKey, e.Key)
		}
		entry := model.StatEntry{
			Key:   e.Key,
			Label: e.Label,
			Text:  e.Text,
			Kind:  model.Kind(e.Kind),
		}
		if e.Ticker != nil {
			spec := model.TickerSpec{Mode: model.TickerMode(e.Ticker.Mode)}
			switch {
			case e.Ticker.Anchor != nil:
				spec.Anchor = *e.Ticker.Anchor
			case e.Ticker.Offset != nil:
				spec.Anchor = base.Add(*e.Ticker.Offset)
			}
			entry.Ticker = &spec
		}
		for _, p := range e.Payouts {
			entry.Payouts = append(entry.Payouts, model.PayoutEntry{Spot: p.Spot, Percentage: p.Percentage})
		}
		c.Entries = append(c.Entries, entry)
	}
	return c, nil
}

// LoadFile reads and parses the content file at path.
func LoadFile(path string, base time.Time) (model.Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Content{}, fmt.Errorf("read content file: %w", err)
	}
	c, err := Parse(data, base)
	if err != nil {
		return model.Content{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
