package pricing

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:embed strengths.json
var defaultStrengths []byte

// DefaultFallback is used when a product has no strength entry
const DefaultFallback = "N/A"

// StrengthConfig is the JSON layout of the strength table
type StrengthConfig struct {
	Fallback string                       `json:"fallback"`
	Variants map[string]map[string]string `json:"variants"` // name -> price ("59.95") -> label
	Labels   map[string]string            `json:"labels"`   // name -> label
}

// StrengthTable resolves the strength label sent to fulfillment for a cart line
type StrengthTable struct {
	config *StrengthConfig
}

// DefaultStrengthTable returns the table compiled into the binary
func DefaultStrengthTable() *StrengthTable {
	table, err := parseStrengthTable(defaultStrengths)
	if err != nil {
		// the embedded file is part of the build
		panic(fmt.Sprintf("invalid embedded strength table: %v", err))
	}
	return table
}

// LoadStrengthTable reads a strength table from configPath.
// An empty path returns the embedded default.
func LoadStrengthTable(configPath string) (*StrengthTable, error) {
	if configPath == "" {
		return DefaultStrengthTable(), nil
	}

	// Resolve config path
	if !filepath.IsAbs(configPath) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		configPath = filepath.Join(wd, configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read strength table: %w", err)
	}

	table, err := parseStrengthTable(data)
	if err != nil {
		return nil, err
	}

	zap.S().Infof("✅ StrengthTable: Successfully loaded strength table from %s", configPath)
	return table, nil
}

func parseStrengthTable(data []byte) (*StrengthTable, error) {
	var config StrengthConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse strength table: %w", err)
	}

	if err := validateStrengthConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid strength table: %w", err)
	}

	return &StrengthTable{config: &config}, nil
}

func validateStrengthConfig(config *StrengthConfig) error {
	if config.Fallback == "" {
		config.Fallback = DefaultFallback
	}
	if len(config.Variants) == 0 && len(config.Labels) == 0 {
		return fmt.Errorf("variants or labels are required")
	}
	for name, prices := range config.Variants {
		for price := range prices {
			if _, err := decimal.NewFromString(price); err != nil {
				return fmt.Errorf("variant %q has invalid price key %q", name, price)
			}
		}
	}
	return nil
}

// Resolve returns the label for a product name at a unit price.
// Lookup order: variant entry for (name, price), single label for name, fallback.
func (t *StrengthTable) Resolve(name string, price decimal.Decimal) string {
	name = strings.TrimSpace(name)

	if prices, ok := t.config.Variants[name]; ok {
		if label, ok := prices[price.StringFixed(2)]; ok {
			return label
		}
	}
	if label, ok := t.config.Labels[name]; ok {
		return label
	}
	return t.config.Fallback
}
