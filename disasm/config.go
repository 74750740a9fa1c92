package disasm

import (
	"encoding/json"
	"fmt"
	"os"
)

// CacheConfig holds the geometry of the render cache.
type CacheConfig struct {
	// Sets is the number of sets. Must be a power of two. Default: 64.
	Sets int `json:"sets"`

	// Associativity is the number of entries per set. Default: 4.
	Associativity int `json:"associativity"`
}

// DefaultCacheConfig returns a CacheConfig holding 256 rendered words.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Sets:          64,
		Associativity: 4,
	}
}

// LoadCacheConfig loads a CacheConfig from a JSON file. Fields missing from
// the file keep their default values.
func LoadCacheConfig(path string) (*CacheConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache config file: %w", err)
	}

	config := DefaultCacheConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse cache config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a CacheConfig to a JSON file.
func (c *CacheConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize cache config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache config file: %w", err)
	}

	return nil
}

// Validate checks the cache geometry.
func (c *CacheConfig) Validate() error {
	if c.Sets <= 0 {
		return fmt.Errorf("sets must be > 0")
	}
	if c.Sets&(c.Sets-1) != 0 {
		return fmt.Errorf("sets must be a power of two")
	}
	if c.Associativity <= 0 {
		return fmt.Errorf("associativity must be > 0")
	}
	return nil
}

// Capacity returns the number of words the cache can hold.
func (c *CacheConfig) Capacity() int {
	return c.Sets * c.Associativity
}

// Clone returns a copy of the CacheConfig.
func (c *CacheConfig) Clone() *CacheConfig {
	return &CacheConfig{
		Sets:          c.Sets,
		Associativity: c.Associativity,
	}
}
