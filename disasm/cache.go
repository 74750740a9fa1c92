package disasm

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// CacheStatistics holds render cache counters.
type CacheStatistics struct {
	Lookups   uint64
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Cache is a set-associative store of rendered instruction words with LRU
// replacement inside each set.
//
// The instruction word itself is the tag. The Akita directory is built with
// one-byte blocks, so each block holds exactly one word.
type Cache struct {
	config CacheConfig

	// Akita cache directory for tag/LRU management
	directory *akitacache.DirectoryImpl

	// Rendered results, indexed by (setID * associativity + wayID)
	results []Result

	stats CacheStatistics
}

// NewCache creates a render cache with the given geometry.
func NewCache(config CacheConfig) *Cache {
	return &Cache{
		config: config,
		directory: akitacache.NewDirectory(
			config.Sets,
			config.Associativity,
			1,
			akitacache.NewLRUVictimFinder(),
		),
		results: make([]Result, config.Capacity()),
	}
}

// Config returns the cache configuration.
func (c *Cache) Config() CacheConfig {
	return c.config
}

// Stats returns cache statistics.
func (c *Cache) Stats() CacheStatistics {
	return c.stats
}

func (c *Cache) blockIndex(block *akitacache.Block) int {
	return block.SetID*c.config.Associativity + block.WayID
}

// Get returns the cached rendering of word.
func (c *Cache) Get(word uint64) (Result, bool) {
	c.stats.Lookups++

	block := c.directory.Lookup(0, word)
	if block == nil || !block.IsValid {
		c.stats.Misses++
		return Result{}, false
	}

	c.stats.Hits++
	c.directory.Visit(block)

	return c.results[c.blockIndex(block)], true
}

// Put stores the rendering of word, evicting the least recently used entry
// of its set when the set is full.
func (c *Cache) Put(word uint64, result Result) {
	block := c.directory.Lookup(0, word)
	if block == nil || !block.IsValid {
		block = c.directory.FindVictim(word)
		if block == nil {
			return
		}
		if block.IsValid {
			c.stats.Evictions++
		}
		block.Tag = word
		block.IsValid = true
	}

	c.results[c.blockIndex(block)] = result
	c.directory.Visit(block)
}

// Reset drops every entry and clears the statistics.
func (c *Cache) Reset() {
	c.directory.Reset()
	for i := range c.results {
		c.results[i] = Result{}
	}
	c.stats = CacheStatistics{}
}
