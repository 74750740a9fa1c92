package disasm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/khaihanhtang/cairo-instruction-decoder/disasm"
)

var _ = Describe("Cache", func() {
	var c *disasm.Cache

	BeforeEach(func() {
		// Small cache for testing: 4 sets, 2 ways
		c = disasm.NewCache(disasm.CacheConfig{
			Sets:          4,
			Associativity: 2,
		})
	})

	Describe("Lookups", func() {
		It("should miss on a cold cache", func() {
			_, ok := c.Get(0x48307ffe7fff8000)
			Expect(ok).To(BeFalse())

			stats := c.Stats()
			Expect(stats.Lookups).To(Equal(uint64(1)))
			Expect(stats.Misses).To(Equal(uint64(1)))
			Expect(stats.Hits).To(Equal(uint64(0)))
		})

		It("should hit after a put", func() {
			c.Put(0x208b7fff7fff7ffe, disasm.Rendered("\nret;"))

			result, ok := c.Get(0x208b7fff7fff7ffe)
			Expect(ok).To(BeTrue())
			Expect(result.String()).To(Equal("\nret;"))
			Expect(c.Stats().Hits).To(Equal(uint64(1)))
		})

		It("should cache undefined results", func() {
			c.Put(0xFFFFFFFFFFFFFFFF, disasm.UndefinedResult())

			result, ok := c.Get(0xFFFFFFFFFFFFFFFF)
			Expect(ok).To(BeTrue())
			Expect(result.IsUndefined()).To(BeTrue())
		})

		It("should replace the entry of a word stored twice", func() {
			c.Put(0x10, disasm.Rendered("a"))
			c.Put(0x10, disasm.Rendered("b"))

			result, ok := c.Get(0x10)
			Expect(ok).To(BeTrue())
			Expect(result.Text()).To(Equal("b"))
			Expect(c.Stats().Evictions).To(Equal(uint64(0)))
		})
	})

	Describe("Replacement", func() {
		// Words 0x0, 0x4, 0x8 all map to set 0 of a 4-set cache.
		It("should evict the least recently used word of a full set", func() {
			c.Put(0x0, disasm.Rendered("zero"))
			c.Put(0x4, disasm.Rendered("four"))

			// Touch 0x0 so 0x4 becomes the LRU entry.
			_, ok := c.Get(0x0)
			Expect(ok).To(BeTrue())

			c.Put(0x8, disasm.Rendered("eight"))
			Expect(c.Stats().Evictions).To(Equal(uint64(1)))

			_, ok = c.Get(0x4)
			Expect(ok).To(BeFalse())

			result, ok := c.Get(0x0)
			Expect(ok).To(BeTrue())
			Expect(result.Text()).To(Equal("zero"))

			result, ok = c.Get(0x8)
			Expect(ok).To(BeTrue())
			Expect(result.Text()).To(Equal("eight"))
		})

		It("should not evict across sets", func() {
			for word := uint64(0); word < 8; word++ {
				c.Put(word, disasm.Rendered("x"))
			}

			Expect(c.Stats().Evictions).To(Equal(uint64(0)))
			for word := uint64(0); word < 8; word++ {
				_, ok := c.Get(word)
				Expect(ok).To(BeTrue())
			}
		})
	})

	Describe("Reset", func() {
		It("should drop entries and statistics", func() {
			c.Put(0x1, disasm.Rendered("one"))
			c.Get(0x1)

			c.Reset()

			Expect(c.Stats()).To(Equal(disasm.CacheStatistics{}))
			_, ok := c.Get(0x1)
			Expect(ok).To(BeFalse())
		})
	})

	It("should report its configuration", func() {
		Expect(c.Config().Sets).To(Equal(4))
		Expect(c.Config().Associativity).To(Equal(2))
	})
})
