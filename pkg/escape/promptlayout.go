package escape

import (
	"container/list"
	"strings"
	"sync"
)

const ellipsis = "…"

// defaultCacheSize bounds the prompt-layout LRU cache. fish keeps this
// small since only a handful of distinct (prompt, width) pairs are live
// at once: the left prompt, the right prompt, and maybe one or two
// transient search/pager prompts.
const defaultCacheSize = 12

// Layout is the result of calc_prompt_layout: a prompt truncated to fit
// within a maximum line width, plus the line-break offsets (byte offsets
// into Text), the widest line, and the width of the last line.
type Layout struct {
	Text       string
	LineBreaks []int
	MaxWidth   int
	LastWidth  int
}

// CalcPromptLayout splits prompt at run terminators, truncates any run
// wider than maxWidth with a leading ellipsis, and reports the resulting
// line-break offsets and widths. maxWidth < 2 disables truncation
// entirely (there is no room for an ellipsis plus any content).
func CalcPromptLayout(caps *Capabilities, prompt string, maxWidth int) Layout {
	runs := SplitRuns(prompt)

	var b strings.Builder
	var breaks []int
	maxW := 0
	lastW := 0

	for i, run := range runs {
		truncated, w := truncateRun(caps, run, maxWidth)
		if i > 0 {
			breaks = append(breaks, b.Len())
			b.WriteByte('\n')
		}
		b.WriteString(truncated)
		if w > maxW {
			maxW = w
		}
		lastW = w
	}

	return Layout{Text: b.String(), LineBreaks: breaks, MaxWidth: maxW, LastWidth: lastW}
}

// truncateRun truncates a single run to fit maxWidth, inserting a
// leading ellipsis and deleting characters after it until the candidate
// fits. Each candidate is re-measured from scratch (rather than
// incrementally) so that an internal tab is re-measured against the
// truncated prefix's actual width, not the original run's.
func truncateRun(caps *Capabilities, run string, maxWidth int) (string, int) {
	w := MeasureRun(caps, run)
	if w <= maxWidth || maxWidth < 2 {
		return run, w
	}

	rs := []rune(run)
	for k := len(rs); k >= 0; k-- {
		candidate := ellipsis + string(rs[len(rs)-k:])
		cw := MeasureRun(caps, candidate)
		if cw <= maxWidth {
			return candidate, cw
		}
	}
	return ellipsis, MeasureRun(caps, ellipsis)
}

// cacheKey identifies one memoized layout computation.
type cacheKey struct {
	prompt   string
	maxWidth int
}

// LayoutCache memoizes CalcPromptLayout results, keyed on (prompt,
// maxWidth), bounded to a small LRU so that cycling through a handful of
// terminal widths (as happens across resizes) doesn't evict entries that
// are about to be reused.
type LayoutCache struct {
	mu    sync.Mutex
	caps  *Capabilities
	limit int
	ll    *list.List
	index map[cacheKey]*list.Element
}

type cacheEntry struct {
	key    cacheKey
	layout Layout
}

// NewLayoutCache creates a layout cache that recognizes escapes via caps
// (may be nil) and holds at most limit entries. limit <= 0 uses the
// package default of 12.
func NewLayoutCache(caps *Capabilities, limit int) *LayoutCache {
	if limit <= 0 {
		limit = defaultCacheSize
	}
	return &LayoutCache{
		caps:  caps,
		limit: limit,
		ll:    list.New(),
		index: make(map[cacheKey]*list.Element),
	}
}

// Get returns the cached or freshly computed layout for (prompt,
// maxWidth), promoting it to most-recently-used.
func (c *LayoutCache) Get(prompt string, maxWidth int) Layout {
	key := cacheKey{prompt: prompt, maxWidth: maxWidth}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		c.ll.MoveToFront(elem)
		return elem.Value.(*cacheEntry).layout
	}

	layout := CalcPromptLayout(c.caps, prompt, maxWidth)
	elem := c.ll.PushFront(&cacheEntry{key: key, layout: layout})
	c.index[key] = elem

	if c.ll.Len() > c.limit {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.index, oldest.Value.(*cacheEntry).key)
		}
	}

	return layout
}

// Len reports the number of entries currently cached.
func (c *LayoutCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
