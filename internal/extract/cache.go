package extract

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/golang/groupcache/lru"

	"github.com/ja-he/wardmap/internal/model"
)

type cached struct {
	text string
	m    *model.Map
}

// Parser parses texts and remembers the results of the most recent ones,
// keyed by a hash of the text. A changed text is always parsed anew, so a
// result can never be stale. Returned maps are shared and must be treated as
// read-only.
type Parser struct {
	mtx     sync.Mutex
	options Options
	cache   *lru.Cache

	hits, misses int
}

// NewParser returns a parser remembering up to size results.
func NewParser(options Options, size int) *Parser {
	if size < 1 {
		size = 1
	}
	return &Parser{options: options, cache: lru.New(size)}
}

// Parse returns the parse result for the text.
func (p *Parser) Parse(text string) *model.Map {
	key := xxhash.Sum64String(text)

	p.mtx.Lock()
	if v, ok := p.cache.Get(key); ok {
		if c := v.(cached); c.text == text {
			p.hits++
			p.mtx.Unlock()
			return c.m
		}
	}
	p.misses++
	p.mtx.Unlock()

	m := ParseWith(p.options, text)

	p.mtx.Lock()
	p.cache.Add(key, cached{text: text, m: m})
	p.mtx.Unlock()
	return m
}

// Stats returns the number of cache hits and misses so far.
func (p *Parser) Stats() (hits, misses int) {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.hits, p.misses
}
