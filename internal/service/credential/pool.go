package credential

import (
	"strings"

	apperrors "github.com/ytscout/ytscout/internal/errors"
	"github.com/ytscout/ytscout/internal/model"
)

// Pool holds the ordered set of API keys, the current-selection pointer and
// the per-key validity cache. It is plain in-memory state: persistence is the
// repository's job and all mutation happens on the sequential pipeline, so no
// locking is needed.
type Pool struct {
	keys     []string
	current  int
	validity map[string]model.ValidityResult
}

// NewPool creates a pool seeded with the given keys (duplicates dropped,
// order preserved).
func NewPool(keys []string) *Pool {
	p := &Pool{
		validity: make(map[string]model.ValidityResult),
	}
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" || p.contains(key) {
			continue
		}
		p.keys = append(p.keys, key)
	}
	return p
}

// Add parses raw text into keys (one per line, trimmed, empties dropped,
// duplicates against existing entries ignored) and appends the genuinely new
// ones. Returns the number of keys added.
func (p *Pool) Add(raw string) int {
	added := 0
	for _, line := range strings.Split(raw, "\n") {
		key := strings.TrimSpace(line)
		if key == "" || p.contains(key) {
			continue
		}
		p.keys = append(p.keys, key)
		added++
	}
	return added
}

// Remove deletes the key at index and adjusts the current pointer so it keeps
// referring to the same key where possible, resetting to 0 when it would fall
// out of bounds.
func (p *Pool) Remove(index int) error {
	if index < 0 || index >= len(p.keys) {
		return apperrors.New(apperrors.CodeInvalidArg, "key index out of range")
	}

	removed := p.keys[index]
	p.keys = append(p.keys[:index], p.keys[index+1:]...)
	delete(p.validity, removed)

	if p.current >= index && p.current > 0 {
		p.current--
	} else if p.current >= len(p.keys) {
		p.current = 0
	}
	return nil
}

// Clear removes every key and resets the pointer and validity cache
func (p *Pool) Clear() {
	p.keys = nil
	p.current = 0
	p.validity = make(map[string]model.ValidityResult)
}

// Current returns the selected key, or false when the pool is empty
func (p *Pool) Current() (string, bool) {
	if len(p.keys) == 0 {
		return "", false
	}
	return p.keys[p.current], true
}

// CurrentIndex returns the current-selection pointer
func (p *Pool) CurrentIndex() int {
	return p.current
}

// Rotate advances the pointer to the next key, wrapping around. It is a no-op
// returning false when the pool holds one key or fewer.
func (p *Pool) Rotate() bool {
	if len(p.keys) <= 1 {
		return false
	}
	p.current = (p.current + 1) % len(p.keys)
	return true
}

// Len returns the number of keys in the pool
func (p *Pool) Len() int {
	return len(p.keys)
}

// Keys returns a copy of the ordered key list
func (p *Pool) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// SetValidity caches the probe result for a key
func (p *Pool) SetValidity(key string, result model.ValidityResult) {
	p.validity[key] = result
}

// Validity returns the cached probe result for a key, if any
func (p *Pool) Validity(key string) (model.ValidityResult, bool) {
	result, ok := p.validity[key]
	return result, ok
}

func (p *Pool) contains(key string) bool {
	for _, existing := range p.keys {
		if existing == key {
			return true
		}
	}
	return false
}
