package application

import (
	"sync"

	"vocalcart/internal/domain"
)

// Preferences persists the selected language. Load returns "" when nothing
// was saved yet.
type Preferences interface {
	Load() (domain.Language, error)
	Save(lang domain.Language) error
}

type MemoryPreferences struct {
	mu   sync.Mutex
	lang domain.Language
}

func (p *MemoryPreferences) Load() (domain.Language, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lang, nil
}

func (p *MemoryPreferences) Save(lang domain.Language) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lang = lang
	return nil
}
