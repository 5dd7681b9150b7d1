package application

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"vocalcart/internal/domain"
)

// State is a copy of everything the presentation layer renders.
type State struct {
	Items       []domain.ShoppingItem
	Suggestions []string

	// Message is the last feedback line; empty means the idle prompt.
	Message string
	Error   string
	Loading bool

	Listening          bool
	Transcript         string
	CaptureUnsupported bool

	Language domain.Language
}

// Store owns the application state. Every mutation is keyed by item id or
// name and reads the live list, so delayed completions never act on a stale
// copy.
type Store struct {
	mu    sync.Mutex
	prefs Preferences

	items       []domain.ShoppingItem
	suggestions []string
	message     string
	err         string
	errToken    uint64
	inflight    int
	listening   bool
	transcript  string
	unsupported bool
	lang        domain.Language
}

func NewStore(prefs Preferences, lang domain.Language) *Store {
	if prefs == nil {
		prefs = &MemoryPreferences{}
	}
	return &Store{prefs: prefs, lang: lang}
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		Items:              slices.Clone(s.items),
		Suggestions:        slices.Clone(s.suggestions),
		Message:            s.message,
		Error:              s.err,
		Loading:            s.inflight > 0,
		Listening:          s.listening,
		Transcript:         s.transcript,
		CaptureUnsupported: s.unsupported,
		Language:           s.lang,
	}
}

func (s *Store) Items() []domain.ShoppingItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

func (s *Store) Item(id string) (domain.ShoppingItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return domain.ShoppingItem{}, false
}

func (s *Store) Append(items ...domain.ShoppingItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, items...)
}

// Update applies fn to the item with id. It reports false when the item is
// gone, in which case fn is not called.
func (s *Store) Update(id string, fn func(*domain.ShoppingItem)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	fn(&s.items[i])
	return true
}

func (s *Store) Remove(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = slices.DeleteFunc(s.items, func(it domain.ShoppingItem) bool {
		return slices.Contains(ids, it.ID)
	})
}

// MarkRemoving flags every item matching one of names, skipping items that are
// already being removed. It returns copies of the flagged items and the names
// that matched nothing.
func (s *Store) MarkRemoving(names []string) (flagged []domain.ShoppingItem, missing []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range names {
		found := false
		for i := range s.items {
			it := &s.items[i]
			if it.Removing || !it.SameName(name) {
				continue
			}
			it.Removing = true
			flagged = append(flagged, *it)
			found = true
		}
		if !found {
			missing = append(missing, name)
		}
	}
	return flagged, missing
}

// ApplyModifications sets the quantity of every item matching a change and
// flags it as modified. Items being removed do not match. It returns copies of
// the changed items and the names that matched nothing.
func (s *Store) ApplyModifications(changes []domain.QuantityChange) (changed []domain.ShoppingItem, missing []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, change := range changes {
		found := false
		for i := range s.items {
			it := &s.items[i]
			if it.Removing || !it.SameName(change.Name) {
				continue
			}
			it.Quantity = change.NewQuantity
			it.Modified = true
			changed = append(changed, *it)
			found = true
		}
		if !found {
			missing = append(missing, change.Name)
		}
	}
	return changed, missing
}

// FindFragment returns the first item whose name contains query, ignoring
// case. Items being removed are skipped.
func (s *Store) FindFragment(query string) (domain.ShoppingItem, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return domain.ShoppingItem{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.items {
		if !it.Removing && strings.Contains(strings.ToLower(it.Name), query) {
			return it, true
		}
	}
	return domain.ShoppingItem{}, false
}

func (s *Store) SetSuggestions(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = slices.Clone(names)
}

func (s *Store) DropSuggestion(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.suggestions = slices.DeleteFunc(s.suggestions, func(v string) bool {
		return strings.EqualFold(v, name)
	})
}

func (s *Store) SetMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = msg
}

// ShowError sets the error line and returns a token for ClearError.
func (s *Store) ShowError(msg string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errToken++
	s.err = msg
	return s.errToken
}

// ClearError clears the error only if it is still the one token refers to.
func (s *Store) ClearError(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.errToken == token {
		s.err = ""
	}
}

// BeginCommand drops the previous suggestions and error and enters the
// loading state with status as the message. Loading lasts until every begun
// command has ended.
func (s *Store) BeginCommand(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.suggestions = nil
	s.err = ""
	s.errToken++
	s.inflight++
	s.message = status
}

func (s *Store) EndCommand() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight > 0 {
		s.inflight--
	}
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

func (s *Store) SetListening(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listening = on
	s.transcript = ""
	if on {
		s.err = ""
		s.errToken++
	}
}

// SetTranscript records the interim transcript while listening.
func (s *Store) SetTranscript(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listening {
		s.transcript = text
	}
}

func (s *Store) SetCaptureUnsupported() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unsupported = true
	s.listening = false
}

func (s *Store) CaptureUnsupported() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsupported
}

func (s *Store) Language() domain.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// SetLanguage switches the language, resets the status line to the idle
// prompt and persists the selection.
func (s *Store) SetLanguage(lang domain.Language) error {
	s.mu.Lock()
	s.lang = lang
	s.message = ""
	s.mu.Unlock()

	if err := s.prefs.Save(lang); err != nil {
		return fmt.Errorf("saving language: %w", err)
	}
	return nil
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(it domain.ShoppingItem) bool {
		return it.ID == id
	})
}
