package application_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"

	"vocalcart/internal/application"
	"vocalcart/internal/domain"
)

type manualTask struct {
	at time.Duration
	fn func()
}

// manualScheduler fires scheduled functions only when Advance moves its clock.
type manualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []manualTask
}

func (s *manualScheduler) After(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, manualTask{at: s.now + d, fn: fn})
}

func (s *manualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d

	for {
		next := -1
		for i, task := range s.tasks {
			if task.at <= target && (next < 0 || task.at < s.tasks[next].at) {
				next = i
			}
		}
		if next < 0 {
			break
		}

		task := s.tasks[next]
		s.tasks = slices.Delete(s.tasks, next, next+1)
		s.now = task.at

		s.mu.Unlock()
		task.fn()
		s.mu.Lock()
	}

	s.now = target
	s.mu.Unlock()
}

type mockInterpreter struct {
	mu sync.Mutex

	intents    map[string][]domain.Intent
	err        error
	utterances []string

	suggestions  []string
	suggestErr   error
	suggestCalls [][]domain.ShoppingItem
}

func (m *mockInterpreter) Interpret(_ context.Context, utterance string, _ []domain.ShoppingItem, _ domain.Language) ([]domain.Intent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.utterances = append(m.utterances, utterance)
	if m.err != nil {
		return nil, m.err
	}
	return m.intents[utterance], nil
}

func (m *mockInterpreter) Suggest(_ context.Context, items []domain.ShoppingItem, _ domain.Language) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.suggestCalls = append(m.suggestCalls, items)
	return m.suggestions, m.suggestErr
}

func (m *mockInterpreter) Utterances() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.utterances)
}

func (m *mockInterpreter) SuggestCalls() [][]domain.ShoppingItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.suggestCalls)
}

type mockImages struct {
	fail bool
}

func (m *mockImages) GenerateImage(_ context.Context, _ string) (*domain.Image, error) {
	if m.fail {
		return nil, errors.New("quota exceeded")
	}
	return &domain.Image{MIMEType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}, nil
}

type mockSpeech struct {
	mu    sync.Mutex
	texts []string
}

func (m *mockSpeech) SynthesizeSpeech(_ context.Context, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts = append(m.texts, text)
	return "AAA=", nil
}

func (m *mockSpeech) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.texts)
}

type mockPlayer struct {
	mu     sync.Mutex
	played int
	err    error
}

func (m *mockPlayer) Play(_ context.Context, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.played++
	return m.err
}

func (m *mockPlayer) Name() string { return "mock" }

type harness struct {
	engine      *application.Engine
	store       *application.Store
	scheduler   *manualScheduler
	interpreter *mockInterpreter
	images      *mockImages
	speech      *mockSpeech
	player      *mockPlayer
	prefs       *application.MemoryPreferences
}

func newHarness(t *testing.T, interpreter *mockInterpreter) *harness {
	t.Helper()

	h := &harness{
		scheduler:   &manualScheduler{},
		interpreter: interpreter,
		images:      &mockImages{},
		speech:      &mockSpeech{},
		player:      &mockPlayer{},
		prefs:       &application.MemoryPreferences{},
	}
	h.store = application.NewStore(h.prefs, domain.LanguageEnglish)
	h.engine = application.NewEngine(
		h.store,
		interpreter,
		h.images,
		&application.DataURIPublisher{},
		h.speech,
		h.player,
		h.scheduler,
		application.DefaultTiming(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return h
}

// settle fires every pending timer and waits for background work.
func (h *harness) settle() {
	h.scheduler.Advance(time.Minute)
	h.engine.Wait()
}

func (h *harness) names() []string {
	var names []string
	for _, it := range h.store.Items() {
		names = append(names, it.Name)
	}
	return names
}

func seedItem(id, name, quantity string) domain.ShoppingItem {
	item := domain.NewShoppingItem(id, domain.NewItem{Name: name, Quantity: quantity})
	item.GeneratingImage = false
	return item
}

// blockingImages holds every generation until release is closed.
type blockingImages struct {
	release chan struct{}
}

func (b *blockingImages) GenerateImage(ctx context.Context, _ string) (*domain.Image, error) {
	select {
	case <-b.release:
		return &domain.Image{MIMEType: "image/png", Data: []byte("png")}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type recordingPublisher struct {
	mu        sync.Mutex
	published []string
	discarded []string
}

func (p *recordingPublisher) Publish(_ context.Context, itemID string, _ *domain.Image) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, itemID)
	return "https://images.test/items/" + itemID, nil
}

func (p *recordingPublisher) Discard(_ context.Context, itemIDs ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.discarded = append(p.discarded, itemIDs...)
	return nil
}

func (p *recordingPublisher) Discarded() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.discarded)
}
