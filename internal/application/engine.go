package application

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"vocalcart/internal/domain"
	"vocalcart/internal/i18n"
)

// Engine applies interpreted voice commands to the Store and sequences the
// visual and spoken feedback around them.
type Engine struct {
	store       *Store
	interpreter IntentInterpreter
	images      ImageGenerator
	publisher   ImagePublisher
	speech      SpeechSynthesizer
	player      AudioPlayer
	scheduler   Scheduler
	timing      Timing
	logger      *slog.Logger

	pending sync.WaitGroup
}

func NewEngine(
	store *Store,
	interpreter IntentInterpreter,
	images ImageGenerator,
	publisher ImagePublisher,
	speech SpeechSynthesizer,
	player AudioPlayer,
	scheduler Scheduler,
	timing Timing,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		store:       store,
		interpreter: interpreter,
		images:      images,
		publisher:   publisher,
		speech:      speech,
		player:      player,
		scheduler:   scheduler,
		timing:      timing,
		logger:      logger,
	}
}

func (e *Engine) Store() *Store {
	return e.store
}

// Wait blocks until scheduled and background work has finished.
func (e *Engine) Wait() {
	e.pending.Wait()
}

// Reconcile interprets utterance against the live list and applies the
// result. Blank utterances are ignored.
func (e *Engine) Reconcile(ctx context.Context, utterance string) {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return
	}

	tr := e.translator()
	e.store.BeginCommand(tr.T(i18n.KeyStatusProcessing, utterance))
	defer e.store.EndCommand()

	e.logger.Info("interpreting command", "utterance", utterance)

	intents, err := e.interpreter.Interpret(ctx, utterance, e.store.Items(), e.store.Language())
	if err != nil {
		e.logger.Error("interpreting command", "error", err)
		intents = []domain.Intent{domain.UnclearIntent{Reason: domain.ServiceFailureReason}}
	}

	plan := domain.NewPlan(intents)
	bg := context.WithoutCancel(ctx)

	if plan.ChangesList() {
		e.applyChanges(bg, plan, tr)
		return
	}
	e.reply(bg, plan, tr)
}

func (e *Engine) applyChanges(ctx context.Context, plan domain.Plan, tr i18n.Translator) {
	var feedback []string

	if len(plan.Modifications) > 0 {
		changed, missing := e.store.ApplyModifications(plan.Modifications)
		var updates []string
		for _, item := range changed {
			e.after(e.timing.HighlightDelay, func() {
				e.store.Update(item.ID, func(it *domain.ShoppingItem) { it.Modified = false })
			})
			updates = append(updates, tr.T(i18n.KeyItemQuantity, item.Name, item.Quantity))
		}
		if len(updates) > 0 {
			feedback = append(feedback, tr.T(i18n.KeyUpdatedItems, joinNames(updates)))
		}
		if len(missing) > 0 {
			feedback = append(feedback, tr.T(i18n.KeyCouldNotFindToUpdate, joinNames(missing)))
		}
		e.logger.Info("applied modifications", "updated", updates, "missing", missing)
	}

	if len(plan.Removals) > 0 {
		flagged, missing := e.store.MarkRemoving(plan.Removals)
		var ids, removed []string
		for _, it := range flagged {
			ids = append(ids, it.ID)
			removed = append(removed, it.Name)
		}
		if len(ids) > 0 {
			e.after(e.timing.RemovalDelay, func() {
				e.store.Remove(ids...)
				e.discardImages(ctx, ids)
			})
			feedback = append(feedback, tr.T(i18n.KeyRemovedItems, joinNames(removed)))
		}
		if len(missing) > 0 {
			feedback = append(feedback, tr.T(i18n.KeyCouldNotFindToRemove, joinNames(missing)))
		}
		e.logger.Info("applied removals", "removed", removed, "missing", missing)
	}

	if len(plan.Additions) > 0 {
		var added []domain.ShoppingItem
		var names []string
		for _, in := range plan.Additions {
			if strings.TrimSpace(in.Name) == "" {
				continue
			}
			item := domain.NewShoppingItem(uuid.NewString(), in)
			added = append(added, item)
			names = append(names, item.Name)
		}
		e.store.Append(added...)
		for _, item := range added {
			e.fetchImage(ctx, item.ID, item.Name)
		}
		if len(names) > 0 {
			feedback = append(feedback, tr.T(i18n.KeyAddedItems, joinNames(names)))
		}
		e.logger.Info("applied additions", "added", names)
	}

	text := strings.Join(feedback, " ")
	e.after(e.timing.FeedbackDelay, func() {
		e.deliverFeedback(ctx, text)
	})
}

// deliverFeedback shows and speaks the consolidated confirmation, then asks
// for suggestions against the list as it is now.
func (e *Engine) deliverFeedback(ctx context.Context, text string) {
	if text != "" {
		e.store.SetMessage(text)
		e.speak(ctx, text)
	}

	suggestions, err := e.interpreter.Suggest(ctx, e.store.Items(), e.store.Language())
	if err != nil {
		e.logger.Warn("requesting suggestions", "error", err)
		return
	}
	if len(suggestions) > 0 {
		e.store.SetSuggestions(suggestions)
	}
}

func (e *Engine) reply(ctx context.Context, plan domain.Plan, tr i18n.Translator) {
	switch {
	case plan.Search != nil:
		query := plan.Search.Query
		text := tr.T(i18n.KeySearchNotFound, query)
		if it, ok := e.store.FindFragment(query); ok {
			text = tr.T(i18n.KeySearchFound, it.Name)
		}
		e.store.SetMessage(text)
		e.speak(ctx, text)

	case plan.Suggest != nil:
		e.store.SetSuggestions(plan.Suggest.Names)
		text := tr.T(i18n.KeySuggestionsResponse)
		e.store.SetMessage(text)
		e.speak(ctx, text)

	case plan.Respond != nil:
		e.store.SetMessage(plan.Respond.Text)
		e.speak(ctx, plan.Respond.Text)

	default:
		reason := tr.T(i18n.KeyUnclearCommand)
		if plan.Unclear != nil && strings.TrimSpace(plan.Unclear.Reason) != "" {
			reason = plan.Unclear.Reason
		}
		e.logger.Warn("unclear command", "reason", reason)
		e.showTransientError(reason)
		e.speak(ctx, reason)
	}
}

func (e *Engine) showTransientError(msg string) {
	token := e.store.ShowError(msg)
	e.after(e.timing.ErrorDismiss, func() {
		e.store.ClearError(token)
	})
}

// speak synthesizes and plays text in the background. Failures are logged.
func (e *Engine) speak(ctx context.Context, text string) {
	e.goAsync(func() {
		payload, err := e.speech.SynthesizeSpeech(ctx, text)
		if err != nil {
			e.logger.Warn("synthesizing speech", "error", err)
			return
		}
		if payload == "" {
			return
		}
		if err := e.player.Play(ctx, payload); err != nil {
			e.logger.Warn("playing speech", "player", e.player.Name(), "error", err)
		}
	})
}

// fetchImage resolves the picture of a new item; the item is looked up by id
// when the result arrives.
func (e *Engine) fetchImage(ctx context.Context, id, name string) {
	e.goAsync(func() {
		url := ""
		img, err := e.images.GenerateImage(ctx, name)
		switch {
		case err != nil:
			e.logger.Warn("generating image", "item", name, "error", err)
		case img != nil:
			url, err = e.publisher.Publish(ctx, id, img)
			if err != nil {
				e.logger.Warn("publishing image", "item", name, "error", err)
				url = ""
			}
		}

		found := e.store.Update(id, func(it *domain.ShoppingItem) {
			it.GeneratingImage = false
			it.ImageURL = url
		})
		if !found && url != "" {
			e.discardImages(ctx, []string{id})
		}
	})
}

func (e *Engine) discardImages(ctx context.Context, ids []string) {
	e.goAsync(func() {
		if err := e.publisher.Discard(ctx, ids...); err != nil {
			e.logger.Warn("discarding images", "items", ids, "error", err)
		}
	})
}

func (e *Engine) after(d time.Duration, fn func()) {
	e.pending.Add(1)
	e.scheduler.After(d, func() {
		defer e.pending.Done()
		fn()
	})
}

func (e *Engine) goAsync(fn func()) {
	e.pending.Add(1)
	go func() {
		defer e.pending.Done()
		fn()
	}()
}

func (e *Engine) translator() i18n.Translator {
	return i18n.New(e.store.Language(), e.logger)
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
