package application

import (
	"context"
	"errors"
	"strings"

	"vocalcart/internal/domain"
	"vocalcart/internal/i18n"
)

var (
	ErrItemNotFound          = errors.New("item not found")
	ErrQuantityNotAdjustable = errors.New("quantity cannot be adjusted")
	ErrUnsupportedLanguage   = errors.New("unsupported language")
)

func (e *Engine) ToggleItem(id string) error {
	ok := e.store.Update(id, func(it *domain.ShoppingItem) {
		it.Completed = !it.Completed
	})
	if !ok {
		return ErrItemNotFound
	}
	return nil
}

// StepQuantity moves the numeric prefix of an item's quantity by delta (+1 or
// -1), highlights the item and speaks the new value.
func (e *Engine) StepQuantity(ctx context.Context, id string, delta int) error {
	if delta != 1 && delta != -1 {
		return ErrQuantityNotAdjustable
	}

	var name, quantity string
	adjusted := false
	found := e.store.Update(id, func(it *domain.ShoppingItem) {
		next, ok := domain.StepQuantity(it.Quantity, delta)
		if !ok {
			return
		}
		it.Quantity = next
		it.Modified = true
		name, quantity, adjusted = it.Name, next, true
	})
	if !found {
		return ErrItemNotFound
	}
	if !adjusted {
		return ErrQuantityNotAdjustable
	}

	e.after(e.timing.HighlightDelay, func() {
		e.store.Update(id, func(it *domain.ShoppingItem) { it.Modified = false })
	})
	e.speak(context.WithoutCancel(ctx), e.translator().T(i18n.KeySetItemQuantity, name, quantity))
	return nil
}

// RemoveItem resubmits the removal as a voice command so it follows the same
// staged path.
func (e *Engine) RemoveItem(ctx context.Context, id string) error {
	item, ok := e.store.Item(id)
	if !ok || item.Removing {
		return ErrItemNotFound
	}
	e.Reconcile(ctx, "remove "+item.Name)
	return nil
}

// AddSuggestion drops the chip and resubmits it as an add command.
func (e *Engine) AddSuggestion(ctx context.Context, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	e.store.DropSuggestion(name)
	e.Reconcile(ctx, "add "+name)
}

func (e *Engine) SetLanguage(raw string) error {
	lang, ok := domain.ParseLanguage(raw)
	if !ok {
		return ErrUnsupportedLanguage
	}
	if err := e.store.SetLanguage(lang); err != nil {
		e.logger.Warn("persisting language", "language", lang, "error", err)
	}
	e.logger.Info("language changed", "language", lang)
	return nil
}
