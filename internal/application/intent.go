package application

import (
	"context"

	"vocalcart/internal/domain"
)

// IntentInterpreter turns an utterance into intents against the current list.
type IntentInterpreter interface {
	Interpret(ctx context.Context, utterance string, items []domain.ShoppingItem, lang domain.Language) ([]domain.Intent, error)
	Suggest(ctx context.Context, items []domain.ShoppingItem, lang domain.Language) ([]string, error)
}
