package llmintent

import (
	"encoding/json"
	"fmt"
	"strings"

	"vocalcart/internal/domain"
)

type response struct {
	Items []struct {
		Name     string `json:"name"`
		Quantity string `json:"quantity"`
		Category string `json:"category"`
	} `json:"items"`
	ItemNames     []string `json:"itemNames"`
	Modifications []struct {
		Name        string `json:"name"`
		NewQuantity string `json:"newQuantity"`
	} `json:"modifications"`
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
	Reason      string   `json:"reason"`
	Response    string   `json:"response"`
}

// Parse validates a provider response into intents, in application order:
// modify, remove, add, search, suggest, respond, unclear. Entries with blank
// names are dropped and categories are normalised.
func Parse(text string) ([]domain.Intent, error) {
	text = stripFences(text)

	var resp response
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, fmt.Errorf("parsing intent JSON (%s): %w", text, err)
	}

	var intents []domain.Intent

	var changes []domain.QuantityChange
	for _, m := range resp.Modifications {
		name := strings.TrimSpace(m.Name)
		quantity := strings.TrimSpace(m.NewQuantity)
		if name == "" || quantity == "" {
			continue
		}
		changes = append(changes, domain.QuantityChange{Name: name, NewQuantity: quantity})
	}
	if len(changes) > 0 {
		intents = append(intents, domain.ModifyIntent{Changes: changes})
	}

	if names := cleanNames(resp.ItemNames); len(names) > 0 {
		intents = append(intents, domain.RemoveIntent{Names: names})
	}

	var items []domain.NewItem
	for _, it := range resp.Items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			continue
		}
		items = append(items, domain.NewItem{
			Name:     name,
			Quantity: strings.TrimSpace(it.Quantity),
			Category: domain.ParseCategory(it.Category),
		})
	}
	if len(items) > 0 {
		intents = append(intents, domain.AddIntent{Items: items})
	}

	if q := strings.TrimSpace(resp.Query); q != "" {
		intents = append(intents, domain.SearchIntent{Query: q})
	}
	if names := cleanNames(resp.Suggestions); len(names) > 0 {
		intents = append(intents, domain.SuggestIntent{Names: names})
	}
	if r := strings.TrimSpace(resp.Response); r != "" {
		intents = append(intents, domain.RespondIntent{Text: r})
	}
	if r := strings.TrimSpace(resp.Reason); r != "" {
		intents = append(intents, domain.UnclearIntent{Reason: r})
	}

	return intents, nil
}

// Suggestions returns the names of the first suggest intent.
func Suggestions(intents []domain.Intent) []string {
	for _, in := range intents {
		if s, ok := in.(domain.SuggestIntent); ok {
			return s.Names
		}
	}
	return nil
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func cleanNames(raw []string) []string {
	var names []string
	for _, n := range raw {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}
