// Package llmintent holds the provider-independent part of command
// interpretation: the prompt, the declared response shape and the
// validation of a response into domain intents.
package llmintent

import (
	"encoding/json"
	"fmt"
	"strings"

	"vocalcart/internal/domain"
)

// SuggestCommand is the pseudo-utterance sent to request suggestions.
const SuggestCommand = "suggest"

type listEntry struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// Prompt builds the interpretation prompt for utterance against items.
func Prompt(utterance string, items []domain.ShoppingItem, lang domain.Language) string {
	escaped := strings.ReplaceAll(utterance, `"`, `\"`)

	return fmt.Sprintf(`You are a shopping list API that only responds in JSON.
Your task is to process a user's voice command and return a structured JSON response.
Strictly adhere to the provided JSON schema. A command may contain multiple actions of different types (e.g., adding and removing items simultaneously).

The user is speaking in %[1]s. All string values in the returned JSON, like 'name' and 'quantity', must also be in %[1]s.

For the 'quantity' field, ONLY return the number and unit (e.g., "1", "2 lbs", "500g"). DO NOT include any extra conversational text, sentences, or explanations.

The user's current shopping list is:
%[2]s.

The user's command is: "%[3]s"

Analyze the command and populate the corresponding fields in the JSON object.
A single command can result in multiple fields being populated. For example, "add milk and remove bread" should populate both the 'items' and 'itemNames' arrays in the same response.

- For adding items (e.g., "add 2 apples and a loaf of bread"): Populate the "items" array. Each object should have "name", "quantity", and "category". Infer category from: %[4]s. Default "quantity" to "1" if not specified.
- For removing items (e.g., "remove bread and eggs"): Populate the "itemNames" array of strings. Match items from the current list.
- For modifying items (e.g., "change apples to 5 and milk to 2 cartons"): Populate the "modifications" array of objects, where each object has "name" and "newQuantity".
- For searching (e.g., "find milk"): Populate "query". A search query is for a single item.
- For suggestions (e.g., "what should I buy?" or "%[5]s"): Populate the "suggestions" array with 3 unique item names.
- For greetings (e.g., "hello"): Populate "response" with a friendly greeting in %[1]s.
- For showing the list (e.g., "show my cart"): Populate "response" with a confirmatory message in %[1]s.
- If the command is unclear: Populate "reason".`,
		lang, serializeList(items), escaped, categoryList(), SuggestCommand)
}

// ShapeHint spells the response shape out for providers without schema
// enforcement.
const ShapeHint = `Respond ONLY with valid JSON (no markdown, no backticks), using only these optional fields:
{
  "items": [{"name": "string", "quantity": "string", "category": "Produce|Dairy|Meat|Pantry|Frozen|Household|Other"}],
  "itemNames": ["string"],
  "modifications": [{"name": "string", "newQuantity": "string"}],
  "query": "string",
  "suggestions": ["string"],
  "reason": "string",
  "response": "string"
}`

func serializeList(items []domain.ShoppingItem) string {
	if len(items) == 0 {
		return "empty"
	}

	entries := make([]listEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, listEntry{Name: it.Name, Quantity: it.Quantity})
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return "empty"
	}
	return string(data)
}

func categoryList() string {
	var names []string
	for _, c := range domain.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

// ResponseSchema is the structured-output schema declared to providers that
// support it, in the OpenAPI subset Gemini accepts.
func ResponseSchema() map[string]any {
	stringType := map[string]any{"type": "STRING"}
	stringArray := map[string]any{"type": "ARRAY", "items": stringType}

	categories := make([]string, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		categories = append(categories, string(c))
	}

	return map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"items": map[string]any{
				"type": "ARRAY",
				"items": map[string]any{
					"type": "OBJECT",
					"properties": map[string]any{
						"name":     stringType,
						"quantity": stringType,
						"category": map[string]any{"type": "STRING", "enum": categories},
					},
				},
			},
			"itemNames": stringArray,
			"modifications": map[string]any{
				"type": "ARRAY",
				"items": map[string]any{
					"type": "OBJECT",
					"properties": map[string]any{
						"name":        stringType,
						"newQuantity": stringType,
					},
				},
			},
			"query":       stringType,
			"suggestions": stringArray,
			"reason":      stringType,
			"response":    stringType,
		},
	}
}
