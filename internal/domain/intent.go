package domain

// Intent is one action extracted from an utterance. A single utterance may
// yield several intents, e.g. an addition and a removal.
type Intent interface {
	intent()
}

type AddIntent struct {
	Items []NewItem
}

type RemoveIntent struct {
	Names []string
}

type QuantityChange struct {
	Name        string
	NewQuantity string
}

type ModifyIntent struct {
	Changes []QuantityChange
}

type SearchIntent struct {
	Query string
}

type SuggestIntent struct {
	Names []string
}

// RespondIntent carries a conversational reply (greetings, "show my cart").
type RespondIntent struct {
	Text string
}

// UnclearIntent carries the provider's explanation, if it gave one.
type UnclearIntent struct {
	Reason string
}

func (AddIntent) intent()     {}
func (RemoveIntent) intent()  {}
func (ModifyIntent) intent()  {}
func (SearchIntent) intent()  {}
func (SuggestIntent) intent() {}
func (RespondIntent) intent() {}
func (UnclearIntent) intent() {}

// ServiceFailureReason is reported when the AI service cannot be reached or
// its answer cannot be decoded.
const ServiceFailureReason = "Failed to understand the response from the AI service."

// Plan groups the intents of one utterance by kind. Repeated variants are
// merged in order; for the single-valued kinds the first one wins.
type Plan struct {
	Modifications []QuantityChange
	Removals      []string
	Additions     []NewItem

	Search  *SearchIntent
	Suggest *SuggestIntent
	Respond *RespondIntent
	Unclear *UnclearIntent
}

func NewPlan(intents []Intent) Plan {
	var p Plan
	for _, in := range intents {
		switch v := in.(type) {
		case ModifyIntent:
			p.Modifications = append(p.Modifications, v.Changes...)
		case RemoveIntent:
			p.Removals = append(p.Removals, v.Names...)
		case AddIntent:
			p.Additions = append(p.Additions, v.Items...)
		case SearchIntent:
			if p.Search == nil {
				p.Search = &v
			}
		case SuggestIntent:
			if p.Suggest == nil {
				p.Suggest = &v
			}
		case RespondIntent:
			if p.Respond == nil {
				p.Respond = &v
			}
		case UnclearIntent:
			if p.Unclear == nil {
				p.Unclear = &v
			}
		}
	}
	return p
}

// ChangesList reports whether the plan touches the list structure.
func (p Plan) ChangesList() bool {
	return len(p.Modifications) > 0 || len(p.Removals) > 0 || len(p.Additions) > 0
}
