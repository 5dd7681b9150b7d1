package web

import (
	"log/slog"
	"slices"

	"vocalcart/internal/application"
	"vocalcart/internal/domain"
	"vocalcart/internal/i18n"
)

type StatusKind string

const (
	StatusError     StatusKind = "error"
	StatusListening StatusKind = "listening"
	StatusThinking  StatusKind = "thinking"
	StatusMessage   StatusKind = "message"
)

// View is everything the page renders, already localised.
type View struct {
	Title       string          `json:"title"`
	Language    LanguageView    `json:"language"`
	Status      StatusView      `json:"status"`
	Microphone  MicrophoneView  `json:"microphone"`
	Empty       *EmptyView      `json:"empty,omitempty"`
	Groups      []GroupView     `json:"groups"`
	Suggestions SuggestionsView `json:"suggestions"`
}

type LanguageView struct {
	Label    string           `json:"label"`
	Selected domain.Language  `json:"selected"`
	Options  []LanguageOption `json:"options"`
}

type LanguageOption struct {
	Code domain.Language `json:"code"`
	Name string          `json:"name"`
}

type StatusView struct {
	Text string     `json:"text"`
	Kind StatusKind `json:"kind"`
}

type MicrophoneView struct {
	Label     string `json:"label"`
	Listening bool   `json:"listening"`
	Disabled  bool   `json:"disabled"`
}

type EmptyView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type GroupView struct {
	Category domain.Category `json:"category"`
	Header   string          `json:"header"`
	Items    []ItemView      `json:"items"`
}

type ItemView struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Quantity        string `json:"quantity"`
	Completed       bool   `json:"completed"`
	ImageURL        string `json:"imageUrl,omitempty"`
	GeneratingImage bool   `json:"generatingImage"`
	Removing        bool   `json:"removing"`
	Modified        bool   `json:"modified"`

	CanIncrement  bool   `json:"canIncrement"`
	CanDecrement  bool   `json:"canDecrement"`
	IncreaseLabel string `json:"increaseLabel"`
	DecreaseLabel string `json:"decreaseLabel"`
	RemoveLabel   string `json:"removeLabel"`
}

type SuggestionsView struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// BuildView renders state in its own language.
func BuildView(state application.State, logger *slog.Logger) View {
	tr := i18n.New(state.Language, logger)

	v := View{
		Title:  tr.T(i18n.KeyTitle),
		Status: buildStatus(state, tr),
		Language: LanguageView{
			Label:    tr.T(i18n.KeySelectLanguage),
			Selected: state.Language,
		},
		Microphone: MicrophoneView{
			Label:     tr.T(i18n.KeyStartListening),
			Listening: state.Listening,
			Disabled:  state.Loading || state.CaptureUnsupported,
		},
		Groups: buildGroups(state.Items, tr),
		Suggestions: SuggestionsView{
			Title: tr.T(i18n.KeySuggestionsTitle),
			Items: state.Suggestions,
		},
	}

	if state.Listening {
		v.Microphone.Label = tr.T(i18n.KeyStopListening)
	}

	for _, opt := range domain.SupportedLanguages {
		v.Language.Options = append(v.Language.Options, LanguageOption{Code: opt.Code, Name: opt.Name})
	}

	if len(state.Items) == 0 {
		v.Empty = &EmptyView{
			Title:       tr.T(i18n.KeyListEmptyTitle),
			Description: tr.T(i18n.KeyListEmptyDescription),
		}
	}

	if v.Suggestions.Items == nil {
		v.Suggestions.Items = []string{}
	}

	return v
}

// buildStatus picks the status line: error, then listening, then thinking,
// then the last message.
func buildStatus(state application.State, tr i18n.Translator) StatusView {
	switch {
	case state.Error != "":
		return StatusView{Text: state.Error, Kind: StatusError}
	case state.CaptureUnsupported && !state.Loading && state.Message == "":
		return StatusView{Text: tr.T(i18n.KeyVoiceNotSupported), Kind: StatusError}
	case state.Listening && state.Transcript != "":
		return StatusView{Text: `"` + state.Transcript + `"`, Kind: StatusListening}
	case state.Listening:
		return StatusView{Text: tr.T(i18n.KeyStatusListening), Kind: StatusListening}
	case state.Loading:
		return StatusView{Text: tr.T(i18n.KeyStatusThinking), Kind: StatusThinking}
	case state.Message != "":
		return StatusView{Text: state.Message, Kind: StatusMessage}
	default:
		return StatusView{Text: tr.T(i18n.KeyStatusTapMic), Kind: StatusMessage}
	}
}

// buildGroups groups items by category, categories sorted by key and items
// kept in insertion order.
func buildGroups(items []domain.ShoppingItem, tr i18n.Translator) []GroupView {
	byCategory := map[domain.Category][]ItemView{}
	for _, it := range items {
		byCategory[it.Category] = append(byCategory[it.Category], ItemView{
			ID:              it.ID,
			Name:            it.Name,
			Quantity:        it.Quantity,
			Completed:       it.Completed,
			ImageURL:        it.ImageURL,
			GeneratingImage: it.GeneratingImage,
			Removing:        it.Removing,
			Modified:        it.Modified,
			CanIncrement:    domain.CanIncrement(it.Quantity),
			CanDecrement:    domain.CanDecrement(it.Quantity),
			IncreaseLabel:   tr.T(i18n.KeyIncreaseQuantity),
			DecreaseLabel:   tr.T(i18n.KeyDecreaseQuantity),
			RemoveLabel:     tr.T(i18n.KeyRemoveItem, it.Name),
		})
	}

	categories := make([]domain.Category, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	slices.Sort(categories)

	groups := make([]GroupView, 0, len(categories))
	for _, c := range categories {
		groups = append(groups, GroupView{
			Category: c,
			Header:   tr.T(i18n.KeyCategoryHeader, string(c)),
			Items:    byCategory[c],
		})
	}
	return groups
}
