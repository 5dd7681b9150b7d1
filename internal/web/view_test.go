package web

import (
	"testing"

	"github.com/stretchr/testify/require"

	"vocalcart/internal/application"
	"vocalcart/internal/domain"
)

func TestBuildStatusPriority(t *testing.T) {
	tests := []struct {
		name  string
		state application.State
		text  string
		kind  StatusKind
	}{
		{
			name:  "idle",
			state: application.State{Language: domain.LanguageEnglish},
			text:  "Tap the mic to start",
			kind:  StatusMessage,
		},
		{
			name:  "error wins over listening",
			state: application.State{Language: domain.LanguageEnglish, Error: "boom", Listening: true},
			text:  "boom",
			kind:  StatusError,
		},
		{
			name:  "unsupported when idle",
			state: application.State{Language: domain.LanguageEnglish, CaptureUnsupported: true},
			text:  "Voice commands are not supported on this browser.",
			kind:  StatusError,
		},
		{
			name:  "message hides unsupported notice",
			state: application.State{Language: domain.LanguageEnglish, CaptureUnsupported: true, Message: "Added Milk."},
			text:  "Added Milk.",
			kind:  StatusMessage,
		},
		{
			name:  "interim transcript",
			state: application.State{Language: domain.LanguageEnglish, Listening: true, Transcript: "add eggs"},
			text:  `"add eggs"`,
			kind:  StatusListening,
		},
		{
			name:  "thinking",
			state: application.State{Language: domain.LanguageEnglish, Loading: true, Message: `Processing: "add eggs"`},
			text:  "Thinking...",
			kind:  StatusThinking,
		},
		{
			name:  "message",
			state: application.State{Language: domain.LanguageEnglish, Message: "Removed Bread."},
			text:  "Removed Bread.",
			kind:  StatusMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := BuildView(tt.state, testLogger()).Status
			require.Equal(t, tt.kind, status.Kind)
			require.Equal(t, tt.text, status.Text)
		})
	}
}

func TestBuildViewGroupsByCategory(t *testing.T) {
	state := application.State{
		Language: domain.LanguageSpanish,
		Items: []domain.ShoppingItem{
			{ID: "1", Name: "Pears", Quantity: "3", Category: domain.CategoryProduce},
			{ID: "2", Name: "Milk", Quantity: "1", Category: domain.CategoryDairy},
			{ID: "3", Name: "Apples", Quantity: "2 lbs", Category: domain.CategoryProduce},
		},
	}

	v := BuildView(state, testLogger())

	require.Nil(t, v.Empty)
	require.Len(t, v.Groups, 2)
	require.Equal(t, domain.CategoryDairy, v.Groups[0].Category)
	require.Equal(t, "Lácteos", v.Groups[0].Header)
	require.Equal(t, domain.CategoryProduce, v.Groups[1].Category)
	require.Equal(t, "Pears", v.Groups[1].Items[0].Name)
	require.Equal(t, "Apples", v.Groups[1].Items[1].Name)

	milk := v.Groups[0].Items[0]
	require.True(t, milk.CanIncrement)
	require.False(t, milk.CanDecrement)
	require.NotEmpty(t, milk.RemoveLabel)
}

func TestBuildViewMicrophone(t *testing.T) {
	v := BuildView(application.State{Language: domain.LanguageEnglish, Loading: true}, testLogger())
	require.True(t, v.Microphone.Disabled)
	require.Equal(t, []string{}, v.Suggestions.Items)

	listening := BuildView(application.State{Language: domain.LanguageEnglish, Listening: true}, testLogger())
	require.False(t, listening.Microphone.Disabled)
	require.NotEqual(t, v.Microphone.Label, listening.Microphone.Label)
}
