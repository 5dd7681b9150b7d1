package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"vocalcart/internal/application"
	"vocalcart/internal/domain"
)

type failingPreferences struct{}

func (failingPreferences) Load() (domain.Language, error) { return "", nil }
func (failingPreferences) Save(domain.Language) error     { return errors.New("read-only") }

func TestStore_UpdateMissingItem(t *testing.T) {
	s := application.NewStore(nil, domain.LanguageEnglish)

	called := false
	ok := s.Update("gone", func(*domain.ShoppingItem) { called = true })

	require.False(t, ok)
	require.False(t, called)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := application.NewStore(nil, domain.LanguageEnglish)
	s.Append(seedItem("m1", "Milk", "1"))

	state := s.Snapshot()
	state.Items[0].Name = "Changed"

	milk, _ := s.Item("m1")
	require.Equal(t, "Milk", milk.Name)
}

func TestStore_RemoveKeepsConcurrentAppends(t *testing.T) {
	s := application.NewStore(nil, domain.LanguageEnglish)
	s.Append(seedItem("b1", "Bread", "1"))

	flagged, missing := s.MarkRemoving([]string{"BREAD", "Jam"})
	require.Len(t, flagged, 1)
	require.Equal(t, "b1", flagged[0].ID)
	require.Equal(t, "Bread", flagged[0].Name)
	require.True(t, flagged[0].Removing)
	require.Equal(t, []string{"Jam"}, missing)

	s.Append(seedItem("e1", "Eggs", "1"))
	s.Remove(flagged[0].ID)

	items := s.Items()
	require.Len(t, items, 1)
	require.Equal(t, "e1", items[0].ID)
}

func TestStore_ModificationsSkipRemovingItems(t *testing.T) {
	s := application.NewStore(nil, domain.LanguageEnglish)
	s.Append(seedItem("b1", "Bread", "1"))
	s.MarkRemoving([]string{"Bread"})

	changed, missing := s.ApplyModifications([]domain.QuantityChange{{Name: "bread", NewQuantity: "2"}})

	require.Empty(t, changed)
	require.Equal(t, []string{"bread"}, missing)
}

func TestStore_ApplyModificationsReturnsChangedItems(t *testing.T) {
	s := application.NewStore(nil, domain.LanguageEnglish)
	s.Append(seedItem("a1", "Apples", "1"))

	changed, missing := s.ApplyModifications([]domain.QuantityChange{{Name: "apples", NewQuantity: "3 lbs"}})

	require.Empty(t, missing)
	require.Len(t, changed, 1)
	require.Equal(t, "Apples", changed[0].Name)
	require.Equal(t, "3 lbs", changed[0].Quantity)
	require.True(t, changed[0].Modified)
}

func TestStore_FindFragment(t *testing.T) {
	s := application.NewStore(nil, domain.LanguageEnglish)
	s.Append(seedItem("m1", "Whole Milk", "1"), seedItem("b1", "Bread", "1"))
	s.MarkRemoving([]string{"Bread"})

	milk, ok := s.FindFragment(" MILK ")
	require.True(t, ok)
	require.Equal(t, "Whole Milk", milk.Name)

	_, ok = s.FindFragment("bread")
	require.False(t, ok)

	_, ok = s.FindFragment("  ")
	require.False(t, ok)
}

func TestStore_ClearErrorOnlyClearsOwnError(t *testing.T) {
	s := application.NewStore(nil, domain.LanguageEnglish)

	first := s.ShowError("first")
	second := s.ShowError("second")

	s.ClearError(first)
	require.Equal(t, "second", s.Snapshot().Error)

	s.ClearError(second)
	require.Empty(t, s.Snapshot().Error)
}

func TestStore_BeginCommand(t *testing.T) {
	s := application.NewStore(nil, domain.LanguageEnglish)
	s.SetSuggestions([]string{"Jam"})
	s.ShowError("boom")

	s.BeginCommand(`Processing: "add milk"`)

	state := s.Snapshot()
	require.True(t, state.Loading)
	require.Empty(t, state.Suggestions)
	require.Empty(t, state.Error)
	require.Equal(t, `Processing: "add milk"`, state.Message)

	s.EndCommand()
	require.False(t, s.Loading())
}

func TestStore_OverlappingCommandsStayLoading(t *testing.T) {
	s := application.NewStore(nil, domain.LanguageEnglish)

	s.BeginCommand("first")
	s.BeginCommand("second")

	s.EndCommand()
	require.True(t, s.Loading())
	require.True(t, s.Snapshot().Loading)

	s.EndCommand()
	require.False(t, s.Loading())

	s.EndCommand()
	s.BeginCommand("third")
	require.True(t, s.Loading())
}

func TestStore_DropSuggestionIgnoresCase(t *testing.T) {
	s := application.NewStore(nil, domain.LanguageEnglish)
	s.SetSuggestions([]string{"Eggs", "Jam"})

	s.DropSuggestion("eggs")

	require.Equal(t, []string{"Jam"}, s.Snapshot().Suggestions)
}

func TestStore_SetLanguageReportsSaveFailure(t *testing.T) {
	s := application.NewStore(failingPreferences{}, domain.LanguageEnglish)

	err := s.SetLanguage(domain.LanguageSpanish)

	require.ErrorContains(t, err, "saving language")
	require.Equal(t, domain.LanguageSpanish, s.Language())
}

func TestDataURIPublisher(t *testing.T) {
	p := &application.DataURIPublisher{}

	url, err := p.Publish(context.Background(), "id", &domain.Image{MIMEType: "image/jpeg", Data: []byte("abc")})
	require.NoError(t, err)
	require.Equal(t, "data:image/jpeg;base64,YWJj", url)

	_, err = p.Publish(context.Background(), "id", &domain.Image{})
	require.ErrorIs(t, err, application.ErrEmptyImage)

	_, err = p.Publish(context.Background(), "id", nil)
	require.ErrorIs(t, err, application.ErrEmptyImage)
}
