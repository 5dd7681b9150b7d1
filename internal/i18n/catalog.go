package i18n

import (
	"fmt"
	"strings"

	"vocalcart/internal/domain"
)

const (
	KeyTitle                = "vocalCartTitle"
	KeySelectLanguage       = "selectLanguageLabel"
	KeyStatusListening      = "statusListening"
	KeyStatusThinking       = "statusThinking"
	KeyStatusTapMic         = "statusTapMic"
	KeyStatusProcessing     = "statusProcessing"
	KeyStartListening       = "startListeningLabel"
	KeyStopListening        = "stopListeningLabel"
	KeyListEmptyTitle       = "shoppingListEmptyTitle"
	KeyListEmptyDescription = "shoppingListEmptyDescription"
	KeyCategoryHeader       = "categoryHeader"
	KeyDecreaseQuantity     = "decreaseQuantityLabel"
	KeyIncreaseQuantity     = "increaseQuantityLabel"
	KeyRemoveItem           = "removeItemLabel"
	KeySuggestionsTitle     = "suggestionsTitle"
	KeyAddedItems           = "addedItems"
	KeyRemovedItems         = "removedItems"
	KeyCouldNotFindToRemove = "couldNotFindToRemove"
	KeyUpdatedItems         = "updatedItems"
	KeyCouldNotFindToUpdate = "couldNotFindToUpdate"
	KeySearchFound          = "searchFound"
	KeySearchNotFound       = "searchNotFound"
	KeySuggestionsResponse  = "suggestionsResponse"
	KeyUnclearCommand       = "unclearCommand"
	KeyVoiceNotSupported    = "voiceNotSupported"
	KeySpeechError          = "speechError"
	KeySetItemQuantity      = "setItemQuantity"
	KeyItemQuantity         = "itemQuantity"
)

var spanishCategories = map[domain.Category]string{
	domain.CategoryProduce:   "Frutas y Verduras",
	domain.CategoryDairy:     "Lácteos",
	domain.CategoryMeat:      "Carne",
	domain.CategoryPantry:    "Despensa",
	domain.CategoryFrozen:    "Congelados",
	domain.CategoryHousehold: "Hogar",
	domain.CategoryOther:     "Otros",
}

// sprintf renders a positional template; missing arguments render empty.
func sprintf(format string) Format {
	verbs := strings.Count(format, "%s")
	return func(args ...string) string {
		values := make([]any, verbs)
		for i := range values {
			values[i] = arg(args, i)
		}
		return fmt.Sprintf(format, values...)
	}
}

var defaultCatalog = Catalog{
	domain.LanguageEnglish: {
		KeyTitle:                Text("VocalCart"),
		KeySelectLanguage:       Text("Select language"),
		KeyStatusListening:      Text("Listening..."),
		KeyStatusThinking:       Text("Thinking..."),
		KeyStatusTapMic:         Text("Tap the mic to start"),
		KeyStatusProcessing:     sprintf(`Processing: "%s"`),
		KeyStartListening:       Text("Start listening"),
		KeyStopListening:        Text("Stop listening"),
		KeyListEmptyTitle:       Text("Your Shopping List is Empty"),
		KeyListEmptyDescription: Text(`Tap the microphone button to start. You can say things like "Add milk and bread" or "I need 2 pounds of apples".`),
		KeyCategoryHeader:       sprintf("%s"),
		KeyDecreaseQuantity:     Text("Decrease quantity"),
		KeyIncreaseQuantity:     Text("Increase quantity"),
		KeyRemoveItem:           sprintf("Remove %s"),
		KeySuggestionsTitle:     Text("Smart Suggestions"),
		KeyAddedItems:           sprintf("Added %s."),
		KeyRemovedItems:         sprintf("Removed %s."),
		KeyCouldNotFindToRemove: sprintf("Could not find %s to remove."),
		KeyUpdatedItems:         sprintf("Updated %s."),
		KeyCouldNotFindToUpdate: sprintf("Could not find %s to update."),
		KeySearchFound:          sprintf("Yes, you have %s on your list."),
		KeySearchNotFound:       sprintf("No, %s is not on your list."),
		KeySuggestionsResponse:  Text("Here are some suggestions for you."),
		KeyUnclearCommand:       Text("I'm not sure how to handle that."),
		KeyVoiceNotSupported:    Text("Voice commands are not supported on this browser."),
		KeySpeechError:          sprintf("Speech recognition error: %s"),
		KeySetItemQuantity:      sprintf("Set %s to %s"),
		KeyItemQuantity:         sprintf("%s to %s"),
	},
	domain.LanguageSpanish: {
		KeyTitle:                Text("VocalCart"),
		KeySelectLanguage:       Text("Seleccionar idioma"),
		KeyStatusListening:      Text("Escuchando..."),
		KeyStatusThinking:       Text("Pensando..."),
		KeyStatusTapMic:         Text("Toca el micrófono para empezar"),
		KeyStatusProcessing:     sprintf(`Procesando: "%s"`),
		KeyStartListening:       Text("Empezar a escuchar"),
		KeyStopListening:        Text("Dejar de escuchar"),
		KeyListEmptyTitle:       Text("Tu Lista de Compras está Vacía"),
		KeyListEmptyDescription: Text(`Toca el botón del micrófono para empezar. Puedes decir cosas como "Añade leche y pan" o "Necesito 2 kilos de manzanas".`),
		KeyCategoryHeader: Format(func(args ...string) string {
			category := arg(args, 0)
			if name, ok := spanishCategories[domain.Category(category)]; ok {
				return name
			}
			return category
		}),
		KeyDecreaseQuantity:     Text("Disminuir cantidad"),
		KeyIncreaseQuantity:     Text("Aumentar cantidad"),
		KeyRemoveItem:           sprintf("Quitar %s"),
		KeySuggestionsTitle:     Text("Sugerencias Inteligentes"),
		KeyAddedItems:           sprintf("Añadido %s."),
		KeyRemovedItems:         sprintf("Eliminado %s."),
		KeyCouldNotFindToRemove: sprintf("No se pudo encontrar %s para eliminar."),
		KeyUpdatedItems:         sprintf("Actualizado %s."),
		KeyCouldNotFindToUpdate: sprintf("No se pudo encontrar %s para actualizar."),
		KeySearchFound:          sprintf("Sí, tienes %s en tu lista."),
		KeySearchNotFound:       sprintf("No, %s no está en tu lista."),
		KeySuggestionsResponse:  Text("Aquí tienes algunas sugerencias."),
		KeyUnclearCommand:       Text("No estoy seguro de cómo procesar eso."),
		KeyVoiceNotSupported:    Text("Los comandos de voz no son compatibles en este navegador."),
		KeySpeechError:          sprintf("Error de reconocimiento de voz: %s"),
		KeySetItemQuantity:      sprintf("Poner %s a %s"),
		KeyItemQuantity:         sprintf("%s a %s"),
	},
}
