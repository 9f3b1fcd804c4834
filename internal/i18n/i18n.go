// Package i18n holds the user-facing message catalog and resolves the
// language of each request.
//
// Messages are keyed by stable identifiers and registered for Brazilian
// Portuguese (the default) and American English.
package i18n

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// LangParam is the query parameter that forces a language.
const LangParam = "lang"

// Message keys.
const (
	MsgInvalidData         = "invalid_data"
	MsgInvalidFields       = "invalid_fields"
	MsgInvalidID           = "invalid_id"
	MsgRouteNotFound       = "route_not_found"
	MsgInternalError       = "internal_error"
	MsgTooManyRequests     = "too_many_requests"
	MsgMethodNotAllowed    = "method_not_allowed"
	MsgBadRequest          = "bad_request"
	MsgFoodCreated         = "food.created"
	MsgFoodListed          = "food.listed"
	MsgFoodEmpty           = "food.empty"
	MsgFoodUpdated         = "food.updated"
	MsgFoodDeleted         = "food.deleted"
	MsgFoodNotFound        = "food.not_found"
	MsgFoodCreateFailed    = "food.create_failed"
	MsgFoodListFailed      = "food.list_failed"
	MsgFoodUpdateFailed    = "food.update_failed"
	MsgFoodDeleteFailed    = "food.delete_failed"
	MsgUserCreated         = "user.created"
	MsgUserListed          = "user.listed"
	MsgUserEmpty           = "user.empty"
	MsgUserUpdated         = "user.updated"
	MsgUserDeleted         = "user.deleted"
	MsgUserNotFound        = "user.not_found"
	MsgUserEmailTaken      = "user.email_taken"
	MsgUserNothingToUpdate = "user.nothing_to_update"
	MsgUserCreateFailed    = "user.create_failed"
	MsgUserListFailed      = "user.list_failed"
	MsgUserUpdateFailed    = "user.update_failed"
	MsgUserDeleteFailed    = "user.delete_failed"

	MsgEmailWelcomeSubject  = "email.welcome.subject"
	MsgEmailWelcomeGreeting = "email.welcome.greeting"
	MsgEmailWelcomeBody     = "email.welcome.body"
)

var (
	// Portuguese is the default language of every response.
	Portuguese = language.BrazilianPortuguese
	English    = language.AmericanEnglish

	supported = []language.Tag{Portuguese, English}
	matcher   = language.NewMatcher(supported)
	messages  = newCatalog()
)

var translations = map[language.Tag]map[string]string{
	Portuguese: {
		MsgInvalidData:         "Dados inválidos.",
		MsgInvalidFields:       "Dados inválidos. Verifique os campos.",
		MsgInvalidID:           "Campo 'id' inválido ou ausente.",
		MsgRouteNotFound:       "Rota não encontrada.",
		MsgInternalError:       "Erro interno do servidor.",
		MsgTooManyRequests:     "Muitas requisições. Tente novamente em instantes.",
		MsgMethodNotAllowed:    "Método não permitido para esta rota.",
		MsgBadRequest:          "Requisição inválida.",
		MsgFoodCreated:         "Alimento adicionado com sucesso!",
		MsgFoodListed:          "Alimentos encontrados.",
		MsgFoodEmpty:           "Nenhum alimento cadastrado",
		MsgFoodUpdated:         "Alimento atualizado com sucesso!",
		MsgFoodDeleted:         "Alimento '%s' removido com sucesso!",
		MsgFoodNotFound:        "Alimento não encontrado.",
		MsgFoodCreateFailed:    "Erro ao processar o alimento",
		MsgFoodListFailed:      "Erro ao buscar alimentos",
		MsgFoodUpdateFailed:    "Erro ao atualizar alimento",
		MsgFoodDeleteFailed:    "Erro ao deletar o alimento",
		MsgUserCreated:         "Usuário adicionado com sucesso!",
		MsgUserListed:          "Usuários encontrados.",
		MsgUserEmpty:           "Nenhum usuário cadastrado",
		MsgUserUpdated:         "Usuário atualizado com sucesso!",
		MsgUserDeleted:         "Usuário '%s' removido com sucesso!",
		MsgUserNotFound:        "Usuário não encontrado.",
		MsgUserEmailTaken:      "E-mail já cadastrado.",
		MsgUserNothingToUpdate: "Informe 'name' ou 'password' para atualizar.",
		MsgUserCreateFailed:    "Erro ao processar o usuário",
		MsgUserListFailed:      "Erro ao buscar usuários",
		MsgUserUpdateFailed:    "Erro ao atualizar usuário",
		MsgUserDeleteFailed:    "Erro ao deletar o usuário",

		MsgEmailWelcomeSubject:  "Bem-vindo ao Nutri!",
		MsgEmailWelcomeGreeting: "Olá, %s!",
		MsgEmailWelcomeBody:     "Sua conta foi criada. Já pode registrar seus alimentos e acompanhar seus objetivos.",
	},
	English: {
		MsgInvalidData:         "Invalid data.",
		MsgInvalidFields:       "Invalid data. Check the fields.",
		MsgInvalidID:           "Field 'id' is invalid or missing.",
		MsgRouteNotFound:       "Route not found.",
		MsgInternalError:       "Internal server error.",
		MsgTooManyRequests:     "Too many requests. Try again shortly.",
		MsgMethodNotAllowed:    "Method not allowed for this route.",
		MsgBadRequest:          "Invalid request.",
		MsgFoodCreated:         "Food added successfully!",
		MsgFoodListed:          "Foods found.",
		MsgFoodEmpty:           "No food registered",
		MsgFoodUpdated:         "Food updated successfully!",
		MsgFoodDeleted:         "Food '%s' removed successfully!",
		MsgFoodNotFound:        "Food not found.",
		MsgFoodCreateFailed:    "Error processing the food",
		MsgFoodListFailed:      "Error fetching foods",
		MsgFoodUpdateFailed:    "Error updating the food",
		MsgFoodDeleteFailed:    "Error deleting the food",
		MsgUserCreated:         "User added successfully!",
		MsgUserListed:          "Users found.",
		MsgUserEmpty:           "No user registered",
		MsgUserUpdated:         "User updated successfully!",
		MsgUserDeleted:         "User '%s' removed successfully!",
		MsgUserNotFound:        "User not found.",
		MsgUserEmailTaken:      "Email already registered.",
		MsgUserNothingToUpdate: "Provide 'name' or 'password' to update.",
		MsgUserCreateFailed:    "Error processing the user",
		MsgUserListFailed:      "Error fetching users",
		MsgUserUpdateFailed:    "Error updating the user",
		MsgUserDeleteFailed:    "Error deleting the user",

		MsgEmailWelcomeSubject:  "Welcome to Nutri!",
		MsgEmailWelcomeGreeting: "Hello, %s!",
		MsgEmailWelcomeBody:     "Your account is ready. You can now register your foods and follow your goals.",
	},
}

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(Portuguese))
	for tag, entries := range translations {
		for key, msg := range entries {
			// Keys and messages are static; SetString only fails on malformed input.
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Supported returns the languages with a full catalog.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Match returns the supported language closest to the given tags.
func Match(tags ...language.Tag) language.Tag {
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Portuguese
	}
	return supported[idx]
}

// ParseTag parses a BCP 47 value and reduces it to a supported language.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Und, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	_, idx, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.Und, false
	}
	return supported[idx], true
}

// ResolveTag picks the language of a request: the lang query parameter first,
// then Accept-Language, then fallback.
func ResolveTag(r *http.Request, fallback language.Tag) language.Tag {
	if r == nil {
		return fallback
	}

	if tag, ok := ParseTag(r.URL.Query().Get(LangParam)); ok {
		return tag
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, idx, confidence := matcher.Match(tags...)
			if confidence != language.No {
				return supported[idx]
			}
		}
	}

	return fallback
}

// Printer returns a message printer bound to the catalog.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(messages))
}

// T renders the message key in the given language.
func T(tag language.Tag, key string, args ...any) string {
	return Printer(tag).Sprintf(key, args...)
}

type contextKey struct{}

// WithTag stores the request language in ctx.
func WithTag(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, contextKey{}, tag)
}

// TagFromContext returns the request language, Portuguese when unset.
func TagFromContext(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(contextKey{}).(language.Tag); ok {
		return tag
	}
	return Portuguese
}

// FromContext renders the message key in the language stored in ctx.
func FromContext(ctx context.Context, key string, args ...any) string {
	return T(TagFromContext(ctx), key, args...)
}
