package i18n_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/nutri-api/internal/i18n"
	"github.com/smartystreets/goconvey/convey"
	"golang.org/x/text/language"
)

func TestResolveTag(t *testing.T) {
	convey.Convey("Given an incoming request", t, func() {
		convey.Convey("Without hints the fallback is used", func() {
			req := httptest.NewRequest("GET", "/food", nil)
			convey.So(i18n.ResolveTag(req, i18n.Portuguese), convey.ShouldEqual, i18n.Portuguese)
		})

		convey.Convey("Accept-Language selects English", func() {
			req := httptest.NewRequest("GET", "/food", nil)
			req.Header.Set("Accept-Language", "en-US,en;q=0.9")
			convey.So(i18n.ResolveTag(req, i18n.Portuguese), convey.ShouldEqual, i18n.English)
		})

		convey.Convey("The lang parameter wins over Accept-Language", func() {
			req := httptest.NewRequest("GET", "/food?lang=pt-BR", nil)
			req.Header.Set("Accept-Language", "en-US")
			convey.So(i18n.ResolveTag(req, i18n.English), convey.ShouldEqual, i18n.Portuguese)
		})

		convey.Convey("An unsupported language falls back", func() {
			req := httptest.NewRequest("GET", "/food", nil)
			req.Header.Set("Accept-Language", "ja")
			convey.So(i18n.ResolveTag(req, i18n.Portuguese), convey.ShouldEqual, i18n.Portuguese)
		})

		convey.Convey("A malformed lang parameter is ignored", func() {
			req := httptest.NewRequest("GET", "/food?lang=not_a_tag!", nil)
			convey.So(i18n.ResolveTag(req, i18n.English), convey.ShouldEqual, i18n.English)
		})
	})
}

func TestMessages(t *testing.T) {
	convey.Convey("Given the catalog", t, func() {
		convey.Convey("Portuguese is the default", func() {
			convey.So(i18n.FromContext(context.Background(), i18n.MsgFoodNotFound), convey.ShouldEqual, "Alimento não encontrado.")
		})

		convey.Convey("English is served from the context language", func() {
			ctx := i18n.WithTag(context.Background(), i18n.English)
			convey.So(i18n.FromContext(ctx, i18n.MsgFoodNotFound), convey.ShouldEqual, "Food not found.")
		})

		convey.Convey("Arguments are interpolated", func() {
			convey.So(i18n.T(i18n.Portuguese, i18n.MsgFoodDeleted, "Arroz"), convey.ShouldEqual, "Alimento 'Arroz' removido com sucesso!")
			convey.So(i18n.T(i18n.English, i18n.MsgUserDeleted, "Ana"), convey.ShouldEqual, "User 'Ana' removed successfully!")
		})

		convey.Convey("The empty list message matches the contract", func() {
			convey.So(i18n.T(i18n.Portuguese, i18n.MsgFoodEmpty), convey.ShouldEqual, "Nenhum alimento cadastrado")
		})

		convey.Convey("Regional variants match a supported language", func() {
			convey.So(i18n.Match(language.MustParse("en-GB")), convey.ShouldEqual, i18n.English)
			convey.So(i18n.Match(language.MustParse("pt-PT")), convey.ShouldEqual, i18n.Portuguese)
		})

		convey.Convey("Supported returns a copy", func() {
			tags := i18n.Supported()
			tags[0] = language.Japanese
			convey.So(i18n.Supported()[0], convey.ShouldEqual, i18n.Portuguese)
		})
	})
}
