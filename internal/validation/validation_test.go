package validation_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/nutri-api/internal/errs"
	"github.com/deppfellow/nutri-api/internal/i18n"
	"github.com/deppfellow/nutri-api/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/smartystreets/goconvey/convey"
)

type level string

type samplePayload struct {
	Name  string   `json:"name" validate:"required,notblank"`
	Score *float64 `json:"score" validate:"required"`
	Level level    `json:"level" validate:"required,sample_level"`
}

func (p *samplePayload) Validate() error {
	return validation.Struct(p)
}

type keyedPayload struct {
	ID string `json:"id" validate:"required,notblank"`
}

func (p *keyedPayload) Validate() error {
	return validation.Struct(p)
}

func (p *keyedPayload) MessageKey() string {
	return i18n.MsgInvalidID
}

type identifiedPayload struct {
	ID   string `param:"id" json:"id" validate:"required"`
	Name string `json:"name"`
}

func (p *identifiedPayload) Validate() error {
	return validation.Struct(p)
}

func (p *identifiedPayload) Identifier() string {
	return p.ID
}

type rejectingPayload struct {
	Name string `json:"name"`
}

func (p *rejectingPayload) Validate() error {
	return validation.KeyedValidationError{
		Key:    i18n.MsgUserNothingToUpdate,
		Errors: validation.CustomValidationErrors{{Field: "name", Message: "nope"}},
	}
}

func init() {
	validation.MustRegisterEnum("sample_level", level("LOW"), level("HIGH"))
}

func newContext(body string, tag ...string) echo.Context {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if len(tag) > 0 {
		lang, _ := i18n.ParseTag(tag[0])
		req = req.WithContext(i18n.WithTag(req.Context(), lang))
	}
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func asHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

func fields(httpErr *errs.HTTPError) map[string]string {
	out := map[string]string{}
	for _, fe := range httpErr.Errors {
		out[fe.Field] = fe.Error
	}
	return out
}

func TestInSet(t *testing.T) {
	convey.Convey("Given an allow-list", t, func() {
		convey.Convey("Then membership is exact and case sensitive", func() {
			convey.So(validation.InSet("ADMIN", "ADMIN", "USER"), convey.ShouldBeTrue)
			convey.So(validation.InSet("admin", "ADMIN", "USER"), convey.ShouldBeFalse)
			convey.So(validation.InSet("GUEST", "ADMIN", "USER"), convey.ShouldBeFalse)
			convey.So(validation.InSet(""), convey.ShouldBeFalse)
		})
	})
}

func TestRegisterEnum(t *testing.T) {
	convey.Convey("Given a registered enum tag", t, func() {
		type rule struct {
			Value string `validate:"sample_level"`
		}

		convey.Convey("Then listed values pass", func() {
			convey.So(validation.Struct(&rule{Value: "HIGH"}), convey.ShouldBeNil)
		})

		convey.Convey("Then other values fail", func() {
			convey.So(validation.Struct(&rule{Value: "MEDIUM"}), convey.ShouldNotBeNil)
		})

		convey.Convey("Then registering the same tag again replaces the allow-list", func() {
			convey.So(validation.RegisterEnum("sample_other", "A"), convey.ShouldBeNil)
			convey.So(validation.RegisterEnum("sample_other", "A", "B"), convey.ShouldBeNil)
			type other struct {
				Value string `validate:"sample_other"`
			}
			convey.So(validation.Struct(&other{Value: "B"}), convey.ShouldBeNil)
		})
	})
}

func TestBindAndValidate(t *testing.T) {
	convey.Convey("Given a JSON request", t, func() {
		convey.Convey("When every field is valid", func() {
			payload := &samplePayload{}
			err := validation.BindAndValidate(newContext(`{"name":"Arroz","score":0,"level":"LOW"}`), payload)

			convey.Convey("Then the payload is bound", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(payload.Name, convey.ShouldEqual, "Arroz")
				convey.So(*payload.Score, convey.ShouldEqual, 0)
				convey.So(payload.Level, convey.ShouldEqual, level("LOW"))
			})
		})

		convey.Convey("When fields are missing", func() {
			err := validation.BindAndValidate(newContext(`{}`), &samplePayload{})
			httpErr := asHTTPError(err)

			convey.Convey("Then a localized 400 lists each field", func() {
				convey.So(httpErr, convey.ShouldNotBeNil)
				convey.So(httpErr.Status, convey.ShouldEqual, http.StatusBadRequest)
				convey.So(httpErr.Kind, convey.ShouldEqual, errs.KindValidation)
				convey.So(httpErr.Message, convey.ShouldEqual, "Dados inválidos.")
				convey.So(fields(httpErr), convey.ShouldContainKey, "name")
				convey.So(fields(httpErr), convey.ShouldContainKey, "score")
				convey.So(fields(httpErr)["level"], convey.ShouldEqual, "is required")
			})
		})

		convey.Convey("When the name is only whitespace", func() {
			err := validation.BindAndValidate(newContext(`{"name":"   ","score":1,"level":"LOW"}`), &samplePayload{})

			convey.Convey("Then it is rejected as blank", func() {
				convey.So(fields(asHTTPError(err))["name"], convey.ShouldEqual, "must not be blank")
			})
		})

		convey.Convey("When an enum value is outside its allow-list", func() {
			err := validation.BindAndValidate(newContext(`{"name":"x","score":1,"level":"MEDIUM"}`), &samplePayload{})

			convey.Convey("Then the message names the allowed values", func() {
				convey.So(fields(asHTTPError(err))["level"], convey.ShouldEqual, "must be one of: LOW, HIGH")
			})
		})

		convey.Convey("When a number arrives as a string", func() {
			err := validation.BindAndValidate(newContext(`{"name":"x","score":"2","level":"LOW"}`), &samplePayload{})
			httpErr := asHTTPError(err)

			convey.Convey("Then it is a 400, not a silent coercion", func() {
				convey.So(httpErr, convey.ShouldNotBeNil)
				convey.So(httpErr.Status, convey.ShouldEqual, http.StatusBadRequest)
				convey.So(httpErr.Errors, convey.ShouldNotBeEmpty)
			})
		})

		convey.Convey("When the body is malformed", func() {
			err := validation.BindAndValidate(newContext(`{"name":`), &samplePayload{})

			convey.Convey("Then it is a 400", func() {
				convey.So(asHTTPError(err).Status, convey.ShouldEqual, http.StatusBadRequest)
			})
		})

		convey.Convey("When the payload chooses its own message", func() {
			err := validation.BindAndValidate(newContext(`{"id":""}`), &keyedPayload{})

			convey.Convey("Then that message is used", func() {
				convey.So(asHTTPError(err).Message, convey.ShouldEqual, "Campo 'id' inválido ou ausente.")
			})
		})

		convey.Convey("When the request language is English", func() {
			err := validation.BindAndValidate(newContext(`{}`, "en-US"), &samplePayload{})

			convey.Convey("Then the message is English", func() {
				convey.So(asHTTPError(err).Message, convey.ShouldEqual, "Invalid data.")
			})
		})
	})
}

func TestBindJSONKinds(t *testing.T) {
	convey.Convey("Given a JSON array where an object is expected", t, func() {
		err := validation.BindAndValidate(newContext(`[1,2]`), &samplePayload{})
		httpErr := asHTTPError(err)

		convey.Convey("Then the error names JSON kinds, not Go types", func() {
			convey.So(httpErr, convey.ShouldNotBeNil)
			convey.So(fields(httpErr)["body"], convey.ShouldEqual, "must be of type object, got array")
		})
	})
}

func TestBindPathID(t *testing.T) {
	withPathID := func(body, id string) echo.Context {
		c := newContext(body)
		c.SetParamNames("id")
		c.SetParamValues(id)
		return c
	}

	convey.Convey("Given a route with an :id segment", t, func() {
		convey.Convey("When the body has no id", func() {
			payload := &identifiedPayload{}
			err := validation.BindAndValidate(withPathID(`{"name":"x"}`, "a"), payload)

			convey.Convey("Then the path id is used", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(payload.ID, convey.ShouldEqual, "a")
			})
		})

		convey.Convey("When the body repeats the same id", func() {
			err := validation.BindAndValidate(withPathID(`{"id":"a","name":"x"}`, "a"), &identifiedPayload{})

			convey.So(err, convey.ShouldBeNil)
		})

		convey.Convey("When the body names another record", func() {
			err := validation.BindAndValidate(withPathID(`{"id":"b","name":"x"}`, "a"), &identifiedPayload{})
			httpErr := asHTTPError(err)

			convey.Convey("Then it is rejected", func() {
				convey.So(httpErr, convey.ShouldNotBeNil)
				convey.So(httpErr.Status, convey.ShouldEqual, http.StatusBadRequest)
				convey.So(httpErr.Message, convey.ShouldEqual, "Campo 'id' inválido ou ausente.")
				convey.So(fields(httpErr), convey.ShouldContainKey, "id")
			})
		})
	})
}

func TestKeyedValidationError(t *testing.T) {
	convey.Convey("Given a payload rejected with its own message key", t, func() {
		err := validation.BindAndValidate(newContext(`{"name":"x"}`), &rejectingPayload{})
		httpErr := asHTTPError(err)

		convey.Convey("Then the key picks the message and the field errors are kept", func() {
			convey.So(httpErr.Message, convey.ShouldEqual, "Informe 'name' ou 'password' para atualizar.")
			convey.So(fields(httpErr)["name"], convey.ShouldEqual, "nope")
		})
	})
}
