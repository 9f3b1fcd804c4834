package errs_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/nutri-api/internal/errs"
	"github.com/smartystreets/goconvey/convey"
)

func TestHTTPError(t *testing.T) {
	convey.Convey("Given the error constructors", t, func() {
		convey.Convey("Each one sets status, code and kind", func() {
			code := "FOOD_NOT_FOUND"
			notFound := errs.NewNotFoundError("Alimento não encontrado.", true, &code)
			convey.So(notFound.Status, convey.ShouldEqual, http.StatusNotFound)
			convey.So(notFound.Code, convey.ShouldEqual, "FOOD_NOT_FOUND")
			convey.So(notFound.Kind, convey.ShouldEqual, errs.KindNotFound)

			bad := errs.NewBadRequestError("bad", false, nil, nil, nil)
			convey.So(bad.Code, convey.ShouldEqual, "BAD_REQUEST")
			convey.So(bad.Kind, convey.ShouldEqual, errs.KindValidation)

			convey.So(errs.NewConflictError("dup", true, nil).Code, convey.ShouldEqual, "CONFLICT")
			convey.So(errs.NewTooManyRequestsError("slow", time.Second).Kind, convey.ShouldEqual, errs.KindRateLimited)
			convey.So(errs.NewInternalServerError().Code, convey.ShouldEqual, "INTERNAL_SERVER_ERROR")
			convey.So(errs.NewValidationError("x", nil).Code, convey.ShouldEqual, "VALIDATION_FAILED")
		})

		convey.Convey("A 429 tells the client when to retry", func() {
			limited := errs.NewTooManyRequestsError("slow", 1500*time.Millisecond)
			convey.So(limited.Action, convey.ShouldNotBeNil)
			convey.So(limited.Action.Type, convey.ShouldEqual, errs.ActionTypeRetry)
			convey.So(limited.Action.Value, convey.ShouldEqual, "2")

			convey.So(errs.RetryAfterSeconds(0), convey.ShouldEqual, 1)
			convey.So(errs.RetryAfterSeconds(200*time.Millisecond), convey.ShouldEqual, 1)
			convey.So(errs.RetryAfterSeconds(3*time.Second), convey.ShouldEqual, 3)
		})

		convey.Convey("The cause is unwrapped but never serialized", func() {
			cause := errors.New("pq: secret details")
			storeErr := errs.NewStoreError("Erro ao buscar alimentos", cause)

			convey.So(errors.Is(storeErr, cause), convey.ShouldBeTrue)
			convey.So(storeErr.Cause(), convey.ShouldEqual, cause)

			raw, err := json.Marshal(storeErr)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(raw), convey.ShouldNotContainSubstring, "secret")
			convey.So(string(raw), convey.ShouldContainSubstring, `"kind":"store"`)
		})

		convey.Convey("WithMessage and WithCause copy the error", func() {
			original := errs.NewNotFoundError("a", false, nil)
			changed := original.WithMessage("b").WithCause(errors.New("c"))

			convey.So(original.Message, convey.ShouldEqual, "a")
			convey.So(original.Cause(), convey.ShouldBeNil)
			convey.So(changed.Message, convey.ShouldEqual, "b")
			convey.So(changed.Status, convey.ShouldEqual, http.StatusNotFound)
		})

		convey.Convey("Codes are derived from status text", func() {
			convey.So(errs.MakeUpperCaseWithUnderscores("Too Many Requests"), convey.ShouldEqual, "TOO_MANY_REQUESTS")
		})
	})
}
