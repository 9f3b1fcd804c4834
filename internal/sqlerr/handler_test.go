package sqlerr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/nutri-api/internal/errs"
	"github.com/deppfellow/nutri-api/internal/sqlerr"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/smartystreets/goconvey/convey"
	"gorm.io/gorm"
)

func httpError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

func TestHandleError(t *testing.T) {
	convey.Convey("Given database errors", t, func() {
		convey.Convey("A unique violation is a 409 naming the column", func() {
			pgErr := &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "idx_users_email"}
			httpErr := httpError(sqlerr.HandleError(fmt.Errorf("insert: %w", pgErr)))

			convey.So(httpErr.Status, convey.ShouldEqual, http.StatusConflict)
			convey.So(httpErr.Kind, convey.ShouldEqual, errs.KindConflict)
			convey.So(httpErr.Code, convey.ShouldEqual, "USER_ALREADY_EXISTS")
			convey.So(httpErr.Message, convey.ShouldEqual, "A User with this Email already exists")
			convey.So(errors.Is(httpErr, pgErr), convey.ShouldBeTrue)
		})

		convey.Convey("A not null violation is a 400 with a field error", func() {
			pgErr := &pgconn.PgError{Code: "23502", TableName: "foods", ColumnName: "name_food"}
			httpErr := httpError(sqlerr.HandleError(pgErr))

			convey.So(httpErr.Status, convey.ShouldEqual, http.StatusBadRequest)
			convey.So(httpErr.Code, convey.ShouldEqual, "FOOD_REQUIRED")
			convey.So(httpErr.Message, convey.ShouldEqual, "The Name Food is required")
			convey.So(httpErr.Errors, convey.ShouldResemble, []errs.FieldError{{Field: "name_food", Error: "is required"}})
		})

		convey.Convey("A check violation is a 400", func() {
			pgErr := &pgconn.PgError{Code: "23514", TableName: "users", ConstraintName: "users_role_check"}
			convey.So(httpError(sqlerr.HandleError(pgErr)).Status, convey.ShouldEqual, http.StatusBadRequest)
		})

		convey.Convey("Malformed input for a uuid column is a 404", func() {
			pgErr := &pgconn.PgError{Code: "22P02"}
			convey.So(httpError(sqlerr.HandleError(pgErr)).Status, convey.ShouldEqual, http.StatusNotFound)
		})

		convey.Convey("No rows is a 404", func() {
			convey.So(httpError(sqlerr.HandleError(gorm.ErrRecordNotFound)).Status, convey.ShouldEqual, http.StatusNotFound)
		})

		convey.Convey("Anything else is a 500 store error keeping the cause", func() {
			cause := errors.New("connection reset")
			httpErr := httpError(sqlerr.HandleError(cause))

			convey.So(httpErr.Status, convey.ShouldEqual, http.StatusInternalServerError)
			convey.So(httpErr.Kind, convey.ShouldEqual, errs.KindStore)
			convey.So(httpErr.Message, convey.ShouldNotContainSubstring, "connection reset")
			convey.So(errors.Is(httpErr, cause), convey.ShouldBeTrue)
		})

		convey.Convey("An HTTP error passes through", func() {
			original := errs.NewNotFoundError("gone", true, nil)
			convey.So(sqlerr.HandleError(original), convey.ShouldEqual, original)
		})
	})
}

func TestErrCode(t *testing.T) {
	convey.Convey("Given wrapped driver errors", t, func() {
		convey.So(sqlerr.ErrCode(&pgconn.PgError{Code: "23505"}), convey.ShouldEqual, sqlerr.UniqueViolation)
		convey.So(sqlerr.ErrCode(&pgconn.PgError{Code: "08006"}), convey.ShouldEqual, sqlerr.ConnectionFailure)
		convey.So(sqlerr.ErrCode(errors.New("plain")), convey.ShouldEqual, sqlerr.Other)
		convey.So(sqlerr.IsUniqueViolation(sqlerr.ConvertPgError(&pgconn.PgError{Code: "23505"})), convey.ShouldBeTrue)
	})
}

func TestMapSeverity(t *testing.T) {
	convey.Convey("Given server severities", t, func() {
		convey.So(sqlerr.MapSeverity("FATAL"), convey.ShouldEqual, sqlerr.SeverityFatal)
		convey.So(sqlerr.MapSeverity("bogus"), convey.ShouldEqual, sqlerr.SeverityError)
	})
}
