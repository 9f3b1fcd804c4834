package service_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/deppfellow/nutri-api/internal/errs"
	"github.com/deppfellow/nutri-api/internal/i18n"
	"github.com/deppfellow/nutri-api/internal/metrics"
	"github.com/deppfellow/nutri-api/internal/model"
	"github.com/deppfellow/nutri-api/internal/repository/repositorytest"
	"github.com/deppfellow/nutri-api/internal/service"
	"github.com/smartystreets/goconvey/convey"
	"golang.org/x/crypto/bcrypt"
)

func float(v float64) *float64 { return &v }

func str(v string) *string { return &v }

func httpError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

func rice() model.FoodFields {
	return model.FoodFields{NameFood: "Arroz", Protein: float(2.5), Carbohydrate: float(28), Fat: float(0.3)}
}

type welcomeCall struct {
	to, name, lang string
}

type fakeEnqueuer struct {
	mu    sync.Mutex
	calls []welcomeCall
	err   error
}

func (f *fakeEnqueuer) EnqueueWelcomeEmail(_ context.Context, to, name, lang string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, welcomeCall{to, name, lang})
	return f.err
}

func TestFoodService(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given an empty food store", t, func() {
		store := repositorytest.NewFoodStore()
		svc := service.NewFoodService(store)

		convey.Convey("Listing returns an empty slice", func() {
			foods, err := svc.List(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(foods, convey.ShouldNotBeNil)
			convey.So(foods, convey.ShouldBeEmpty)
		})

		convey.Convey("When a food is created", func() {
			created, err := svc.Create(ctx, &model.CreateFoodPayload{FoodFields: rice()})
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("It gets an id and is listed", func() {
				convey.So(created.ID.String(), convey.ShouldNotBeEmpty)
				foods, _ := svc.List(ctx)
				convey.So(foods, convey.ShouldHaveLength, 1)
				convey.So(foods[0].NameFood, convey.ShouldEqual, "Arroz")
			})

			convey.Convey("Updating twice with the same payload is idempotent", func() {
				fields := rice()
				fields.NameFood = "Arroz integral"
				payload := &model.UpdateFoodPayload{ID: created.ID.String(), FoodFields: fields}

				first, err := svc.Update(ctx, payload)
				convey.So(err, convey.ShouldBeNil)
				second, err := svc.Update(ctx, payload)
				convey.So(err, convey.ShouldBeNil)

				convey.So(second.NameFood, convey.ShouldEqual, first.NameFood)
				convey.So(second.Protein, convey.ShouldEqual, first.Protein)
				convey.So(store.Len(), convey.ShouldEqual, 1)
			})

			convey.Convey("Deleting returns the removed food", func() {
				deleted, err := svc.Delete(ctx, &model.DeleteFoodPayload{ID: created.ID.String()})
				convey.So(err, convey.ShouldBeNil)
				convey.So(deleted.NameFood, convey.ShouldEqual, "Arroz")
				convey.So(store.Len(), convey.ShouldEqual, 0)
			})
		})

		convey.Convey("Deleting an unknown id is a localized 404", func() {
			_, err := svc.Delete(ctx, &model.DeleteFoodPayload{ID: "nonexistent"})
			httpErr := httpError(err)

			convey.So(httpErr.Status, convey.ShouldEqual, http.StatusNotFound)
			convey.So(httpErr.Code, convey.ShouldEqual, "FOOD_NOT_FOUND")
			convey.So(httpErr.Message, convey.ShouldEqual, "Alimento não encontrado.")
		})

		convey.Convey("Updating an unknown id is a 404 in the request language", func() {
			en := i18n.WithTag(ctx, i18n.English)
			_, err := svc.Update(en, &model.UpdateFoodPayload{ID: "0b7f4d5e-6c1a-4e8f-9a2b-3c4d5e6f7a8b", FoodFields: rice()})

			convey.So(httpError(err).Message, convey.ShouldEqual, "Food not found.")
		})

		convey.Convey("A failing store yields a generic localized 500", func() {
			store.Err = errors.New("dial tcp: connection refused")
			_, err := svc.List(ctx)
			httpErr := httpError(err)

			convey.So(httpErr.Status, convey.ShouldEqual, http.StatusInternalServerError)
			convey.So(httpErr.Kind, convey.ShouldEqual, errs.KindStore)
			convey.So(httpErr.Message, convey.ShouldEqual, "Erro ao buscar alimentos")
			convey.So(errors.Is(err, store.Err), convey.ShouldBeTrue)
		})
	})
}

func TestUserService(t *testing.T) {
	ctx := context.Background()

	newPayload := func(email string) *model.CreateUserPayload {
		return &model.CreateUserPayload{Name: "Ana", Email: email, Password: "s3cret!", Role: model.RoleUser}
	}

	convey.Convey("Given a user service", t, func() {
		store := repositorytest.NewUserStore()
		enqueuer := &fakeEnqueuer{}
		svc := service.NewUserService(store, bcrypt.MinCost, enqueuer, metrics.NewManager())

		convey.Convey("When a user is created", func() {
			user, err := svc.Create(i18n.WithTag(ctx, i18n.English), newPayload("ana@example.com"))
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("The password is stored as a bcrypt hash", func() {
				convey.So(user.PasswordHash, convey.ShouldNotEqual, "s3cret!")
				convey.So(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret!")), convey.ShouldBeNil)
			})

			convey.Convey("Reserved metrics stay empty", func() {
				convey.So(user.BMR, convey.ShouldBeNil)
				convey.So(user.TDEE, convey.ShouldBeNil)
				convey.So(user.RCI, convey.ShouldBeNil)
			})

			convey.Convey("The welcome email is scheduled in the request language", func() {
				convey.So(enqueuer.calls, convey.ShouldResemble, []welcomeCall{{"ana@example.com", "Ana", "en-US"}})
			})

			convey.Convey("A second user with the same email is a 409", func() {
				_, err := svc.Create(ctx, newPayload("ana@example.com"))
				httpErr := httpError(err)

				convey.So(httpErr.Status, convey.ShouldEqual, http.StatusConflict)
				convey.So(httpErr.Code, convey.ShouldEqual, "USER_ALREADY_EXISTS")
				convey.So(httpErr.Message, convey.ShouldEqual, "E-mail já cadastrado.")
				convey.So(store.Len(), convey.ShouldEqual, 1)
			})

			convey.Convey("The same email in another case is a 409 too", func() {
				_, err := svc.Create(ctx, newPayload("  ANA@Example.COM "))

				convey.So(httpError(err).Status, convey.ShouldEqual, http.StatusConflict)
				convey.So(store.Len(), convey.ShouldEqual, 1)
			})

			convey.Convey("Updating only the name keeps the password", func() {
				updated, err := svc.Update(ctx, &model.UpdateUserPayload{ID: user.ID.String(), Name: str("Ana Maria")})
				convey.So(err, convey.ShouldBeNil)
				convey.So(updated.Name, convey.ShouldEqual, "Ana Maria")
				convey.So(updated.PasswordHash, convey.ShouldEqual, user.PasswordHash)
			})

			convey.Convey("Updating the password rehashes it", func() {
				updated, err := svc.Update(ctx, &model.UpdateUserPayload{ID: user.ID.String(), Password: str("n3w")})
				convey.So(err, convey.ShouldBeNil)
				convey.So(updated.Name, convey.ShouldEqual, "Ana")
				convey.So(bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("n3w")), convey.ShouldBeNil)
			})

			convey.Convey("Deleting returns the removed user", func() {
				deleted, err := svc.Delete(ctx, &model.DeleteUserPayload{ID: user.ID.String()})
				convey.So(err, convey.ShouldBeNil)
				convey.So(deleted.Email, convey.ShouldEqual, "ana@example.com")

				users, _ := svc.List(ctx)
				convey.So(users, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("A failed enqueue does not fail the registration", func() {
			enqueuer.err = errors.New("redis down")
			user, err := svc.Create(ctx, newPayload("bia@example.com"))

			convey.So(err, convey.ShouldBeNil)
			convey.So(user, convey.ShouldNotBeNil)
			convey.So(store.Len(), convey.ShouldEqual, 1)
		})

		convey.Convey("Updating an unknown user is a 404", func() {
			_, err := svc.Update(ctx, &model.UpdateUserPayload{ID: "nonexistent", Name: str("x")})
			convey.So(httpError(err).Message, convey.ShouldEqual, "Usuário não encontrado.")
		})
	})

	convey.Convey("Given a user service without jobs", t, func() {
		svc := service.NewUserService(repositorytest.NewUserStore(), 0, nil, nil)

		convey.Convey("Creating still works", func() {
			_, err := svc.Create(ctx, newPayload("ana@example.com"))
			convey.So(err, convey.ShouldBeNil)
		})
	})
}
