package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Request access middleware", func() {
	var (
		policy  *Policy
		owner   *User
		admin   *User
		visitor *User
	)

	ginkgo.BeforeEach(func() {
		policy = &Policy{}
		owner = &User{ID: 1, Email: "rina.lestari@mail.com", Role: RoleUser}
		admin = &User{ID: 2, Email: "budi.santoso@mail.com", Role: RoleAdmin}
		visitor = &User{ID: 3, Email: "sari.widodo@mail.com", Role: RoleUser}
	})

	// Routes a GET /requests/{id} through the access middleware with the
	// given principal and owner lookup. The handler answers 404, standing
	// in for the service's not found response.
	serve := func(u *User, lookup func(ctx context.Context, id int64) (int64, error), target string) *httptest.ResponseRecorder {
		router := chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ContextUserKey, u)))
			})
		})
		router.With(requireRequestOwner(policy, lookup)).Get("/requests/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		return rec
	}

	ownedBy := func(ownerID int64) func(ctx context.Context, id int64) (int64, error) {
		return func(ctx context.Context, id int64) (int64, error) {
			return ownerID, nil
		}
	}

	ginkgo.Context("when the request exists", func() {
		ginkgo.It("should let the owner through", func() {
			rec := serve(owner, ownedBy(owner.ID), "/requests/10")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNotFound))
		})

		ginkgo.It("should let an administrator through", func() {
			rec := serve(admin, ownedBy(owner.ID), "/requests/10")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNotFound))
		})

		ginkgo.It("should reject any other user", func() {
			rec := serve(visitor, ownedBy(owner.ID), "/requests/10")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})
	})

	ginkgo.Context("when the request does not exist", func() {
		missing := func(ctx context.Context, id int64) (int64, error) {
			return 0, sql.ErrNoRows
		}

		ginkgo.It("should fall through so the handler answers not found", func() {
			rec := serve(owner, missing, "/requests/999")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNotFound))
		})

		ginkgo.It("should answer not found rather than forbidden for a non-owner", func() {
			rec := serve(visitor, missing, "/requests/999")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNotFound))
		})
	})

	ginkgo.Context("when the owner lookup fails", func() {
		ginkgo.It("should answer an internal server error", func() {
			failing := func(ctx context.Context, id int64) (int64, error) {
				return 0, errors.New("connection refused")
			}

			rec := serve(owner, failing, "/requests/10")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusInternalServerError))
		})
	})

	ginkgo.Context("without an authenticated principal", func() {
		ginkgo.It("should answer unauthorized", func() {
			rec := serve(nil, ownedBy(owner.ID), "/requests/10")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})
})
