package auth

import (
	"log/slog"
	"net/http"
	"net/http/httptest"

	internal "github.com/frahmantamala/enterprise-access/internal"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("RBACAuthorization", func() {
	var (
		rbac    *RBACAuthorization
		next    http.Handler
		reached bool
	)

	ginkgo.BeforeEach(func() {
		rbac = NewRBACAuthorization(slog.Default())
		reached = false
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			w.WriteHeader(http.StatusOK)
		})
	})

	request := func(user *internal.AuthUser) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		if user != nil {
			req = req.WithContext(internal.ContextWithUser(req.Context(), user))
		}
		return req
	}

	ginkgo.It("rejects requests without an authenticated user", func() {
		rec := httptest.NewRecorder()
		rbac.RequirePermissions("READ_USERS")(next).ServeHTTP(rec, request(nil))

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(reached).To(gomega.BeFalse())
	})

	ginkgo.It("rejects a user missing the required slug", func() {
		user := &internal.AuthUser{ID: "user-1", Permissions: []string{"READ_ROLES"}}

		rec := httptest.NewRecorder()
		rbac.RequirePermissions("READ_USERS")(next).ServeHTTP(rec, request(user))

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		gomega.Expect(reached).To(gomega.BeFalse())
	})

	ginkgo.It("passes a user holding one of the required slugs", func() {
		user := &internal.AuthUser{ID: "user-1", Permissions: []string{"READ_USERS"}}

		rec := httptest.NewRecorder()
		rbac.RequirePermissions("READ_USERS", "CREATE_USERS")(next).ServeHTTP(rec, request(user))

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(reached).To(gomega.BeTrue())
	})

	ginkgo.It("only requires authentication when no slugs are declared", func() {
		user := &internal.AuthUser{ID: "user-1"}

		rec := httptest.NewRecorder()
		rbac.RequirePermissions()(next).ServeHTTP(rec, request(user))

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(reached).To(gomega.BeTrue())
	})
})
