package rest_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "REST Transport Suite")
}

var _ = Describe("OpenAPI document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("should be a valid OpenAPI 3 document", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("should document every route the server registers", func() {
		for _, path := range []string{
			"/health",
			"/auth/login",
			"/auth/refresh",
			"/users",
			"/users/me",
			"/users/{id}/role",
			"/assets",
			"/assets/{id}",
			"/requests",
			"/requests/my-requests",
			"/requests/{id}",
			"/requests/{id}/status",
			"/categories",
		} {
			Expect(doc.Paths.Find(path)).NotTo(BeNil(), "missing path %s", path)
		}
	})

	It("should keep the request status enum aligned with the workflow", func() {
		item := doc.Paths.Find("/requests/{id}/status")
		Expect(item).NotTo(BeNil())

		body := item.Put.RequestBody.Value.Content.Get("application/json")
		Expect(body).NotTo(BeNil())

		enum := body.Schema.Value.Properties["status"].Value.Enum
		Expect(enum).To(ConsistOf("Approved", "Rejected"))
	})
})
