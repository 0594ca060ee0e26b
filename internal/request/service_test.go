package request_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	internal "github.com/assetdesk/asset-management/internal"
	"github.com/assetdesk/asset-management/internal/auth"
	"github.com/assetdesk/asset-management/internal/core/events"
	"github.com/assetdesk/asset-management/internal/request"
)

func TestRequest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Request Module Suite")
}

// Mock repository for testing
type mockRequestRepository struct {
	requests          map[int64]*request.Request
	createError       error
	getError          error
	updateStatusError error
	deleteError       error
	nextID            int64
}

func newMockRequestRepository() *mockRequestRepository {
	return &mockRequestRepository{
		requests: make(map[int64]*request.Request),
		nextID:   1,
	}
}

func (m *mockRequestRepository) Create(req *request.Request) error {
	if m.createError != nil {
		return m.createError
	}
	req.ID = m.nextID
	m.nextID++
	m.requests[req.ID] = req
	return nil
}

func (m *mockRequestRepository) GetByID(id int64) (*request.Request, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	req, exists := m.requests[id]
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}
	return req, nil
}

func (m *mockRequestRepository) GetByUserID(userID int64, limit, offset int) ([]*request.Request, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	var result []*request.Request
	for _, req := range m.requests {
		if req.UserID == userID {
			result = append(result, req)
		}
	}
	return result, nil
}

func (m *mockRequestRepository) GetAll(limit, offset int) ([]*request.Request, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	result := make([]*request.Request, 0, len(m.requests))
	for _, req := range m.requests {
		result = append(result, req)
	}
	return result, nil
}

func (m *mockRequestRepository) UpdateStatus(id int64, status string, processedAt time.Time) error {
	if m.updateStatusError != nil {
		return m.updateStatusError
	}
	if req, exists := m.requests[id]; exists {
		req.Status = status
		req.ProcessedAt = &processedAt
		req.UpdatedAt = time.Now()
	}
	return nil
}

func (m *mockRequestRepository) Delete(id int64) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	delete(m.requests, id)
	return nil
}

var _ = Describe("RequestService", func() {
	var (
		requestService *request.Service
		mockRepo       *mockRequestRepository
		admin          *auth.User
		owner          *auth.User
		stranger       *auth.User
		logger         *slog.Logger
	)

	newDTO := func() request.CreateRequestDTO {
		return request.CreateRequestDTO{
			FirstName:           "Rina",
			LastName:            "Lestari",
			Department:          "engineering",
			DepartmentManagerID: 7,
			AssetType:           "laptop",
			Quantity:            1,
			Description:         "Replacement for a broken machine",
		}
	}

	BeforeEach(func() {
		mockRepo = newMockRequestRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		eventBus := events.NewEventBus(logger)
		requestService = request.NewService(mockRepo, &auth.Policy{}, eventBus, logger)

		admin = &auth.User{ID: 1, Email: "admin@example.com", Role: auth.RoleAdmin}
		owner = &auth.User{ID: 3, Email: "owner@example.com", Role: auth.RoleUser}
		stranger = &auth.User{ID: 4, Email: "other@example.com", Role: auth.RoleUser}
	})

	Describe("CreateRequest", func() {
		Context("when a user submits a request", func() {
			It("should create the request in Pending status", func() {
				// When
				result, err := requestService.CreateRequest(owner, newDTO())

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(result).ToNot(BeNil())
				Expect(result.Status).To(Equal(request.StatusPending))
				Expect(result.ProcessedAt).To(BeNil())
				Expect(result.ID).To(BeNumerically(">", 0))
			})

			It("should always own the request by the submitting user", func() {
				result, err := requestService.CreateRequest(owner, newDTO())

				Expect(err).ToNot(HaveOccurred())
				Expect(result.UserID).To(Equal(owner.ID))
			})
		})

		Context("when no actor is set", func() {
			It("should deny access", func() {
				result, err := requestService.CreateRequest(nil, newDTO())

				Expect(err).To(Equal(internal.ErrAccessDenied))
				Expect(result).To(BeNil())
			})
		})

		Context("when validation fails", func() {
			It("should reject a zero quantity", func() {
				dto := newDTO()
				dto.Quantity = 0

				result, err := requestService.CreateRequest(owner, dto)

				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())
			})

			It("should reject an empty asset type", func() {
				dto := newDTO()
				dto.AssetType = ""

				result, err := requestService.CreateRequest(owner, dto)

				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())
			})
		})

		Context("when the repository fails", func() {
			It("should return the repository error", func() {
				mockRepo.createError = errors.New("database error")

				result, err := requestService.CreateRequest(owner, newDTO())

				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())
			})
		})
	})

	Describe("SetStatus", func() {
		var pendingID int64

		BeforeEach(func() {
			created, err := requestService.CreateRequest(owner, newDTO())
			Expect(err).ToNot(HaveOccurred())
			pendingID = created.ID
		})

		Context("when an administrator approves a pending request", func() {
			It("should move the request to Approved and stamp processed_at", func() {
				// When
				result, err := requestService.SetStatus(admin, pendingID, request.UpdateStatusDTO{Status: request.StatusApproved})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(result.Status).To(Equal(request.StatusApproved))
				Expect(result.ProcessedAt).ToNot(BeNil())
			})
		})

		Context("when an administrator rejects a pending request", func() {
			It("should move the request to Rejected", func() {
				result, err := requestService.SetStatus(admin, pendingID, request.UpdateStatusDTO{Status: request.StatusRejected})

				Expect(err).ToNot(HaveOccurred())
				Expect(result.Status).To(Equal(request.StatusRejected))
			})
		})

		Context("when the request was already processed", func() {
			It("should refuse to approve a rejected request", func() {
				// Given
				_, err := requestService.SetStatus(admin, pendingID, request.UpdateStatusDTO{Status: request.StatusRejected})
				Expect(err).ToNot(HaveOccurred())

				// When
				result, err := requestService.SetStatus(admin, pendingID, request.UpdateStatusDTO{Status: request.StatusApproved})

				// Then
				Expect(err).To(Equal(internal.ErrAlreadyProcessed))
				Expect(result).To(BeNil())
			})

			It("should refuse to re-approve an approved request", func() {
				_, err := requestService.SetStatus(admin, pendingID, request.UpdateStatusDTO{Status: request.StatusApproved})
				Expect(err).ToNot(HaveOccurred())

				result, err := requestService.SetStatus(admin, pendingID, request.UpdateStatusDTO{Status: request.StatusApproved})

				Expect(err).To(Equal(internal.ErrAlreadyProcessed))
				Expect(result).To(BeNil())
			})

			It("should refuse to move a processed request back to Pending", func() {
				_, err := requestService.SetStatus(admin, pendingID, request.UpdateStatusDTO{Status: request.StatusApproved})
				Expect(err).ToNot(HaveOccurred())

				result, err := requestService.SetStatus(admin, pendingID, request.UpdateStatusDTO{Status: request.StatusPending})

				Expect(err).To(Equal(internal.ErrAlreadyProcessed))
				Expect(result).To(BeNil())
			})
		})

		Context("when a non-administrator decides a request", func() {
			It("should deny even the request owner", func() {
				result, err := requestService.SetStatus(owner, pendingID, request.UpdateStatusDTO{Status: request.StatusApproved})

				Expect(err).To(Equal(internal.ErrAdminRequired))
				Expect(result).To(BeNil())
			})
		})

		Context("when the status is not a known state", func() {
			It("should return a validation error", func() {
				result, err := requestService.SetStatus(admin, pendingID, request.UpdateStatusDTO{Status: "Shipped"})

				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())
			})
		})

		Context("when the request does not exist", func() {
			It("should return not found", func() {
				result, err := requestService.SetStatus(admin, 999, request.UpdateStatusDTO{Status: request.StatusApproved})

				Expect(err).To(Equal(internal.ErrRequestNotFound))
				Expect(result).To(BeNil())
			})
		})
	})

	Describe("GetRequestByID", func() {
		var requestID int64

		BeforeEach(func() {
			created, err := requestService.CreateRequest(owner, newDTO())
			Expect(err).ToNot(HaveOccurred())
			requestID = created.ID
		})

		It("should allow the owner to view their request", func() {
			result, err := requestService.GetRequestByID(owner, requestID)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).To(Equal(requestID))
		})

		It("should allow an administrator to view any request", func() {
			result, err := requestService.GetRequestByID(admin, requestID)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).To(Equal(requestID))
		})

		It("should deny another regular user", func() {
			result, err := requestService.GetRequestByID(stranger, requestID)

			Expect(err).To(Equal(internal.ErrAccessDenied))
			Expect(result).To(BeNil())
		})

		It("should return not found for a missing request", func() {
			result, err := requestService.GetRequestByID(admin, 999)

			Expect(err).To(Equal(internal.ErrRequestNotFound))
			Expect(result).To(BeNil())
		})

		It("should surface a repository failure as an internal error", func() {
			mockRepo.getError = errors.New("connection refused")

			result, err := requestService.GetRequestByID(admin, requestID)

			Expect(result).To(BeNil())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
		})
	})

	Describe("GetMyRequests", func() {
		BeforeEach(func() {
			_, err := requestService.CreateRequest(owner, newDTO())
			Expect(err).ToNot(HaveOccurred())
			_, err = requestService.CreateRequest(stranger, newDTO())
			Expect(err).ToNot(HaveOccurred())
		})

		It("should only return the actor's own requests", func() {
			result, err := requestService.GetMyRequests(owner, 10, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(1))
			Expect(result[0].UserID).To(Equal(owner.ID))
		})
	})

	Describe("GetAllRequests", func() {
		BeforeEach(func() {
			_, err := requestService.CreateRequest(owner, newDTO())
			Expect(err).ToNot(HaveOccurred())
			_, err = requestService.CreateRequest(stranger, newDTO())
			Expect(err).ToNot(HaveOccurred())
		})

		It("should return every request for an administrator", func() {
			result, err := requestService.GetAllRequests(admin, 10, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(2))
		})

		It("should deny regular users", func() {
			result, err := requestService.GetAllRequests(owner, 10, 0)

			Expect(err).To(Equal(internal.ErrAdminRequired))
			Expect(result).To(BeNil())
		})
	})

	Describe("DeleteRequest", func() {
		var requestID int64

		BeforeEach(func() {
			created, err := requestService.CreateRequest(owner, newDTO())
			Expect(err).ToNot(HaveOccurred())
			requestID = created.ID
		})

		It("should delete for an administrator", func() {
			err := requestService.DeleteRequest(admin, requestID)
			Expect(err).ToNot(HaveOccurred())

			_, err = requestService.GetRequestByID(admin, requestID)
			Expect(err).To(Equal(internal.ErrRequestNotFound))
		})

		It("should deny the request owner", func() {
			err := requestService.DeleteRequest(owner, requestID)
			Expect(err).To(Equal(internal.ErrAdminRequired))
		})
	})
})

var _ = Describe("Request state machine", func() {
	It("should treat Approved and Rejected as terminal", func() {
		approved := &request.Request{Status: request.StatusApproved}
		rejected := &request.Request{Status: request.StatusRejected}
		pending := &request.Request{Status: request.StatusPending}

		Expect(approved.IsTerminal()).To(BeTrue())
		Expect(rejected.IsTerminal()).To(BeTrue())
		Expect(pending.IsTerminal()).To(BeFalse())
	})

	It("should only allow transitions out of Pending", func() {
		pending := &request.Request{Status: request.StatusPending}
		approved := &request.Request{Status: request.StatusApproved}

		Expect(pending.CanTransitionTo(request.StatusApproved)).To(BeTrue())
		Expect(pending.CanTransitionTo(request.StatusRejected)).To(BeTrue())
		Expect(approved.CanTransitionTo(request.StatusRejected)).To(BeFalse())
		Expect(approved.CanTransitionTo(request.StatusPending)).To(BeFalse())
	})

	It("should reject unknown states", func() {
		pending := &request.Request{Status: request.StatusPending}

		Expect(pending.CanTransitionTo("Shipped")).To(BeFalse())
	})
})
