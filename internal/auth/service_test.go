package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock UserRepository for testing
type mockUserRepository struct {
	credentials   map[string]string // email -> password hash
	userIDs       map[string]int64  // email -> userID
	roles         map[string]string // email -> role
	usersByID     map[int64]*User
	returnError   bool
	errorToReturn error
}

func newMockUserRepository() *mockUserRepository {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.DefaultCost)

	return &mockUserRepository{
		credentials: map[string]string{
			"user@example.com":  string(hashedPassword),
			"admin@example.com": string(hashedPassword),
		},
		userIDs: map[string]int64{
			"user@example.com":  1,
			"admin@example.com": 2,
		},
		roles: map[string]string{
			"user@example.com":  RoleUser,
			"admin@example.com": RoleAdmin,
		},
		usersByID: map[int64]*User{
			1: {ID: 1, Email: "user@example.com", Role: RoleUser},
			2: {ID: 2, Email: "admin@example.com", Role: RoleAdmin},
		},
	}
}

func (m *mockUserRepository) GetCredentialsForEmail(email string) (string, int64, string, error) {
	if m.returnError {
		return "", 0, "", m.errorToReturn
	}
	if hash, exists := m.credentials[email]; exists {
		return hash, m.userIDs[email], m.roles[email], nil
	}
	return "", 0, "", errors.New("user not found")
}

func (m *mockUserRepository) GetUserByID(userID int64) (*User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	if user, exists := m.usersByID[userID]; exists {
		return user, nil
	}
	return nil, errors.New("user not found")
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		authService *Service
		mockRepo    *mockUserRepository
		tokenGen    *JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen = NewJWTTokenGenerator("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
		authService = NewService(mockRepo, tokenGen, bcrypt.MinCost)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("with valid credentials", func() {
			ginkgo.It("should return a token pair", func() {
				tokens, err := authService.Authenticate(LoginDTO{
					Email:    "user@example.com",
					Password: "correct_password",
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.RefreshToken).ToNot(gomega.BeEmpty())
			})

			ginkgo.It("should embed the user identity and role in the access token", func() {
				tokens, err := authService.Authenticate(LoginDTO{
					Email:    "admin@example.com",
					Password: "correct_password",
				})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := authService.ValidateAccessToken(tokens.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.UserID).To(gomega.Equal("2"))
				gomega.Expect(claims.Email).To(gomega.Equal("admin@example.com"))
				gomega.Expect(claims.Role).To(gomega.Equal(RoleAdmin))
			})
		})

		ginkgo.Context("with a wrong password", func() {
			ginkgo.It("should return invalid credentials", func() {
				tokens, err := authService.Authenticate(LoginDTO{
					Email:    "user@example.com",
					Password: "wrong_password",
				})

				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
				gomega.Expect(tokens.AccessToken).To(gomega.BeEmpty())
			})
		})

		ginkgo.Context("with an unknown email", func() {
			ginkgo.It("should return invalid credentials without leaking existence", func() {
				_, err := authService.Authenticate(LoginDTO{
					Email:    "nobody@example.com",
					Password: "correct_password",
				})

				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
			})
		})

		ginkgo.Context("when the repository fails", func() {
			ginkgo.It("should return invalid credentials", func() {
				mockRepo.returnError = true
				mockRepo.errorToReturn = errors.New("database down")

				_, err := authService.Authenticate(LoginDTO{
					Email:    "user@example.com",
					Password: "correct_password",
				})

				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
			})
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("should issue a fresh pair from a valid refresh token", func() {
			tokens, err := authService.Authenticate(LoginDTO{
				Email:    "user@example.com",
				Password: "correct_password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			refreshed, err := authService.RefreshTokens(tokens.RefreshToken)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(refreshed.AccessToken).ToNot(gomega.BeEmpty())
			gomega.Expect(refreshed.RefreshToken).ToNot(gomega.BeEmpty())
		})

		ginkgo.It("should reject a garbage token", func() {
			_, err := authService.RefreshTokens("not-a-jwt")

			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})
	})

	ginkgo.Describe("ValidateAccessToken", func() {
		ginkgo.It("should reject a token signed with the wrong secret", func() {
			otherGen := NewJWTTokenGenerator("other-access", "other-refresh", 15*time.Minute, 7*24*time.Hour)
			token, err := otherGen.GenerateAccessToken("1", "user@example.com", RoleUser)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = authService.ValidateAccessToken(token)

			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})

		ginkgo.It("should reject an expired token", func() {
			shortGen := NewJWTTokenGenerator("access-secret", "refresh-secret", -1*time.Minute, 7*24*time.Hour)
			token, err := shortGen.GenerateAccessToken("1", "user@example.com", RoleUser)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = authService.ValidateAccessToken(token)

			gomega.Expect(err).To(gomega.Equal(ErrTokenExpired))
		})
	})

	ginkgo.Describe("HashPassword", func() {
		ginkgo.It("should produce a verifiable bcrypt hash", func() {
			hash, err := authService.HashPassword("my-password")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(bcrypt.CompareHashAndPassword([]byte(hash), []byte("my-password"))).To(gomega.Succeed())
		})
	})
})
