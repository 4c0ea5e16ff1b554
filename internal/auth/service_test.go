package auth_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/attendance-tracker/internal"
	"github.com/frahmantamala/attendance-tracker/internal/auth"
	adminDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/admin"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

type mockAdminRepository struct {
	admins      map[string]*adminDatamodel.AdminUser
	getError    error
	createError error
	nextID      int64
}

func newMockAdminRepository() *mockAdminRepository {
	return &mockAdminRepository{admins: make(map[string]*adminDatamodel.AdminUser), nextID: 1}
}

func (m *mockAdminRepository) GetByUsername(username string) (*adminDatamodel.AdminUser, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	admin, ok := m.admins[username]
	if !ok {
		return nil, nil
	}
	return admin, nil
}

func (m *mockAdminRepository) Create(admin *adminDatamodel.AdminUser) error {
	if m.createError != nil {
		return m.createError
	}
	admin.ID = m.nextID
	m.nextID++
	m.admins[admin.Username] = admin
	return nil
}

var _ = Describe("AuthService", func() {
	var (
		service *auth.Service
		repo    *mockAdminRepository
		tokens  *auth.JWTTokenGenerator
		limiter *auth.LoginLimiter
		logger  *slog.Logger
	)

	const (
		accessSecret  = "test-access-secret-0123456789abcdef"
		refreshSecret = "test-refresh-secret-0123456789abcde"
	)

	BeforeEach(func() {
		repo = newMockAdminRepository()
		tokens = auth.NewJWTTokenGenerator(accessSecret, refreshSecret, 15*time.Minute, 7*24*time.Hour)
		limiter = auth.NewLoginLimiter(3, 5*time.Minute)
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = auth.NewService(repo, tokens, limiter, bcrypt.MinCost, logger)

		hash, err := bcrypt.GenerateFromPassword([]byte("hunter2secret"), bcrypt.MinCost)
		Expect(err).ToNot(HaveOccurred())
		repo.admins["admin"] = &adminDatamodel.AdminUser{ID: 1, Username: "admin", PasswordHash: string(hash)}
	})

	Describe("Login", func() {
		Context("with valid credentials", func() {
			It("should return a token pair that passes validation", func() {
				// When
				resp, err := service.Login(auth.LoginDTO{Username: "admin", Password: "hunter2secret"})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(resp.Username).To(Equal("admin"))
				Expect(resp.Tokens.AccessToken).ToNot(BeEmpty())
				Expect(resp.Tokens.RefreshToken).ToNot(BeEmpty())

				claims, err := service.ValidateAccessToken(resp.Tokens.AccessToken)
				Expect(err).ToNot(HaveOccurred())
				Expect(claims.AdminID).To(Equal(int64(1)))
				Expect(claims.Username).To(Equal("admin"))
			})

			It("should accept the username case-insensitively", func() {
				_, err := service.Login(auth.LoginDTO{Username: "  Admin ", Password: "hunter2secret"})

				Expect(err).ToNot(HaveOccurred())
			})
		})

		Context("with bad credentials", func() {
			It("should return the same error for wrong password and unknown user", func() {
				_, errWrongPass := service.Login(auth.LoginDTO{Username: "admin", Password: "nope"})
				_, errNoUser := service.Login(auth.LoginDTO{Username: "ghost", Password: "nope"})

				Expect(errWrongPass).To(Equal(internal.ErrInvalidCredentials))
				Expect(errNoUser).To(Equal(internal.ErrInvalidCredentials))
			})

			It("should lock the account after repeated failures", func() {
				// Given: limit of 3 attempts.
				for i := 0; i < 3; i++ {
					_, err := service.Login(auth.LoginDTO{Username: "admin", Password: "nope"})
					Expect(err).To(Equal(internal.ErrInvalidCredentials))
				}

				// When: even a correct password is refused while locked.
				_, err := service.Login(auth.LoginDTO{Username: "admin", Password: "hunter2secret"})

				// Then
				Expect(err).To(Equal(internal.ErrTooManyAttempts))
			})

			It("should reset the counter after a successful login", func() {
				_, err := service.Login(auth.LoginDTO{Username: "admin", Password: "nope"})
				Expect(err).To(HaveOccurred())
				_, err = service.Login(auth.LoginDTO{Username: "admin", Password: "hunter2secret"})
				Expect(err).ToNot(HaveOccurred())

				for i := 0; i < 2; i++ {
					_, err = service.Login(auth.LoginDTO{Username: "admin", Password: "nope"})
					Expect(err).To(Equal(internal.ErrInvalidCredentials))
				}
			})
		})

		Context("with missing fields", func() {
			It("should reject the request before touching the repository", func() {
				repo.getError = errors.New("should not be called")

				_, err := service.Login(auth.LoginDTO{Username: "", Password: ""})

				Expect(err).To(HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			})
		})
	})

	Describe("Refresh", func() {
		It("should exchange a refresh token for a new pair", func() {
			resp, err := service.Login(auth.LoginDTO{Username: "admin", Password: "hunter2secret"})
			Expect(err).ToNot(HaveOccurred())

			pair, err := service.Refresh(auth.RefreshDTO{RefreshToken: resp.Tokens.RefreshToken})

			Expect(err).ToNot(HaveOccurred())
			Expect(pair.AccessToken).ToNot(BeEmpty())
		})

		It("should reject an access token presented as a refresh token", func() {
			resp, err := service.Login(auth.LoginDTO{Username: "admin", Password: "hunter2secret"})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Refresh(auth.RefreshDTO{RefreshToken: resp.Tokens.AccessToken})

			Expect(err).To(HaveOccurred())
		})

		It("should reject garbage tokens", func() {
			_, err := service.Refresh(auth.RefreshDTO{RefreshToken: "not-a-jwt"})

			Expect(err).To(Equal(internal.ErrInvalidToken))
		})
	})

	Describe("ValidateAccessToken", func() {
		It("should reject a refresh token on the access path", func() {
			resp, err := service.Login(auth.LoginDTO{Username: "admin", Password: "hunter2secret"})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.ValidateAccessToken(resp.Tokens.RefreshToken)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("CreateAdmin", func() {
		It("should hash the password and store the account", func() {
			err := service.CreateAdmin("operator", "longenoughpass")

			Expect(err).ToNot(HaveOccurred())
			stored := repo.admins["operator"]
			Expect(stored).ToNot(BeNil())
			Expect(stored.PasswordHash).ToNot(Equal("longenoughpass"))
			Expect(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("longenoughpass"))).To(Succeed())
		})

		It("should reject short passwords", func() {
			err := service.CreateAdmin("operator", "short")

			Expect(err).To(HaveOccurred())
		})

		It("should reject duplicate usernames", func() {
			Expect(service.CreateAdmin("operator", "longenoughpass")).To(Succeed())

			err := service.CreateAdmin("operator", "otherlongpass")

			Expect(err).To(HaveOccurred())
		})
	})
})
