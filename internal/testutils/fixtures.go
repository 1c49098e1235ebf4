package testutils

import (
	"fmt"
	"testing"
	"time"

	"ecodrip-server/internal/config"
	"ecodrip-server/internal/model"
	"ecodrip-server/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Config returns a configuration suitable for tests, storing uploads under uploadDir.
func Config(uploadDir string) config.Config {
	return config.Config{
		Server: config.ServerConfig{Port: "0", Mode: "test", MaxRequestBodySize: 2},
		JWT:    config.JWTConfig{Secret: "test_secret", ExpirationHours: 24},
		Upload: config.UploadConfig{
			Path:              uploadDir,
			URLPrefix:         "/uploads/maps/",
			MaxSize:           10,
			AllowedExtensions: ".jpg,.jpeg,.png,.gif,.webp,.bmp",
			CacheControl:      "public, max-age=86400",
		},
		RateLimit: config.RateLimitConfig{Enabled: false},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		Metrics:   config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

// UseConfig installs cfg for the duration of the test.
func UseConfig(t *testing.T, cfg config.Config) {
	t.Helper()
	prev := config.Get()
	config.Set(cfg)
	t.Cleanup(func() { config.Set(prev) })
}

// CreateUser inserts a user whose password is "secret123".
func CreateUser(t *testing.T, gdb *gorm.DB, email string, admin bool) *model.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &model.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  string(hashed),
		IsAdmin:   admin,
	}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

// BearerToken signs a login token for u with the active config secret.
func BearerToken(t *testing.T, u *model.User) string {
	t.Helper()
	token, err := utils.GenerateLoginToken(u.ID, u.Email, u.IsAdmin, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return fmt.Sprintf("Bearer %s", token)
}
