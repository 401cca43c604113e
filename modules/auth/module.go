package auth

import (
	"context"
	"fmt"
	"log"

	"github.com/example/taskboard/config"
	"github.com/go-monolith/mono"
)

// AuthModule provides authentication services.
type AuthModule struct {
	service *AuthService
	cfg     *config.Config
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule.
func NewModule(cfg *config.Config) *AuthModule {
	return &AuthModule{cfg: cfg}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// Start builds the credential table and the token manager.
func (m *AuthModule) Start(_ context.Context) error {
	hasher := NewPasswordHasher()

	creds, err := NewStaticCredentials(hasher, map[string]string{
		m.cfg.AdminUsername: m.cfg.AdminPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to build credential table: %w", err)
	}

	jwtManager := NewJWTManager(JWTConfig{
		SecretKey: m.cfg.JWTSecretKey,
		TokenTTL:  m.cfg.JWTTTL,
		Issuer:    "taskboard",
	})

	m.service = NewAuthService(creds, hasher, jwtManager)

	log.Printf("[auth] Module started (token TTL: %s)", m.cfg.JWTTTL)
	return nil
}

// Stop shuts down the module.
func (m *AuthModule) Stop(_ context.Context) error {
	log.Println("[auth] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AuthModule) Health(_ context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "service not initialized",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
	}
}

// GetService returns the auth service.
func (m *AuthModule) GetService() *AuthService {
	return m.service
}
