// Package service implements agent registration and login with bcrypt
// password hashes and HMAC-signed JWT access tokens.
package service

import (
	"context"
	"time"

	"agentportal_backend/internal/auth/repository"
	"agentportal_backend/platform/apperr"
	"agentportal_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenType = "access"

// Config is the least-privilege view of app config the service needs.
type Config interface {
	GetJWTAccessSecret() string
	GetAccessTokenTTL() time.Duration
}

type Service struct {
	repo *repository.Repository
	cfg  Config
	log  *logger.Logger
}

func New(repo *repository.Repository, cfg Config, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// Register creates an account and returns it with a signed access token.
func (s *Service) Register(_ context.Context, email, name, plainPassword string) (repository.Agent, string, error) {
	if len(plainPassword) < 8 {
		return repository.Agent{}, "", apperr.Validation("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return repository.Agent{}, "", apperr.Wrap(apperr.KindInternal, "hashing password", err)
	}

	agent, err := s.repo.Create(email, name, string(hash))
	if err != nil {
		return repository.Agent{}, "", err
	}

	token, err := s.signJWT(agent)
	if err != nil {
		return repository.Agent{}, "", err
	}

	s.log.AuthEvent("register", agent.Email, true, "")
	return agent, token, nil
}

// Login verifies credentials and returns the agent with a signed access
// token. Unknown emails and wrong passwords report the same error.
func (s *Service) Login(_ context.Context, email, plainPassword string) (repository.Agent, string, error) {
	agent, err := s.repo.GetByEmail(email)
	if err != nil {
		s.log.AuthEvent("login", email, false, "unknown email")
		return repository.Agent{}, "", apperr.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(agent.PasswordHash), []byte(plainPassword)); err != nil {
		s.log.AuthEvent("login", email, false, "wrong password")
		return repository.Agent{}, "", apperr.Unauthorized("invalid credentials")
	}

	token, err := s.signJWT(agent)
	if err != nil {
		return repository.Agent{}, "", err
	}

	s.log.AuthEvent("login", agent.Email, true, "")
	return agent, token, nil
}

// Me returns the account behind an agent id.
func (s *Service) Me(_ context.Context, agentID uuid.UUID) (repository.Agent, error) {
	return s.repo.Get(agentID)
}

// DisplayName resolves an agent's name for cross-module display fields.
func (s *Service) DisplayName(agentID uuid.UUID) string {
	return s.repo.DisplayName(agentID)
}

func (s *Service) signJWT(agent repository.Agent) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  agent.ID.String(),
		"name": agent.Name,
		"type": accessTokenType,
		"exp":  now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat":  now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "signing access token", err)
	}
	return signed, nil
}
