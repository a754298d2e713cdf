package auth

import (
	"EnrollHub/entity"
	"EnrollHub/internal/config"
	"EnrollHub/internal/lib/sl"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

var (
	ErrNoToken      = errors.New("no identity token")
	ErrInvalidToken = errors.New("invalid identity token")
	ErrNoIDToken    = errors.New("token response has no id_token")
)

type tokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// Service turns Google ID tokens into identities and decides who is the administrator.
type Service struct {
	oauth      *oauth2.Config
	adminEmail string
	validate   tokenValidator
	log        *slog.Logger
}

func NewAuthService(conf *config.Config, logger *slog.Logger) *Service {
	return &Service{
		oauth: &oauth2.Config{
			ClientID:     conf.Admin.ClientID,
			ClientSecret: conf.Admin.ClientSecret,
			RedirectURL:  conf.Admin.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		adminEmail: strings.TrimSpace(conf.Admin.Email),
		validate:   idtoken.Validate,
		log:        logger.With(sl.Module("auth-service")),
	}
}

// Authenticate validates a raw ID token issued for this client.
func (s *Service) Authenticate(ctx context.Context, token string) (*entity.Identity, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	payload, err := s.validate(ctx, token, s.oauth.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	identity := &entity.Identity{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		identity.Name = name
	}
	return identity, nil
}

// IsAdmin compares the identity email with the configured administrator, ignoring case.
func (s *Service) IsAdmin(identity *entity.Identity) bool {
	if identity == nil || s.adminEmail == "" || identity.Email == "" {
		return false
	}
	return strings.EqualFold(identity.Email, s.adminEmail)
}

func (s *Service) LoginURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades an authorization code for the ID token and the identity it carries.
func (s *Service) Exchange(ctx context.Context, code string) (string, *entity.Identity, error) {
	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("exchanging code: %w", err)
	}
	raw, ok := tok.Extra("id_token").(string)
	if !ok || raw == "" {
		return "", nil, ErrNoIDToken
	}
	identity, err := s.Authenticate(ctx, raw)
	if err != nil {
		return "", nil, err
	}
	s.log.With(
		sl.Secret("email", identity.Email),
		slog.Bool("admin", s.IsAdmin(identity)),
	).Info("signed in")
	return raw, identity, nil
}
