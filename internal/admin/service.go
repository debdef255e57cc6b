package admin

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/magari-ke/storefront/pkg/enums"
	pkgerrors "github.com/magari-ke/storefront/pkg/errors"
	"github.com/magari-ke/storefront/pkg/logger"
	"github.com/magari-ke/storefront/pkg/storeapi"
)

// dashboardPath is the server-rendered admin page navigated to on success.
const dashboardPath = "/admin/orders"

type loginClient interface {
	AdminLogin(ctx context.Context, password string) (*storeapi.LoginResponse, error)
	BaseURL() string
}

// Outcome is the tagged result of an admin login attempt. RedirectTarget is
// set only when Kind is authenticated.
type Outcome struct {
	Kind           enums.LoginOutcome
	Message        string
	RedirectTarget string
}

// Service submits admin credentials and interprets the response. It holds no
// session state; on success it only signals where to navigate.
type Service struct {
	api loginClient
	log *logger.Logger
}

// NewService builds the admin auth service.
func NewService(api loginClient, log *logger.Logger) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("store api client required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{api: api, log: log}, nil
}

// Login posts the password. Authentication requires both a 200 status and a
// true success flag in the body; a 200 with success=false is still denied.
func (s *Service) Login(ctx context.Context, password string) (*Outcome, error) {
	if strings.TrimSpace(password) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}

	resp, err := s.api.AdminLogin(ctx, password)
	if err != nil {
		s.log.Error(ctx, "admin login failed before a response arrived", err)
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNetwork {
			return &Outcome{
				Kind:    enums.LoginOutcomeNetworkError,
				Message: pkgerrors.MetadataFor(pkgerrors.CodeNetwork).UserMessage,
			}, nil
		}
		return nil, err
	}

	if resp.StatusCode == http.StatusOK && resp.Success {
		s.log.Info(s.log.WithField(ctx, "outcome", enums.LoginOutcomeAuthenticated.String()), "admin authenticated")
		return &Outcome{
			Kind:           enums.LoginOutcomeAuthenticated,
			RedirectTarget: s.api.BaseURL() + dashboardPath,
		}, nil
	}

	message := resp.Message
	if message == "" {
		message = pkgerrors.MetadataFor(pkgerrors.CodeAuthDenied).UserMessage
	}
	s.log.Warn(s.log.WithField(ctx, "outcome", enums.LoginOutcomeDenied.String()), "admin login denied")
	return &Outcome{Kind: enums.LoginOutcomeDenied, Message: message}, nil
}
