package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/arsuhinars/open-polls/internal/domain/entities"
	"github.com/arsuhinars/open-polls/internal/domain/errors"
	"github.com/arsuhinars/open-polls/internal/domain/ports"
	"github.com/arsuhinars/open-polls/internal/domain/repositories"
)

// AuthService contém a lógica de login via provedor de identidade
// externo e o ciclo de vida das sessões.
type AuthService struct {
	userRepo repositories.UserRepository
	sessions ports.SessionStore
	idp      ports.IdentityProvider
	logger   ports.Logger
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	sessions ports.SessionStore,
	idp ports.IdentityProvider,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		idp:      idp,
		logger:   logger,
	}
}

// LoginURL retorna a URL de autorização do provedor de identidade.
func (s *AuthService) LoginURL(state string) string {
	return s.idp.AuthorizationURL(state)
}

// Login troca o authorization code por um token de acesso, lê o perfil
// no provedor e cria (ou atualiza) o usuário local. Nome e foto são
// atualizados a cada login; usuários desativados não podem entrar.
// Retorna a sessão criada.
func (s *AuthService) Login(ctx context.Context, code string) (*entities.User, *entities.Session, error) {
	token, err := s.idp.ExchangeCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	profile, err := s.idp.FetchProfile(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.FindByVkID(ctx, token.ProviderUserID)
	if err != nil {
		return nil, nil, err
	}

	if user != nil {
		if !user.IsActive {
			return nil, nil, errors.ErrUserInactive
		}
		user.RefreshProfile(profile.Name, profile.PhotoURL)
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, nil, err
		}
	} else {
		user = &entities.User{
			VkID:     token.ProviderUserID,
			Name:     profile.Name,
			PhotoURL: profile.PhotoURL,
			IsActive: true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, nil, err
		}
		s.logger.Info("user registered", "user_id", user.ID, "vk_id", user.VkID)
	}

	session := &entities.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: token.ExpiresAt,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return user, session, nil
}

// CurrentUser resolve a sessão para o usuário atual, relendo o registro
// do banco a cada chamada. Sessões ausentes ou expiradas e usuários
// desativados resultam em ErrAuthorizationRequired.
func (s *AuthService) CurrentUser(ctx context.Context, sessionID string) (*entities.User, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.IsExpired() {
		return nil, errors.ErrAuthorizationRequired
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, errors.ErrAuthorizationRequired
	}

	return user, nil
}

// Logout destrói a sessão.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}
