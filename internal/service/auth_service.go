package service

import (
	"context"

	"shoeshop/internal/models"
	"shoeshop/internal/repository"

	"go.uber.org/zap"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type authService struct {
	clients repository.ClientRepo
	hasher  PasswordHasher
	log     *zap.Logger
}

func NewAuthService(clients repository.ClientRepo, hasher PasswordHasher, log *zap.Logger) AuthService {
	return &authService{clients: clients, hasher: hasher, log: log}
}

// Authenticate сверяет логин и пароль с таблицей clients.
// Несуществующий логин и неверный пароль неразличимы для вызывающего.
func (s *authService) Authenticate(ctx context.Context, login, password string) (*Identity, error) {
	client, err := s.clients.GetByLogin(ctx, login)
	if err != nil {
		s.log.Error("Ошибка проверки пользователя", zap.Error(err))
		return nil, err
	}
	if client == nil || !s.hasher.Compare(client.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return &Identity{Login: client.Login, Role: client.Role}, nil
}

// CurrentProfile возвращает данные пользователя из текущего сеанса.
// Если логина в сеансе нет или он не найден в базе — гостевая заглушка.
func (s *authService) CurrentProfile(ctx context.Context) (*Profile, error) {
	guest := &Profile{Login: "", FullName: "Guest Account", Role: models.RoleGuest}

	login, ok := CurrentLogin(ctx)
	if !ok || login == "" {
		return guest, nil
	}

	client, err := s.clients.GetByLogin(ctx, login)
	if err != nil {
		s.log.Error("Ошибка получения данных пользователя", zap.Error(err))
		return guest, nil
	}
	if client == nil {
		return guest, nil
	}
	return &Profile{Login: client.Login, FullName: client.FullName, Role: client.Role}, nil
}
