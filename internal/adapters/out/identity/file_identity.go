package identity

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/suchimauz/court-booking-engine/internal/core/domain"
	"github.com/suchimauz/court-booking-engine/internal/core/ports/out"
	"golang.org/x/crypto/bcrypt"
)

// FileIdentityAdapter - провайдер учетных записей поверх текстового файла.
// Формат строки: "username,bcrypt-хэш". Пустые и неполные строки
// пропускаются при загрузке.
type FileIdentityAdapter struct {
	path   string
	logger out.LoggerPort
	mu     sync.Mutex
}

func NewFileIdentityAdapter(path string, logger out.LoggerPort) (*FileIdentityAdapter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("identity.mkdir_failed: %w", err)
	}

	return &FileIdentityAdapter{
		path:   path,
		logger: logger.WithModule("FileIdentityAdapter"),
	}, nil
}

func (a *FileIdentityAdapter) loadUsers() (map[string]string, error) {
	users := make(map[string]string)

	data, err := os.ReadFile(a.path)
	if errors.Is(err, fs.ErrNotExist) {
		return users, nil
	}
	if err != nil {
		return nil, fmt.Errorf("identity.read_failed: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ",", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		users[parts[0]] = parts[1]
	}
	return users, nil
}

// Register создает нового пользователя, пароль хранится только хэшем
func (a *FileIdentityAdapter) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || strings.Contains(username, ",") || password == "" {
		return domain.ErrInvalidCredentials
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	users, err := a.loadUsers()
	if err != nil {
		return err
	}
	if _, exists := users[username]; exists {
		return domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("identity.hash_failed: %w", err)
	}

	file, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
	if err != nil {
		return fmt.Errorf("identity.open_failed: %w", err)
	}
	defer file.Close()

	if _, err := fmt.Fprintf(file, "%s,%s\n", username, hash); err != nil {
		return fmt.Errorf("identity.write_failed: %w", err)
	}

	a.logger.Info("identity.register.finished", out.LogFields{
		"username": username,
	})
	return nil
}

// Authenticate проверяет пароль и возвращает стабильный идентификатор владельца
func (a *FileIdentityAdapter) Authenticate(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)

	a.mu.Lock()
	users, err := a.loadUsers()
	a.mu.Unlock()
	if err != nil {
		return "", err
	}

	hash, exists := users[username]
	if !exists {
		return "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return username, nil
}

var _ out.IdentityPort = (*FileIdentityAdapter)(nil)
