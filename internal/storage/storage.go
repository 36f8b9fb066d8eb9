// storage содержит контракт слоя хранилища cv-profile-service.
//
// Профиль хранится как единый JSON-документ по ключу profile:<user_id>
// (key-value движок — внешний коллаборатор; сериализацию между
// хранилищем движка и доменной моделью берёт на себя реализация).
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pribylovaa/cv-profile-service/internal/models"
)

var (
	// ErrNotFoundProfile — профиль не найден.
	ErrNotFoundProfile = errors.New("not found")
	// ErrCorruptedProfile — документ в хранилище не распарсился в доменную модель.
	ErrCorruptedProfile = errors.New("corrupted profile document")
)

// Profiles — контракт репозитория профилей.
type Profiles interface {
	// ProfileByUserID возвращает профиль владельца userID.
	ProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	// SaveProfile сохраняет профиль целиком (документ перезаписывается).
	SaveProfile(ctx context.Context, profile *models.UserProfile) error
}

// ProfilesStorage — верхнеуровневый интерфейс хранилища профилей.
type ProfilesStorage interface {
	Profiles
	Close()
}
