package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/cv-profile-service/internal/models"
	"github.com/pribylovaa/cv-profile-service/internal/pkg/log"
	"github.com/pribylovaa/cv-profile-service/internal/storage"
)

// Входные структуры сервисного слоя.
type UpdateProfileInput struct {
	UserID uuid.UUID
	// BaseLanguage — новый базовый язык профиля (nil — не менять).
	BaseLanguage *string
	// Tags/Metadata/Fields заменяют соответствующие секции целиком;
	// nil означает "не трогать".
	Tags     []string
	Metadata map[string]string
	Fields   []models.DataField
}

// ProfileByUserID возвращает профиль владельца.
//
// Поведение:
//   - при отсутствии записи создаёт пустой профиль с дефолтным базовым языком
//     и сохраняет его (create-on-first-access);
//   - ошибки стораджа маппятся в ErrInternal.
func (s *Service) ProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	const op = "service/profiles/ProfileByUserID"

	lg := log.From(ctx).With("op", op, "user_id", userID.String())

	if userID == uuid.Nil {
		lg.Warn("invalid argument: empty user_id")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	result, err := s.profilesStorage.ProfileByUserID(ctx, userID)
	if err == nil {
		return result, nil
	}

	if !errors.Is(err, storage.ErrNotFoundProfile) {
		lg.Error("storage error on ProfileByUserID", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	profile := models.NewDefaultProfile(userID, s.defaultBaseLanguage())

	if err := s.profilesStorage.SaveProfile(ctx, profile); err != nil {
		lg.Error("storage error on SaveProfile", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	lg.Info("default profile created", "profile_id", profile.ID.String())

	return profile, nil
}

// UpdateProfile заменяет изменяемые секции профиля (базовый язык, теги,
// метаданные, набор полей) и сохраняет агрегат.
//
// Правила:
//   - ID/UserID/CreatedAt профиля неизменяемы;
//   - новым полям (ID == uuid.Nil) выдаётся идентификатор и таймстемпы;
//   - поле без собственного BaseLanguage наследует базовый язык профиля;
//   - после применения агрегат проходит Validate (уникальность ID полей,
//     не более одного значения на язык) — нарушение даёт ErrInvalidArgument.
func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*models.UserProfile, error) {
	const op = "service/profiles/UpdateProfile"

	lg := log.From(ctx).With("op", op, "user_id", input.UserID.String())

	if input.UserID == uuid.Nil {
		lg.Warn("invalid argument: empty user_id")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	profile, err := s.profilesStorage.ProfileByUserID(ctx, input.UserID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundProfile):
			lg.Warn("profile not found")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on ProfileByUserID", "err", err)

			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	now := time.Now().UTC()

	if input.BaseLanguage != nil {
		lang := strings.ToLower(strings.TrimSpace(*input.BaseLanguage))
		if lang == "" {
			lg.Warn("invalid argument: empty base language")

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
		profile.BaseLanguage = lang
	}

	if input.Tags != nil {
		profile.Tags = input.Tags
	}

	if input.Metadata != nil {
		profile.Metadata = input.Metadata
	}

	if input.Fields != nil {
		fields := make([]models.DataField, 0, len(input.Fields))

		for _, f := range input.Fields {
			if f.ID == uuid.Nil {
				f.ID = uuid.New()
				f.CreatedAt = now
				f.UpdatedAt = now
			}
			if strings.TrimSpace(f.BaseLanguage) == "" {
				f.BaseLanguage = profile.BaseLanguage
			}
			fields = append(fields, f)
		}

		profile.Fields = fields
	}

	if err := profile.Validate(); err != nil {
		lg.Warn("aggregate validation failed", "err", err)

		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidArgument, err)
	}

	profile.UpdatedAt = now

	if err := s.profilesStorage.SaveProfile(ctx, profile); err != nil {
		lg.Error("storage error on SaveProfile", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return profile, nil
}
