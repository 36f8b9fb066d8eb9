package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pribylovaa/cv-profile-service/internal/models"
	"github.com/pribylovaa/cv-profile-service/internal/storage"
)

// Документные типы — JSON-представление профиля в KV.
// Имена полей (camelCase) фиксированы раскладкой исходной системы,
// поэтому отделены от доменной модели и конвертируются явно.
type valueDoc struct {
	Language  string    `json:"language"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type fieldDoc struct {
	ID           uuid.UUID  `json:"id"`
	Tag          string     `json:"tag"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	BaseLanguage string     `json:"baseLanguage"`
	Values       []valueDoc `json:"values"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type profileDoc struct {
	ID           uuid.UUID         `json:"id"`
	UserID       uuid.UUID         `json:"userId"`
	BaseLanguage string            `json:"baseLanguage"`
	Fields       []fieldDoc        `json:"fields"`
	Tags         []string          `json:"tags"`
	Metadata     map[string]string `json:"metadata"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func docFromProfile(p *models.UserProfile) profileDoc {
	doc := profileDoc{
		ID:           p.ID,
		UserID:       p.UserID,
		BaseLanguage: p.BaseLanguage,
		Fields:       make([]fieldDoc, 0, len(p.Fields)),
		Tags:         p.Tags,
		Metadata:     p.Metadata,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}

	for _, f := range p.Fields {
		fd := fieldDoc{
			ID:           f.ID,
			Tag:          f.Tag,
			Name:         f.Name,
			Type:         f.Type.String(),
			BaseLanguage: f.BaseLanguage,
			Values:       make([]valueDoc, 0, len(f.Values)),
			CreatedAt:    f.CreatedAt,
			UpdatedAt:    f.UpdatedAt,
		}
		for _, v := range f.Values {
			fd.Values = append(fd.Values, valueDoc(v))
		}
		doc.Fields = append(doc.Fields, fd)
	}

	return doc
}

func profileFromDoc(doc profileDoc) (*models.UserProfile, error) {
	p := &models.UserProfile{
		ID:           doc.ID,
		UserID:       doc.UserID,
		BaseLanguage: doc.BaseLanguage,
		Fields:       make([]models.DataField, 0, len(doc.Fields)),
		Tags:         doc.Tags,
		Metadata:     doc.Metadata,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}

	for _, fd := range doc.Fields {
		ft, err := models.ParseFieldType(fd.Type)
		if err != nil {
			return nil, err
		}

		f := models.DataField{
			ID:           fd.ID,
			Tag:          fd.Tag,
			Name:         fd.Name,
			Type:         ft,
			BaseLanguage: fd.BaseLanguage,
			Values:       make([]models.FieldValue, 0, len(fd.Values)),
			CreatedAt:    fd.CreatedAt,
			UpdatedAt:    fd.UpdatedAt,
		}
		for _, vd := range fd.Values {
			f.Values = append(f.Values, models.FieldValue(vd))
		}
		p.Fields = append(p.Fields, f)
	}

	return p, nil
}

// ProfileByUserID возвращает профиль по user_id.
// Ошибки: storage.ErrNotFoundProfile при отсутствии ключа,
// storage.ErrCorruptedProfile при нечитаемом документе.
func (s *ProfilesStorage) ProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	const op = "storage/redis/profiles/ProfileByUserID"

	raw, err := s.rdb.Get(ctx, s.key(userID.String())).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFoundProfile)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var doc profileDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, storage.ErrCorruptedProfile, err)
	}

	profile, err := profileFromDoc(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, storage.ErrCorruptedProfile, err)
	}

	return profile, nil
}

// SaveProfile перезаписывает документ профиля целиком (без TTL — профиль живёт,
// пока живёт пользователь; удаление — вне ответственности этого сервиса).
func (s *ProfilesStorage) SaveProfile(ctx context.Context, profile *models.UserProfile) error {
	const op = "storage/redis/profiles/SaveProfile"

	raw, err := json.Marshal(docFromProfile(profile))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.rdb.Set(ctx, s.key(profile.UserID.String()), raw, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.ProfilesStorage = (*ProfilesStorage)(nil)
