// models содержит доменные сущности cv-profile-service.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FieldType — внутренний enum типа поля профиля.
type FieldType int8

const (
	FieldTypeText FieldType = iota
	FieldTypeNumber
	FieldTypeDate
	FieldTypeURL
	FieldTypeEmail
	FieldTypePhone
	FieldTypeRichText
	FieldTypeImage
	FieldTypeVideo
)

func (t FieldType) String() string {
	switch t {
	case FieldTypeText:
		return "text"
	case FieldTypeNumber:
		return "number"
	case FieldTypeDate:
		return "date"
	case FieldTypeURL:
		return "url"
	case FieldTypeEmail:
		return "email"
	case FieldTypePhone:
		return "phone"
	case FieldTypeRichText:
		return "rich-text"
	case FieldTypeImage:
		return "image"
	case FieldTypeVideo:
		return "video"
	default:
		return "text"
	}
}

// ParseFieldType возвращает FieldType по строковому имени.
// Неизвестное имя — ошибка: молчаливый дефолт скрывал бы опечатки в данных.
func ParseFieldType(s string) (FieldType, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "text":
		return FieldTypeText, nil
	case "number":
		return FieldTypeNumber, nil
	case "date":
		return FieldTypeDate, nil
	case "url":
		return FieldTypeURL, nil
	case "email":
		return FieldTypeEmail, nil
	case "phone":
		return FieldTypePhone, nil
	case "rich-text":
		return FieldTypeRichText, nil
	case "image":
		return FieldTypeImage, nil
	case "video":
		return FieldTypeVideo, nil
	default:
		return FieldTypeText, fmt.Errorf("unknown field type %q", s)
	}
}

// FieldValue — значение поля на одном языке.
// Инвариант: внутри одного поля не более одного FieldValue на язык.
type FieldValue struct {
	Language  string
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DataField — один логический атрибут профиля (например, "summary").
//   - Tag — стабильное машиночитаемое имя для маппинга в форматы документов;
//   - BaseLanguage — язык, значение на котором считается исходным для перевода;
//   - Values — набор значений по языкам (порядок не несёт смысла).
type DataField struct {
	ID           uuid.UUID
	Tag          string
	Name         string
	Type         FieldType
	BaseLanguage string
	Values       []FieldValue
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProfile — агрегат: профиль пользователя со всеми полями.
// Профиль монопольно владеет своими DataField, поле — своими FieldValue.
type UserProfile struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	BaseLanguage string
	Fields       []DataField
	Tags         []string
	Metadata     map[string]string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewDefaultProfile создаёт пустой профиль с дефолтным базовым языком.
// Используется при первом обращении владельца (create-on-first-access).
func NewDefaultProfile(userID uuid.UUID, baseLanguage string) *UserProfile {
	now := time.Now().UTC()

	return &UserProfile{
		ID:           uuid.New(),
		UserID:       userID,
		BaseLanguage: baseLanguage,
		Fields:       []DataField{},
		Tags:         []string{},
		Metadata:     map[string]string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ValueByLanguage возвращает значение поля для языка lang.
// Отсутствие значения — нормальный исход, а не ошибка: второй результат false.
func (f DataField) ValueByLanguage(lang string) (FieldValue, bool) {
	for _, v := range f.Values {
		if v.Language == lang {
			return v, true
		}
	}

	return FieldValue{}, false
}

// BaseValue возвращает значение поля на его базовом языке.
func (f DataField) BaseValue() (FieldValue, bool) {
	return f.ValueByLanguage(f.BaseLanguage)
}

// UpsertValue возвращает копию поля, в которой значение для языка lang
// заменено (с обновлённым UpdatedAt) либо добавлено со свежими таймстемпами.
// Остальные языки не переупорядочиваются и не теряются; вход не мутируется.
func (f DataField) UpsertValue(lang, value string, now time.Time) DataField {
	out := f
	out.Values = make([]FieldValue, len(f.Values))
	copy(out.Values, f.Values)

	for i, v := range out.Values {
		if v.Language == lang {
			out.Values[i].Value = value
			out.Values[i].UpdatedAt = now
			out.UpdatedAt = now

			return out
		}
	}

	out.Values = append(out.Values, FieldValue{
		Language:  lang,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	})
	out.UpdatedAt = now

	return out
}

// FieldByID возвращает поле профиля и его позицию в срезе Fields.
func (p UserProfile) FieldByID(id uuid.UUID) (DataField, int, bool) {
	for i, f := range p.Fields {
		if f.ID == id {
			return f, i, true
		}
	}

	return DataField{}, -1, false
}

// Ошибки валидации агрегата.
var (
	// ErrDuplicateFieldID — повтор идентификатора поля внутри профиля.
	ErrDuplicateFieldID = errors.New("duplicate field id")
	// ErrDuplicateLanguage — два значения одного поля на одном языке.
	ErrDuplicateLanguage = errors.New("duplicate language in field values")
	// ErrEmptyLanguage — пустой код языка у значения или базового языка поля.
	ErrEmptyLanguage = errors.New("empty language code")
)

// Validate проверяет инварианты агрегата:
//   - уникальность ID полей внутри профиля;
//   - непустой BaseLanguage у профиля и каждого поля;
//   - не более одного значения на язык внутри каждого поля.
func (p UserProfile) Validate() error {
	if strings.TrimSpace(p.BaseLanguage) == "" {
		return fmt.Errorf("profile %s: %w", p.ID, ErrEmptyLanguage)
	}

	seenIDs := make(map[uuid.UUID]struct{}, len(p.Fields))

	for _, f := range p.Fields {
		if _, ok := seenIDs[f.ID]; ok {
			return fmt.Errorf("field %s: %w", f.ID, ErrDuplicateFieldID)
		}
		seenIDs[f.ID] = struct{}{}

		if strings.TrimSpace(f.BaseLanguage) == "" {
			return fmt.Errorf("field %s: %w", f.ID, ErrEmptyLanguage)
		}

		seenLangs := make(map[string]struct{}, len(f.Values))
		for _, v := range f.Values {
			if strings.TrimSpace(v.Language) == "" {
				return fmt.Errorf("field %s: %w", f.ID, ErrEmptyLanguage)
			}
			if _, ok := seenLangs[v.Language]; ok {
				return fmt.Errorf("field %s, language %q: %w", f.ID, v.Language, ErrDuplicateLanguage)
			}
			seenLangs[v.Language] = struct{}{}
		}
	}

	return nil
}
