package handlers

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/cv-profile-service/internal/models"
	"github.com/pribylovaa/cv-profile-service/internal/service"
)

// DTO REST-слоя. Snake_case в JSON; доменные типы наружу не утекают.

// FieldValue — значение поля на одном языке.
type FieldValue struct {
	Language  string    `json:"language"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// DataField — поле профиля со значениями по языкам.
type DataField struct {
	ID           string       `json:"id,omitempty"`
	Tag          string       `json:"tag"`
	Name         string       `json:"name"`
	Type         string       `json:"type"`
	BaseLanguage string       `json:"base_language,omitempty"`
	Values       []FieldValue `json:"values"`
	CreatedAt    time.Time    `json:"created_at,omitempty"`
	UpdatedAt    time.Time    `json:"updated_at,omitempty"`
}

// Profile — агрегат профиля в ответах API.
type Profile struct {
	ID           string            `json:"id"`
	UserID       string            `json:"user_id"`
	BaseLanguage string            `json:"base_language"`
	Fields       []DataField       `json:"fields"`
	Tags         []string          `json:"tags"`
	Metadata     map[string]string `json:"metadata"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// UpdateProfileRequest — PUT /profiles/{user_id}.
// Секции заменяются целиком; отсутствующая секция (null) не трогается.
// Клиент обычно делает GET, правит документ и кладёт его обратно.
type UpdateProfileRequest struct {
	BaseLanguage *string           `json:"base_language,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	Fields       []DataField       `json:"fields,omitempty"`
}

// TranslateRequest — POST /profiles/{user_id}/translate.
// Ровно один селектор: либо field_id (одно поле), либо translate_all.
type TranslateRequest struct {
	FieldID        string `json:"field_id,omitempty"`
	TargetLanguage string `json:"target_language"`
	TranslateAll   bool   `json:"translate_all,omitempty"`
}

// FieldOutcome — исход перевода одного поля в манифесте операции.
type FieldOutcome struct {
	FieldID string `json:"field_id"`
	Tag     string `json:"tag"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// TranslateFieldResponse — ответ одиночного перевода.
type TranslateFieldResponse struct {
	Field   DataField    `json:"field"`
	Outcome FieldOutcome `json:"outcome"`
}

// TranslateAllResponse — ответ batch-перевода: профиль плюс полный манифест.
type TranslateAllResponse struct {
	Profile  Profile        `json:"profile"`
	Outcomes []FieldOutcome `json:"outcomes"`
}

func valueFromModel(v models.FieldValue) FieldValue {
	return FieldValue{
		Language:  v.Language,
		Value:     v.Value,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func fieldFromModel(f models.DataField) DataField {
	values := make([]FieldValue, 0, len(f.Values))
	for _, v := range f.Values {
		values = append(values, valueFromModel(v))
	}

	return DataField{
		ID:           f.ID.String(),
		Tag:          f.Tag,
		Name:         f.Name,
		Type:         f.Type.String(),
		BaseLanguage: f.BaseLanguage,
		Values:       values,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// ProfileFromModel конвертирует доменный агрегат в DTO ответа.
// Nil-срезы становятся пустыми, чтобы фронт всегда видел [] вместо null.
func ProfileFromModel(p *models.UserProfile) Profile {
	fields := make([]DataField, 0, len(p.Fields))
	for _, f := range p.Fields {
		fields = append(fields, fieldFromModel(f))
	}

	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	metadata := p.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}

	return Profile{
		ID:           p.ID.String(),
		UserID:       p.UserID.String(),
		BaseLanguage: p.BaseLanguage,
		Fields:       fields,
		Tags:         tags,
		Metadata:     metadata,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func outcomeFromService(o service.FieldOutcome) FieldOutcome {
	out := FieldOutcome{
		FieldID: o.FieldID.String(),
		Tag:     o.Tag,
		Status:  o.Status.String(),
	}
	if o.Err != nil {
		out.Error = o.Err.Error()
	}

	return out
}

func outcomesFromService(outcomes []service.FieldOutcome) []FieldOutcome {
	out := make([]FieldOutcome, 0, len(outcomes))
	for _, o := range outcomes {
		out = append(out, outcomeFromService(o))
	}

	return out
}

// fieldToModel конвертирует DTO поля в доменную модель.
// Пустой id означает новое поле (идентификатор выдаст сервисный слой).
func fieldToModel(f DataField) (models.DataField, error) {
	var id uuid.UUID
	if f.ID != "" {
		parsed, err := uuid.Parse(f.ID)
		if err != nil {
			return models.DataField{}, fmt.Errorf("field id %q: %w", f.ID, err)
		}
		id = parsed
	}

	fieldType, err := models.ParseFieldType(f.Type)
	if err != nil {
		return models.DataField{}, err
	}

	values := make([]models.FieldValue, 0, len(f.Values))
	for _, v := range f.Values {
		values = append(values, models.FieldValue{
			Language:  v.Language,
			Value:     v.Value,
			CreatedAt: v.CreatedAt,
			UpdatedAt: v.UpdatedAt,
		})
	}

	return models.DataField{
		ID:           id,
		Tag:          f.Tag,
		Name:         f.Name,
		Type:         fieldType,
		BaseLanguage: f.BaseLanguage,
		Values:       values,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}, nil
}

// ToInput конвертирует запрос обновления во входную структуру сервисного слоя.
func (r UpdateProfileRequest) ToInput(userID uuid.UUID) (service.UpdateProfileInput, error) {
	input := service.UpdateProfileInput{
		UserID:       userID,
		BaseLanguage: r.BaseLanguage,
		Tags:         r.Tags,
		Metadata:     r.Metadata,
	}

	if r.Fields != nil {
		fields := make([]models.DataField, 0, len(r.Fields))
		for _, f := range r.Fields {
			field, err := fieldToModel(f)
			if err != nil {
				return service.UpdateProfileInput{}, err
			}
			fields = append(fields, field)
		}
		input.Fields = fields
	}

	return input, nil
}
