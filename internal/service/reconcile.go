package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/cv-profile-service/internal/models"
	"github.com/pribylovaa/cv-profile-service/internal/pkg/log"
	"github.com/pribylovaa/cv-profile-service/internal/storage"
	"github.com/pribylovaa/cv-profile-service/internal/translate"
)

// Status — исход попытки перевода одного поля.
type Status int8

const (
	// StatusSuccess — перевод получен и применён.
	StatusSuccess Status = iota
	// StatusSkipped — у поля уже есть непустое значение на целевом языке
	// (только для batch-политики MergeSkipExisting).
	StatusSkipped
	// StatusNoBaseValue — у поля нет непустого значения на базовом языке;
	// провайдер не вызывался.
	StatusNoBaseValue
	// StatusProviderError — вызов провайдера завершился ошибкой;
	// значения поля не тронуты.
	StatusProviderError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusSkipped:
		return "skipped"
	case StatusNoBaseValue:
		return "no_base_value"
	case StatusProviderError:
		return "provider_error"
	default:
		return "unknown"
	}
}

// FieldOutcome — исход по одному полю в манифесте операции перевода.
// Err заполнен только при StatusProviderError.
type FieldOutcome struct {
	FieldID uuid.UUID
	Tag     string
	Status  Status
	Err     error
}

// MergeStrategy — политика слияния перевода в набор значений поля.
// Асимметрия политик намеренная (UX исходной системы):
// одиночный перевод — явное намерение пользователя перегенерировать значение,
// batch — массовая дозаливка, которая не должна затирать выверенный контент.
type MergeStrategy int8

const (
	// MergeOverwrite — существующее значение целевого языка перезаписывается.
	MergeOverwrite MergeStrategy = iota
	// MergeSkipExisting — поле с непустым значением целевого языка пропускается.
	MergeSkipExisting
)

// normalizeLang приводит код языка к внутреннему виду (короткий, lower-case).
func normalizeLang(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}

// reconcileField выполняет одну попытку перевода поля на targetLang.
// Возвращает обновлённое поле (или исходное при неуспехе) и исход.
// Никогда не пишет частичный/мусорный перевод: поле меняется только
// при успешном ответе провайдера.
func (s *Service) reconcileField(ctx context.Context, field models.DataField, targetLang string, strategy MergeStrategy) (models.DataField, FieldOutcome) {
	outcome := FieldOutcome{FieldID: field.ID, Tag: field.Tag}

	if strategy == MergeSkipExisting {
		if existing, ok := field.ValueByLanguage(targetLang); ok && strings.TrimSpace(existing.Value) != "" {
			outcome.Status = StatusSkipped

			return field, outcome
		}
	}

	base, ok := field.BaseValue()
	if !ok || strings.TrimSpace(base.Value) == "" {
		outcome.Status = StatusNoBaseValue

		return field, outcome
	}

	translated, err := s.translator.Translate(ctx, base.Value, targetLang, field.BaseLanguage)
	providerCalls.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		outcome.Status = StatusProviderError
		outcome.Err = err

		return field, outcome
	}

	outcome.Status = StatusSuccess

	return field.UpsertValue(targetLang, translated, time.Now().UTC()), outcome
}

// TranslateField переводит одно поле профиля на targetLang.
//
// Предусловия: профиль и поле существуют (иначе ErrNotFound).
// Политика слияния — MergeOverwrite: запрос перевода трактуется как явное
// намерение перегенерировать значение, существующий перевод перезаписывается
// со свежими таймстемпами.
//
// Исходы NoBaseValue и ProviderError не являются ошибками операции:
// поле возвращается без изменений, исход фиксируется в FieldOutcome,
// профиль не сохраняется.
func (s *Service) TranslateField(ctx context.Context, userID, fieldID uuid.UUID, targetLang string) (*models.DataField, FieldOutcome, error) {
	const op = "service/reconcile/TranslateField"

	lg := log.From(ctx).With("op", op, "user_id", userID.String(), "field_id", fieldID.String())

	targetLang = normalizeLang(targetLang)
	if userID == uuid.Nil || fieldID == uuid.Nil || targetLang == "" {
		lg.Warn("invalid argument")

		return nil, FieldOutcome{}, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	profile, err := s.loadProfile(ctx, op, userID)
	if err != nil {
		return nil, FieldOutcome{}, err
	}

	field, idx, ok := profile.FieldByID(fieldID)
	if !ok {
		lg.Warn("field not found")

		return nil, FieldOutcome{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	updated, outcome := s.reconcileField(ctx, field, targetLang, MergeOverwrite)
	fieldOutcomes.WithLabelValues(outcome.Status.String()).Inc()

	if outcome.Status != StatusSuccess {
		lg.Info("field left unchanged", "status", outcome.Status.String(), "err", errString(outcome.Err))

		return &field, outcome, nil
	}

	profile.Fields[idx] = updated
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profilesStorage.SaveProfile(ctx, profile); err != nil {
		lg.Error("storage error on SaveProfile", "err", err)

		return nil, FieldOutcome{}, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	lg.Info("field translated", "target_lang", targetLang)

	return &updated, outcome, nil
}

// TranslateAll переводит все поля профиля на targetLang.
//
// Политика слияния — MergeSkipExisting: поле с непустым значением целевого
// языка считается уже переведённым и не трогается; поле без базового значения
// пропускается без вызова провайдера. Оба случая фиксируются в манифесте.
//
// Пригодные поля отправляются провайдеру независимо, с ограниченным
// параллелизмом (лимиты провайдера); отказ по одному полю не прерывает
// остальные. Исходы собираются полностью, затем успешные переводы
// применяются к профилю одним последовательным проходом — итоговое
// состояние не зависит от порядка завершения вызовов.
//
// Идемпотентность: для полностью переведённого языка — ноль вызовов
// провайдера и ноль записей в хранилище; UpdatedAt сдвигается только если
// изменилось хотя бы одно поле.
func (s *Service) TranslateAll(ctx context.Context, userID uuid.UUID, targetLang string) (*models.UserProfile, []FieldOutcome, error) {
	const op = "service/reconcile/TranslateAll"

	lg := log.From(ctx).With("op", op, "user_id", userID.String())

	targetLang = normalizeLang(targetLang)
	if userID == uuid.Nil || targetLang == "" {
		lg.Warn("invalid argument")

		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	profile, err := s.loadProfile(ctx, op, userID)
	if err != nil {
		return nil, nil, err
	}

	outcomes := make([]FieldOutcome, len(profile.Fields))
	results := make([]models.DataField, len(profile.Fields))

	// Сначала — классификация без вызовов провайдера.
	var eligible []int
	for i, field := range profile.Fields {
		outcomes[i] = FieldOutcome{FieldID: field.ID, Tag: field.Tag}

		if existing, ok := field.ValueByLanguage(targetLang); ok && strings.TrimSpace(existing.Value) != "" {
			outcomes[i].Status = StatusSkipped
			continue
		}

		if base, ok := field.BaseValue(); !ok || strings.TrimSpace(base.Value) == "" {
			outcomes[i].Status = StatusNoBaseValue
			continue
		}

		eligible = append(eligible, i)
	}

	// Независимые вызовы провайдера с ограниченным параллелизмом.
	// Каждая горутина пишет только в свой слот — мьютекс не нужен.
	sem := make(chan struct{}, s.parallelism())
	var wg sync.WaitGroup

	for _, i := range eligible {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			results[i], outcomes[i] = s.reconcileField(ctx, profile.Fields[i], targetLang, MergeSkipExisting)
		}(i)
	}

	wg.Wait()

	// Последовательное применение успешных переводов.
	changed := 0
	for _, i := range eligible {
		fieldOutcomes.WithLabelValues(outcomes[i].Status.String()).Inc()

		if outcomes[i].Status == StatusSuccess {
			profile.Fields[i] = results[i]
			changed++
			continue
		}

		lg.Warn("field translation failed",
			"field_id", outcomes[i].FieldID.String(),
			"status", outcomes[i].Status.String(),
			"err", errString(outcomes[i].Err),
		)
	}

	if changed > 0 {
		profile.UpdatedAt = time.Now().UTC()

		if err := s.profilesStorage.SaveProfile(ctx, profile); err != nil {
			lg.Error("storage error on SaveProfile", "err", err)

			return nil, nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	lg.Info("translate all finished",
		"target_lang", targetLang,
		"fields_total", len(profile.Fields),
		"fields_changed", changed,
	)

	return profile, outcomes, nil
}

// loadProfile — строгая загрузка профиля для операций перевода:
// отсутствие профиля — ErrNotFound, а не создание по умолчанию
// (create-on-first-access — ответственность CRUD-поверхности).
func (s *Service) loadProfile(ctx context.Context, op string, userID uuid.UUID) (*models.UserProfile, error) {
	profile, err := s.profilesStorage.ProfileByUserID(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundProfile):
			log.From(ctx).Warn("profile not found", "op", op)

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			log.From(ctx).Error("storage error on ProfileByUserID", "op", op, "err", err)

			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return profile, nil
}

// resultLabel — метка результата вызова провайдера для метрик.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, translate.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, translate.ErrRejected):
		return "rejected"
	case errors.Is(err, translate.ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}

	return err.Error()
}
