// service содержит бизнес-логику cv-profile-service:
// - операции над профилем (чтение с созданием по первому обращению, апдейт);
// - движок согласования переводов (translateField/translateAll).
package service

import (
	"errors"

	"github.com/pribylovaa/cv-profile-service/internal/config"
	"github.com/pribylovaa/cv-profile-service/internal/storage"
	"github.com/pribylovaa/cv-profile-service/internal/translate"
)

var (
	// ErrInvalidArgument — некорректные входные данные (валидация запроса/агрегата).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound — сущность не найдена.
	ErrNotFound = errors.New("not found")
	// ErrInternal — внутренняя ошибка сервиса.
	ErrInternal = errors.New("internal")
)

// Service — описывает бизнес-логику cv-profile-service.
type Service struct {
	cfg             *config.Config
	profilesStorage storage.ProfilesStorage
	translator      translate.Translator
}

// New создает новый экземпляр Service.
func New(profilesStorage storage.ProfilesStorage, translator translate.Translator, cfg *config.Config) *Service {
	return &Service{
		profilesStorage: profilesStorage,
		translator:      translator,
		cfg:             cfg,
	}
}

// parallelism — эффективный лимит одновременных вызовов провайдера.
func (s *Service) parallelism() int {
	if s.cfg != nil && s.cfg.Translate.Parallelism > 0 {
		return s.cfg.Translate.Parallelism
	}

	return 4
}

// defaultBaseLanguage — базовый язык создаваемого по умолчанию профиля.
func (s *Service) defaultBaseLanguage() string {
	if s.cfg != nil && s.cfg.Profile.DefaultBaseLanguage != "" {
		return s.cfg.Profile.DefaultBaseLanguage
	}

	return "fr"
}
