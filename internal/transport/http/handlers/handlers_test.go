package handlers_test

// Тесты REST-поверхности (роутер + хендлеры + httperr) поверх gomock-моков
// хранилища и провайдера перевода.
//
//  Проверяем:
//  - формат JSON-ответов (snake_case, [] вместо null);
//  - маппинг ошибок сервисного слоя в статусы и envelope {"error": {...}};
//  - валидацию селектора запроса перевода (ровно один из field_id/translate_all);
//  - прокидывание X-Request-Id в тело ошибки.
//
// Подготовка окружения:
//   go test ./internal/transport/http/... -v -race -count=1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/cv-profile-service/internal/config"
	"github.com/pribylovaa/cv-profile-service/internal/models"
	"github.com/pribylovaa/cv-profile-service/internal/service"
	"github.com/pribylovaa/cv-profile-service/internal/storage"
	"github.com/pribylovaa/cv-profile-service/internal/translate"
	transporthttp "github.com/pribylovaa/cv-profile-service/internal/transport/http"
	"github.com/pribylovaa/cv-profile-service/mocks"
)

type env struct {
	router     http.Handler
	storage    *mocks.MockProfilesStorage
	translator *mocks.MockTranslator
}

func newEnv(t *testing.T) (*env, *gomock.Controller) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mp := mocks.NewMockProfilesStorage(ctrl)
	mt := mocks.NewMockTranslator(ctrl)

	svc := service.New(mp, mt, &config.Config{})
	router := transporthttp.NewRouter(svc, transporthttp.Options{Timeout: 5 * time.Second})

	return &env{router: router, storage: mp, translator: mt}, ctrl
}

func (e *env) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)

	return rr
}

func seedProfile(uid uuid.UUID) *models.UserProfile {
	now := time.Now().UTC()
	profile := models.NewDefaultProfile(uid, "fr")
	profile.Fields = []models.DataField{
		{
			ID:           uuid.New(),
			Tag:          "summary",
			Name:         "Summary",
			Type:         models.FieldTypeText,
			BaseLanguage: "fr",
			Values: []models.FieldValue{
				{Language: "fr", Value: "Ingénieure logiciel", CreatedAt: now, UpdatedAt: now},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	return profile
}

type errEnvelope struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	} `json:"error"`
}

func requireError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()

	require.Equal(t, status, rr.Code)

	var resp errEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, code, resp.Error.Code)
}

func TestGetProfile_OK(t *testing.T) {
	e, ctrl := newEnv(t)
	defer ctrl.Finish()

	uid := uuid.New()
	profile := seedProfile(uid)

	e.storage.EXPECT().ProfileByUserID(gomock.Any(), uid).Return(profile, nil)

	rr := e.do(t, http.MethodGet, "/profiles/"+uid.String(), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Equal(t, uid.String(), got["user_id"])
	require.Equal(t, "fr", got["base_language"])

	fields, ok := got["fields"].([]any)
	require.True(t, ok)
	require.Len(t, fields, 1)

	field := fields[0].(map[string]any)
	require.Equal(t, "summary", field["tag"])
	require.Equal(t, "text", field["type"])

	// Пустые секции сериализуются как [] / {}, не null.
	require.NotNil(t, got["tags"])
	require.NotNil(t, got["metadata"])
}

func TestGetProfile_InvalidUserID(t *testing.T) {
	e, ctrl := newEnv(t)
	defer ctrl.Finish()

	rr := e.do(t, http.MethodGet, "/profiles/not-a-uuid", nil)
	requireError(t, rr, http.StatusBadRequest, "invalid_argument")
}

func TestGetProfile_StorageError(t *testing.T) {
	e, ctrl := newEnv(t)
	defer ctrl.Finish()

	uid := uuid.New()
	e.storage.EXPECT().ProfileByUserID(gomock.Any(), uid).Return(nil, fmt.Errorf("redis down"))

	rr := e.do(t, http.MethodGet, "/profiles/"+uid.String(), nil)
	requireError(t, rr, http.StatusInternalServerError, "internal")

	// Детали инфраструктурной ошибки не утекают на клиент.
	require.NotContains(t, rr.Body.String(), "redis")
}

func TestUpdateProfile_OK(t *testing.T) {
	e, ctrl := newEnv(t)
	defer ctrl.Finish()

	uid := uuid.New()
	profile := seedProfile(uid)

	e.storage.EXPECT().ProfileByUserID(gomock.Any(), uid).Return(profile, nil)
	e.storage.EXPECT().SaveProfile(gomock.Any(), gomock.Any()).Return(nil)

	body := map[string]any{
		"tags": []string{"engineering"},
		"fields": []map[string]any{
			{
				"tag":  "position",
				"name": "Position",
				"type": "text",
				"values": []map[string]any{
					{"language": "fr", "value": "Développeuse"},
				},
			},
		},
	}

	rr := e.do(t, http.MethodPut, "/profiles/"+uid.String(), body)
	require.Equal(t, http.StatusOK, rr.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))

	tags := got["tags"].([]any)
	require.Equal(t, []any{"engineering"}, tags)

	fields := got["fields"].([]any)
	require.Len(t, fields, 1)

	field := fields[0].(map[string]any)
	require.Equal(t, "position", field["tag"])
	// Новое поле получило идентификатор и базовый язык профиля.
	require.NotEmpty(t, field["id"])
	require.Equal(t, "fr", field["base_language"])
}

func TestUpdateProfile_UnknownJSONField(t *testing.T) {
	e, ctrl := newEnv(t)
	defer ctrl.Finish()

	uid := uuid.New()
	rr := e.do(t, http.MethodPut, "/profiles/"+uid.String(), map[string]any{"bogus": true})
	requireError(t, rr, http.StatusBadRequest, "invalid_argument")
}

func TestUpdateProfile_UnknownFieldType(t *testing.T) {
	e, ctrl := newEnv(t)
	defer ctrl.Finish()

	uid := uuid.New()
	body := map[string]any{
		"fields": []map[string]any{
			{"tag": "x", "name": "X", "type": "hologram", "values": []any{}},
		},
	}

	rr := e.do(t, http.MethodPut, "/profiles/"+uid.String(), body)
	requireError(t, rr, http.StatusBadRequest, "invalid_argument")
}

func TestUpdateProfile_NotFound(t *testing.T) {
	e, ctrl := newEnv(t)
	defer ctrl.Finish()

	uid := uuid.New()
	e.storage.EXPECT().ProfileByUserID(gomock.Any(), uid).Return(nil, storage.ErrNotFoundProfile)

	rr := e.do(t, http.MethodPut, "/profiles/"+uid.String(), map[string]any{"tags": []string{"a"}})
	requireError(t, rr, http.StatusNotFound, "not_found")
}

func TestTranslate_FieldOK(t *testing.T) {
	e, ctrl := newEnv(t)
	defer ctrl.Finish()

	uid := uuid.New()
	profile := seedProfile(uid)
	fieldID := profile.Fields[0].ID

	e.storage.EXPECT().ProfileByUserID(gomock.Any(), uid).Return(profile, nil)
	e.translator.EXPECT().
		Translate(gomock.Any(), "Ingénieure logiciel", "en", "fr").
		Return("Software engineer", nil)
	e.storage.EXPECT().SaveProfile(gomock.Any(), gomock.Any()).Return(nil)

	body := map[string]any{
		"field_id":        fieldID.String(),
		"target_language": "EN", // нормализуется в lower-case
	}

	rr := e.do(t, http.MethodPost, "/profiles/"+uid.String()+"/translate", body)
	require.Equal(t, http.StatusOK, rr.Code)

	var got struct {
		Field struct {
			ID     string `json:"id"`
			Values []struct {
				Language string `json:"language"`
				Value    string `json:"value"`
			} `json:"values"`
		} `json:"field"`
		Outcome struct {
			FieldID string `json:"field_id"`
			Status  string `json:"status"`
		} `json:"outcome"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))

	require.Equal(t, fieldID.String(), got.Field.ID)
	require.Equal(t, "success", got.Outcome.Status)
	require.Len(t, got.Field.Values, 2)
	require.Equal(t, "en", got.Field.Values[1].Language)
	require.Equal(t, "Software engineer", got.Field.Values[1].Value)
}

func TestTranslate_ProviderFailureReportedInOutcome(t *testing.T) {
	e, ctrl := newEnv(t)
	defer ctrl.Finish()

	uid := uuid.New()
	profile := seedProfile(uid)
	fieldID := profile.Fields[0].ID

	e.storage.EXPECT().ProfileByUserID(gomock.Any(), uid).Return(profile, nil)
	e.translator.EXPECT().
		Translate(gomock.Any(), gomock.Any(), "en", "fr").
		Return("", translate.ErrUnavailable)

	body := map[string]any{
		"field_id":        fieldID.String(),
		"target_language": "en",
	}

	// Отказ провайдера — не ошибка HTTP-операции: 200 + исход в манифесте.
	rr := e.do(t, http.MethodPost, "/profiles/"+uid.String()+"/translate", body)
	require.Equal(t, http.StatusOK, rr.Code)

	var got struct {
		Outcome struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		} `json:"outcome"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Equal(t, "provider_error", got.Outcome.Status)
	require.NotEmpty(t, got.Outcome.Error)
}

func TestTranslate_AllOK(t *testing.T) {
	e, ctrl := newEnv(t)
	defer ctrl.Finish()

	uid := uuid.New()
	profile := seedProfile(uid)

	e.storage.EXPECT().ProfileByUserID(gomock.Any(), uid).Return(profile, nil)
	e.translator.EXPECT().
		Translate(gomock.Any(), "Ingénieure logiciel", "en", "fr").
		Return("Software engineer", nil)
	e.storage.EXPECT().SaveProfile(gomock.Any(), gomock.Any()).Return(nil)

	body := map[string]any{
		"translate_all":   true,
		"target_language": "en",
	}

	rr := e.do(t, http.MethodPost, "/profiles/"+uid.String()+"/translate", body)
	require.Equal(t, http.StatusOK, rr.Code)

	var got struct {
		Profile  map[string]any `json:"profile"`
		Outcomes []struct {
			Tag    string `json:"tag"`
			Status string `json:"status"`
		} `json:"outcomes"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got.Outcomes, 1)
	require.Equal(t, "summary", got.Outcomes[0].Tag)
	require.Equal(t, "success", got.Outcomes[0].Status)
}

func TestTranslate_SelectorValidation(t *testing.T) {
	e, ctrl := newEnv(t)
	defer ctrl.Finish()

	uid := uuid.New()

	// Оба селектора сразу.
	both := map[string]any{
		"field_id":        uuid.New().String(),
		"translate_all":   true,
		"target_language": "en",
	}
	rr := e.do(t, http.MethodPost, "/profiles/"+uid.String()+"/translate", both)
	requireError(t, rr, http.StatusBadRequest, "invalid_argument")

	// Ни одного селектора.
	neither := map[string]any{"target_language": "en"}
	rr = e.do(t, http.MethodPost, "/profiles/"+uid.String()+"/translate", neither)
	requireError(t, rr, http.StatusBadRequest, "invalid_argument")
}

func TestErrorEnvelope_CarriesRequestID(t *testing.T) {
	e, ctrl := newEnv(t)
	defer ctrl.Finish()

	req := httptest.NewRequest(http.MethodGet, "/profiles/not-a-uuid", nil)
	req.Header.Set("X-Request-Id", "req-42")

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)

	var resp errEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "req-42", resp.Error.RequestID)
}
