package models

// Тесты доменных операций над агрегатом профиля (profile.go).
//
// Проверяем:
//   - UpsertValue: добавление нового языка, замена существующего in-place,
//     сохранение порядка остальных языков, чистоту (вход не мутируется);
//   - ValueByLanguage/BaseValue: наличие/отсутствие значения;
//   - FieldByID: поиск поля и позиция;
//   - Validate: уникальность ID полей и языков внутри поля;
//   - ParseFieldType: круговой маппинг имя <-> enum и ошибка на мусоре.

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testField(lang, value string) DataField {
	now := time.Now().UTC()

	return DataField{
		ID:           uuid.New(),
		Tag:          "summary",
		Name:         "Summary",
		Type:         FieldTypeText,
		BaseLanguage: lang,
		Values: []FieldValue{
			{Language: lang, Value: value, CreatedAt: now, UpdatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestUpsertValue_AppendsNewLanguage(t *testing.T) {
	f := testField("fr", "Ingénieur")
	now := time.Now().UTC().Add(time.Second)

	got := f.UpsertValue("en", "Engineer", now)

	require.Len(t, got.Values, 2)
	v, ok := got.ValueByLanguage("en")
	require.True(t, ok)
	require.Equal(t, "Engineer", v.Value)
	require.Equal(t, now, v.CreatedAt)
	require.Equal(t, now, v.UpdatedAt)

	// Базовое значение не тронуто.
	base, ok := got.BaseValue()
	require.True(t, ok)
	require.Equal(t, "Ingénieur", base.Value)
}

func TestUpsertValue_ReplacesInPlace(t *testing.T) {
	f := testField("fr", "Ingénieur")
	f = f.UpsertValue("en", "Enginer", time.Now().UTC())
	f = f.UpsertValue("de", "Ingenieur", time.Now().UTC())

	createdBefore, _ := f.ValueByLanguage("en")
	later := time.Now().UTC().Add(time.Minute)

	got := f.UpsertValue("en", "Engineer", later)

	// Замена, не дубликат.
	require.Len(t, got.Values, 3)
	v, ok := got.ValueByLanguage("en")
	require.True(t, ok)
	require.Equal(t, "Engineer", v.Value)
	require.Equal(t, later, v.UpdatedAt)
	// CreatedAt замены сохраняется.
	require.Equal(t, createdBefore.CreatedAt, v.CreatedAt)

	// Порядок языков не изменился.
	require.Equal(t, "fr", got.Values[0].Language)
	require.Equal(t, "en", got.Values[1].Language)
	require.Equal(t, "de", got.Values[2].Language)
}

func TestUpsertValue_DoesNotMutateInput(t *testing.T) {
	f := testField("fr", "Ingénieur")

	_ = f.UpsertValue("en", "Engineer", time.Now().UTC())
	_ = f.UpsertValue("fr", "Développeur", time.Now().UTC())

	require.Len(t, f.Values, 1)
	base, _ := f.BaseValue()
	require.Equal(t, "Ingénieur", base.Value)
}

// Инвариант уникальности: любая последовательность апсертов
// оставляет не более одного значения на язык.
func TestUpsertValue_UniquenessAfterSequence(t *testing.T) {
	f := testField("fr", "a")
	langs := []string{"en", "fr", "en", "de", "en", "fr"}

	for i, l := range langs {
		f = f.UpsertValue(l, l, time.Now().UTC().Add(time.Duration(i)*time.Second))
	}

	seen := map[string]int{}
	for _, v := range f.Values {
		seen[v.Language]++
	}
	for lang, n := range seen {
		require.Equal(t, 1, n, "language %s duplicated", lang)
	}
	require.Len(t, f.Values, 3)
}

func TestValueByLanguage_Missing(t *testing.T) {
	f := testField("fr", "x")

	_, ok := f.ValueByLanguage("en")
	require.False(t, ok)
}

func TestBaseValue_MissingWhenNoEntry(t *testing.T) {
	f := testField("fr", "x")
	f.Values = nil

	_, ok := f.BaseValue()
	require.False(t, ok)
}

func TestFieldByID(t *testing.T) {
	p := NewDefaultProfile(uuid.New(), "fr")
	f1 := testField("fr", "один")
	f2 := testField("fr", "два")
	p.Fields = []DataField{f1, f2}

	got, idx, ok := p.FieldByID(f2.ID)
	require.True(t, ok)
	require.Equal(t, 1, idx)
	require.Equal(t, f2.ID, got.ID)

	_, _, ok = p.FieldByID(uuid.New())
	require.False(t, ok)
}

func TestValidate_OK(t *testing.T) {
	p := NewDefaultProfile(uuid.New(), "fr")
	p.Fields = []DataField{testField("fr", "a"), testField("fr", "b")}

	require.NoError(t, p.Validate())
}

func TestValidate_DuplicateFieldID(t *testing.T) {
	p := NewDefaultProfile(uuid.New(), "fr")
	f := testField("fr", "a")
	p.Fields = []DataField{f, f}

	require.ErrorIs(t, p.Validate(), ErrDuplicateFieldID)
}

func TestValidate_DuplicateLanguage(t *testing.T) {
	p := NewDefaultProfile(uuid.New(), "fr")
	f := testField("fr", "a")
	f.Values = append(f.Values, FieldValue{Language: "fr", Value: "b"})
	p.Fields = []DataField{f}

	require.ErrorIs(t, p.Validate(), ErrDuplicateLanguage)
}

func TestValidate_EmptyLanguages(t *testing.T) {
	p := NewDefaultProfile(uuid.New(), "")
	require.ErrorIs(t, p.Validate(), ErrEmptyLanguage)

	p = NewDefaultProfile(uuid.New(), "fr")
	f := testField("fr", "a")
	f.BaseLanguage = " "
	p.Fields = []DataField{f}
	require.ErrorIs(t, p.Validate(), ErrEmptyLanguage)

	f = testField("fr", "a")
	f.Values[0].Language = ""
	p.Fields = []DataField{f}
	require.ErrorIs(t, p.Validate(), ErrEmptyLanguage)
}

func TestParseFieldType_RoundTrip(t *testing.T) {
	for _, ft := range []FieldType{
		FieldTypeText, FieldTypeNumber, FieldTypeDate, FieldTypeURL,
		FieldTypeEmail, FieldTypePhone, FieldTypeRichText, FieldTypeImage, FieldTypeVideo,
	} {
		got, err := ParseFieldType(ft.String())
		require.NoError(t, err)
		require.Equal(t, ft, got)
	}

	_, err := ParseFieldType("hologram")
	require.Error(t, err)
}
