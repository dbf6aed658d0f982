package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueFromAny_Scalars(t *testing.T) {
	v, err := ValueFromAny("Steel")
	require.NoError(t, err)
	assert.Equal(t, String("Steel"), v)

	v, err = ValueFromAny(1.5)
	require.NoError(t, err)
	assert.Equal(t, Number(1.5), v)

	v, err = ValueFromAny(true)
	require.NoError(t, err)
	assert.Equal(t, Bool(true), v)
}

func TestValueFromAny_List(t *testing.T) {
	v, err := ValueFromAny([]any{"Iron", "Sword"})
	require.NoError(t, err)
	assert.Equal(t, StringList{"Iron", "Sword"}, v)

	_, err = ValueFromAny([]any{"Iron", 3.0})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestValueFromAny_RejectsNullAndObjects(t *testing.T) {
	_, err := ValueFromAny(nil)
	assert.Error(t, err)

	_, err = ValueFromAny(map[string]any{"a": "b"})
	assert.Error(t, err)
}

func TestValueFromAny_JSONNumber(t *testing.T) {
	v, err := ValueFromAny(json.Number("12"))
	require.NoError(t, err)
	assert.Equal(t, Number(12), v)
}

func TestAsNumber(t *testing.T) {
	n, err := AsNumber(Number(3))
	require.NoError(t, err)
	assert.Equal(t, 3.0, n)

	n, err = AsNumber(String(" 2.5 "))
	require.NoError(t, err)
	assert.Equal(t, 2.5, n)

	_, err = AsNumber(String("heavy"))
	assert.ErrorIs(t, err, ErrWrongType)

	_, err = AsNumber(StringList{"1"})
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestAsStrings_ScalarBecomesList(t *testing.T) {
	list, err := AsStrings(String("Iron"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Iron"}, list)

	_, err = AsStrings(Number(1))
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestAsString_DoesNotCoerceNumbers(t *testing.T) {
	_, err := AsString(Number(1))
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestAsBool(t *testing.T) {
	b, err := AsBool(Bool(true))
	require.NoError(t, err)
	assert.True(t, b)

	_, err = AsBool(String("true"))
	assert.ErrorIs(t, err, ErrWrongType)
}
