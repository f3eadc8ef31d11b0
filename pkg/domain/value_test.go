package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Truthy(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  bool
	}{
		{"True", Bool(true), true},
		{"False", Bool(false), false},
		{"Text", String("cw"), true},
		{"Empty Text", String(""), false},
		{"Absent", Absent(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.Truthy())
		})
	}
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, Bool(true).Equal(Bool(true)))
	assert.False(t, Bool(true).Equal(String("true")))
	assert.True(t, Absent().Equal(Absent()))
	assert.False(t, String("a").Equal(String("b")))
}

func TestValue_JSON(t *testing.T) {
	var v struct {
		A Value `json:"a"`
		B Value `json:"b"`
		C Value `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":true,"b":"single","c":null}`), &v))
	assert.Equal(t, Bool(true), v.A)
	assert.Equal(t, String("single"), v.B)
	assert.True(t, v.C.IsAbsent())

	var bad Value
	assert.ErrorIs(t, json.Unmarshal([]byte(`42`), &bad), ErrTypeMismatch)
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue(KindBool, "false")
	require.NoError(t, err)
	assert.Equal(t, Bool(false), v)

	_, err = ParseValue(KindBool, "maybe")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	v, err = ParseValue(KindString, "^re$")
	require.NoError(t, err)
	assert.Equal(t, String("^re$"), v)

	_, err = ParseValue(KindAbsent, "x")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}
