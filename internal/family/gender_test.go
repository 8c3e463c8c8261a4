package family

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGender(t *testing.T) {
	g, err := ParseGender("male")
	require.NoError(t, err)
	assert.Equal(t, Male, g)

	g, err = ParseGender("female")
	require.NoError(t, err)
	assert.Equal(t, Female, g)

	for _, token := range []string{"", "Male", "FEMALE", "other", " male", "WrongValue"} {
		_, err := ParseGender(token)
		assert.ErrorIs(t, err, ErrInvalidGender, "token %q", token)
	}
}

func TestGenderJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		Gender Gender `json:"gender"`
	}{Female})
	require.NoError(t, err)
	assert.JSONEq(t, `{"gender":"female"}`, string(out))

	var in struct {
		Gender Gender `json:"gender"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"gender":"male"}`), &in))
	assert.Equal(t, Male, in.Gender)

	err = json.Unmarshal([]byte(`{"gender":"unknown"}`), &in)
	assert.ErrorIs(t, err, ErrInvalidGender)

	_, err = json.Marshal(struct{ G Gender }{})
	assert.Error(t, err)
}
