package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissions_UnmarshalPresence(t *testing.T) {
	tests := []struct {
		name        string
		payload     string
		wantPresent bool
		wantValues  []string
	}{
		{"absent", `{"sub":"u1"}`, false, nil},
		{"null", `{"sub":"u1","permissions":null}`, false, nil},
		{"empty", `{"sub":"u1","permissions":[]}`, true, []string{}},
		{"values", `{"sub":"u1","permissions":["get:movies","post:actors"]}`, true, []string{"get:movies", "post:actors"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var claims Claims
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &claims))
			assert.Equal(t, "u1", claims.GetUserID())
			assert.Equal(t, tt.wantPresent, claims.Permissions.Present)
			assert.Equal(t, tt.wantValues, claims.Permissions.Values)
		})
	}
}

func TestPermissions_RejectsNonArray(t *testing.T) {
	var claims Claims
	err := json.Unmarshal([]byte(`{"permissions":"get:movies"}`), &claims)
	assert.Error(t, err)
}

func TestPermissions_Has(t *testing.T) {
	p := NewPermissions("get:movies", "patch:actors")
	assert.True(t, p.Has("get:movies"))
	assert.False(t, p.Has("Get:Movies"))
	assert.False(t, p.Has("get"))
	assert.False(t, Permissions{}.Has("get:movies"))
}

func TestPermissions_Marshal(t *testing.T) {
	out, err := json.Marshal(Permissions{})
	require.NoError(t, err)
	assert.JSONEq(t, `null`, string(out))

	out, err = json.Marshal(NewPermissions())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(out))

	out, err = json.Marshal(NewPermissions("get:movies"))
	require.NoError(t, err)
	assert.JSONEq(t, `["get:movies"]`, string(out))
}

func TestClaims_CloneIsIndependent(t *testing.T) {
	original := Claims{Permissions: NewPermissions("get:movies")}
	original.Subject = "u1"
	original.Audience = []string{"casting"}

	clone := original.Clone()
	clone.Permissions.Values[0] = "delete:movies"
	clone.Audience[0] = "other"
	clone.Subject = "u2"

	assert.Equal(t, []string{"get:movies"}, original.Permissions.Values)
	assert.Equal(t, "casting", original.Audience[0])
	assert.Equal(t, "u1", original.Subject)
}
