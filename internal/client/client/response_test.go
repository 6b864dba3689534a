package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse_OK(t *testing.T) {
	for status, want := range map[int]bool{199: false, 200: true, 204: true, 299: true, 300: false, 400: false, 500: false} {
		assert.Equal(t, want, (&Response{StatusCode: status}).OK(), "status %d", status)
	}
}

func TestResponse_Err(t *testing.T) {
	assert.NoError(t, (&Response{StatusCode: 201}).Err())

	err := (&Response{StatusCode: 500, body: []byte("boom")}).Err()
	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "http status 500: boom", he.Error())
	assert.Equal(t, "http status 502", (&HTTPError{Status: 502}).Error())
}

func TestResponse_ValidationErrors(t *testing.T) {
	allowed := []string{"email", "password", "re_password", "username", "first_name", "last_name"}

	tests := []struct {
		name    string
		body    string
		allowed []string
		want    map[string][]string
		wantErr bool
	}{
		{
			name:    "lists",
			body:    `{"email":["already taken"],"password":["too short","too common"]}`,
			allowed: allowed,
			want:    map[string][]string{"email": {"already taken"}, "password": {"too short", "too common"}},
		},
		{
			name: "single string accepted",
			body: `{"detail":"nope"}`,
			want: map[string][]string{"detail": {"nope"}},
		},
		{
			name:    "unexpected key",
			body:    `{"nickname":["bad"]}`,
			allowed: allowed,
			wantErr: true,
		},
		{
			name:    "not an object",
			body:    `["email"]`,
			wantErr: true,
		},
		{
			name:    "wrong value type",
			body:    `{"email":42}`,
			wantErr: true,
		},
		{
			name:    "empty object",
			body:    `{}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Response{StatusCode: 400, body: []byte(tt.body)}
			verr, err := r.ValidationErrors(tt.allowed...)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrDecode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, verr.Fields)
		})
	}
}

func TestValidationError_ErrorSorted(t *testing.T) {
	e := &ValidationError{Fields: map[string][]string{
		"username": {"required"},
		"email":    {"invalid", "taken"},
	}}
	assert.Equal(t, "validation failed: email: invalid; taken, username: required", e.Error())
}
