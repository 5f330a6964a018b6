package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avoronov/library-catalog/internal/model"
)

func strPtr(s string) *string { return &s }

func TestUser_FullName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		user model.User
		want string
	}{
		{
			name: "first and last name",
			user: model.User{
				Email:     "test@example.com",
				Username:  strPtr("testuser"),
				FirstName: strPtr("John"),
				LastName:  strPtr("Doe"),
			},
			want: "John Doe",
		},
		{
			name: "username only",
			user: model.User{
				Email:    "test@example.com",
				Username: strPtr("testuser"),
			},
			want: "testuser",
		},
		{
			name: "first name without last name falls back to username",
			user: model.User{
				Email:     "test@example.com",
				Username:  strPtr("testuser"),
				FirstName: strPtr("John"),
			},
			want: "testuser",
		},
		{
			name: "email fallback",
			user: model.User{
				Email: "test@example.com",
			},
			want: "test@example.com",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.user.FullName())
		})
	}
}

func TestDate_JSON(t *testing.T) {
	t.Parallel()

	var d model.Date
	require.NoError(t, json.Unmarshal([]byte(`"1990-05-21"`), &d))
	require.Equal(t, time.Date(1990, 5, 21, 0, 0, 0, 0, time.UTC), d.Time)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"1990-05-21"`, string(b))
}
