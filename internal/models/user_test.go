package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid user",
			user:    User{Email: "a@x.com", FullName: "A", PasswordHash: "hash"},
			wantErr: false,
		},
		{
			name:    "empty email",
			user:    User{FullName: "A", PasswordHash: "hash"},
			wantErr: true,
			errMsg:  "email is required",
		},
		{
			name:    "unicode local part",
			user:    User{Email: "josé@example.com", FullName: "A", PasswordHash: "hash"},
			wantErr: false,
		},
		{
			name:    "single letter tld",
			user:    User{Email: "o'brien@b.c", FullName: "A", PasswordHash: "hash"},
			wantErr: false,
		},
		{
			name:    "empty full name",
			user:    User{Email: "a@x.com", PasswordHash: "hash"},
			wantErr: true,
			errMsg:  "full name is required",
		},
		{
			name:    "missing password hash",
			user:    User{Email: "a@x.com", FullName: "A"},
			wantErr: true,
			errMsg:  "password hash is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.errMsg, err.Error())
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUser_BeforeCreate(t *testing.T) {
	user := &User{Email: "a@x.com", FullName: "A", PasswordHash: "hash"}

	err := user.BeforeCreate(nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	assert.False(t, user.UpdatedAt.IsZero())
}

func TestNewDefaultCategories(t *testing.T) {
	userID := uuid.New()

	categories := NewDefaultCategories(userID)

	require.Len(t, categories, 7)
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		assert.Equal(t, userID, category.UserID)
		require.NotNil(t, category.Color)
		require.NotNil(t, category.Icon)
		names = append(names, category.Name)
	}
	assert.Contains(t, names, "Other")
	assert.Contains(t, names, "Food & Dining")

	// each entry owns its own color pointer
	*categories[0].Color = "#000000"
	assert.NotEqual(t, "#000000", *categories[1].Color)
}

func TestCategory_Validate(t *testing.T) {
	owner := uuid.New()

	assert.NoError(t, (&Category{UserID: owner, Name: "Groceries"}).Validate())
	assert.Error(t, (&Category{Name: "Groceries"}).Validate())
	assert.Error(t, (&Category{UserID: owner}).Validate())

	long := make([]rune, MaxCategoryNameLength+1)
	for i := range long {
		long[i] = 'x'
	}
	assert.Error(t, (&Category{UserID: owner, Name: string(long)}).Validate())
}
