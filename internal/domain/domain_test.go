package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Validator Tests ---

func TestValidateCharacterName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain name", "Thrall", false},
		{"accented name", "Svartidauði", false},
		{"name with apostrophe", "Kel'thuzad", false},
		{"two letters", "Bo", false},
		{"empty", "", true},
		{"single letter", "X", true},
		{"leading digit", "1Thrall", true},
		{"contains space", "Thrall Jr", true},
		{"too long", "Abcdefghijklmnopqrstuvwxy", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCharacterName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateDifficulty(t *testing.T) {
	assert.NoError(t, ValidateDifficulty("mythic"))
	assert.NoError(t, ValidateDifficulty("heroic"))
	assert.NoError(t, ValidateDifficulty("normal"))
	assert.Error(t, ValidateDifficulty("Mythic"))
	assert.Error(t, ValidateDifficulty("lfr"))
	assert.Error(t, ValidateDifficulty(""))
}

func TestValidateApplicationStatus(t *testing.T) {
	assert.NoError(t, ValidateApplicationStatus("pending"))
	assert.NoError(t, ValidateApplicationStatus("approved"))
	assert.NoError(t, ValidateApplicationStatus("rejected"))
	assert.Error(t, ValidateApplicationStatus("open"))
	assert.Error(t, ValidateApplicationStatus(""))
}

func TestValidateBattleTag(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		wantErr bool
	}{
		{"valid tag", "Guttakrutt#2134", false},
		{"short discriminator", "Bob#1", false},
		{"missing hash", "Guttakrutt2134", true},
		{"missing discriminator", "Guttakrutt#", true},
		{"non-numeric discriminator", "Guttakrutt#21a4", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBattleTag(tt.tag)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateRegion(t *testing.T) {
	assert.NoError(t, ValidateRegion("eu"))
	assert.NoError(t, ValidateRegion("US"))
	assert.Error(t, ValidateRegion("xx"))
	assert.Error(t, ValidateRegion(""))
}

// --- AppError Tests ---

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := ErrInternal("query guild", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "INTERNAL_ERROR")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestErrWriteVerify(t *testing.T) {
	err := ErrWriteVerify("raid boss", nil)
	assert.Equal(t, "WRITE_VERIFY_FAILED", err.Code)
	assert.Equal(t, 500, err.Status)
	assert.Contains(t, err.Message, "raid boss")
}

func TestCharacterInRoster(t *testing.T) {
	c := &Character{Rank: 3}
	assert.True(t, c.InRoster())
	c.Rank = RankRemoved
	assert.False(t, c.InRoster())
}
