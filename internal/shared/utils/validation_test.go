package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/nitrodesk/nitrodesk/internal/shared/errors"
)

type sampleRequest struct {
	DiscordID      string `json:"discordId" validate:"required,snowflake"`
	DurationMonths int    `json:"durationMonths" validate:"min=1,max=120"`
	NitroType      string `json:"nitroType" validate:"oneof=CLASSIC BASIC PREMIUM"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := ValidateStruct(sampleRequest{DiscordID: "123456789012345678", DurationMonths: 1, NitroType: "BASIC"})
		assert.NoError(t, err)
	})

	t.Run("uses json names", func(t *testing.T) {
		err := ValidateStruct(sampleRequest{DiscordID: "abc", DurationMonths: 0, NitroType: "GOLD"})
		require.Error(t, err)

		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
		assert.Contains(t, appErr.Details, "discordId must be a Discord id")
		assert.Contains(t, appErr.Details, "durationMonths must be at least 1")
		assert.Contains(t, appErr.Details, "nitroType must be one of [CLASSIC BASIC PREMIUM]")
	})
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", MaskSecret(""))
	assert.Equal(t, "********", MaskSecret("short"))
	assert.Equal(t, "********wxyz", MaskSecret("MTIzNDU2.abcdef.wxyz"))

	assert.True(t, IsMasked(MaskSecret("MTIzNDU2.abcdef.wxyz")))
	assert.True(t, IsMasked(MaskSecret("short")))
	assert.False(t, IsMasked("MTIzNDU2.abcdef.wxyz"))
	assert.False(t, IsMasked(""))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
}
