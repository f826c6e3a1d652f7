package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingDefaults(t *testing.T) {
	setup(t)
	defer teardown()

	settingService := SettingService{}

	port, err := settingService.GetPort()
	assert.NoError(t, err)
	assert.Equal(t, 8080, port)

	maxAge, err := settingService.GetSessionMaxAge()
	assert.NoError(t, err)
	assert.Equal(t, 60, maxAge)

	basePath, err := settingService.GetBasePath()
	assert.NoError(t, err)
	assert.Equal(t, "/", basePath)

	enabled, err := settingService.GetTwoFactorEnable()
	assert.NoError(t, err)
	assert.False(t, enabled)
}

func TestSecretPersists(t *testing.T) {
	setup(t)
	defer teardown()

	settingService := SettingService{}

	first, err := settingService.GetSecret()
	assert.NoError(t, err)
	assert.Len(t, first, 32)

	second, err := settingService.GetSecret()
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSettingRoundTrip(t *testing.T) {
	setup(t)
	defer teardown()

	settingService := SettingService{}

	assert.NoError(t, settingService.SetTwoFactorToken("JBSWY3DPEHPK3PXP"))
	token, err := settingService.GetTwoFactorToken()
	assert.NoError(t, err)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", token)

	assert.NoError(t, settingService.SetTwoFactorEnable(true))
	enabled, err := settingService.GetTwoFactorEnable()
	assert.NoError(t, err)
	assert.True(t, enabled)
}
