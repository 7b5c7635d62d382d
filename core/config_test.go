package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NewConfig_defaults(t *testing.T) {
	conf := NewConfig()

	assert.Equal(t, "Shule", conf.AppName)
	assert.Equal(t, "http://localhost:5000", conf.API.BaseURL)
	assert.Empty(t, conf.SendgridApiKey)
	assert.Equal(t, "noreply@shule.app", conf.DefaultFromEmail.Address)
	assert.Equal(t, conf.AppName, conf.DefaultFromEmail.Name)
}
