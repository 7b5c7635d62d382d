package main

import (
	"fmt"
	"log"
	"net/mail"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shulehub/shule/core"
	logsvc "github.com/shulehub/shule/services/logger"
)

func Test_newEmailService(t *testing.T) {
	logger := logsvc.NewConsoleLogger(log.New(os.Stderr, "", 0))
	conf := &core.Config{
		AppName:          "Shule",
		Debug:            true,
		DefaultFromEmail: mail.Address{Name: "Shule", Address: "noreply@shule.app"},
	}

	assert.Contains(t, fmt.Sprintf("%T", newEmailService(conf, logger)), "consoleService")

	conf.Debug = false
	conf.SendgridApiKey = "SG.test-key"
	assert.Contains(t, fmt.Sprintf("%T", newEmailService(conf, logger)), "sendgridService")
}
