// Command stub runs the local development double of the ERP backend.
package main

import (
	"log"
	"os"

	"github.com/shulehub/shule/core"
	emailsvc "github.com/shulehub/shule/services/email"
	logsvc "github.com/shulehub/shule/services/logger"
	"github.com/shulehub/shule/stubapi"
)

func main() {
	conf := core.NewConfig()

	std := log.New(os.Stderr, "", log.LstdFlags)
	var logger core.Logger
	if conf.RollbarToken != "" && !conf.Debug {
		logger = logsvc.NewRollbarLogger(std, conf)
	} else {
		logger = logsvc.NewConsoleLogger(std)
	}

	srv := stubapi.NewServer(&stubapi.Options{
		Addr:   ":5000",
		Secret: []byte("shule-stub-secret"),
		Email:  newEmailService(conf, logger),
		Debug:  conf.Debug,
	})
	srv.Start()
}

// newEmailService picks the mail backend: console while debugging, sendgrid
// everywhere else.
func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug {
		return emailsvc.NewConsoleService(conf.AppName, conf.DefaultFromEmail)
	}
	return emailsvc.NewSendgridService(conf.SendgridApiKey, conf.AppName, conf.DefaultFromEmail, logger)
}
