package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/shulehub/shule/api"
	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/session"
	"github.com/shulehub/shule/rest"
	logsvc "github.com/shulehub/shule/services/logger"
)

// app wires the config, session store, API services and session manager
// together; every command hangs off one instance.
type app struct {
	conf     *core.Config
	log      core.Logger
	store    session.Store
	locator  *locator
	manager  *session.Manager
	services *api.Services
}

func newApp() (*app, error) {
	conf := core.NewConfig()

	std := log.New(os.Stderr, "", log.LstdFlags)
	var logger core.Logger
	if conf.RollbarToken != "" && !conf.Debug {
		logger = logsvc.NewRollbarLogger(std, conf)
	} else {
		logger = logsvc.NewConsoleLogger(std)
	}

	store := session.NewFileStore(conf.SessionFile)
	loc := newLocator(conf.LocationFile, store)

	client, err := rest.NewClient(rest.Options{
		BaseURL:  conf.API.BaseURL,
		Timeout:  conf.API.Timeout,
		Tokens:   store,
		Location: loc.Current,
	})
	if err != nil {
		logger.Error("setting up API client", err)
		return nil, err
	}

	services := api.New(client)
	return &app{
		conf:     conf,
		log:      logger,
		store:    store,
		locator:  loc,
		manager:  session.NewManager(store, services.Auth, logger),
		services: services,
	}, nil
}

// fail prints an error the way a page would surface it: validation errors
// field by field, everything else as a single message.
func fail(err error) error {
	var vErr *core.ValidationError
	if errors.As(err, &vErr) {
		for _, fld := range vErr.Fields {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", fld.Field, fld.Error)
		}
		if len(vErr.Fields) == 0 {
			fmt.Fprintln(os.Stderr, vErr.Error())
		}
		return err
	}
	fmt.Fprintln(os.Stderr, err.Error())
	return err
}
