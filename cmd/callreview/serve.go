package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	// Packages
	callreview "github.com/mutablelogic/go-callreview"
	api "github.com/mutablelogic/go-callreview/pkg/api"
	event "github.com/mutablelogic/go-callreview/pkg/event"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type ServeCmd struct {
	Listen string `flag:"listen" help:"Address to listen on" default:"localhost:8080"`
	Base   string `flag:"base" help:"Path prefix for the API" default:"/api/v1"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	shutdownTimeout = 10 * time.Second
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *ServeCmd) Run(app *Globals) error {
	hub := event.NewHub(app.log)
	defer hub.Close()

	service, err := app.service(true, callreview.OptPublisher(hub))
	if err != nil {
		return err
	}

	// Create the server
	server := &http.Server{
		Addr:    cmd.Listen,
		Handler: api.RegisterEndpoints(cmd.Base, service, hub, nil, app.Debug),
	}

	// Shut down when the context is done
	go func() {
		<-app.ctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		hub.Close()
		if err := server.Shutdown(ctx); err != nil {
			app.log.WithError(err).Warn("shutdown")
		}
	}()

	app.log.WithField("listen", cmd.Listen).WithField("base", cmd.Base).Info("serving")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
