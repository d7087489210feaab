package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-calcform/pkg/openapi"
	"github.com/goliatone/go-calcform/pkg/renderers/vanilla"
	"github.com/goliatone/go-calcform/pkg/server"
)

func serveCmd(a *app, defaultAddr string) *cobra.Command {
	var (
		addr  string
		title string
		grace time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the templates over HTTP",
		Long: `Serve every template as an HTML form under /forms/{name}. Form posts are
validated server side: rejected posts re-render with errors, accepted ones
return the collected data as JSON. JSON posts receive the validation result
described by /openapi.json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			factory, err := vanilla.NewFactory(vanilla.WithLogger(a.logger))
			if err != nil {
				return err
			}
			srv, err := server.New(a.library,
				server.WithFactory(factory),
				server.WithValidator(a.validator),
				server.WithTitle(title),
				server.WithInfo(openapi.Info{Title: title, Version: version}),
				server.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           srv.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errChan := make(chan error, 1)
			go func() {
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errChan <- err
				}
				close(errChan)
			}()
			a.logger.Info("listening", zap.String("addr", addr), zap.Strings("forms", a.library.Names()))

			select {
			case err := <-errChan:
				return err
			case <-cmd.Context().Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "HTTP listen address [CALCFORM_ADDR]")
	cmd.Flags().StringVar(&title, "title", "Calculators", "Index page and OpenAPI document title")
	cmd.Flags().DurationVar(&grace, "grace", 5*time.Second, "Shutdown grace period")
	return cmd
}
