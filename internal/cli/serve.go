package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/internal/api"
)

// serveCommand creates the HTTP API server command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP resolution API",
		Long: `Serve starts an HTTP server exposing resolution and universe management
endpoints. Universes are kept in the configured store; resolution results
are cached with the configured cache backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(false)
			if err != nil {
				return err
			}
			defer runner.Close()

			st, err := c.newStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			listen := addr
			if listen == "" {
				listen = c.Config.Server.Addr
			}

			srv := &http.Server{
				Addr:    listen,
				Handler: api.NewServer(runner, st, c.Logger).Router(),
			}

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Info("listening", "addr", listen)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
			}

			c.Logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}
