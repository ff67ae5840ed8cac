package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/townpages/townpages-cli/internal/adapters/driven/config/file"
	"github.com/townpages/townpages-cli/internal/adapters/driving/edge"
	"github.com/townpages/townpages-cli/internal/logger"
)

var (
	serveListen string
	serveOrigin string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the edge router in front of the generated pages",
	Long: `Starts the request-time router. Requests whose leftmost host
label is a region slug are rewritten onto that region's generated page
path; reserved labels and the bare base domain pass through unchanged.
Origin responses are forwarded verbatim.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (default :8080 or serve.listen)")
	serveCmd.Flags().StringVar(&serveOrigin, "origin", "", "origin base URL (default serve.origin)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := ensureConfig(cmd.Context()); err != nil {
		return err
	}

	listen := serveListen
	if listen == "" {
		listen = configStore.GetString(configfile.KeyServeListen)
	}
	if listen == "" {
		listen = ":8080"
	}

	originRaw := serveOrigin
	if originRaw == "" {
		originRaw = configStore.GetString(configfile.KeyServeOrigin)
	}
	if originRaw == "" {
		return fmt.Errorf("origin required: pass --origin or set serve.origin in %s", configStore.Path())
	}
	origin, err := url.Parse(originRaw)
	if err != nil || origin.Scheme == "" || origin.Host == "" {
		return fmt.Errorf("invalid origin URL %q", originRaw)
	}

	reserved := configStore.GetStringSlice(configfile.KeyServeReservedLabels)
	if len(reserved) == 0 {
		reserved = edge.DefaultReservedLabels
	}
	table := edge.NewTable(configStore.GetString(configfile.KeyServeBaseDomain), reserved)
	router := edge.NewRouter(origin, table)

	server := &http.Server{
		Addr:              listen,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	cmd.Printf("Edge router listening on %s, forwarding to %s\n", listen, origin)

	ctx := cmd.Context()
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down edge router")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
