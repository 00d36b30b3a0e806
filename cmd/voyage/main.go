// README: Command-line planner; submits trips to the API and keeps the last result on disk or in Redis.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"voyage/internal/infra"
	"voyage/internal/planner"
)

type options struct {
	apiURL    string
	stateDir  string
	redisAddr string
	namespace string
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "voyage",
		Short:        "Plan trips with Voyage AI",
		SilenceUsage: true,
	}

	home, _ := os.UserHomeDir()
	root.PersistentFlags().StringVar(&opts.apiURL, "api", envOr("VOYAGE_API_URL", "http://localhost:8080"), "Voyage API base URL")
	root.PersistentFlags().StringVar(&opts.stateDir, "state-dir", filepath.Join(home, ".voyage"), "directory for saved planner state")
	root.PersistentFlags().StringVar(&opts.redisAddr, "redis", os.Getenv("VOYAGE_REDIS_ADDR"), "keep planner state in Redis instead of --state-dir")
	root.PersistentFlags().StringVar(&opts.namespace, "namespace", envOr("USER", "default"), "Redis key namespace")

	root.AddCommand(
		newPlanCmd(opts),
		newRetryCmd(opts),
		newShowCmd(opts),
		newClearCmd(opts),
		newExportCmd(opts),
		newFeedCmd(opts),
		newBuyCmd(opts),
	)
	return root
}

func (o *options) client() *planner.Client {
	return planner.NewClient(o.apiURL, nil)
}

// form opens the configured store and restores the saved planner state.
func (o *options) form(ctx context.Context) (*planner.Form, func(), error) {
	store, closeStore, err := o.store(ctx)
	if err != nil {
		return nil, nil, err
	}
	f, err := planner.NewForm(ctx, o.client(), store)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return f, closeStore, nil
}

func (o *options) store(ctx context.Context) (planner.Store, func(), error) {
	if o.redisAddr != "" {
		rdb, err := infra.NewRedis(ctx, o.redisAddr)
		if err != nil {
			return nil, nil, err
		}
		return planner.NewRedisStore(rdb, o.namespace), func() { _ = rdb.Close() }, nil
	}
	fs, err := planner.NewFileStore(o.stateDir)
	if err != nil {
		return nil, nil, err
	}
	return fs, func() {}, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
