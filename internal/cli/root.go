// Package cli implements shopctl, a terminal front end over the catalog, the
// cart store and checkout quoting. The cart persists between invocations
// through the file snapshot backend.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lovenest/storefront/internal/catalog"
	"github.com/lovenest/storefront/internal/checkout"
	"github.com/lovenest/storefront/internal/snapshot"
	"github.com/lovenest/storefront/internal/store"
	"github.com/lovenest/storefront/pkg/config"
	"github.com/lovenest/storefront/pkg/logger"
)

const (
	envPrefix = "SHOPCTL"

	keySnapshotDir = "snapshot-dir"
	keySession     = "session"
	keyOutput      = "output"
	keyLogLevel    = "log-level"

	outputTable = "table"
	outputJSON  = "json"
)

// Options wires the command tree. Zero values fall back to the seeded catalog,
// the default checkout rules and the process's stdout/stderr.
type Options struct {
	Catalog *catalog.Catalog
	Rules   *checkout.Rules
	Out     io.Writer
	Err     io.Writer
}

type app struct {
	cfg   *viper.Viper
	cat   *catalog.Catalog
	rules *checkout.Rules
	out   io.Writer
	errw  io.Writer
	logg  *logger.Logger
}

// NewRootCommand builds the shopctl command tree. Each call gets its own
// viper instance so trees never share flag state.
func NewRootCommand(opts Options) *cobra.Command {
	a := &app{
		cfg:   viper.New(),
		cat:   opts.Catalog,
		rules: opts.Rules,
		out:   opts.Out,
		errw:  opts.Err,
	}
	if a.cat == nil {
		a.cat = catalog.Default()
	}
	if a.out == nil {
		a.out = os.Stdout
	}
	if a.errw == nil {
		a.errw = os.Stderr
	}

	root := &cobra.Command{
		Use:           "shopctl",
		Short:         "Browse the LoveNest catalog and manage a cart from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errw)

	flags := root.PersistentFlags()
	flags.String(keySnapshotDir, ".data/carts", "directory holding cart snapshots")
	flags.String(keySession, "cli", "session id the cart is stored under")
	flags.StringP(keyOutput, "o", outputTable, "output format: table|json")
	flags.String(keyLogLevel, "warn", "log level")

	for _, key := range []string{keySnapshotDir, keySession, keyOutput, keyLogLevel} {
		_ = a.cfg.BindPFlag(key, flags.Lookup(key))
	}
	a.cfg.SetEnvPrefix(envPrefix)
	a.cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.cfg.AutomaticEnv()

	root.AddCommand(a.catalogCommand(), a.cartCommand(), a.checkoutCommand())
	return root
}

// Execute runs shopctl against the process arguments.
func Execute() error {
	return NewRootCommand(Options{}).Execute()
}

func (a *app) setup() error {
	switch a.output() {
	case outputTable, outputJSON:
	default:
		return fmt.Errorf("unsupported --%s %q (want %s or %s)", keyOutput, a.output(), outputTable, outputJSON)
	}

	a.logg = logger.New(logger.Options{
		ServiceName: "shopctl",
		Level:       logger.ParseLevel(a.cfg.GetString(keyLogLevel)),
		Output:      a.errw,
		Console:     true,
	})

	if a.rules == nil {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		rules := checkout.RulesFromConfig(cfg.Checkout)
		a.rules = &rules
	}
	return nil
}

func (a *app) output() string {
	return strings.ToLower(strings.TrimSpace(a.cfg.GetString(keyOutput)))
}

// openStore hydrates the session's cart from disk. The returned close func
// flushes the pending snapshot and must run before the process exits.
func (a *app) openStore(ctx context.Context) (*store.Store, func() error, error) {
	backend, err := snapshot.NewFile(a.cfg.GetString(keySnapshotDir), 0)
	if err != nil {
		return nil, nil, err
	}
	session := strings.TrimSpace(a.cfg.GetString(keySession))
	if session == "" {
		return nil, nil, fmt.Errorf("--%s must not be empty", keySession)
	}
	s := store.New(ctx, store.Options{
		SessionID:    session,
		Snapshot:     snapshot.NewSlot(backend, session),
		Logger:       a.logg,
		WriteTimeout: 5 * time.Second,
	})
	return s, s.Close, nil
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) lookup(id string) (catalog.Product, error) {
	product, ok := a.cat.ProductByID(strings.TrimSpace(id))
	if !ok {
		return catalog.Product{}, fmt.Errorf("product %q not found", id)
	}
	return product, nil
}
