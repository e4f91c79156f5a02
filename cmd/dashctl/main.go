// Command dashctl prints dashboard statistics, quotations and leads from the
// Castro Fallas API without going through the HTTP service.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/MauLang18/Cotizacion-CF/internal/config"
	"github.com/MauLang18/Cotizacion-CF/internal/lookup"
	"github.com/MauLang18/Cotizacion-CF/pkg/clients/castrofallas"
)

func main() {
	if err := newRootCmd(loadDeps).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadDeps builds the real gateway from the environment. The CLI logs nothing
// unless something fails, so it runs with a no-op logger.
func loadDeps(envFile string) (*deps, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	labels, err := lookup.Load(cfg.Dashboard.LookupDir)
	if err != nil {
		return nil, fmt.Errorf("load lookup tables: %w", err)
	}

	return &deps{
		gateway:   castrofallas.NewClient(cfg.API),
		dashboard: cfg.Dashboard,
		labels:    labels,
		logger:    zap.NewNop(),
	}, nil
}
