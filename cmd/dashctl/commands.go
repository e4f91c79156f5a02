package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MauLang18/Cotizacion-CF/internal/config"
	"github.com/MauLang18/Cotizacion-CF/internal/domain/models"
	"github.com/MauLang18/Cotizacion-CF/internal/service/dashboard"
	"github.com/MauLang18/Cotizacion-CF/pkg/clients/castrofallas"
)

const (
	outputJSON  = "json"
	outputTable = "table"
)

type deps struct {
	gateway   castrofallas.Client
	dashboard config.DashboardConfig
	labels    dashboard.Resolver
	logger    *zap.Logger
}

type cli struct {
	build   func(envFile string) (*deps, error)
	deps    *deps
	envFile string
	output  string
	filter  models.Filter
}

func newRootCmd(build func(envFile string) (*deps, error)) *cobra.Command {
	c := &cli{build: build}

	root := &cobra.Command{
		Use:           "dashctl",
		Short:         "Inspect the cargo dashboard from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c.output != outputJSON && c.output != outputTable {
				return fmt.Errorf("--output must be %q or %q", outputJSON, outputTable)
			}
			d, err := c.build(c.envFile)
			if err != nil {
				return err
			}
			c.deps = d
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.envFile, "env-file", "", "dotenv file to load before reading the environment")
	root.PersistentFlags().StringVarP(&c.output, "output", "o", outputTable, "output format: json or table")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Compute KPI counts and chart series",
		Args:  cobra.NoArgs,
		RunE:  c.runStats,
	}

	quotationsCmd := &cobra.Command{
		Use:   "quotations",
		Short: "List quotations",
		Args:  cobra.NoArgs,
		RunE:  c.runQuotations,
	}
	c.addFilterFlags(quotationsCmd)

	leadsCmd := &cobra.Command{
		Use:   "leads",
		Short: "List shipment leads",
		Args:  cobra.NoArgs,
		RunE:  c.runLeads,
	}
	c.addFilterFlags(leadsCmd)

	root.AddCommand(statsCmd, quotationsCmd, leadsCmd)
	return root
}

func (c *cli) addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&c.filter.NumFilter, "num-filter", 0, "column selector sent as numFilter")
	cmd.Flags().StringVar(&c.filter.TextFilter, "text-filter", "", "search text sent as textFilter")
}

func (c *cli) runStats(cmd *cobra.Command, _ []string) error {
	svc := dashboard.NewService(c.deps.gateway, c.deps.labels, c.deps.dashboard, c.deps.logger)
	snap, err := svc.Refresh(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if c.output == outputJSON {
		return writeJSON(out, snap)
	}

	counts := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Hoy", "Semana", "Mes", "Total").
		Row(itoa(snap.Counts.Today), itoa(snap.Counts.Week), itoa(snap.Counts.Month), itoa(snap.Counts.Total))
	fmt.Fprintln(out, counts.String())

	for _, chart := range []struct {
		title  string
		points []models.SeriesPoint
	}{
		{"Ejecutivos", snap.Charts.Executive},
		{"Clientes", snap.Charts.Client},
		{"Preestados", snap.Charts.Status},
		{"Puertos de salida", snap.Charts.POL},
		{"Puertos de entrada", snap.Charts.POE},
	} {
		t := table.New().Border(lipgloss.NormalBorder()).Headers(chart.title, "Cargas")
		for _, p := range chart.points {
			t.Row(p.Label, itoa(p.Value))
		}
		fmt.Fprintln(out, t.String())
	}
	return nil
}

func (c *cli) runQuotations(cmd *cobra.Command, _ []string) error {
	quotes, err := c.deps.gateway.ListQuotations(cmd.Context(), c.filter)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if c.output == outputJSON {
		return writeJSON(out, quotes)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Quo", "Cliente", "Servicios", "Cotización")
	for _, q := range quotes {
		t.Row(strconv.Itoa(q.ID), q.Quo, q.Client, joinCategories(q.Categories()), q.Document)
	}
	fmt.Fprintln(out, t.String())
	return nil
}

func (c *cli) runLeads(cmd *cobra.Command, _ []string) error {
	leads, err := c.deps.gateway.ListLeads(cmd.Context(), c.filter)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if c.output == outputJSON {
		return writeJSON(out, leads)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Cliente", "Detalle", "Comentario", "Documento")
	for _, l := range leads {
		t.Row(l.ID, string(l.Client), l.Detail, l.Comment, l.Document)
	}
	fmt.Fprintln(out, t.String())
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func joinCategories(cats []models.ServiceCategory) string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ",")
}

func itoa(n int) string { return strconv.Itoa(n) }
