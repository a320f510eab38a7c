// Command listcalc administra la lista de compras desde la terminal.
// Cada invocación carga el slot, ejecuta una acción (que guarda) e imprime el resultado.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jhoicas/listcalc/internal/bootstrap"
	"github.com/jhoicas/listcalc/pkg/config"
	"github.com/jhoicas/listcalc/pkg/logger"
)

// cli estado compartido entre comandos de una invocación.
type cli struct {
	out    io.Writer
	errOut io.Writer

	verbose    bool
	driver     string
	sqlitePath string
	slot       string

	app *bootstrap.App
}

func newRootCmd(out, errOut io.Writer) (*cobra.Command, *cli) {
	c := &cli{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "listcalc",
		Short: "Lista de compras con total en vivo",
		Long: `listcalc guarda una lista de compras (nombre, precio unitario, cantidad)
en un único slot clave-valor y calcula el total de la lista.

El backend se elige con STORAGE_DRIVER (sqlite, postgres, redis, memory)
o con --driver.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.open,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Logs de depuración en stderr")
	root.PersistentFlags().StringVar(&c.driver, "driver", "", "Backend del slot (sqlite, postgres, redis, memory)")
	root.PersistentFlags().StringVar(&c.sqlitePath, "db", "", "Archivo SQLite (con --driver sqlite)")
	root.PersistentFlags().StringVar(&c.slot, "slot", "", "Nombre del slot")

	root.AddCommand(
		c.addCmd(),
		c.listCmd(),
		c.editCmd(),
		c.qtyCmd(),
		c.incCmd(),
		c.decCmd(),
		c.rmCmd(),
		c.clearCmd(),
		c.totalCmd(),
		c.exportCmd(),
		c.resetCmd(),
		c.serveCmd(),
	)
	return root, c
}

// open carga configuración, logger y la lista guardada antes de cada comando.
func (c *cli) open(cmd *cobra.Command, _ []string) error {
	switch cmd.Name() {
	case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	if c.driver != "" {
		cfg.Storage.Driver = c.driver
	}
	if c.sqlitePath != "" {
		cfg.Storage.SQLitePath = c.sqlitePath
	}
	if c.slot != "" {
		cfg.Storage.Slot = c.slot
	}

	level := "warn"
	if c.verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: "development", Level: level, Out: c.errOut})

	app, err := bootstrap.New(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	c.app = app
	return nil
}

func (c *cli) close() {
	if c.app == nil {
		return
	}
	if err := c.app.Close(); err != nil {
		fmt.Fprintln(c.errOut, "cerrar almacenamiento:", err)
	}
	c.app = nil
}

func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	root, c := newRootCmd(out, errOut)
	defer c.close()

	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
