package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/listcalc/internal/application/dto"
	httpRouter "github.com/jhoicas/listcalc/internal/interfaces/http"
)

func (c *cli) addCmd() *cobra.Command {
	var price, qty string
	cmd := &cobra.Command{
		Use:   "add NOMBRE...",
		Short: "Agregar un ítem al final de la lista",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := dto.CreateItemRequest{Name: strings.Join(args, " ")}
			var err error
			if in.UnitPrice, err = optionalDecimal("price", price); err != nil {
				return err
			}
			if in.Quantity, err = optionalDecimal("qty", qty); err != nil {
				return err
			}
			out, err := c.app.ListUC.Add(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "agregado %s  %s  %s\n", out.ID, out.Name, out.LineTotalFormatted)
			return nil
		},
	}
	cmd.Flags().StringVarP(&price, "price", "p", "", "Precio unitario (0 por defecto)")
	cmd.Flags().StringVarP(&qty, "qty", "q", "", "Cantidad (0 por defecto)")
	return cmd
}

func (c *cli) listCmd() *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Mostrar la lista (filtro opcional por nombre)",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			out := c.app.ListUC.List(query)
			w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "#\tID\tCANT.\tPRODUCTO\tP.UNIT\tSUBTOTAL")
			// # es la posición en la lista completa, la misma que usa "rm --index"
			for _, it := range out.Items {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\n",
					it.Index, it.ID, it.QuantityDisplay, it.Name, it.UnitPrice.StringFixed(2), it.LineTotalFormatted)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if query != "" {
				fmt.Fprintf(c.out, "%d de %d ítems coinciden con %q\n", out.Matched, out.Count, query)
			}
			fmt.Fprintf(c.out, "Total: %s (%d ítems)\n", out.TotalFormatted, out.Count)
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Texto a buscar en el nombre")
	return cmd
}

func (c *cli) editCmd() *cobra.Command {
	var name, price, qty string
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Editar nombre, precio o cantidad de un ítem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := c.app.ListUC.Get(args[0])
			if err != nil {
				return err
			}
			in := dto.UpdateItemRequest{Name: current.Name, UnitPrice: &current.UnitPrice, Quantity: &current.Quantity}
			if cmd.Flags().Changed("name") {
				in.Name = name
			}
			if cmd.Flags().Changed("price") {
				if in.UnitPrice, err = requiredDecimal("price", price); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("qty") {
				if in.Quantity, err = requiredDecimal("qty", qty); err != nil {
					return err
				}
			}
			out, err := c.app.ListUC.Update(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			c.printItem(out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Nuevo nombre")
	cmd.Flags().StringVarP(&price, "price", "p", "", "Nuevo precio unitario")
	cmd.Flags().StringVarP(&qty, "qty", "q", "", "Nueva cantidad")
	return cmd
}

func (c *cli) qtyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "qty ID CANTIDAD",
		Short: "Fijar la cantidad (una cantidad negativa se ignora)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := requiredDecimal("cantidad", args[1])
			if err != nil {
				return err
			}
			out, err := c.app.ListUC.UpdateQuantity(cmd.Context(), args[0], *q)
			if err != nil {
				return err
			}
			c.printItem(out)
			return nil
		},
	}
}

func (c *cli) incCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inc ID",
		Short: "Sumar 1 a la cantidad",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.app.ListUC.IncrementQuantity(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			c.printItem(out)
			return nil
		},
	}
}

func (c *cli) decCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dec ID",
		Short: "Restar 1 a la cantidad (sin efecto si quedaría negativa)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.app.ListUC.DecrementQuantity(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			c.printItem(out)
			return nil
		},
	}
}

func (c *cli) rmCmd() *cobra.Command {
	var index int
	cmd := &cobra.Command{
		Use:   "rm [ID]",
		Short: "Eliminar un ítem por id o por posición (--index)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			byIndex := cmd.Flags().Changed("index")
			switch {
			case byIndex && len(args) == 0:
				if err := c.app.ListUC.DeleteAt(cmd.Context(), index); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "eliminado ítem en posición %d\n", index)
			case !byIndex && len(args) == 1:
				if err := c.app.ListUC.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "eliminado %s\n", args[0])
			default:
				return fmt.Errorf("indique un ID o --index, no ambos")
			}
			c.printTotal()
			return nil
		},
	}
	cmd.Flags().IntVarP(&index, "index", "i", 0, "Posición base 0 en la lista completa")
	return cmd
}

func (c *cli) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Vaciar la lista",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.ListUC.Clear(cmd.Context()); err != nil {
				return err
			}
			c.printTotal()
			return nil
		},
	}
}

func (c *cli) totalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Mostrar total y cantidad de ítems",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			c.printTotal()
			return nil
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [ARCHIVO.pdf]",
		Short: "Exportar la lista a PDF",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, filename, err := c.app.ListUC.ExportPDF(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 1 {
				filename = args[0]
			}
			if err := os.WriteFile(filename, b, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", filename, err)
			}
			fmt.Fprintf(c.out, "PDF guardado en %s (%d bytes)\n", filename, len(b))
			return nil
		},
	}
}

func (c *cli) resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Borrar el slot guardado (descarta datos corruptos)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.ListUC.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "slot %s borrado\n", c.app.Config.Storage.Slot)
			return nil
		},
	}
}

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Servir la API HTTP sobre la misma lista",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := c.app.Config
			server := httpRouter.NewApp(cfg.App.Name, c.app.Log, httpRouter.RouterDeps{ListUC: c.app.ListUC})
			fmt.Fprintf(c.out, "escuchando en %s\n", cfg.HTTP.Addr())
			return httpRouter.Serve(cmd.Context(), server, cfg.HTTP.Addr(), c.app.Log)
		},
	}
}

// ── salida ────────────────────────────────────────────────────────────────────

func (c *cli) printItem(it *dto.ItemResponse) {
	fmt.Fprintf(c.out, "%s  %s  %s x %s = %s\n",
		it.ID, it.Name, it.Quantity.String(), it.UnitPrice.StringFixed(2), it.LineTotalFormatted)
	c.printTotal()
}

func (c *cli) printTotal() {
	s := c.app.ListUC.Summary()
	fmt.Fprintf(c.out, "Total: %s (%d ítems)\n", s.TotalFormatted, s.Count)
}

// ── parsing ───────────────────────────────────────────────────────────────────

func optionalDecimal(flag, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	return requiredDecimal(flag, raw)
}

// requiredDecimal acepta coma o punto como separador decimal.
func requiredDecimal(flag, raw string) (*decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(raw), ",", ".", 1))
	if err != nil {
		return nil, fmt.Errorf("%s: número inválido %s", flag, strconv.Quote(raw))
	}
	return &d, nil
}
