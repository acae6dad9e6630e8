package main

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/routes"
	"github.com/shashiranjanraj/storefront/database/seeders"
	"github.com/shashiranjanraj/storefront/pkg/app"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// newApplication assembles the storefront application the same way
// cmd/server does, so `storefront run` and the app binary behave alike.
func newApplication() *app.Application {
	return app.New().
		Routes(routes.Register).
		AutoMigrate(
			&models.User{},
			&models.Item{},
			&models.CartItem{},
			&models.Order{},
			&models.OrderItem{},
			&models.PaymentIncident{},
		).
		Seeders(func() {
			if err := seeders.RunAll(database.DB); err != nil {
				logger.Error("seeding failed", "error", err)
			}
		})
}

// storefront run — start the HTTP server.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the HTTP server (alias: serve)",
	RunE: func(cmd *cobra.Command, args []string) error {
		newApplication().Run()
		return nil
	},
}

// storefront route:list — print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := router.New()
		routes.Register(r)

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		// Sort by path then method.
		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}

// storefront build — compile the server binary.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the storefront server binary (outputs ./storefront)",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Building storefront…")
		c := exec.Command("go", "build", "-o", "storefront", "./cmd/server")
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("build failed: %w", err)
		}
		fmt.Println("✅  Built: ./storefront")
		return nil
	},
}

// storefront serve — alias kept for muscle memory.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		newApplication().Run()
		return nil
	},
}
