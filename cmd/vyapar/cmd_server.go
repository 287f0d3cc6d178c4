package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/vyapar/config"
	"github.com/shashiranjanraj/vyapar/internal/kernel"
	"github.com/shashiranjanraj/vyapar/internal/server"
	"github.com/shashiranjanraj/vyapar/pkg/database"
	"github.com/shashiranjanraj/vyapar/pkg/logger"
	"github.com/shashiranjanraj/vyapar/pkg/migration"
)

// vyapar serve — run pending migrations and start the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		if uri := config.LogMongoURI(); uri != "" {
			closeSink, err := logger.EnableMongo(uri, config.LogMongoDB(), config.LogMongoColl())
			if err != nil {
				logger.Warn("mongo log sink unavailable", "error", err.Error())
			} else {
				defer closeSink()
			}
		}

		db, err := database.Connect()
		if err != nil {
			return err
		}

		if err := migration.New(db).Run(); err != nil {
			return err
		}

		sessions, err := kernel.NewSessionManager()
		if err != nil {
			return err
		}

		kernel.RegisterListeners()

		app := kernel.New(db, sessions)
		return server.Start(":"+config.AppPort(), app.Handler())
	},
}

// vyapar route:list — print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		sessions, err := kernel.NewSessionManager()
		if err != nil {
			return err
		}

		// Route registration never touches the DB, so none is opened.
		infos := kernel.New(nil, sessions).Router().Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

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
