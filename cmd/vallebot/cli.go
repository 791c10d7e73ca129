package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/fmalaspina/vallebot/internal/onboard/app"
	"github.com/fmalaspina/vallebot/internal/onboard/service"
	"github.com/fmalaspina/vallebot/internal/onboard/store"
)

// newCLIApp creates the CLI application with all commands. Every command
// reads the same environment configuration.
func newCLIApp() *cli.App {
	cliApp := &cli.App{
		Name:    "vallebot",
		Usage:   "WhatsApp onboarding and relationship summaries for professionals",
		Version: app.BuildVersion,
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
			inviteCmd(),
			refreshCmd(),
			purgeCmd(),
		},
		DefaultCommand: "serve",
	}
	cliApp.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return cliApp
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server",
		Action: func(c *cli.Context) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return outputError(err)
			}

			application, err := app.New(c.Context, cfg)
			if err != nil {
				return outputError(fmt.Errorf("failed to initialize application: %w", err))
			}
			return application.Run()
		},
	}
}

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending database migrations and exit",
		Action: func(c *cli.Context) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return outputError(err)
			}

			db, err := app.OpenStore(cfg, app.NewLogger(cfg))
			if err != nil {
				return outputError(err)
			}
			return db.Close()
		},
	}
}

func inviteCmd() *cli.Command {
	return &cli.Command{
		Name:      "invite",
		Usage:     "Invite a phone number to onboard as a professional",
		ArgsUsage: "<phone>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return outputError(errors.New("exactly one phone number is required"))
			}

			cfg, err := app.LoadConfig()
			if err != nil {
				return outputError(err)
			}
			db, err := app.OpenStore(cfg, app.NewLogger(cfg))
			if err != nil {
				return outputError(err)
			}
			defer db.Close()

			inv, err := (&service.InvitationService{Store: db}).CreateInvitation(c.Context, c.Args().First())
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c.App.Writer, inv)
		},
	}
}

func refreshCmd() *cli.Command {
	return &cli.Command{
		Name:  "refresh",
		Usage: "Recompute the relationship summary of a professional/client pair",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "professional", Aliases: []string{"p"}, Required: true, Usage: "Professional ID"},
			&cli.Int64Flag{Name: "client", Aliases: []string{"c"}, Required: true, Usage: "Client ID"},
			&cli.IntFlag{Name: "recent", Usage: "Bookings to include in the history (default RECENT_LIMIT)"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return outputError(err)
			}

			application, err := app.New(c.Context, cfg)
			if err != nil {
				return outputError(err)
			}
			defer application.Close()

			st, err := application.Relationships.Refresh(c.Context, c.Int64("professional"), c.Int64("client"), c.Int("recent"))
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c.App.Writer, st)
		},
	}
}

func purgeCmd() *cli.Command {
	return &cli.Command{
		Name:      "purge-professional",
		Usage:     "Delete a professional with its services, bookings, payments and summaries",
		ArgsUsage: "<professional-id>",
		Action: func(c *cli.Context) error {
			id, err := parseID(c.Args().First())
			if err != nil {
				return outputError(err)
			}

			cfg, err := app.LoadConfig()
			if err != nil {
				return outputError(err)
			}
			db, err := app.OpenStore(cfg, app.NewLogger(cfg))
			if err != nil {
				return outputError(err)
			}
			defer db.Close()

			if err := purge(c.Context, db, id); err != nil {
				return outputError(err)
			}
			_, err = fmt.Fprintf(c.App.Writer, "purged professional %d\n", id)
			return err
		},
	}
}

type purger interface {
	PurgeProfessional(ctx context.Context, id int64) error
}

func purge(ctx context.Context, p purger, id int64) error {
	if err := p.PurgeProfessional(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("professional %d not found", id)
		}
		return err
	}
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func outputError(err error) error {
	return cli.Exit(err.Error(), 1)
}
