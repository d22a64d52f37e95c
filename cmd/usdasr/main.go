package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	sqliteadapter "github.com/alexBLR/usdasr/internal/adapters/db/sqlite"
	"github.com/alexBLR/usdasr/internal/config"
	"github.com/alexBLR/usdasr/internal/domain"
	"github.com/alexBLR/usdasr/internal/logging"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	if err := newApp().Run(context.Background(), args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:        "usdasr",
		Usage:       "USDA National Nutrient Database (SR) store maintenance",
		Description: "Settings come from --config and the environment:\n\n" + config.Usage(),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "YAML configuration file"},
			&cli.StringFlag{Name: "db-path", Usage: "SQLite database path (overrides configuration)"},
		},
		Commands: []*cli.Command{
			migrateCommand(),
			schemaCommand(),
			getCommand(),
			listCommand(),
			countCommand(),
			tagsCommand(),
		},
	}
}

type session struct {
	store *sqliteadapter.Store
	log   *zap.Logger
	close func()
}

func openSession(cmd *cli.Command) (*session, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if p := cmd.String("db-path"); p != "" {
		cfg.Database.Path = p
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	db, err := sqliteadapter.Open(sqliteadapter.Options{
		Path:          cfg.Database.Path,
		BusyTimeout:   cfg.Database.BusyTimeout(),
		SlowThreshold: cfg.Database.SlowThreshold(),
		Logger:        logger,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Database.Path, err)
	}

	return &session{
		store: sqliteadapter.NewStore(db, logger),
		log:   logger,
		close: func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
			_ = logger.Sync()
		},
	}, nil
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending schema migrations",
		Action: func(ctx context.Context, c *cli.Command) error {
			s, err := openSession(c)
			if err != nil {
				return err
			}
			defer s.close()

			if err := sqliteadapter.RunMigrations(ctx, s.store.DB(), s.log); err != nil {
				return err
			}
			version, err := sqliteadapter.SchemaVersion(ctx, s.store.DB())
			if err != nil {
				return err
			}
			fmt.Printf("schema at version %d\n", version)
			return nil
		},
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{Name: "format", Value: "table", Usage: "table, yaml or json"}
}

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:      "schema",
		Usage:     "Describe the tables, their fields and constraints",
		ArgsUsage: "[entity]",
		Flags:     []cli.Flag{formatFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			format := c.String("format")
			if c.Args().Len() == 0 {
				entities := domain.Entities()
				switch format {
				case "table":
					printEntitySummaries(entities)
					return nil
				default:
					return printStructured(format, entities)
				}
			}

			e, err := lookupEntity(c.Args().First())
			if err != nil {
				return err
			}
			if format == "table" {
				printEntityFields(e)
				return nil
			}
			return printStructured(format, e)
		},
	}
}

func getCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show one row by key",
		ArgsUsage: "<entity> <key>",
		Description: "Keys are the row's code or numeric id. Tombstones with composite keys " +
			"take comma-separated parts, for example: get deleted_nutrient 01001,255",
		Flags: []cli.Flag{formatFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 2 {
				return errors.New("usage: get <entity> <key>")
			}
			e, ops, err := lookupOps(c.Args().Get(0))
			if err != nil {
				return err
			}
			s, err := openSession(c)
			if err != nil {
				return err
			}
			defer s.close()

			v, err := ops.get(ctx, s.store, c.Args().Get(1))
			if err != nil {
				return err
			}
			return printRecord(c.String("format"), record(e, v))
		},
	}
}

func queryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{Name: "where", Usage: "field<op>value, op is one of = != < <= > >= (repeatable)"},
		&cli.StringSliceFlag{Name: "order", Usage: "field or -field for descending (repeatable)"},
	}
}

func queryFromFlags(c *cli.Command) (domain.Query, error) {
	var q domain.Query
	for _, raw := range c.StringSlice("where") {
		p, err := parseWhere(raw)
		if err != nil {
			return q, err
		}
		q.Where = append(q.Where, p)
	}
	for _, raw := range c.StringSlice("order") {
		if name, ok := strings.CutPrefix(raw, "-"); ok {
			q.OrderBy = append(q.OrderBy, domain.Order{Field: name, Desc: true})
			continue
		}
		q.OrderBy = append(q.OrderBy, domain.Order{Field: raw})
	}
	return q, nil
}

func listCommand() *cli.Command {
	flags := append(queryFlags(),
		&cli.IntFlag{Name: "limit", Value: 50, Usage: "maximum rows, 0 for all"},
		&cli.IntFlag{Name: "offset", Usage: "rows to skip"},
		formatFlag(),
	)
	return &cli.Command{
		Name:      "list",
		Usage:     "List rows of an entity",
		ArgsUsage: "<entity>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return errors.New("usage: list <entity>")
			}
			e, ops, err := lookupOps(c.Args().First())
			if err != nil {
				return err
			}
			q, err := queryFromFlags(c)
			if err != nil {
				return err
			}
			q.Limit = int(c.Int("limit"))
			q.Offset = int(c.Int("offset"))

			s, err := openSession(c)
			if err != nil {
				return err
			}
			defer s.close()

			var records [][]field
			for v, err := range ops.list(ctx, s.store, q) {
				if err != nil {
					return err
				}
				records = append(records, record(e, v))
			}
			return printRecords(c.String("format"), e, records)
		},
	}
}

func countCommand() *cli.Command {
	return &cli.Command{
		Name:      "count",
		Usage:     "Count rows of an entity",
		ArgsUsage: "<entity>",
		Flags:     queryFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return errors.New("usage: count <entity>")
			}
			_, ops, err := lookupOps(c.Args().First())
			if err != nil {
				return err
			}
			q, err := queryFromFlags(c)
			if err != nil {
				return err
			}
			s, err := openSession(c)
			if err != nil {
				return err
			}
			defer s.close()

			n, err := ops.count(ctx, s.store, q)
			if err != nil {
				return err
			}
			fmt.Println(n)
			return nil
		},
	}
}

func tagsCommand() *cli.Command {
	return &cli.Command{
		Name:  "tags",
		Usage: "Inspect and edit food tags",
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Show the tags of a food",
				ArgsUsage: "<food>",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withTags(c, 1, func(tags domain.TagRepository, args []string) error {
						labels, err := tags.Tags(ctx, domain.FoodID(args[0]))
						if err != nil {
							return err
						}
						for _, l := range labels {
							fmt.Println(l)
						}
						return nil
					})
				},
			},
			{
				Name:      "add",
				Usage:     "Attach labels to a food",
				ArgsUsage: "<food> <label>...",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withTags(c, 2, func(tags domain.TagRepository, args []string) error {
						return tags.AddTags(ctx, domain.FoodID(args[0]), args[1:]...)
					})
				},
			},
			{
				Name:      "remove",
				Usage:     "Detach labels from a food",
				ArgsUsage: "<food> <label>...",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withTags(c, 2, func(tags domain.TagRepository, args []string) error {
						return tags.RemoveTags(ctx, domain.FoodID(args[0]), args[1:]...)
					})
				},
			},
			{
				Name:      "foods",
				Usage:     "List the foods carrying a label",
				ArgsUsage: "<label>",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withTags(c, 1, func(tags domain.TagRepository, args []string) error {
						ids, err := tags.FoodsTagged(ctx, args[0])
						if err != nil {
							return err
						}
						for _, id := range ids {
							fmt.Println(id)
						}
						return nil
					})
				},
			},
		},
	}
}

func withTags(c *cli.Command, minArgs int, fn func(domain.TagRepository, []string) error) error {
	args := c.Args().Slice()
	if len(args) < minArgs {
		return fmt.Errorf("usage: tags %s %s", c.Name, c.ArgsUsage)
	}
	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.close()
	return fn(s.store.Tags(), args)
}
