package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"hbnb/config"
	"hbnb/internal/domain/constants"
	"hbnb/internal/domain/entity"
	"hbnb/internal/domain/repository"
	"hbnb/internal/domain/service"
	"hbnb/internal/errors"
	"hbnb/internal/infra/auth"
	logs "hbnb/internal/infra/log"
	"hbnb/internal/infra/persistence"
	"hbnb/internal/infra/persistence/file"
	"hbnb/internal/infra/persistence/sqlite"

	"go.uber.org/fx"
)

// console runs one command against the configured storage session.
type console struct {
	storage repository.Storage
	hasher  service.PasswordHasher
	logger  *slog.Logger
	out     io.Writer
}

// withConsole starts the storage stack, runs fn and stops it again.
func withConsole(ctx context.Context, fn func(c *console) error) (retErr error) {
	c := &console{out: os.Stdout}

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			func(cfg *config.Config) (*slog.Logger, error) {
				return logs.NewWithWriter(os.Stderr, cfg)
			},
			func() context.Context { return ctx },
			auth.NewBcryptHasher,
		),
		persistence.Module,
		fx.Populate(&c.storage, &c.hasher, &c.logger),
	)
	if err := app.Start(ctx); err != nil {
		return errors.Wrap(err, "start storage")
	}
	defer func() {
		if err := app.Stop(context.Background()); err != nil && retErr == nil {
			retErr = errors.Wrap(err, "stop storage")
		}
	}()

	return fn(c)
}

func (c *console) run(ctx context.Context, name string, args []string) error {
	switch name {
	case "count":
		return c.count(args)
	case "all":
		return c.all(args)
	case "show":
		return c.show(args)
	case "create":
		return c.create(ctx, args)
	case "update":
		return c.update(ctx, args)
	case "destroy":
		return c.destroy(ctx, args)
	default:
		return errors.Errorf("unknown command %q", name)
	}
}

func (c *console) count(args []string) error {
	kind, err := optionalKind(args)
	if err != nil {
		return err
	}

	n, err := c.storage.Count(kind)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, n)

	return nil
}

func (c *console) all(args []string) error {
	kind, err := optionalKind(args)
	if err != nil {
		return err
	}

	entities, err := c.storage.All(kind)
	if err != nil {
		return err
	}

	for _, e := range entities {
		if err := c.print(e); err != nil {
			return err
		}
	}

	return nil
}

func (c *console) show(args []string) error {
	e, err := c.lookup(args)
	if err != nil {
		return err
	}

	return c.print(e)
}

func (c *console) create(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("class name missing")
	}
	kind, err := entity.ParseKind(args[0])
	if err != nil {
		return err
	}

	attrs := parseParams(args[1:])
	if kind == entity.KindUser {
		if err := c.hashPassword(attrs); err != nil {
			return err
		}
	}

	e, err := entity.Create(kind, attrs)
	if err != nil {
		return err
	}
	if err := entity.Save(ctx, e, c.storage); err != nil {
		return err
	}
	fmt.Fprintln(c.out, e.GetID())

	return nil
}

func (c *console) update(ctx context.Context, args []string) error {
	if len(args) < 4 {
		return errors.New("usage: update <Kind> <id> <key> <value>")
	}

	e, err := c.lookup(args[:2])
	if err != nil {
		return err
	}

	attrs := map[string]any{args[2]: parseValue(args[3])}
	if e.Kind() == entity.KindUser {
		if err := c.hashPassword(attrs); err != nil {
			return err
		}
	}

	if err := e.SetField(args[2], attrs[args[2]]); err != nil {
		return err
	}

	return entity.Save(ctx, e, c.storage)
}

func (c *console) destroy(ctx context.Context, args []string) error {
	e, err := c.lookup(args)
	if err != nil {
		return err
	}

	if err := c.storage.Delete(ctx, e); err != nil {
		return err
	}

	return c.storage.Save(ctx)
}

// copyTo writes every live entity into a fresh adapter of the given type.
func (c *console) copyTo(ctx context.Context, typ, target, key string) error {
	var (
		dst repository.StoreAdapter
		err error
	)

	switch typ {
	case constants.StorageTypeFile:
		dst, err = file.Open(ctx, target, key, c.logger)
	case constants.StorageTypeSQLite:
		dst, err = sqlite.Open(ctx, target, c.logger)
	default:
		return errors.Errorf("unsupported copy destination %q", typ)
	}
	if err != nil {
		return err
	}
	defer func() { _ = dst.Close() }()

	entities, err := c.storage.All("")
	if err != nil {
		return err
	}

	if err := dst.Persist(ctx, entities); err != nil {
		return err
	}

	c.logger.Info("Copied records", slog.Int("count", len(entities)), slog.String("type", typ), slog.String("target", target))
	fmt.Fprintln(c.out, len(entities))

	return nil
}

func (c *console) lookup(args []string) (entity.Entity, error) {
	if len(args) < 1 {
		return nil, errors.New("class name missing")
	}
	if len(args) < 2 {
		return nil, errors.New("instance id missing")
	}

	return c.storage.GetByName(args[0], args[1])
}

func (c *console) hashPassword(attrs map[string]any) error {
	plain, ok := attrs["password"].(string)
	if !ok {
		return nil
	}

	hash, err := c.hasher.Hash(plain)
	if err != nil {
		return err
	}
	attrs["password"] = hash

	return nil
}

func (c *console) print(e entity.Entity) error {
	line, err := json.Marshal(e.ToRecord())
	if err != nil {
		return errors.WithStack(err)
	}
	fmt.Fprintln(c.out, string(line))

	return nil
}

func optionalKind(args []string) (entity.Kind, error) {
	if len(args) == 0 {
		return "", nil
	}

	return entity.ParseKind(args[0])
}
