package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"
	"github.com/riskibarqy/the-gaffer/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/the-gaffer/internal/infrastructure/repository/postgres/migrations"
	"github.com/riskibarqy/the-gaffer/internal/platform/logging"
)

var errUsage = errors.New("usage: migration <up|down [n]|version|force <v>|goto <v>>")

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.NewJSON(logging.ParseLevel(os.Getenv("APP_LOG_LEVEL")), logging.WithFields("service", "the-gaffer-migration"))
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(os.Args[1:], logger); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, logger *logging.Logger) error {
	if len(args) == 0 {
		return errUsage
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return errors.New("DB_URL is required")
	}
	disableBinary, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv("DB_DISABLE_PREPARED_BINARY_RESULT")))

	m, source, err := newMigrator(postgres.DSN(dbURL, disableBinary), os.Getenv("MIGRATIONS_DIR"))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			logger.Warn("close migrator", "error", err)
		}
	}()

	log := logger.With("source", source, "db_name", postgres.DatabaseName(dbURL))

	switch cmd := strings.ToLower(strings.TrimSpace(args[0])); cmd {
	case "up":
		return applied(log, "migrations applied", m.Up())
	case "down":
		steps, err := parseSteps(args[1:])
		if err != nil {
			return err
		}
		return applied(log.With("steps", steps), "migrations rolled back", m.Steps(-steps))
	case "goto", "migrate":
		if len(args) < 2 {
			return fmt.Errorf("%s requires a target version: %w", cmd, errUsage)
		}
		target, err := parseVersion(args[1])
		if err != nil {
			return err
		}
		return applied(log.With("target", target), "migrated to version", m.Migrate(uint(target)))
	case "force":
		if len(args) < 2 {
			return fmt.Errorf("force requires a version: %w", errUsage)
		}
		version, err := parseVersion(args[1])
		if err != nil {
			return err
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		log.Info("forced version", "version", version)
		return nil
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Info("no migrations applied")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		log.Info("current version", "version", version, "dirty", dirty)
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func applied(logger *logging.Logger, msg string, err error) error {
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("no migration changes")
		return nil
	case err != nil:
		return err
	default:
		logger.Info(msg)
		return nil
	}
}

// newMigrator reads migrations from dir when set, otherwise from the copies
// embedded in the binary.
func newMigrator(dbURL, dir string) (*migrate.Migrate, string, error) {
	dir, err := resolveMigrationsDir(strings.TrimSpace(dir))
	if err != nil {
		return nil, "", err
	}
	if dir != "" {
		sourceURL := "file://" + filepath.ToSlash(dir)
		m, err := migrate.New(sourceURL, dbURL)
		return m, sourceURL, err
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, "", fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	return m, "embedded", err
}

func resolveMigrationsDir(candidate string) (string, error) {
	if candidate == "" {
		return "", nil
	}
	abs, err := filepath.Abs(candidate)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", candidate, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("stat %q: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q is not a directory", abs)
	}
	return abs, nil
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, errors.New("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 31)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	return int(v), nil
}
