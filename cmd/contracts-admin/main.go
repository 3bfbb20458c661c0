package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/nurpe/contractgen/internal/auth"
	"github.com/nurpe/contractgen/internal/config"
	"github.com/nurpe/contractgen/internal/db"
	"github.com/nurpe/contractgen/internal/logger"
	"github.com/nurpe/contractgen/internal/model"
	"github.com/nurpe/contractgen/internal/repository"
	"github.com/nurpe/contractgen/internal/service"
)

const usage = `usage: contracts-admin <command> [flags]

commands:
  create-user      --username NAME --password PASS [--admin]
  import-profiles  --file profiles.yaml
`

var errUsage = errors.New("invalid usage")

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "create-user":
		authService := service.NewAuthService(
			repository.NewUserRepository(database),
			auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL),
			log,
		)
		err = createUser(ctx, authService, os.Args[2:], os.Stdout)
	case "import-profiles":
		profileService := service.NewProfileService(repository.NewProfileRepository(database), log)
		err = importProfiles(ctx, profileService, os.Args[2:], os.Stdout, log)
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, os.Args[1])
	}

	if errors.Is(err, errUsage) || errors.Is(err, pflag.ErrHelp) {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("command failed")
	}
}

type userCreator interface {
	CreateUser(ctx context.Context, username, password string, role model.UserRole) (*model.User, error)
}

func createUser(ctx context.Context, svc userCreator, args []string, out io.Writer) error {
	flags := pflag.NewFlagSet("create-user", pflag.ContinueOnError)
	username := flags.String("username", "", "login of the new user")
	password := flags.String("password", "", "password, at least 6 characters")
	admin := flags.Bool("admin", false, "grant the admin role")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return fmt.Errorf("%w: --username and --password are required", errUsage)
	}

	role := model.UserRoleUser
	if *admin {
		role = model.UserRoleAdmin
	}
	user, err := svc.CreateUser(ctx, *username, *password, role)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "created user %s (%s) id=%s\n", user.Username, user.Role, user.ID)
	return nil
}

type profileImporter interface {
	Import(ctx context.Context, r io.Reader) ([]model.ExecutorProfile, error)
}

func importProfiles(ctx context.Context, svc profileImporter, args []string, out io.Writer, log zerolog.Logger) error {
	flags := pflag.NewFlagSet("import-profiles", pflag.ContinueOnError)
	path := flags.StringP("file", "f", "", "YAML file with a top-level profiles list")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("%w: --file is required", errUsage)
	}

	file, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer file.Close()

	imported, err := svc.Import(ctx, file)
	if err != nil {
		return err
	}
	for _, p := range imported {
		marker := ""
		if p.IsDefault {
			marker = " (default)"
		}
		fmt.Fprintf(out, "%s  %s%s\n", p.ID, p.ProfileName, marker)
	}
	log.Info().Int("count", len(imported)).Str("file", *path).Msg("executor profiles imported")
	return nil
}
