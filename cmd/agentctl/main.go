// Command agentctl seeds agent accounts directly in the store. Agent creation
// over HTTP is admin-only, so the first admin is created with this tool.
//
//	agentctl --name "Ada" --email ada@example.com --role admin
//
// The password is read from --password or, when omitted, AGENT_PASSWORD.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
	flag "github.com/spf13/pflag"

	"github.com/helpdesk-hq/helpdesk-api/internal/core/domain"
	"github.com/helpdesk-hq/helpdesk-api/internal/core/ports"
	"github.com/helpdesk-hq/helpdesk-api/internal/core/service"
	"github.com/helpdesk-hq/helpdesk-api/internal/infrastructure/config"
	mongodb "github.com/helpdesk-hq/helpdesk-api/internal/infrastructure/db/mongo"
	"github.com/helpdesk-hq/helpdesk-api/pkg/logger"
)

type options struct {
	name     string
	email    string
	password string
	role     string
	timeout  time.Duration
}

func parseFlags(args []string, getenv func(string) string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("agentctl", flag.ContinueOnError)
	fs.StringVar(&opts.name, "name", "", "display name of the agent")
	fs.StringVar(&opts.email, "email", "", "email address used to sign in")
	fs.StringVar(&opts.password, "password", "", "plaintext password (default $AGENT_PASSWORD)")
	fs.StringVar(&opts.role, "role", string(domain.RoleAdmin), "admin or operator")
	fs.DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall deadline")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.password == "" {
		opts.password = getenv("AGENT_PASSWORD")
	}
	switch {
	case opts.name == "":
		return opts, errors.New("--name is required")
	case opts.email == "":
		return opts, errors.New("--email is required")
	case opts.password == "":
		return opts, errors.New("--password or AGENT_PASSWORD is required")
	case !domain.Role(opts.role).Valid():
		return opts, fmt.Errorf("--role must be admin or operator, got %q", opts.role)
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Getenv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "agentctl:", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	cfg, err := config.LoadStore(ctx, envconfig.OsLookuper())
	if err != nil {
		fmt.Fprintln(os.Stderr, "agentctl: config:", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "agentctl"})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer client.Disconnect(context.Background())

	repo := mongodb.NewAgentRepository(db)
	if err := mongodb.EnsureIndexes(ctx, repo); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	// Creating agents needs neither sessions nor sign-in throttling.
	agents := service.NewAgentService(repo, service.NewPasswordHasher(cfg.Session.BcryptCost), nil, nil, log)

	agent, err := agents.Create(ctx, ports.CreateAgentInput{
		Name:     opts.name,
		Email:    opts.email,
		Password: opts.password,
		Role:     domain.Role(opts.role),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			log.Fatal().Str("email", opts.email).Msg("an agent with this email already exists")
		}
		log.Fatal().Err(err).Msg("failed to create agent")
	}

	fmt.Printf("created %s %s <%s> id=%s\n", agent.Role, agent.Name, agent.Email, agent.ID)
}
