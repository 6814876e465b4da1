// sfnc - state machine definition compiler
//
// Usage:
//   sfnc compile --project serverless.yml [options]
//   sfnc validate --project serverless.yml
//   sfnc serve --port 8080
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"sfn-compiler/api"
	"sfn-compiler/cfn"
	"sfn-compiler/compiler"
	"sfn-compiler/intrinsics"
	"sfn-compiler/pinning"
	"sfn-compiler/platform"
	"sfn-compiler/project"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "sfnc",
		Usage:   "Compile declarative state machine definitions into CloudFormation resources",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"SFNC_LOG_LEVEL"},
			},
		},

		Commands: []*cli.Command{
			compileCommand(),
			validateCommand(),
			serveCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// COMPILE COMMAND
// =============================================================================

func compileCommand() *cli.Command {
	return &cli.Command{
		Name:  "compile",
		Usage: "Compile a project file into a CloudFormation template",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "project",
				Aliases:  []string{"p"},
				Usage:    "Path to the project file (YAML or JSON)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output path (default: stdout)",
			},
			&cli.BoolFlag{
				Name:  "lint",
				Usage: "Lint workflow structure even when the project does not request it",
			},
			&cli.BoolFlag{
				Name:  "deterministic",
				Value: true,
				Usage: "Use sequential placeholder tokens for reproducible output",
			},
			&cli.BoolFlag{
				Name:    "pin-from-aws",
				Usage:   "Resolve exact function versions from the Lambda control plane",
				EnvVars: []string{"SFNC_PIN_FROM_AWS"},
			},
		},
		Action: runCompile,
	}
}

func runCompile(c *cli.Context) error {
	ctx := context.Background()
	logger := platform.InitLogger(c.String("log-level"))

	proj, err := project.Load(c.String("project"))
	if err != nil {
		return err
	}
	logger.Debug("loaded project", "service", proj.Service, "machines", len(proj.StateMachines))

	resolver, err := buildResolver(ctx, c, proj)
	if err != nil {
		return err
	}

	opts := []compiler.Option{
		compiler.WithLogger(logger),
		compiler.WithLint(c.Bool("lint")),
		compiler.WithResolver(resolver),
	}
	if !c.Bool("deterministic") {
		opts = append(opts, compiler.WithTokenFactory(intrinsics.NewRandomSource))
	}

	tpl, err := compiler.New(opts...).Compile(ctx, proj)
	if err != nil {
		return err
	}

	out, err := cfn.MarshalTemplate(tpl)
	if err != nil {
		return fmt.Errorf("failed to serialize template: %w", err)
	}

	if path := c.String("out"); path != "" {
		return os.WriteFile(path, out, 0o644)
	}
	_, err = os.Stdout.Write(out)
	return err
}

// buildResolver picks the version resolver: the Lambda control plane
// when requested, the versions declared in the project file otherwise.
func buildResolver(ctx context.Context, c *cli.Context, proj *project.Project) (pinning.Resolver, error) {
	if c.Bool("pin-from-aws") {
		return pinning.NewAWSLambda(ctx, proj.Provider.Region, proj.DeployedNames())
	}
	return pinning.NewStatic(proj.PinnedVersions()), nil
}

// =============================================================================
// VALIDATE COMMAND
// =============================================================================

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Validate project shape and workflow structure without compiling",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "project",
				Aliases:  []string{"p"},
				Usage:    "Path to the project file (YAML or JSON)",
				Required: true,
			},
		},
		Action: runValidate,
	}
}

func runValidate(c *cli.Context) error {
	logger := platform.InitLogger(c.String("log-level"))

	proj, err := project.Load(c.String("project"))
	if err != nil {
		return err
	}

	results, err := compiler.New(compiler.WithLogger(logger)).Validate(proj)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	failed := false
	for _, name := range names {
		result := results[name]
		if result.Valid() {
			fmt.Printf("✅ %s\n", name)
			continue
		}
		failed = true
		fmt.Printf("❌ %s\n", name)
		for _, v := range result.Violations {
			fmt.Printf("   [%s] %s\n", v.Code, v.Message)
		}
	}
	if failed {
		return fmt.Errorf("validation failed")
	}
	return nil
}

// =============================================================================
// SERVE COMMAND (API SERVER)
// =============================================================================

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the compile/validate API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "API server port",
				EnvVars: []string{"SFNC_PORT"},
			},
			&cli.StringFlag{
				Name:    "cors-origins",
				Value:   "*",
				Usage:   "Comma-separated list of allowed CORS origins",
				EnvVars: []string{"SFNC_CORS_ORIGINS"},
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	logger := platform.InitLogger(c.String("log-level"))

	corsOrigins := strings.Split(c.String("cors-origins"), ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}

	config := api.DefaultConfig()
	config.Port = c.Int("port")
	config.CORSOrigins = corsOrigins

	server := api.NewServer(compiler.New(compiler.WithLogger(logger)), logger, config)
	return server.StartWithGracefulShutdown()
}
