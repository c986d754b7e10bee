package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage/memory/v2"
	fredis "github.com/gofiber/storage/redis/v3"
	"github.com/khanghh/cas-signup/internal/authclient"
	"github.com/khanghh/cas-signup/internal/config"
	"github.com/khanghh/cas-signup/internal/handlers"
	"github.com/khanghh/cas-signup/internal/middlewares"
	"github.com/khanghh/cas-signup/internal/middlewares/csrf"
	"github.com/khanghh/cas-signup/internal/middlewares/sessions"
	"github.com/khanghh/cas-signup/internal/render"
	"github.com/khanghh/cas-signup/internal/signup"
	"github.com/khanghh/cas-signup/internal/store"
	"github.com/khanghh/cas-signup/internal/tracing"
	"github.com/khanghh/cas-signup/params"
	"github.com/urfave/cli/v2"
)

var (
	app       *cli.App
	gitCommit string
	gitDate   string
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "YAML config file",
		Value: "config.yaml",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}
)

func init() {
	app = cli.NewApp()
	app.EnableBashCompletion = true
	app.Usage = "Account registration service"
	app.Flags = []cli.Flag{
		configFileFlag,
		debugFlag,
	}
	app.Commands = []*cli.Command{
		{
			Name:  "version",
			Usage: "Print version information",
			Action: func(ctx *cli.Context) error {
				fmt.Println(params.VersionWithCommit(gitCommit, gitDate))
				return nil
			},
		},
	}
	app.Action = run
}

func initLogger(debug bool) {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

// initStorage returns the shared fiber storage and the form state store, both
// backed by redis when redisURL is set.
func initStorage(redisURL string) (fiber.Storage, store.Store[signup.Snapshot]) {
	if redisURL != "" {
		redisStorage := fredis.New(fredis.Config{URL: redisURL})
		return redisStorage, store.NewRedisStore[signup.Snapshot](redisStorage.Conn(), params.FormStateKeyPrefix)
	}
	memStorage := memory.New()
	return memStorage, store.NewMemoryStore[signup.Snapshot](memStorage, params.FormStateKeyPrefix)
}

func run(ctx *cli.Context) error {
	config, err := config.LoadConfig(ctx.String(configFileFlag.Name))
	if err != nil {
		slog.Error("Could not load config file.", "error", err)
		return err
	}
	initLogger(config.Debug || ctx.IsSet(debugFlag.Name))

	shutdownTracing, err := tracing.Setup(config.Tracing)
	if err != nil {
		slog.Error("Could not setup tracing.", "error", err)
		return err
	}
	defer shutdownTracing(context.Background())

	storage, formStore := initStorage(config.RedisURL)
	defer storage.Close()

	sessionStore := session.New(session.Config{
		Storage:        store.NewPrefixedStorage(storage, params.SessionKeyPrefix),
		Expiration:     config.Session.SessionMaxAge,
		KeyLookup:      "cookie:" + config.Session.CookieName,
		CookieHTTPOnly: config.Session.CookieHttpOnly,
		CookieSecure:   config.Session.CookieSecure,
	})

	authClient := authclient.NewClient(config.AuthAPI.BaseURL, config.AuthAPI.Timeout)
	coordinator := signup.NewCoordinator(authClient, config.Messages, slog.Default())
	registerHandler := handlers.NewRegisterHandler(coordinator, formStore, config.FormStateTTL)

	render.InitValues(fiber.Map{"siteName": config.AppName})
	router := fiber.New(fiber.Config{
		AppName:      config.AppName,
		Views:        render.NewHtmlEngine(config.TemplateDir),
		ErrorHandler: middlewares.ErrorHandler,
		Immutable:    true,
		BodyLimit:    params.ServerBodyLimit,
		IdleTimeout:  params.ServerIdleTimeout,
		ReadTimeout:  params.ServerReadTimeout,
		WriteTimeout: params.ServerWriteTimeout,
	})
	router.Use(sessions.SessionMiddleware(sessionStore))
	router.Use(csrf.New())
	handlers.SetupRoutes(router, registerHandler)

	slog.Info("Starting sign up server", "address", config.ListenAddr, "authAPI", config.AuthAPI.BaseURL)
	return router.Listen(config.ListenAddr)
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
