package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/taskboard/config"
	apimod "github.com/example/taskboard/modules/api"
	authmod "github.com/example/taskboard/modules/auth"
	cachemod "github.com/example/taskboard/modules/cache"
	taskmod "github.com/example/taskboard/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Taskboard ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Printf("Redis: %s (db %d)", cfg.RedisAddr(), cfg.RedisDB)
	log.Printf("MySQL: %s (socket mode: %v)", cfg.MySQLDB, cfg.SocketMode())
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Cache TTL: %s", cfg.CacheTTL)

	// Create and wire modules
	cacheModule := cachemod.NewModule(cfg)
	authModule := authmod.NewModule(cfg)
	taskModule := taskmod.NewModule(cfg)
	taskModule.SetCacheModule(cacheModule)
	apiModule := apimod.NewModule(cfg.HTTPPort)
	apiModule.SetAuthModule(authModule)
	apiModule.SetTaskModule(taskModule)

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	// Register modules; independent modules first, the API last.
	app.Register(cacheModule)
	app.Register(authModule)
	app.Register(taskModule)
	app.Register(apiModule)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	printStartupInfo(cfg.HTTPPort)

	// Graceful shutdown using gelmium/graceful-shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(port int) {
	log.Println("=== Application Started ===")
	log.Printf("API available at http://localhost:%d", port)
	log.Println("Endpoints:")
	log.Println("  POST   /login      - Obtain a bearer token")
	log.Println("  GET    /tasks      - List tasks (cached)")
	log.Println("  POST   /tasks      - Create task")
	log.Println("  PUT    /tasks/:id  - Update task")
	log.Println("  DELETE /tasks/:id  - Delete task")
	log.Println("  GET    /health     - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown")
}
