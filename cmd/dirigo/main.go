package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dirigo/internal/app"
	"github.com/ternarybob/dirigo/internal/common"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles  configPaths
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")
	fetchFlag    = flag.Bool("fetch", false, "Acquire directive PDFs and load them into storage, then exit")
	watchFlag    = flag.Bool("watch", false, "Run the acquisition scheduler until interrupted")
	regionFlag   = flag.String("region", "", "Initial region selection")
	officeFlag   = flag.String("office", "", "Initial office selection (derives its region)")
	questionFlag = flag.String("question", "", "Ask a single question and exit")

	config *common.Config
	logger arbor.ILogger
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("Dirigo version %s\n", common.GetVersion())
		os.Exit(0)
	}

	// API keys may live in a .env file next to the binary
	_ = godotenv.Load()

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("dirigo.toml"); err == nil {
			configFiles = append(configFiles, "dirigo.toml")
		} else if _, err := os.Stat("deployments/local/dirigo.toml"); err == nil {
			configFiles = append(configFiles, "deployments/local/dirigo.toml")
		}
	}

	var err error
	config, err = common.LoadFromFiles(configFiles...)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	logger = common.InitLogger(config)
	common.PrintBanner(common.GetVersion())

	logger.Debug().
		Strs("config_files", configFiles).
		Str("directives_dir", config.Storage.DirectivesDir).
		Str("log_level", config.Logging.Level).
		Msg("Resolved configuration")

	// Chat surfaces need LLM credentials; acquisition does not
	withLLM := !*fetchFlag && !*watchFlag

	application, err := app.New(config, logger, withLLM)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
		os.Exit(1)
	}
	defer application.Close()

	ctx := context.Background()

	switch {
	case *fetchFlag:
		if err := runFetch(ctx, application); err != nil {
			logger.Fatal().Err(err).Msg("Acquisition failed")
			os.Exit(1)
		}

	case *watchFlag:
		if err := runWatch(application); err != nil {
			logger.Fatal().Err(err).Msg("Scheduler failed")
			os.Exit(1)
		}

	case *questionFlag != "":
		if err := runOneShot(ctx, application, *regionFlag, *officeFlag, *questionFlag); err != nil {
			logger.Fatal().Err(err).Msg("Question failed")
			os.Exit(1)
		}

	default:
		if err := runREPL(ctx, application, *regionFlag, *officeFlag); err != nil {
			logger.Fatal().Err(err).Msg("Session failed")
			os.Exit(1)
		}
	}
}

// runFetch acquires every configured series and loads the store
func runFetch(ctx context.Context, application *app.App) error {
	results, err := application.AcquirerService.AcquireAll(ctx)
	if err != nil {
		return err
	}

	var downloaded int
	for _, r := range results {
		downloaded += r.Downloaded
	}
	fmt.Printf("Downloaded %d directive PDFs across %d series\n", downloaded, len(results))

	loaded, err := application.LoaderService.LoadAll(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d directives into storage\n", loaded)

	return nil
}

// runWatch starts the cron scheduler and blocks until interrupted
func runWatch(application *app.App) error {
	if config.Acquirer.Schedule != "" {
		if err := common.ValidateSchedule(config.Acquirer.Schedule); err != nil {
			return fmt.Errorf("invalid acquirer.schedule: %w", err)
		}
	}

	if err := application.Scheduler.Start(config.Acquirer.Schedule); err != nil {
		return err
	}

	fmt.Println("Acquisition scheduler running - press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("Interrupt signal received")
	application.Scheduler.Stop()
	return nil
}
