package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"
	"github.com/ternarybob/dirigo/internal/app"
	"github.com/ternarybob/dirigo/internal/common"
)

func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("DIRIGO_CONFIG")
	if configPath == "" {
		configPath = "dirigo.toml"
	}

	config, err := common.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Minimal console logger to avoid cluttering MCP stdio
	logger := arbor.NewLogger().WithConsoleWriter(arbor_models.WriterConfiguration{
		Type:             arbor_models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}).WithLevelFromString("warn")

	application, err := app.New(config, logger, true)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	mcpServer := server.NewMCPServer(
		"dirigo",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(createAskDirectivesTool(), handleAskDirectives(application, logger))
	mcpServer.AddTool(createSearchDirectivesTool(), handleSearchDirectives(application, logger))
	mcpServer.AddTool(createGetDirectiveTool(), handleGetDirective(application, logger))
	mcpServer.AddTool(createListDirectivesTool(), handleListDirectives(application, logger))

	// Blocks on stdio
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
