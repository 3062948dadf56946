package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dirigo/internal/app"
	"github.com/ternarybob/dirigo/internal/interfaces"
	"github.com/ternarybob/dirigo/internal/models"
	"github.com/ternarybob/dirigo/internal/services/scope"
)

// handleAskDirectives implements the ask_directives tool
func handleAskDirectives(application *app.App, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		question, err := request.RequireString("question")
		if err != nil || question == "" {
			return textResult("Error: question parameter is required"), nil
		}

		selection := models.Selection{
			Region: request.GetString("region", ""),
			Office: request.GetString("office", ""),
		}

		resp, err := application.ChatService.Ask(ctx, &interfaces.ChatRequest{
			Question:  question,
			Selection: selection,
		})
		if err != nil {
			logger.Error().Err(err).Msg("Ask failed")
			return textResult(fmt.Sprintf("Ask error: %v", err)), nil
		}

		return textResult(formatAnswer(resp)), nil
	}
}

// handleSearchDirectives implements the search_directives tool
func handleSearchDirectives(application *app.App, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil || query == "" {
			return textResult("Error: query parameter is required"), nil
		}

		limit := request.GetInt("limit", 5)
		if limit > 20 {
			limit = 20
		}

		region := models.ScopeNational
		if requested := request.GetString("region", ""); requested != "" {
			resolved, err := scope.Resolve(application.Catalog, models.Selection{Region: requested})
			if err != nil {
				return textResult(fmt.Sprintf("Scope error: %v", err)), nil
			}
			region = resolved
		}

		directives, err := application.StorageManager.DirectiveStorage().ListDirectives()
		if err != nil {
			logger.Error().Err(err).Msg("List directives failed")
			return textResult(fmt.Sprintf("Storage error: %v", err)), nil
		}

		scoped, _ := scope.Filter(directives, region)
		idx, err := application.IndexBuilder.Ensure(ctx, scoped, region)
		if err != nil {
			logger.Error().Err(err).Msg("Index build failed")
			return textResult(fmt.Sprintf("Index error: %v", err)), nil
		}

		passages, err := idx.Query(ctx, query, limit)
		if err != nil {
			logger.Error().Err(err).Msg("Retrieval failed")
			return textResult(fmt.Sprintf("Search error: %v", err)), nil
		}

		return textResult(formatPassages(query, region, passages)), nil
	}
}

// handleGetDirective implements the get_directive tool
func handleGetDirective(application *app.App, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filename, err := request.RequireString("filename")
		if err != nil || filename == "" {
			return textResult("Error: filename parameter is required"), nil
		}

		directive, err := application.StorageManager.DirectiveStorage().GetDirectiveByFilename(filename)
		if err != nil {
			logger.Error().Err(err).Str("filename", filename).Msg("GetDirectiveByFilename failed")
			return textResult(fmt.Sprintf("Directive not found: %v", err)), nil
		}

		return textResult(formatDirective(directive)), nil
	}
}

// handleListDirectives implements the list_directives tool
func handleListDirectives(application *app.App, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		scopeFilter := request.GetString("scope", "")

		storage := application.StorageManager.DirectiveStorage()
		var directives []*models.Directive
		var err error
		if scopeFilter != "" {
			directives, err = storage.ListDirectivesByScope(scopeFilter)
		} else {
			directives, err = storage.ListDirectives()
		}
		if err != nil {
			logger.Error().Err(err).Msg("List directives failed")
			return textResult(fmt.Sprintf("List error: %v", err)), nil
		}

		return textResult(formatDirectiveList(scopeFilter, directives)), nil
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}
