package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createAskDirectivesTool returns the ask_directives tool definition
func createAskDirectivesTool() mcp.Tool {
	return mcp.NewTool("ask_directives",
		mcp.WithDescription("Answer a question about the NWS Directives with retrieval-grounded citations"),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("The question to answer"),
		),
		mcp.WithString("region",
			mcp.Description("Region to scope retrieval to (e.g. \"Southern Region\"); omit for national directives only"),
		),
		mcp.WithString("office",
			mcp.Description("WFO office code (e.g. \"OUN\"); scoping degrades to the office's parent region"),
		),
	)
}

// createSearchDirectivesTool returns the search_directives tool definition
func createSearchDirectivesTool() mcp.Tool {
	return mcp.NewTool("search_directives",
		mcp.WithDescription("Semantic search over directive passages without LLM answer generation"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free-text search query"),
		),
		mcp.WithString("region",
			mcp.Description("Region to scope retrieval to; omit for national directives only"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum passages to return (default: 5, max: 20)"),
		),
	)
}

// createGetDirectiveTool returns the get_directive tool definition
func createGetDirectiveTool() mcp.Tool {
	return mcp.NewTool("get_directive",
		mcp.WithDescription("Retrieve a single directive document by filename"),
		mcp.WithString("filename",
			mcp.Required(),
			mcp.Description("Directive filename (e.g. pd00101001curr.pdf)"),
		),
	)
}

// createListDirectivesTool returns the list_directives tool definition
func createListDirectivesTool() mcp.Tool {
	return mcp.NewTool("list_directives",
		mcp.WithDescription("List stored directives, optionally filtered by scope"),
		mcp.WithString("scope",
			mcp.Description("Filter: \"National\" or a region name (e.g. \"Southern Region\")"),
		),
	)
}
