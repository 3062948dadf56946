package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ternarybob/dirigo/internal/app"
	"github.com/ternarybob/dirigo/internal/models"
	"github.com/ternarybob/dirigo/internal/services/chat"
)

// runOneShot answers a single question and prints the assembled answer
func runOneShot(ctx context.Context, application *app.App, region, office, question string) error {
	session := chat.NewSessionContext()
	applySelection(application, session, region, office)

	resp, err := application.ChatService.Ask(ctx, session.Request(question))
	if err != nil {
		return err
	}

	fmt.Println(resp.Answer)
	return nil
}

// runREPL runs the interactive question loop. A failed turn is rendered as
// an error-surrogate assistant message so the session survives; only I/O
// errors on stdin end the loop.
func runREPL(ctx context.Context, application *app.App, region, office string) error {
	session := chat.NewSessionContext()
	selection := applySelection(application, session, region, office)

	fmt.Println("Ask a question about the NWS Directives. Commands: /region <name>, /office <code>, /export <path>, /quit")
	if !selection.IsZero() {
		fmt.Printf("Scope: region=%q office=%q\n", selection.Region, selection.Office)
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := handleCommand(application, session, line); quit {
				break
			}
			continue
		}

		resp, err := application.ChatService.Ask(ctx, session.Request(line))
		if err != nil {
			// Per-turn failures never end the session
			surrogate := fmt.Sprintf("Sorry, I could not answer that: %v", err)
			fmt.Println(surrogate)
			session.AppendTurn(line, surrogate)
			continue
		}

		fmt.Println(resp.Answer)
		if resp.LowCoverage {
			fmt.Printf("(no regional supplementals found for %s; answered from national directives)\n", resp.Region)
		}
		session.AppendTurn(line, resp.Answer)
	}

	return scanner.Err()
}

// applySelection applies region and office flags as separate transitions so
// the office can derive or validate against the region.
func applySelection(application *app.App, session *chat.SessionContext, region, office string) models.Selection {
	if region != "" {
		session.Select(application.Catalog, region, "")
	}
	if office != "" {
		session.Select(application.Catalog, "", office)
	}
	return session.Selection
}

// handleCommand processes a slash command; returns true to end the session
func handleCommand(application *app.App, session *chat.SessionContext, line string) bool {
	parts := strings.SplitN(line, " ", 2)
	cmd := parts[0]
	arg := ""
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}

	switch cmd {
	case "/quit", "/exit":
		return true

	case "/region":
		selection := session.Select(application.Catalog, arg, "")
		fmt.Printf("Scope: region=%q office=%q\n", selection.Region, selection.Office)

	case "/office":
		selection := session.Select(application.Catalog, "", arg)
		fmt.Printf("Scope: region=%q office=%q\n", selection.Region, selection.Office)

	case "/export":
		if arg == "" {
			arg = "transcript.pdf"
		}
		if len(session.History) == 0 {
			fmt.Println("Nothing to export yet")
			break
		}
		if err := application.ExportService.WriteTranscript(session.History, "NWS Directives Conversation", arg); err != nil {
			fmt.Printf("Export failed: %v\n", err)
			break
		}
		fmt.Printf("Transcript written to %s\n", arg)

	default:
		fmt.Printf("Unknown command %s\n", cmd)
	}

	return false
}
