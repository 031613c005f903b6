package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Mdsinan09/hcis-project/internal/chat"
	"github.com/Mdsinan09/hcis-project/internal/export"
	"github.com/Mdsinan09/hcis-project/internal/session"
	"github.com/Mdsinan09/hcis-project/internal/ui"
)

// runInteractive drives the main conversation loop: slash commands for
// session operations, everything else goes to the assistant.
func runInteractive(ctx context.Context, a *app) error {
	if err := a.client.HealthCheck(); err != nil {
		a.display.PrintWarning(fmt.Sprintf("Backend check failed: %v", err))
		a.display.PrintInfo("Analysis and chat will fail until the backend is reachable.")
	}

	a.display.PrintWelcome(a.cfg.BackendURL)

	// Fallback conversation for when no analysis is active. It implicitly
	// pulls the most recent history entry as context per turn.
	general := chat.NewGeneralSession(a.client, a.store.Latest)

	for {
		a.display.PrintPrompt()
		line, err := ui.ReadLine()
		if err != nil {
			break
		}

		switch {
		case line == "":
			continue

		case line == "/exit" || line == "/quit" || line == "exit" || line == "quit":
			a.display.PrintGoodbye()
			return nil

		case line == "/clear":
			a.display.ClearScreen()
			a.display.PrintWelcome(a.cfg.BackendURL)

		case line == "/history":
			records := a.store.List(ctx)
			if len(records) > a.cfg.HistoryLimit {
				records = records[:a.cfg.HistoryLimit]
			}
			a.display.PrintHistoryTable(records)

		case line == "/report":
			a.display.PrintReport(a.controller.Report())

		case line == "/reset":
			a.controller.Reset()
			a.display.PrintInfo("Session reset.")

		case line == "/export":
			exportCurrent(ctx, a)

		case strings.HasPrefix(line, "/analyze"):
			args := strings.Fields(strings.TrimPrefix(line, "/analyze"))
			if len(args) == 0 {
				a.display.PrintWarning("Usage: /analyze <file> [text-file]")
				continue
			}
			textPath := ""
			if len(args) > 1 {
				textPath = args[1]
			}
			_ = runAnalyze(ctx, a, args[0], textPath)

		default:
			runChatTurn(ctx, a, general, line)
		}
	}

	a.display.PrintGoodbye()
	return nil
}

// runChatTurn sends one question, preferring the conversation bound to the
// completed report over the general-purpose one.
func runChatTurn(ctx context.Context, a *app, general *chat.Session, question string) {
	sess := a.controller.ChatSession()
	if sess == nil {
		sess = general
	}

	msg, _ := sess.Send(ctx, question)
	if msg == nil {
		// Blank input or a turn still in flight; nothing was sent.
		return
	}
	a.display.PrintAssistantMessage(*msg)
}

// runAnalyze selects the given files and submits them, printing progress
// and the resulting report card.
func runAnalyze(ctx context.Context, a *app, path, textPath string) error {
	ref, err := fileRef(path)
	if err != nil {
		a.display.PrintError(err)
		return err
	}

	if err := a.controller.SelectPrimaryFile(ref); err != nil {
		a.display.PrintError(err)
		return err
	}

	if textPath != "" {
		textRef, err := fileRef(textPath)
		if err != nil {
			a.display.PrintError(err)
			return err
		}
		if err := a.controller.AttachOptionalFile(textRef); err != nil {
			a.display.PrintError(err)
			return err
		}
	}

	a.controller.SetProgressFunc(a.display.DrawProgress)
	a.display.PrintInfo(fmt.Sprintf("Submitting %s (%d bytes) for analysis...", ref.Name, ref.Size))

	rep, err := a.controller.Submit(ctx)
	if err != nil {
		a.display.PrintError(err)
		return err
	}

	a.display.PrintReport(rep)
	a.display.PrintSuccess("Analysis complete. Ask a question about it, or /export the report.")
	return nil
}

// exportCurrent writes artifacts for the active report, falling back to the
// most recent history entry when no analysis is active.
func exportCurrent(ctx context.Context, a *app) {
	rep := a.controller.Report()
	if rep == nil {
		records := a.store.List(ctx)
		if len(records) == 0 {
			a.display.PrintInfo("Nothing to export: no active report and history is empty.")
			return
		}
		rep = records[0].Report
		a.display.PrintDetail("No active report; exporting the most recent history entry.")
	}

	fields := export.FieldsFor(rep)
	mdPath, err := export.WriteMarkdown(a.cfg.ExportDir, fields)
	if err != nil {
		a.display.PrintError(err)
		return
	}
	jsonPath, err := export.WriteJSON(a.cfg.ExportDir, fields)
	if err != nil {
		a.display.PrintError(err)
		return
	}
	a.display.PrintSuccess(fmt.Sprintf("Exported %s and %s", mdPath, jsonPath))
}

// fileRef stats a local file and builds its submission reference.
func fileRef(path string) (session.FileRef, error) {
	info, err := os.Stat(path)
	if err != nil {
		return session.FileRef{}, fmt.Errorf("cannot read %s: %w", path, err)
	}
	if info.IsDir() {
		return session.FileRef{}, fmt.Errorf("%s is a directory", path)
	}
	return session.FileRef{
		Path: path,
		Name: filepath.Base(path),
		Size: info.Size(),
	}, nil
}
