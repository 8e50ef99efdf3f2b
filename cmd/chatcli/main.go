// chatcli is a terminal client for the LinkTale session: it connects to the
// AI backend, streams the story into the terminal and sends each input line
// as a user message. Useful for exercising the backend without the web UI.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/burnhorn/LinkTale-frontend/internal/config"
	"github.com/burnhorn/LinkTale-frontend/internal/logger"
	"github.com/burnhorn/LinkTale-frontend/internal/model"
	"github.com/burnhorn/LinkTale-frontend/internal/session"
	"github.com/burnhorn/LinkTale-frontend/internal/storage"
	"github.com/burnhorn/LinkTale-frontend/internal/transport"

	backendclient "github.com/burnhorn/LinkTale-frontend/internal/client"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{Level: cfg.Log.Level, Encoding: "console"})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	zlog := zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()

	api, err := backendclient.New(backendclient.Config{
		ChatBaseURL:   cfg.Backend.ChatAPIBaseURL,
		ExportBaseURL: cfg.Backend.ExportAPIBaseURL,
		TokenBaseURL:  cfg.Backend.TokenAPIBaseURL,
		Timeout:       cfg.Backend.RequestTimeout,
	}, zapLogger)
	if err != nil {
		log.Fatalf("Failed to build backend client: %v", err)
	}

	tr := transport.New(cfg.Backend.WSBaseURL, zlog)
	state := storage.NewMemory()
	if token := os.Getenv("LINKTALE_TOKEN"); token != "" {
		state.SetAuthToken(token)
	}
	ctrl := session.NewController(tr, api, state, zapLogger)

	// Print each entry once it is finalized. Notifications can come from the
	// read loop or from this goroutine, so the printed set needs a lock.
	var printMu sync.Mutex
	printed := make(map[string]bool)
	cancel := ctrl.Conversation.Subscribe(func() {
		printMu.Lock()
		defer printMu.Unlock()
		for _, entry := range ctrl.Conversation.Snapshot() {
			if printed[entry.ID] || entry.IsLoading {
				continue
			}
			printed[entry.ID] = true
			printEntry(entry)
		}
	})
	defer cancel()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := ctrl.Start(ctx); err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}
	fmt.Printf("연결되었습니다. 세션: %s (종료: Ctrl+C, 새 이야기: /reset)\n", ctrl.SessionID())

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			ctrl.Wait()
			tr.Close()
			return
		case line, ok := <-lines:
			if !ok {
				tr.Close()
				return
			}
			line = strings.TrimSpace(line)
			switch {
			case line == "":
			case line == "/reset":
				if err := ctrl.Reset(ctx, false); err != nil {
					fmt.Fprintf(os.Stderr, "reset failed: %v\n", err)
				}
			case line == "/audio":
				ctrl.SendAction(session.ActionGenerateAudio, "")
			default:
				ctrl.SendUserMessage(line)
			}
		}
	}
}

func printEntry(entry model.ConversationEntry) {
	prefix := "AI"
	switch {
	case entry.IsSystem:
		prefix = "**"
	case entry.Sender == model.SenderUser:
		prefix = "나"
	}
	if entry.ImageURL != "" {
		fmt.Printf("[%s] %s (그림: %s)\n", prefix, entry.Text, entry.ImageURL)
		return
	}
	fmt.Printf("[%s] %s\n", prefix, entry.Text)
}
