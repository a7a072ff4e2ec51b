// Command scribble runs the drawing-and-guessing game client.
//
// It supports two modes:
//  1. "play" (default) – a line-based console client for humans
//  2. "mcp" – an MCP stdio server exposing the client to AI agents
//
// Flags control the server address, transport, config file, and debug
// logging.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/KazooBoye/Scribble/client"
	"github.com/KazooBoye/Scribble/config"
	"github.com/KazooBoye/Scribble/game/session"
	"github.com/KazooBoye/Scribble/logger"
	"github.com/KazooBoye/Scribble/transport"
	"github.com/KazooBoye/Scribble/transport/mcp"
	"github.com/KazooBoye/Scribble/transport/tcpsock"
	"github.com/KazooBoye/Scribble/transport/wsock"
)

const (
	Version = "1.0.0"
	AppName = "Scribble"
)

func main() {
	cmd := &cli.Command{
		Name:    "scribble",
		Usage:   "real-time drawing and guessing game client",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a config file (default: ./scribble.yaml if present)",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "game server host (overrides config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "game server port (overrides config)",
			},
			&cli.StringFlag{
				Name:  "transport",
				Usage: "connection transport: tcp or ws (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "run the interactive console client",
				Action: runPlay,
			},
			{
				Name:   "mcp",
				Usage:  "serve the client over MCP stdio for AI agents",
				Action: runMCP,
			},
		},
		DefaultCommand: "play",
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup loads config, applies flag overrides, and builds a connected
// client.
func setup(cmd *cli.Command) (*client.Client, config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, config.Config{}, err
	}
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		cfg.Port = int(port)
	}
	if tr := cmd.String("transport"); tr != "" {
		cfg.Transport = strings.ToLower(tr)
	}
	if cmd.Bool("debug") {
		cfg.Log.Level = "debug"
	}

	logger.Init(cfg.Log)

	var tr transport.Transport
	switch cfg.Transport {
	case config.TransportWebSocket:
		tr = wsock.New(cfg.WSPath)
	case config.TransportTCP:
		tr = tcpsock.New()
	default:
		return nil, config.Config{}, fmt.Errorf("unknown transport %q", cfg.Transport)
	}

	c := client.New(tr, client.Options{
		Host:          cfg.Host,
		Port:          cfg.Port,
		FallbackDelay: cfg.ReconnectFallbackDelay,
		TokenStore:    session.NewTokenStore(tokenPath()),
	})
	if err := c.Connect(); err != nil {
		return nil, config.Config{}, fmt.Errorf("connect to %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return c, cfg, nil
}

// tokenPath returns where the session token is persisted.
func tokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".scribble-session.json"
	}
	return filepath.Join(dir, "scribble", "session.json")
}

// runMCP serves the client to an MCP host over stdio.
func runMCP(ctx context.Context, cmd *cli.Command) error {
	c, cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer c.Close()

	return mcp.NewServer(c, cfg.TickRate).ServeStdio(ctx)
}

// runPlay drives the client from stdin commands while a background loop
// ticks the protocol engine and prints new chat lines.
func runPlay(ctx context.Context, cmd *cli.Command) error {
	c, cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer c.Close()

	fmt.Printf("%s v%s: %s\n", AppName, Version, c.Status())
	fmt.Println(`Commands: play <name> | create <name> | join <name> <code> | say <text>`)
	fmt.Println(`          draw <x1> <y1> <x2> <y2> | color <0-9> | clear | state | home | quit`)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go followGame(ctx, c, cfg.TickRate)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		if err := runCommand(c, line); err != nil {
			fmt.Println("!", err)
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
	return scanner.Err()
}

// followGame ticks the client and echoes chat and status changes to
// stdout.
func followGame(ctx context.Context, c *client.Client, tickRate time.Duration) {
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	var lastStatus string
	var seenChat int
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick()
			snap := c.Snapshot()
			if snap.Status != lastStatus {
				lastStatus = snap.Status
				fmt.Println(">", snap.Status)
			}
			if len(snap.Chat) < seenChat {
				seenChat = 0
			}
			for _, line := range snap.Chat[seenChat:] {
				fmt.Println(" ", line)
			}
			seenChat = len(snap.Chat)
		}
	}
}

func runCommand(c *client.Client, line string) error {
	fields := strings.Fields(line)
	switch fields[0] {
	case "play":
		if len(fields) < 2 {
			return errors.New("usage: play <name>")
		}
		return c.PlayNow(fields[1])
	case "create":
		if len(fields) < 2 {
			return errors.New("usage: create <name>")
		}
		return c.CreateRoom(fields[1])
	case "join":
		if len(fields) < 3 {
			return errors.New("usage: join <name> <code>")
		}
		return c.JoinRoom(fields[1], fields[2])
	case "say":
		return c.SendChat(strings.TrimSpace(strings.TrimPrefix(line, "say")))
	case "color":
		if len(fields) < 2 {
			return errors.New("usage: color <0-9>")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("bad color index %q", fields[1])
		}
		c.SetColor(n)
		return nil
	case "draw":
		if len(fields) < 5 {
			return errors.New("usage: draw <x1> <y1> <x2> <y2>")
		}
		coords := make([]float64, 4)
		for i, f := range fields[1:5] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return fmt.Errorf("bad coordinate %q", f)
			}
			coords[i] = v
		}
		c.PointerDown(coords[0], coords[1])
		c.PointerMove(coords[2], coords[3])
		c.PointerUp()
		return nil
	case "clear":
		return c.ClearCanvas()
	case "home":
		c.ReturnHome()
		return nil
	case "state":
		printState(c.Snapshot())
		return nil
	case "resume":
		return c.Resume()
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

func printState(snap client.Snapshot) {
	fmt.Printf("phase=%s status=%q room=%s\n", snap.Phase, snap.Status, snap.RoomCode)
	if snap.Round > 0 {
		fmt.Printf("round %d/%d  timer=%ds  mask=%s\n", snap.Round, snap.TotalRounds, snap.Timer, snap.WordMask)
	}
	if snap.IsDrawer {
		fmt.Printf("drawing: %s (%d segments)\n", snap.WordToDraw, len(snap.Segments))
	}
	for _, p := range snap.Players {
		marker := ""
		if p.IsDrawing {
			marker = " *"
		}
		fmt.Printf("  %-20s %d%s\n", p.Username, p.Score, marker)
	}
}
