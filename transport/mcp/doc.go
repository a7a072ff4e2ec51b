// Package mcp exposes a running game client over the Model Context
// Protocol so AI agents can play without a graphical frontend.
//
// The mcp package implements:
//   - MCP server wrapping a live game client
//   - Tool definitions for every player action
//   - A background tick loop driving message processing
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get the current phase, roster, chat, and round info
//   - play_now: Register and join a public game
//   - create_room: Register and create a private room
//   - join_room: Register and join a private room by code
//   - send_chat: Send a chat message or word guess
//   - draw_stroke: Draw one line segment while holding the brush
//   - clear_canvas: Wipe the canvas while holding the brush
//   - return_home: Leave the post-game screen
//
// Usage:
//
//	srv := mcp.NewServer(gameClient, 16*time.Millisecond)
//	srv.ServeStdio()
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Join and play rounds autonomously
//   - Guess words from the mask and chat history
//   - Draw strokes when holding the brush
package mcp
