// Package mcp exposes training data to LLM clients over the Model Context
// Protocol: read-only tools over history and statistics, plus resources for
// the active program and recent workouts.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftLog workout tracker. Query the training program, workout history, personal records, big-3 lift summaries, and volume trends. All tools are read-only."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetWorkoutHistory, Handler: h.getWorkoutHistory},
		server.ServerTool{Tool: toolGetExerciseHistory, Handler: h.getExerciseHistory},
		server.ServerTool{Tool: toolGetBig3Summary, Handler: h.getBig3Summary},
		server.ServerTool{Tool: toolGetPersonalRecords, Handler: h.getPersonalRecords},
		server.ServerTool{Tool: toolGetVolumeTrend, Handler: h.getVolumeTrend},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCurrentProgram, Handler: h.currentProgram},
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resCurrentProgram = mcp.NewResource(
	"liftlog://current_program",
	"Current Program",
	mcp.WithResourceDescription("The active training program with its days, exercises, and DUP rotations, plus the current training week"),
	mcp.WithMIMEType("application/json"),
)

var resRecentWorkouts = mcp.NewResource(
	"liftlog://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("The ten most recent completed workouts with full set data"),
	mcp.WithMIMEType("application/json"),
)
