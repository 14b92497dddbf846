package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/garagekb/garagekb"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *garagekb.Config
	Runs   garagekb.RunRecorder
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `short:"c" help:"Path to a YAML config file layered over the built-in defaults" type:"path"`

	Build   BuildCmd   `cmd:"" help:"Fetch all sources and build the knowledge base snapshot"`
	Runs    RunsCmd    `cmd:"" help:"Show recent aggregation runs"`
	Codes   CodesCmd   `cmd:"" help:"Print the diagnostic trouble code glossary"`
	Sources SourcesCmd `cmd:"" help:"List configured content sources"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Out         string  `short:"o" default:"data/db.json" help:"Snapshot output path"`
	Glossaries  bool    `help:"Also write error-code and vehicle glossary files"`
	Concurrency int     `default:"4" help:"Concurrent source fetch limit"`
	RPS         float64 `name:"rps" default:"1" help:"Max requests per second per domain"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Limit int `short:"n" default:"10" help:"Number of runs to show"`
}

// CodesCmd is the "codes" subcommand.
type CodesCmd struct {
	System string `help:"Filter by vehicle system (Powertrain, Body, Chassis, Network)"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}
