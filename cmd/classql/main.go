// Copyright 2026 CampusOps Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

// Command classql compiles schedule filters to SQL and runs them against a
// SQLite schedule database.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/campusops/classql"
	"github.com/campusops/classql/expr"
)

// Context carries the global flags into every command.
type Context struct {
	Config  string
	Verbose bool
}

// CompileCmd compiles a filter and prints the generated SQL fragment.
type CompileCmd struct {
	Filter string `arg:"" help:"Filter expression to compile"`
}

func (cmd *CompileCmd) Run(ctx *Context) error {
	stmt, err := classql.Compile(cmd.Filter)
	if err != nil {
		renderDiagnostics(os.Stderr, cmd.Filter, err)
		os.Exit(1)
	}
	fmt.Println(stmt.SQL())
	return nil
}

// TokensCmd prints the token sequence of a filter, one token per line.
type TokensCmd struct {
	Filter string `arg:"" help:"Filter expression to tokenize"`
}

func (cmd *TokensCmd) Run(ctx *Context) error {
	tokens, err := expr.Tokenize(cmd.Filter)
	if err != nil {
		renderDiagnostics(os.Stderr, cmd.Filter, err)
		os.Exit(1)
	}
	for _, t := range tokens {
		fmt.Printf("%3d..%-3d %s\n", t.Start, t.End, t)
	}
	return nil
}

// SelectCmd compiles a filter and runs it against the configured database.
type SelectCmd struct {
	Filter string `arg:"" help:"Filter expression to run"`
}

func (cmd *SelectCmd) Run(ctx *Context) error {
	stmt, err := classql.Compile(cmd.Filter)
	if err != nil {
		renderDiagnostics(os.Stderr, cmd.Filter, err)
		os.Exit(1)
	}

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	db, err := classql.Open(cfg)
	if err != nil {
		return err
	}

	if ctx.Verbose {
		fmt.Fprintf(os.Stderr, "WHERE %s\n", stmt.SQL())
	}

	classes, err := db.Select(context.Background(), stmt)
	if err != nil {
		return err
	}
	for _, c := range classes {
		fmt.Printf("%-10s %-9s %s-%s %-20s %-8s %.1f credits, %d seats\n",
			c.CourseCode, c.Day, c.StartTime, c.EndTime, c.Instructor, c.Room, c.Credits, c.Seats)
	}
	if ctx.Verbose {
		fmt.Fprintf(os.Stderr, "%d classes matched\n", len(classes))
	}
	return nil
}

// loadConfig loads the configured file, or defaults when the default file is
// absent.
func loadConfig(ctx *Context) (*classql.Config, error) {
	if _, err := os.Stat(ctx.Config); err != nil {
		if ctx.Config != defaultConfigFile {
			return nil, fmt.Errorf("cannot read config %s: %w", ctx.Config, err)
		}
		return classql.DefaultConfig(), nil
	}
	return classql.LoadConfig(ctx.Config)
}

const defaultConfigFile = "classql.yaml"

// CLI is the command-line interface.
var CLI struct {
	Config  string     `help:"Configuration file path" default:"classql.yaml"`
	Verbose bool       `help:"Enable verbose output" short:"v"`
	Compile CompileCmd `cmd:"" help:"Compile a filter and print the SQL fragment"`
	Tokens  TokensCmd  `cmd:"" help:"Print the token sequence of a filter"`
	Select  SelectCmd  `cmd:"" help:"Run a filter against the schedule database"`
}

func main() {
	ctx := kong.Parse(&CLI)

	appCtx := &Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
