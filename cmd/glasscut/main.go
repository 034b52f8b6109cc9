// GlassCut - Glass Scrap Cutting Optimizer
//
// Allocates requested glass pieces onto leftover sheets from inventory,
// one sheet at a time, and reports layouts, cut sequences and waste.
//
// Build:
//
//	go build -o glasscut ./cmd/glasscut
//
// Usage:
//
//	glasscut [-v=2] <optimize|quick|compare|import|backup|restore|serve> [flags]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/piwi3910/GlassCut/internal/project"
	"k8s.io/klog/v2"
)

func main() {
	klog.InitFlags(nil)
	flag.Usage = printUsage
	flag.Parse()

	code := run(flag.Args())
	klog.Flush()
	os.Exit(code)
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return exitInput
	}

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return exitInput
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		cfg:        project.ApplyEnv(cfg),
		configPath: project.DefaultConfigPath(),
		store:      project.NewStore(project.DefaultWorkspacePath()),
		out:        os.Stdout,
	}
	return exitCode(a.dispatch(ctx, args), os.Stderr)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: glasscut [-v=N] <optimize|quick|compare|import|backup|restore|serve> [flags]")
	fmt.Fprintln(os.Stderr, "run 'glasscut <command> -h' for command flags")
}
