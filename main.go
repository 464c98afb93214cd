package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/neovim/go-client/nvim"

	"github.com/nextdb/gateway/handler"
	"github.com/nextdb/gateway/plugin"
)

func main() {
	generateManifest := flag.String("manifest", "", "generate manifest file for the given host name")
	manifestFile := flag.String("location", "", "where to write the manifest")
	urlTemplates := flag.String("url-templates", "", `render connection urls as templates: "env" or "exec" (also runs commands)`)
	flag.Parse()

	var opts []handler.Option
	switch *urlTemplates {
	case "":
	case "env":
		opts = append(opts, handler.WithURLTemplates(false))
	case "exec":
		opts = append(opts, handler.WithURLTemplates(true))
	default:
		fmt.Fprintf(os.Stderr, "unknown -url-templates mode %q\n", *urlTemplates)
		os.Exit(2)
	}

	if *generateManifest != "" {
		if err := writeManifest(*generateManifest, *manifestFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	// stdout is the rpc channel, keep stray prints away from it
	stdout := os.Stdout
	os.Stdout = os.Stderr

	// rpc internals log straight to stderr, the plugin logger itself talks
	// to neovim and must not be used from the serve loop
	v, err := nvim.New(os.Stdin, stdout, stdout, func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := plugin.NewLogger(v)
	defer logger.Close()

	h := handler.New(v, logger, opts...)
	defer h.Close()

	mountEndpoints(plugin.New(v, logger), h)

	if err := v.Serve(); err != nil {
		logger.Errorf("v.Serve: %s", err)
	}
}

func writeManifest(host, location string) error {
	executable, err := os.Executable()
	if err != nil {
		return err
	}
	if location == "" {
		location = host + "_manifest.lua"
	}

	logger := plugin.NewLogger(nil)
	h := handler.New(nil, logger)
	defer h.Close()

	p := plugin.New(nil, logger)
	mountEndpoints(p, h)

	return p.Manifest(host, executable, location)
}
