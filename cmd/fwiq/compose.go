package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GTP-getaipro/FWIQ-sub005/internal/compose"
	"github.com/GTP-getaipro/FWIQ-sub005/internal/config"
	"github.com/GTP-getaipro/FWIQ-sub005/internal/schema"
)

type composeOptions struct {
	clientPath string
	clientDir  string
	outDir     string
	strict     bool
}

func newComposeCmd(root *rootOptions) *cobra.Command {
	opts := &composeOptions{}

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose prompt and label taxonomy artifacts for a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (opts.clientPath == "") == (opts.clientDir == "") {
				return fmt.Errorf("exactly one of --client or --dir is required")
			}
			logger, err := root.logger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			registry, err := schema.Builtin()
			if err != nil {
				return fmt.Errorf("load schema registry: %w", err)
			}
			composer := compose.New(registry, logger)

			if opts.clientPath != "" {
				return composeOne(composer, logger, opts.clientPath, opts)
			}
			return composeDir(composer, logger, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.clientPath, "client", "c", "", "client configuration file")
	cmd.Flags().StringVar(&opts.clientDir, "dir", "", "directory of client configuration files (batch mode)")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "out", "output directory")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "warn on every stripped placeholder")

	return cmd
}

func composeOne(composer *compose.Composer, logger *zap.Logger, path string, opts *composeOptions) error {
	client, err := config.Load(path)
	if err != nil {
		return err
	}

	req := compose.Request{
		TradeTypes:         client.TradeTypes,
		Managers:           client.Managers,
		Suppliers:          client.Suppliers,
		Facts:              client.Facts(),
		StrictPlaceholders: client.StrictPlaceholders || opts.strict,
	}
	if client.PromptTemplatePath != "" {
		raw, err := os.ReadFile(client.PromptTemplatePath)
		if err != nil {
			return fmt.Errorf("read prompt template: %w", err)
		}
		req.PromptTemplate = string(raw)
	}

	result, err := composer.Compose(req)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		logger.Warn(w, zap.String("client", path))
	}
	if !result.Report.Valid {
		for _, e := range result.Report.Errors {
			logger.Error(e, zap.String("client", path))
		}
	}

	dir := filepath.Join(opts.outDir, clientSlug(path))
	if err := writeArtifacts(dir, result); err != nil {
		return err
	}
	logger.Info("artifacts written",
		zap.String("client", path),
		zap.String("dir", dir),
		zap.Int("labels", len(result.Taxonomy.Order)))
	return nil
}

// composeDir runs every client file in a directory concurrently. The
// pipeline is pure per request, so clients only share the read-only
// registry.
func composeDir(composer *compose.Composer, logger *zap.Logger, opts *composeOptions) error {
	entries, err := os.ReadDir(opts.clientDir)
	if err != nil {
		return fmt.Errorf("read client dir: %w", err)
	}

	var g errgroup.Group
	g.SetLimit(8)
	for _, e := range entries {
		if e.IsDir() || !isYAML(e.Name()) {
			continue
		}
		path := filepath.Join(opts.clientDir, e.Name())
		g.Go(func() error {
			return composeOne(composer, logger, path, opts)
		})
	}
	return g.Wait()
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// clientSlug names the per-client output directory after the config file.
func clientSlug(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func writeArtifacts(dir string, result *compose.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "prompt.txt"), []byte(result.Prompt), 0o644); err != nil {
		return fmt.Errorf("write prompt: %w", err)
	}
	labels, err := json.MarshalIndent(struct {
		RequestID string      `json:"request_id"`
		Trades    []string    `json:"trades"`
		Taxonomy  interface{} `json:"taxonomy"`
		Report    interface{} `json:"report"`
		Warnings  []string    `json:"warnings,omitempty"`
	}{result.RequestID, result.Trades, result.Taxonomy, result.Report, result.Warnings}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode labels: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "labels.json"), append(labels, '\n'), 0o644); err != nil {
		return fmt.Errorf("write labels: %w", err)
	}
	return nil
}
