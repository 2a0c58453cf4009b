package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/multimodal-search/v1/node"
)

// errNodeFailed is returned after a failed response has been printed.
var errNodeFailed = errors.New("node failed")

const runLongDesc string = `Run one node on JSON inputs and print its JSON response.

Nodes:
  embed              {description?, image_base64?}
  image-description  {image_base64}
  vector-insert      {description, image_url, text_vector, image_vector}
  vector-query       {text_vector?, image_vector?, top_k?}
  index-image        {image_base64, description?}

Example:
  mmsearch run vector-query --input query.json
  echo '{"description":"a red bicycle"}' | mmsearch run embed --input -`

type runCommander struct {
	input string
}

func newRunCmd() *cobra.Command {
	cmder := &runCommander{}

	cmd := &cobra.Command{
		Use:   "run <node>",
		Short: "Run one node on JSON inputs",
		Long:  runLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			c, ok := componentsFor(name)
			if !ok {
				return fmt.Errorf("unknown node %q, available: %s", name, strings.Join(knownNodes, ", "))
			}

			inputs, err := cmder.readInputs(cmd.InOrStdin())
			if err != nil {
				return err
			}

			cfg, err := loadFromFlags(cmd)
			if err != nil {
				return err
			}

			resp, err := runNode(cmd.Context(), cfg, c, name, inputs)
			if err != nil {
				return err
			}
			return writeResponse(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVarP(&cmder.input, "input", "i", "", `JSON inputs file, "-" for stdin (default: no inputs)`)

	return cmd
}

func (c *runCommander) readInputs(stdin io.Reader) (map[string]any, error) {
	var r io.Reader
	switch c.input {
	case "":
		return map[string]any{}, nil
	case "-":
		r = stdin
	default:
		f, err := os.Open(c.input)
		if err != nil {
			return nil, fmt.Errorf("opening inputs: %w", err)
		}
		defer f.Close()
		r = f
	}

	var inputs map[string]any
	if err := json.NewDecoder(r).Decode(&inputs); err != nil {
		return nil, fmt.Errorf("decoding inputs: %w", err)
	}
	if inputs == nil {
		inputs = map[string]any{}
	}
	return inputs, nil
}

func runNode(ctx context.Context, cfg AppConfig, c components, name string, inputs map[string]any) (node.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var registry *node.Registry
	app := fx.New(appOptions(cfg, c, fx.Populate(&registry))...)
	if err := app.Err(); err != nil {
		return node.Response{}, fmt.Errorf("building app: %w", err)
	}

	startCtx, cancel := context.WithTimeout(ctx, startTimeout(cfg.Search))
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return node.Response{}, fmt.Errorf("starting app: %w", err)
	}
	defer func() { _ = app.Stop(context.Background()) }()

	return registry.Dispatch(ctx, name, inputs), nil
}

func writeResponse(w io.Writer, resp node.Response) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	if !resp.Success {
		return errNodeFailed
	}
	return nil
}
