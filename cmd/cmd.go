package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/vladimir-rom/chartprops/cmd/config"
	"github.com/vladimir-rom/chartprops/colors"
	"github.com/vladimir-rom/chartprops/pipeline"
	"github.com/vladimir-rom/chartprops/schema"
	"github.com/vladimir-rom/chartprops/steps"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrUnknownRules     = errors.New("unknown rule set")
	ErrUnknownOutput    = errors.New("unknown output format")
)

func Execute() {
	var rootCmd = createRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type commonParams struct {
	rules      func() string
	output     func() string
	noColor    func() bool
	showErrors func() bool
	textDelim  func() string
}

type listParams struct {
	kqlFilter   func() string
	jqFilter    func() string
	includeAny  func() []string
	selectProps func() []string
}

func createRootCmd() *cobra.Command {
	k := koanf.New(".")
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "chartprops",
		Short:         "chartprops inspects the styling property rules of the chart test pages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadFile(k, configFile); err != nil {
				return err
			}
			return config.LoadFlags(k, cmd.Flags())
		},
	}

	rootCmd.PersistentFlags().StringVarP(
		&configFile,
		"config",
		"c",
		"",
		"YAML config file with flag values and color rules")

	reg := config.NewRegistry(k, rootCmd.PersistentFlags())
	params := &commonParams{
		rules: reg.String(
			"rules",
			"tree-node",
			"rule set to inspect"),
		output: reg.StringP(
			"output",
			"o",
			"text",
			"output format: text or json"),
		noColor: reg.Bool(
			"no-color",
			false,
			"disable colors"),
		showErrors: reg.Bool(
			"show-errors",
			false,
			"show processing errors"),
		textDelim: reg.String(
			"txt-delim",
			" ",
			"delimiter between text columns"),
	}

	rootCmd.AddCommand(
		createListCmd(k, params),
		createGetCmd(k, params),
		createRulesCmd())

	return rootCmd
}

func createListCmd(k *koanf.Koanf, params *commonParams) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list [flags]",
		Short: "list the properties of a rule set",
		Args:  cobra.NoArgs,
	}

	reg := config.NewRegistry(k, listCmd.Flags())
	lp := &listParams{
		kqlFilter: reg.StringP(
			"filter-kql",
			"f",
			"",
			"filter in the Kibana Query Language format. Example: 'type:color'"),
		jqFilter: reg.String(
			"jq",
			"",
			"jq filter or transformation. Example: '.default == \"#fff\"'"),
		includeAny: reg.StringsP(
			"include-any",
			"i",
			nil,
			"include only properties with any of specified substrings"),
		selectProps: reg.Strings(
			"select",
			nil,
			"fields to output: key, type, title, default"),
	}

	listCmd.RunE = func(cmd *cobra.Command, args []string) error {
		_, err := runList(cmd.OutOrStdout(), k, params, lp)
		return err
	}
	return listCmd
}

func createGetCmd(k *koanf.Koanf, params *commonParams) *cobra.Command {
	return &cobra.Command{
		Use:   "get [flags] key",
		Short: "print a single property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd.OutOrStdout(), k, params, args[0])
		},
	}
}

func createRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "list the available rule sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range schema.RuleNames() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func runList(w io.Writer, k *koanf.Koanf, params *commonParams, lp *listParams) (int, error) {
	opts := pipeline.PipelineOptions{}

	filterByKQL, err := steps.FilterByKQL(opts, lp.kqlFilter())
	if err != nil {
		return 0, err
	}

	filterByJq, err := steps.FilterByJq(opts, lp.jqFilter())
	if err != nil {
		return 0, err
	}

	process := pipeline.Combine(
		steps.IncludeSubstringsAny(opts, lp.includeAny()),
		filterByKQL,
		filterByJq,
		steps.Select(opts, lp.selectProps()),
	)

	return render(w, k, params, opts, process, lp.selectProps(), lp.includeAny())
}

func runGet(w io.Writer, k *koanf.Koanf, params *commonParams, key string) error {
	opts := pipeline.PipelineOptions{}
	n, err := render(w, k, params, opts, steps.Keys(opts, []string{key}), nil, nil)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrPropertyNotFound, key)
	}
	return nil
}

func render(
	w io.Writer,
	k *koanf.Koanf,
	params *commonParams,
	opts pipeline.PipelineOptions,
	process pipeline.Step[steps.JSON, steps.JSON],
	fields []string,
	highlights []string) (int, error) {
	rules := params.rules()
	table, ok := schema.Rules(rules)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownRules, rules)
	}

	if params.noColor() {
		color.NoColor = true
	}

	var format pipeline.Step[steps.JSON, string]
	switch params.output() {
	case "text":
		cfg, err := config.ReadFields(k)
		if err != nil {
			return 0, err
		}
		c, err := colors.NewColorizer(cfg, colors.DefaultColorBuilder)
		if err != nil {
			return 0, err
		}
		format = steps.JsonToText(opts, fields, params.textDelim(), highlights, c)
	case "json":
		format = steps.JsonToStr(opts)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownOutput, params.output())
	}

	return steps.WriteLines(w, params.showErrors(), format(process(steps.FromTable(rules, table))))
}
