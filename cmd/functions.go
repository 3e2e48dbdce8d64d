package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rathore/toolbridge/agent"
	"github.com/rathore/toolbridge/dispatch"
	"github.com/rathore/toolbridge/tools"
)

var functionsDemoRequests = []string{
	"What's the weather in New York?",
	"Add 10 and 15",
	"Get user 3's information",
}

var functionsCmd = &cobra.Command{
	Use:   "functions [utterance...]",
	Short: "Traditional function-calling demo: direct in-process calls",
	Long: `Build tool schemas from the builtin function signatures, let the LLM
choose one per request via a freeform JSON decision, and execute the
choice directly in-process - no MCP protocol involved.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		registry := tools.Builtins()
		catalog, err := registry.Catalog()
		if err != nil {
			return err
		}

		fmt.Printf("Generated %d function schemas dynamically\n", catalog.Len())
		fmt.Println("Schemas created from function signatures & docstrings")
		fmt.Println("\nFUNCTION CALLING SCHEMAS:")
		fmt.Print(catalog.Render(tools.RenderHuman))

		// One complete schema, the shape handed to the oracle.
		first := catalog.List()[0]
		schema, _ := json.MarshalIndent(map[string]any{
			"name":        first.Name,
			"description": first.Description,
			"parameters":  json.RawMessage(first.JSONSchema()),
		}, "", "  ")
		fmt.Printf("\nComplete JSON Schema Example (%s):\n%s\n", first.Name, schema)

		oracle, fallback, err := buildOracle(cfg)
		if err != nil {
			return err
		}
		ag, err := agent.New(agent.Config{
			Oracle:              oracle,
			Fallback:            fallback,
			Dispatcher:          dispatch.New(catalog, dispatch.NewDirectInvoker(registry)),
			Mode:                agent.ModeFreeform,
			DecisionTemperature: cfg.LLM.Temperature,
			StepTimeout:         time.Duration(cfg.LLM.Timeout),
			Verbose:             true,
		})
		if err != nil {
			return err
		}

		requests := functionsDemoRequests
		if len(args) > 0 {
			requests = args
		}

		session := ag.NewSession()
		fmt.Println("\nEXECUTING FUNCTION CALLS WITH LLM:")
		for _, utterance := range requests {
			fmt.Printf("\nUser: %s\n", utterance)
			turn, err := session.Run(cmd.Context(), utterance)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			if turn.Answer != "" {
				fmt.Printf("Answer: %s\n", turn.Answer)
			}
		}

		fmt.Println("\nFunction calling demo completed!")
		fmt.Println("Key insight: LLM analyzes schemas -> chooses function -> app executes direct call")
		return nil
	},
}
