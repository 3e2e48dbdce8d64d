package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rathore/toolbridge/agent"
	"github.com/rathore/toolbridge/dispatch"
	"github.com/rathore/toolbridge/remote"
	"github.com/rathore/toolbridge/tools"
)

var mcpServerURL string

// Default walkthrough requests; positional args override them.
var mcpDemoRequests = []string{
	"What's the weather like in Tokyo?",
	"Calculate 25 divided by 5",
	"Get information for user ID 2",
}

var mcpCmd = &cobra.Command{
	Use:   "mcp [utterance...]",
	Short: "AI + MCP demo: tools discovered and called over MCP",
	Long: `Discover tools from the demo MCP server, let the LLM choose one per
request via a freeform JSON decision, and execute the choice remotely.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if mcpServerURL == "" {
			mcpServerURL = cfg.Server.URL
		}

		ctx := cmd.Context()
		client, err := remote.Dial(ctx, mcpServerURL)
		if err != nil {
			return fmt.Errorf("connect to MCP server %q: %w", mcpServerURL, err)
		}
		defer client.Close()

		fmt.Println("AI discovering tools via MCP...")
		catalog, err := client.DiscoverCatalog(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("AI discovered %d tools via MCP:\n", catalog.Len())
		fmt.Print(catalog.Render(tools.RenderHuman))

		oracle, fallback, err := buildOracle(cfg)
		if err != nil {
			return err
		}
		ag, err := agent.New(agent.Config{
			Oracle:              oracle,
			Fallback:            fallback,
			Dispatcher:          dispatch.New(catalog, dispatch.NewRemoteInvoker(client)),
			Mode:                agent.ModeFreeform,
			DecisionTemperature: cfg.LLM.Temperature,
			StepTimeout:         time.Duration(cfg.LLM.Timeout),
			Verbose:             true,
		})
		if err != nil {
			return err
		}

		requests := mcpDemoRequests
		if len(args) > 0 {
			requests = args
		}

		session := ag.NewSession()
		fmt.Println("\nAI processing user requests using LLM + MCP tools:")
		for _, utterance := range requests {
			fmt.Printf("\nUser: %s\n", utterance)
			turn, err := session.Run(ctx, utterance)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			if turn.Answer != "" {
				fmt.Printf("Answer: %s\n", turn.Answer)
			}
		}

		fmt.Println("\nAI + MCP demo completed!")
		fmt.Println("Key insight: LLM chooses tools dynamically based on user query and MCP tool schemas")
		return nil
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpServerURL, "server", "", "MCP server URL or stdio command")
}
