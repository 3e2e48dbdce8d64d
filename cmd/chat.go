package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rathore/toolbridge/agent"
	"github.com/rathore/toolbridge/dispatch"
	"github.com/rathore/toolbridge/remote"
)

var chatServerURL string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat using native tool calls over MCP",
	Long: `Interactive REPL in structured mode: the catalog is submitted as
typed tool definitions, the oracle proposes calls natively, and chosen
tools execute on the demo MCP server. Requires a configured API key.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if chatServerURL == "" {
			chatServerURL = cfg.Server.URL
		}

		// Structured mode cannot degrade to keyword rules.
		oracle, err := requireOracle(cfg)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		client, err := remote.Dial(ctx, chatServerURL)
		if err != nil {
			return fmt.Errorf("connect to MCP server %q: %w", chatServerURL, err)
		}
		defer client.Close()

		catalog, err := client.DiscoverCatalog(ctx)
		if err != nil {
			return err
		}

		ag, err := agent.New(agent.Config{
			Oracle:     oracle,
			Dispatcher: dispatch.New(catalog, dispatch.NewRemoteInvoker(client)),
			Mode:       agent.ModeStructured,
			// Structured mode runs at temperature 0 for
			// near-deterministic tool choices.
			StepTimeout: time.Duration(cfg.LLM.Timeout),
			Verbose:     true,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Connected to %s (%d tools)\n", chatServerURL, catalog.Len())
		fmt.Println("Type /help for commands")
		fmt.Println("---")

		session := ag.NewSession()
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("\n> ")
			if !scanner.Scan() {
				break
			}
			input := strings.TrimSpace(scanner.Text())
			if input == "" {
				continue
			}

			switch strings.ToLower(input) {
			case "quit", "exit", "/exit":
				fmt.Println("Goodbye!")
				return nil
			case "clear", "/clear":
				session = ag.NewSession()
				fmt.Println("History cleared.")
				continue
			case "/help":
				fmt.Println("Commands:")
				fmt.Println("  /help   - Show this help message")
				fmt.Println("  /clear  - Clear conversation history")
				fmt.Println("  /exit   - Exit the chat")
				fmt.Println("")
				fmt.Println("Anything else is sent to the LLM as a prompt.")
				continue
			}

			turn, err := session.Run(ctx, input)
			if err != nil {
				fmt.Printf("\n[Error] %v\n", err)
				continue
			}
			fmt.Printf("\n%s\n", turn.Answer)
		}
		return scanner.Err()
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatServerURL, "server", "", "MCP server URL or stdio command")
}
