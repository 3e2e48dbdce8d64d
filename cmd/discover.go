package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rathore/toolbridge/remote"
	"github.com/rathore/toolbridge/tools"
)

var discoverServerURL string

// sampleCalls exercises each demo tool once, without any AI involved.
var sampleCalls = []struct {
	tool string
	args map[string]any
}{
	{"get_weather", map[string]any{"city": "London"}},
	{"calculate", map[string]any{"operation": "multiply", "a": 6.0, "b": 7.0}},
	{"get_user_info", map[string]any{"user_id": 1}},
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Non-AI client: discover and exercise everything over MCP",
	Long: `Walk the full MCP surface of the demo server without an LLM: ping,
tool discovery, resource reading, prompt rendering and direct tool
calls. MCP is a protocol any application can speak, not just AI.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if discoverServerURL == "" {
			discoverServerURL = cfg.Server.URL
		}

		ctx := cmd.Context()
		client, err := remote.Dial(ctx, discoverServerURL)
		if err != nil {
			return fmt.Errorf("connect to MCP server %q: %w", discoverServerURL, err)
		}
		defer client.Close()

		if err := client.Ping(ctx); err != nil {
			return fmt.Errorf("server ping failed: %w", err)
		}
		fmt.Println("Server ping successful!")

		catalog, err := client.DiscoverCatalog(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("\nFound %d tools:\n", catalog.Len())
		fmt.Print(catalog.Render(tools.RenderHuman))

		resources, err := client.ListResources(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("\nFound %d resources:\n", len(resources))
		for _, r := range resources {
			fmt.Printf("  - %s: %s\n", r.URI, r.Description)
			content, err := client.ReadResource(ctx, r.URI)
			if err != nil {
				fmt.Printf("    read failed: %v\n", err)
				continue
			}
			fmt.Printf("%s\n", indent(content, "    "))
		}

		prompts, err := client.ListPrompts(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("\nFound %d prompts:\n", len(prompts))
		for _, p := range prompts {
			fmt.Printf("  - %s: %s (args: %v)\n", p.Name, p.Description, p.Arguments)
		}
		if rendered, err := client.GetPrompt(ctx, "greeting", map[string]string{"name": "Developer"}); err == nil {
			fmt.Printf("\ngreeting(name=Developer):\n%s\n", indent(rendered, "  "))
		}

		fmt.Println("\nCalling each tool directly:")
		for _, call := range sampleCalls {
			result, err := client.CallTool(ctx, call.tool, call.args)
			if err != nil {
				fmt.Printf("  %s: call failed: %v\n", call.tool, err)
				continue
			}
			fmt.Printf("  %s%v -> %s\n", call.tool, call.args, result)
		}

		fmt.Println("\nDemo completed - no AI involved, just the MCP protocol.")
		return nil
	},
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	return prefix + strings.Join(lines, "\n"+prefix)
}

func init() {
	discoverCmd.Flags().StringVar(&discoverServerURL, "server", "", "MCP server URL or stdio command")
}
