package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rathore/toolbridge/server"
)

var (
	serveTransport string
	serveAddr      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the demo MCP server",
	Long: `Run the demo MCP server exposing get_weather, calculate and
get_user_info, plus demo resources and prompt templates.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveTransport == "" {
			serveTransport = cfg.Server.Transport
		}
		if serveAddr == "" {
			serveAddr = cfg.Server.Addr
		}

		srv, err := server.New()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if serveTransport != "stdio" {
			fmt.Printf("Starting MCP server with transport=%s on %s\n", serveTransport, serveAddr)
		}
		return srv.Run(ctx, serveTransport, serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveTransport, "transport", "", "transport: sse, streamable-http or stdio")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, e.g. :8765")
}
