package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"txvisualizer/internal/chain"
	"txvisualizer/internal/config"
	"txvisualizer/internal/ephemeralkey"
	"txvisualizer/internal/ethereum/contracts"
	"txvisualizer/internal/logging"
	"txvisualizer/internal/service"
	"txvisualizer/internal/transport"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "txparser",
		Short: "txparser - transaction decoding and visualization service",
		Long: `txparser converts raw unsigned blockchain transactions into
deterministic, human-readable Signable Payloads and attests to them with a
process-scoped ephemeral key.

Quick Start:
  txparser keygen --out key.pem          # Generate the ephemeral signing key
  txparser parse --chain ethereum 0x...  # Decode one transaction to canonical JSON
  txparser serve --key key.pem           # Start the request loop`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	rootCmd.AddCommand(parseCmd(), serveCmd(), healthCmd(), keygenCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [raw transaction]",
		Short: "Decode a raw transaction and print its signed canonical payload",
		Long: `Decode a raw transaction (hex or base64, as an argument or on stdin)
into the canonical Signable Payload JSON, sign its digest with the
ephemeral key, and print both.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chainName, _ := cmd.Flags().GetString("chain")
			keyPath, _ := cmd.Flags().GetString("key")
			name, _ := cmd.Flags().GetString("name")
			decodeTransfers, _ := cmd.Flags().GetBool("decode-transfers")
			pretty, _ := cmd.Flags().GetBool("pretty")

			raw, err := readPayload(args)
			if err != nil {
				return err
			}

			key, err := loadOrGenerateKey(keyPath)
			if err != nil {
				return err
			}

			svc := service.New(service.DefaultRegistry(), key, slog.Default())
			resp, err := svc.Parse(cmd.Context(), service.ParseRequest{
				UnsignedPayload: raw,
				Chain:           chain.ParseChain(chainName),
				TransactionName: name,
				DecodeTransfers: decodeTransfers,
			})
			if err != nil {
				return err
			}

			if pretty {
				printSummary(cmd.OutOrStdout(), resp)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.ParsedTransaction.Payload.SignablePayload)
			fmt.Fprintf(cmd.OutOrStdout(), "public_key=%s\nmessage=%s\nsignature=%s\n",
				resp.ParsedTransaction.Signature.PublicKey,
				resp.ParsedTransaction.Signature.Message,
				resp.ParsedTransaction.Signature.Signature)
			return nil
		},
	}
	cmd.Flags().String("chain", "unspecified", "Chain tag (ethereum, solana, sui); unspecified auto-detects")
	cmd.Flags().String("key", "", "Path to the ephemeral key PEM (generated in-process when omitted)")
	cmd.Flags().String("name", "", "Override the payload title")
	cmd.Flags().Bool("decode-transfers", false, "Run the per-chain transfer-extraction pass")
	cmd.Flags().BoolP("pretty", "p", false, "Render a styled field summary instead of raw JSON")
	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the parser request loop",
		Long: `Load configuration and the ephemeral key, then serve length-delimited
parse/health requests on a Unix domain socket until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if keyPath, _ := cmd.Flags().GetString("key"); keyPath != "" {
				cfg.Key.Path = keyPath
			}
			if socketPath, _ := cmd.Flags().GetString("socket"); socketPath != "" {
				cfg.Server.SocketPath = socketPath
			}

			logger := logging.Setup(cfg.Log.Format)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}

			key, err := loadOrGenerateKey(cfg.Key.Path)
			if err != nil {
				return err
			}
			logger.Info("ephemeral key loaded", "public_key", key.PublicKeyHex())

			if err := os.Remove(cfg.Server.SocketPath); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("removing stale socket: %w", err)
			}
			listener, err := net.Listen("unix", cfg.Server.SocketPath)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", cfg.Server.SocketPath, err)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-quit
				logger.Info("shutting down")
				cancel()
			}()

			registry, err := buildRegistry(cfg, logger)
			if err != nil {
				return err
			}

			logger.Info("parser listening", "socket", cfg.Server.SocketPath)
			srv := transport.NewServer(service.New(registry, key, logger), logger)
			return srv.Serve(ctx, listener)
		},
	}
	cmd.Flags().String("key", "", "Path to the ephemeral key PEM (overrides PARSER_KEY_PATH)")
	cmd.Flags().String("socket", "", "Unix socket path (overrides PARSER_SOCKET_PATH)")
	return cmd
}

func healthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check a running parser's health",
		RunE: func(cmd *cobra.Command, args []string) error {
			socketPath, _ := cmd.Flags().GetString("socket")
			if socketPath == "" {
				socketPath = config.Load().Server.SocketPath
			}
			conn, err := net.Dial("unix", socketPath)
			if err != nil {
				return fmt.Errorf("connecting to %s: %w", socketPath, err)
			}
			defer conn.Close()

			if err := transport.WriteRequest(conn, &transport.Request{Type: transport.TypeHealth}); err != nil {
				return err
			}
			resp, err := transport.ReadResponse(conn)
			if err != nil {
				return err
			}
			if resp.Health == nil {
				return fmt.Errorf("unexpected response")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s parser healthy (code %d)\n", successMark(), resp.Health.Code)
			return nil
		},
	}
	cmd.Flags().String("socket", "", "Unix socket path (defaults to PARSER_SOCKET_PATH)")
	return cmd
}

func keygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new ephemeral signing key",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			key, err := ephemeralkey.Generate()
			if err != nil {
				return err
			}
			if err := key.Save(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s (public key %s)\n", successMark(), out, key.PublicKeyHex())
			return nil
		},
	}
	cmd.Flags().String("out", "", "Destination PEM path")
	return cmd
}

func readPayload(args []string) (string, error) {
	if len(args) == 1 {
		return strings.TrimSpace(args[0]), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func loadOrGenerateKey(path string) (*ephemeralkey.Key, error) {
	if path == "" {
		return ephemeralkey.Generate()
	}
	return ephemeralkey.Load(path)
}

// buildRegistry assembles the converter registry, seeding the Ethereum
// token registry from the configured YAML file when one is set.
func buildRegistry(cfg *config.Config, logger *slog.Logger) (*chain.Registry, error) {
	if cfg.Tokens.SeedPath == "" {
		return service.DefaultRegistry(), nil
	}
	doc, err := os.ReadFile(cfg.Tokens.SeedPath)
	if err != nil {
		return nil, fmt.Errorf("reading token seed %s: %w", cfg.Tokens.SeedPath, err)
	}
	tokens := contracts.NewRegistry()
	if err := tokens.LoadChainMetadata(doc); err != nil {
		return nil, fmt.Errorf("loading token seed %s: %w", cfg.Tokens.SeedPath, err)
	}
	logger.Info("token seed loaded", "path", cfg.Tokens.SeedPath)
	return service.NewRegistry(tokens), nil
}
