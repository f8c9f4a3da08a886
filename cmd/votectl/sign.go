package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vncsmyrnk/anonballot/internal/signature"
)

func init() {
	signCmd.Flags().String("method", "POST", "HTTP method")
	signCmd.Flags().String("path", "", "request path, e.g. /api/vote/cast")
	signCmd.Flags().String("body", "", "request body")
	signCmd.Flags().String("body-file", "", "read the request body from a file, - for stdin")
	signCmd.MarkFlagsMutuallyExclusive("body", "body-file")
	_ = signCmd.MarkFlagRequired("path")
	rootCmd.AddCommand(signCmd)
}

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Print signature headers for a request",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Signature.Secret == "" {
			return errors.New("SIGNATURE_SECRET is not set")
		}

		method, _ := cmd.Flags().GetString("method")
		path, _ := cmd.Flags().GetString("path")
		body, err := readBody(cmd)
		if err != nil {
			return err
		}

		headers := signature.NewSigner([]byte(cfg.Signature.Secret)).Sign(method, path, body)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %s\n", signature.HeaderSignature, headers.Signature)
		fmt.Fprintf(out, "%s: %s\n", signature.HeaderTimestamp, headers.Timestamp)
		fmt.Fprintf(out, "%s: %s\n", signature.HeaderNonce, headers.Nonce)
		return nil
	},
}

func readBody(cmd *cobra.Command) ([]byte, error) {
	file, _ := cmd.Flags().GetString("body-file")
	switch file {
	case "":
		body, _ := cmd.Flags().GetString("body")
		return []byte(body), nil
	case "-":
		return io.ReadAll(cmd.InOrStdin())
	default:
		return os.ReadFile(file)
	}
}
