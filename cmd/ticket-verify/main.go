// Command ticket-verify decodes the code carried by a storefront ticket QR image.
//
//	ticket-verify <code>
//	echo <code> | ticket-verify
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"ms-storefront/internal/config"
	"ms-storefront/internal/purchase/qr"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load() // Loads .env file if present

	if err := run(os.Args[1:], os.Stdin, os.Stdout, config.Load().Storefront.QRSecret); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out io.Writer, secret string) error {
	code, err := readCode(args, in)
	if err != nil {
		return err
	}

	c, err := qr.NewQRGenerator(secret).Decode(code)
	if err != nil {
		return err
	}

	color.New(color.FgGreen, color.Bold).Fprintf(out, "✓ Valid ticket %s\n", c.OrderID)
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

func readCode(args []string, in io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(args[0]), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read code: %w", err)
	}
	if line = strings.TrimSpace(line); line == "" {
		return "", fmt.Errorf("usage: ticket-verify <code>")
	}
	return line, nil
}
