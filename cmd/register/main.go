package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"contact-list-e2e/internal/apiclient"
	"contact-list-e2e/internal/config"
	"contact-list-e2e/internal/logging"
	"contact-list-e2e/internal/models"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(stderr)

	email := fs.String("email", "", "Email address of the new account")
	firstName := fs.String("first", "Test", "First name")
	lastName := fs.String("last", "User", "Last name")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	baseURL := fs.String("url", "", "Application URL (defaults to CONTACT_LIST_BASE_URL or the public deployment)")
	envFile := fs.String("env", ".env", "Path to an optional .env file")
	timeout := fs.Duration("timeout", 30*time.Second, "Request timeout")
	printToken := fs.Bool("token", false, "Print the session token of the new account")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		fmt.Fprintln(stdout, "Usage: register -email <email> [-password <password>] [-first <name>] [-last <name>] [-url <base_url>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: email")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if *baseURL == "" {
		*baseURL = cfg.BaseURL
	}

	logger := logging.NewWithWriter(cfg.Logger, zapcore.AddSync(stderr))
	defer logger.Sync()

	client := apiclient.New(*baseURL,
		apiclient.WithHTTPClient(&http.Client{Timeout: *timeout}),
		apiclient.WithLogger(logger.Named("api")),
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	resp, err := client.Register(ctx, models.Registration{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  password,
	})
	if err != nil {
		return fmt.Errorf("failed to reach application: %w", err)
	}
	if !resp.OK() {
		msg := resp.Message()
		if msg == "" {
			msg = http.StatusText(resp.Status)
		}
		return fmt.Errorf("registration rejected with status %d: %s", resp.Status, msg)
	}

	var auth models.AuthResponse
	if err := resp.Into(&auth); err != nil {
		return fmt.Errorf("unexpected registration response: %w", err)
	}

	fmt.Fprintf(stdout, "User %s registered successfully with ID %s\n", auth.User.Email, auth.User.ID)
	if *printToken {
		fmt.Fprintf(stdout, "Token: %s\n", auth.Token)
	}
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Pipes and tests
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
