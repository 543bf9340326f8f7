// Package main provides a standalone CLI tool for sending a test
// confirmation mail through the configured SMTP transport, for verifying
// credentials and connectivity before deploying the forms server.
//
// Usage:
//
//	mail-test --host smtp.gmail.com --port 465 --user me@example.com --password app-pass --to recipient@example.com --name "Test User"
//	mail-test --host localhost --port 1025 --tls=false --to recipient@example.com
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/nortiq/forms-backend/internal/mailer"
)

func main() {
	var (
		host     = flag.String("host", "smtp.gmail.com", "SMTP server host")
		port     = flag.Int("port", 465, "SMTP server port")
		user     = flag.String("user", "", "SMTP AUTH username")
		password = flag.String("password", "", "SMTP AUTH password")
		from     = flag.String("from", "", "Sender address (defaults to --user)")
		fromName = flag.String("from-name", "", "Sender display name")
		to       = flag.String("to", "", "Recipient address")
		name     = flag.String("name", "", "Recipient display name")
		useTLS   = flag.Bool("tls", true, "Connect with implicit TLS")
		startTLS = flag.Bool("starttls", false, "Connect plaintext and upgrade with STARTTLS (port 587)")
		insecure = flag.Bool("insecure", false, "Skip TLS certificate verification")
		timeout  = flag.Duration("timeout", 10*time.Second, "Total attempt timeout")
	)
	flag.Parse()

	if *to == "" {
		fmt.Fprintln(os.Stderr, "error: --to is required")
		flag.Usage()
		os.Exit(2)
	}

	sender := *from
	if sender == "" {
		sender = *user
	}
	if sender == "" {
		fmt.Fprintln(os.Stderr, "error: --from or --user is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := mailer.Config{
		Host:               *host,
		Port:               *port,
		Username:           *user,
		Password:           *password,
		From:               sender,
		FromName:           *fromName,
		TLS:                *useTLS,
		StartTLS:           *startTLS,
		InsecureSkipVerify: *insecure,
		Timeout:            *timeout,
	}

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	s := mailer.NewSMTPSender(cfg, log)

	fmt.Printf("Sending test confirmation\n")
	fmt.Printf("  Server: %s:%d (tls=%v)\n", *host, *port, *useTLS)
	fmt.Printf("  From:   %s\n", sender)
	fmt.Printf("  To:     %s\n", *to)
	fmt.Println()

	start := time.Now()
	err := s.Send(context.Background(), *to, *name)
	if err != nil {
		fmt.Printf("FAIL (%s): %v\n", time.Since(start), err)
		os.Exit(1)
	}

	fmt.Printf("OK (%s)\n", time.Since(start))
}
