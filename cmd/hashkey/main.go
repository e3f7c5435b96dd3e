// Command hashkey produces an Argon2id hash for the history API key, so the
// server environment never has to hold the plaintext key.
//
// Usage:
//
//	go run ./cmd/hashkey            # prompt for a key (masked)
//	go run ./cmd/hashkey -generate  # create a random key and hash it
//
// Paste the printed API_KEY line into .env and hand the plaintext key to
// clients.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/zapponejosh/hijri-calendar-api/internal/apikey"
)

func main() {
	generate := flag.Bool("generate", false, "Generate a random key instead of prompting")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: hashkey [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Hashes an API key with Argon2id for the API_KEY setting.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	var key string
	if *generate {
		var err error
		if key, err = apikey.Generate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Key:     %s\n", key)
	} else {
		var err error
		if key, err = promptKey(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	hash, err := apikey.Hash(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Hash:    %s\n\n", hash)
	// Single quotes keep godotenv from expanding the $ separators.
	fmt.Printf("API_KEY='%s'\n", hash)
}

// promptKey reads the key twice. Input is hidden on a terminal and read as a
// plain line when stdin is piped.
func promptKey() (string, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read key: %w", err)
		}
		return checkKey(strings.TrimSpace(line), strings.TrimSpace(line))
	}

	fmt.Fprint(os.Stderr, "Enter key:   ")
	key, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read key: %w", err)
	}

	fmt.Fprint(os.Stderr, "Confirm key: ")
	confirm, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read confirmation: %w", err)
	}

	return checkKey(string(key), string(confirm))
}

func checkKey(key, confirm string) (string, error) {
	if key == "" {
		return "", errors.New("key cannot be empty")
	}
	if apikey.IsHash(key) {
		return "", errors.New("key is already an argon2id hash")
	}
	if key != confirm {
		return "", errors.New("keys do not match")
	}
	return key, nil
}
