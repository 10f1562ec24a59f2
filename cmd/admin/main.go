package main

import (
	"flag"
	"fmt"
	"holdem-server/internal/config"
	"holdem-server/internal/jwt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/synacor/argon2id"
	"golang.org/x/term"
)

var command = flag.String("c", "hash", "specifies the command (hash, token)")
var playerID = flag.Int64("id", 0, "the player id for the token command")

func main() {
	flag.Parse()

	switch *command {
	case "hash":
		password := getPassword()
		if password == "" {
			os.Exit(1)
		}

		hash, err := argon2id.DefaultHashPassword(password)
		if err != nil {
			logrus.WithError(err).Fatal("could not hash password")
		}

		fmt.Println(hash)
	case "token":
		if *playerID <= 0 {
			logrus.Fatal("a positive -id is required")
		}

		cfg := config.Instance()
		if err := jwt.LoadKeys(cfg.JWT.PublicKey, cfg.JWT.PrivateKey); err != nil {
			logrus.WithError(err).Fatal("could not load jwt keys")
		}

		token, err := jwt.Sign(*playerID)
		if err != nil {
			logrus.WithError(err).Fatal("could not sign token")
		}

		fmt.Println(token)
	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func getPassword() string {
	for {
		_, _ = fmt.Fprint(os.Stderr, "Password: ")
		pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			logrus.WithError(err).Fatal("could not read password")
		}
		_, _ = fmt.Fprintln(os.Stderr, "")

		password := strings.TrimRight(string(pwBytes), "\r\n")

		if password == "" {
			return ""
		}

		if len(password) < 6 {
			_, _ = fmt.Fprintf(os.Stderr, "password must be 6 or more characters\n")
			continue
		}

		return password
	}
}
