package main

import (
	"fmt"
	"os"
	"os/user"

	"pilasm/repl"
)

func main() {
	name := "there"
	if currentUser, err := user.Current(); err == nil {
		name = currentUser.Username
	}

	fmt.Printf("PIL statement REPL. Hello, %s!\n", name)
	repl.Start(os.Stdin, os.Stdout)
}
