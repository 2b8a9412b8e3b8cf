package main

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/joho/godotenv"

	mylog "recipe-finder/internal/log"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using process environment")
	}

	ctx := context.Background()
	app := newApp()
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
