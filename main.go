package main

import (
	"context"
	"log"
	"os"

	"github.com/trinetrasoft/cloud-kitchen/app/cmd"
	"github.com/trinetrasoft/cloud-kitchen/app/configs"
	"github.com/trinetrasoft/cloud-kitchen/app/logger"
)

func main() {
	zl, err := logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_MODE"))
	if err != nil {
		log.Fatalf("failed to initialise logger: %v", err)
	}

	env, err := configs.LoadEnv()
	if err != nil {
		zl.Sugar().Fatalf("failed to load configuration: %v", err)
	}

	// .env may have changed APP_ENV or LOG_MODE
	if zl, err = logger.Init(env.AppEnv, env.LogMode); err != nil {
		log.Fatalf("failed to initialise logger: %v", err)
	}
	defer zl.Sync()

	if err := cmd.RunCli(context.Background(), env, os.Args); err != nil {
		zl.Sugar().Fatalf("%v", err)
	}
}
