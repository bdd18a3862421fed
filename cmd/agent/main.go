package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"research-agent/internal/di"
	"research-agent/internal/infrastructure/env"
	"research-agent/internal/usecase/researcher"
)

func main() {
	envService := env.NewEnvService()

	instruction := strings.Join(os.Args[1:], " ")
	if instruction == "" {
		fmt.Println("Enter a research instruction:")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Fatalf("reading input: %v", err)
		}
		instruction = strings.TrimSpace(line)
	}
	if instruction == "" {
		log.Fatal("no instruction given")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, envService.GetDuration("RUN_TIMEOUT", 10*time.Minute))
	defer cancelTimeout()

	container, err := di.NewContainer(di.Config{
		OpenRouterAPIKey: envService.MustGet("OPENROUTER_API_KEY"),
		OpenRouterModel:  envService.MustGet("OPENROUTER_MODEL_NAME"),
		LogLevel:         envService.GetWithDefault("LOG_LEVEL", "info"),
		Headless:         envService.GetBool("BROWSER_HEADLESS", true),
		MaxSteps:         envService.GetInt("MAX_STEPS", researcher.DefaultMaxSteps),
		NavTimeout:       envService.GetDuration("NAV_TIMEOUT", 15*time.Second),
	})
	if err != nil {
		log.Fatalf("initialization failed: %v", err)
	}
	defer container.Close()

	container.Logger.Info("research started", "instruction", instruction)

	result, err := container.Researcher.Run(ctx, instruction)
	if err != nil {
		container.Logger.Error("research failed", "error", err)
		if errors.Is(err, researcher.ErrNoFinalAnswer) {
			fmt.Fprintln(os.Stderr, "The agent ran out of steps before reaching an answer.")
		}
		// os.Exit skips deferred calls, so release resources here.
		container.Close()
		os.Exit(1)
	}

	container.Logger.Info("research completed", "steps", result.Steps)
	fmt.Println("\nFINAL ANSWER:")
	fmt.Println(result.FinalAnswer)
}
