package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"menulens/internal/config"
	"menulens/internal/handler"
	"menulens/internal/ocr"
	"menulens/internal/router"
	"menulens/internal/service"
	"menulens/internal/translate"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("menulens %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("menulens - menu photo OCR extraction service")
			fmt.Println()
			fmt.Println("Usage: menulens [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Configuration is read from MENULENS_* environment")
			fmt.Println("variables, e.g. MENULENS_SERVER_PORT=:8080.")
			return
		}
	}

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	engine := ocr.NewTesseractEngine(cfg.OCR.Language)
	selector := ocr.NewSelector(engine)

	translateClient := translate.NewClient(&cfg.Translate)
	extractionSvc := service.NewExtractionService(selector, translateClient, translateClient)

	extractionH := handler.NewExtractionHandler(extractionSvc, cfg.Upload.MaxFileSizeMB*1024*1024)
	healthH := handler.NewHealthHandler()

	r := router.Setup(extractionH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("menulens listening on %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
