package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	episodenotespost "github.com/a-h/episodenotes/handlers/episodenotes/post"
	healthget "github.com/a-h/episodenotes/handlers/health/get"
	"github.com/a-h/episodenotes/notes"
	"github.com/rs/cors"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

type ServeCommand struct {
	OpenAIAPIKey  string  `help:"The API key for the OpenAI API." env:"OPENAI_API_KEY" default:""`
	OpenAIBaseURL string  `help:"The base URL of an OpenAI compatible API, if not using OpenAI." env:"OPENAI_BASE_URL" default:""`
	ChatModel     string  `help:"The model to generate notes with." env:"CHAT_MODEL" default:"gpt-4o-mini"`
	Temperature   float64 `help:"The sampling temperature." env:"TEMPERATURE" default:"0.3"`
	SystemPrompt  string  `help:"The file containing the system prompt to use." env:"SYSTEM_PROMPT" default:""`
	UserPrompt    string  `help:"The file containing the user prompt template to use." env:"USER_PROMPT" default:""`
	ListenAddr    string  `help:"The address to listen on." env:"LISTEN_ADDR" default:"localhost:8000"`
	TLSCertFile   string  `help:"The TLS certificate file." env:"TLS_CERT_FILE" default:""`
	TLSKeyFile    string  `help:"The TLS key file." env:"TLS_KEY_FILE" default:""`
	LogLevel      string  `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func readFileOrDefault(filename, defaultContent string) (string, error) {
	if filename == "" {
		return defaultContent, nil
	}
	contents, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return string(contents), nil
}

func (c ServeCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)
	systemPrompt, err := readFileOrDefault(c.SystemPrompt, notes.DefaultSystemPrompt)
	if err != nil {
		return fmt.Errorf("failed to read system prompt: %w", err)
	}
	userPrompt, err := readFileOrDefault(c.UserPrompt, notes.DefaultUserPrompt)
	if err != nil {
		return fmt.Errorf("failed to read user prompt: %w", err)
	}
	pf, err := notes.NewPromptFunc(userPrompt)
	if err != nil {
		return err
	}

	llm, err := c.newLLM(log)
	if err != nil {
		return fmt.Errorf("failed to create LLM: %w", err)
	}
	generator := notes.NewGenerator(llm, systemPrompt, pf, c.Temperature)

	s := &http.Server{
		Addr:    c.ListenAddr,
		Handler: newHandler(log, generator),
	}
	if c.TLSCertFile != "" && c.TLSKeyFile != "" {
		log.Info("Enabling TLS mode")
		var cert tls.Certificate
		cert, err = tls.LoadX509KeyPair(c.TLSCertFile, c.TLSKeyFile)
		if err != nil {
			return fmt.Errorf("failed to load cert: %w", err)
		}
		s.TLSConfig = &tls.Config{
			MinVersion:   tls.VersionTLS12,
			Certificates: []tls.Certificate{cert},
		}
	}

	errs := make(chan error, 1)
	go func() {
		log.Info("Listening", slog.String("addr", c.ListenAddr))
		if s.TLSConfig != nil {
			errs <- s.ListenAndServeTLS("", "")
			return
		}
		errs <- s.ListenAndServe()
	}()

	select {
	case err = <-errs:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err = s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	if err = <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newHandler(log *slog.Logger, generator episodenotespost.Generator) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /health", healthget.New())
	mux.Handle("POST /ai/episode_notes", episodenotespost.New(log, generator))
	return cors.AllowAll().Handler(mux)
}

// newLLM returns a nil model when no API key is set, so that the server
// still starts and serves health checks.
func (c ServeCommand) newLLM(log *slog.Logger) (llm llms.Model, err error) {
	if c.OpenAIAPIKey == "" {
		log.Warn("OPENAI_API_KEY is missing, episode notes requests will fail", slog.String("envVar", "OPENAI_API_KEY"))
		return nil, nil
	}
	opts := []openai.Option{
		openai.WithToken(c.OpenAIAPIKey),
		openai.WithModel(c.ChatModel),
		openai.WithHTTPClient(&http.Client{}),
	}
	if c.OpenAIBaseURL != "" {
		opts = append(opts, openai.WithBaseURL(c.OpenAIBaseURL))
	}
	log.Info("creating LLM client", slog.String("model", c.ChatModel))
	oc, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}
	return oc, nil
}
