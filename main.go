package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/healthsnap/summarizer/config"
	"github.com/healthsnap/summarizer/controller"
	"github.com/healthsnap/summarizer/logger"
	"github.com/healthsnap/summarizer/models"
	"github.com/healthsnap/summarizer/services"
)

const version = "1.0.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "healthsnap",
		Short: "Patient-friendly summaries and Q&A for clinical notes",
		Long: `HealthSnap turns clinical notes into plain-language summaries and answers
	patient questions about them, falling back to a web search when the model's
	answer is not good enough to show.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(summarizeCmd())
	rootCmd.AddCommand(askCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds the wired services shared by every subcommand.
type app struct {
	cfg         *config.Config
	log         logger.Logger
	generator   services.TextGenerator
	summarizer  services.SummarizationService
	qa          services.QAService
	transcriber services.Transcriber
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if err := services.SetPDFLicense(cfg.UnidocLicenseKey); err != nil {
		log.Warn("PDF extraction unavailable", map[string]interface{}{"error": err})
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	generator, err := services.NewTextGenerator(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Info("generation provider ready", map[string]interface{}{
		"provider": generator.Name(),
		"model":    cfg.GenerationModel,
	})

	serp := services.NewSerpAPIClient(cfg.SerpAPIKey,
		services.WithSerpAPIBaseURL(cfg.SerpAPIURL),
		services.WithSerpAPIHTTPClient(httpClient),
	)
	search := services.NewFallbackSearch(serp, log)

	return &app{
		cfg:         cfg,
		log:         log,
		generator:   generator,
		summarizer:  services.NewSummarizationService(generator, log),
		qa:          services.NewQAService(generator, services.NewPhraseGate(), search, log),
		transcriber: services.NewDeepgramTranscriber(httpClient, cfg.DeepgramAPIKey, cfg.DeepgramURL),
	}, nil
}

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.log.Sync()

			if !a.cfg.IsDev() {
				gin.SetMode(gin.ReleaseMode)
			}
			if port == "" {
				port = a.cfg.Port
			}

			router := controller.NewRouter(controller.RouterOptions{
				Notes:       controller.NewNoteController(a.summarizer, a.qa, a.log, a.cfg.MaxUploadBytes),
				Voice:       controller.NewVoiceController(a.transcriber, a.log, a.cfg.MaxUploadBytes),
				Logger:      a.log,
				CORSOrigins: a.cfg.CORSOrigins,
				Provider:    a.generator.Name(),
				Version:     version,
			})

			srv := &http.Server{
				Addr:    ":" + port,
				Handler: router,
			}

			errCh := make(chan error, 1)
			go func() {
				a.log.Info("server starting", map[string]interface{}{
					"addr":     "http://localhost:" + port,
					"provider": a.generator.Name(),
				})
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			a.log.Info("shutting down", nil)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (defaults to PORT)")
	return cmd
}

func summarizeCmd() *cobra.Command {
	var (
		filePath string
		lang     string
	)

	cmd := &cobra.Command{
		Use:   "summarize [note]",
		Short: "Summarize a clinical note given inline or with --file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := noteInput(filePath, args)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.log.Sync()

			resp := a.summarizer.SummarizeWithFollowUps(cmd.Context(), note, models.Language(lang))
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, resp.Summary)
			if len(resp.FollowUps) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Follow-ups:")
				for _, f := range resp.FollowUps {
					fmt.Fprintf(out, "  - %s\n", f.Text)
					if f.CalendarLink != "" {
						fmt.Fprintf(out, "    %s\n", f.CalendarLink)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "read the note from a .txt, .md, .pdf or .docx file")
	cmd.Flags().StringVar(&lang, "lang", string(models.English), "summary language (English, Hindi, Spanish, French, ...)")
	return cmd
}

func askCmd() *cobra.Command {
	var (
		note     string
		filePath string
	)

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer a question about a clinical note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if filePath != "" {
				text, err := services.ExtractTextFromFile(filePath)
				if err != nil {
					return fmt.Errorf("failed to read note: %w", err)
				}
				note = text
			}
			if strings.TrimSpace(note) == "" {
				return errors.New("no note provided: use --note or --file")
			}
			question := strings.TrimSpace(args[0])
			if question == "" {
				return errors.New("no question provided")
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.log.Sync()

			fmt.Fprintln(cmd.OutOrStdout(), a.qa.Answer(cmd.Context(), note, question))
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "clinical note text")
	cmd.Flags().StringVar(&filePath, "file", "", "read the note from a file instead of --note")
	return cmd
}

// noteInput returns the note from --file when set, otherwise the positional
// argument.
func noteInput(filePath string, args []string) (string, error) {
	if filePath != "" {
		text, err := services.ExtractTextFromFile(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to read note: %w", err)
		}
		if text == "" {
			return "", errors.New("no text found in file")
		}
		return text, nil
	}
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", errors.New("no text provided")
	}
	return args[0], nil
}
