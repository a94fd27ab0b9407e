package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dkarlov/yt-summary/config"
	"github.com/dkarlov/yt-summary/logger"
	"github.com/dkarlov/yt-summary/summarize"
	"github.com/dkarlov/yt-summary/transcript"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const usage = `Usage: yt-summary <command> [options] <url>

Commands:
  summarize    Fetch a video transcript and summarize it
  transcript   Fetch a video transcript without summarizing

Run 'yt-summary <command> -h' for command options.
`

func main() {
	// .env is optional; environment variables win when both are present.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := config.ValidateConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogDir, cfg.Debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "summarize":
		err = runSummarize(cfg, os.Args[2:])
	case "transcript":
		err = runTranscript(cfg, os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		logrus.WithError(err).Error("Command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSummarize(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("summarize", flag.ExitOnError)
	var (
		provider  = fs.String("provider", "", "LLM provider: ollama|openai|anthropic|gemini (default from SUMMARY_PROVIDER)")
		model     = fs.String("model", "", "Model name override (backend-specific)")
		maxLength = fs.Int("max-length", 0, "Maximum word count for the summary")
		languages = fs.String("languages", "", "Comma-separated language codes to try, e.g. en,fr,es")
		output    = fs.String("o", "", "File path to save the summary")
	)
	fs.Parse(args)

	url := fs.Arg(0)
	if url == "" {
		fs.Usage()
		return fmt.Errorf("missing video URL or ID")
	}

	text, err := fetchTranscriptText(cfg, url, *languages)
	if err != nil {
		return err
	}

	providerName := *provider
	if providerName == "" {
		providerName = cfg.Provider
	}
	fmt.Printf("Summarizing transcript using %s provider...\n", providerName)

	summary, err := summarize.SummarizeText(context.Background(), text, *provider, *maxLength, summarize.Options{
		Model: *model,
	})
	if err != nil {
		return err
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(summary), 0644); err != nil {
			return fmt.Errorf("saving summary: %w", err)
		}
		fmt.Printf("Summary saved to %s\n", *output)
	}

	fmt.Println(summary)
	return nil
}

func runTranscript(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("transcript", flag.ExitOnError)
	var (
		languages = fs.String("languages", "", "Comma-separated language codes to try, e.g. en,fr,es")
		output    = fs.String("o", "", "File path to save the transcript")
	)
	fs.Parse(args)

	url := fs.Arg(0)
	if url == "" {
		fs.Usage()
		return fmt.Errorf("missing video URL or ID")
	}

	text, err := fetchTranscriptText(cfg, url, *languages)
	if err != nil {
		return err
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(text), 0644); err != nil {
			return fmt.Errorf("saving transcript: %w", err)
		}
		fmt.Printf("Transcript saved to %s\n", *output)
	}

	fmt.Println(text)
	return nil
}

func fetchTranscriptText(cfg *config.Config, url, languagesFlag string) (string, error) {
	langs := cfg.Languages
	if languagesFlag != "" {
		langs = nil
		for _, part := range strings.Split(languagesFlag, ",") {
			if part = strings.TrimSpace(part); part != "" {
				langs = append(langs, part)
			}
		}
	}

	fmt.Printf("Fetching transcript for: %s\n", url)

	svc := transcript.NewService(transcript.NewInnertubeClient(cfg.HTTPTimeout))
	text, err := svc.FetchText(context.Background(), url, langs)
	if err != nil {
		return "", err
	}

	fmt.Printf("Transcript fetched successfully (%d characters)\n", len(text))
	return text, nil
}
