package main

import (
	"context"
	"flag"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"docchat/internal/chunker"
	"docchat/internal/config"
	"docchat/internal/domain"
	embollama "docchat/internal/embedding/ollama"
	embopenai "docchat/internal/embedding/openai"
	"docchat/internal/history"
	llmollama "docchat/internal/llm/ollama"
	llmopenai "docchat/internal/llm/openai"
	"docchat/internal/loader"
	"docchat/internal/logging"
	"docchat/internal/prompt"
	"docchat/internal/service"
	"docchat/internal/tui"
	"docchat/internal/vectorstore/memory"
	"docchat/internal/vectorstore/qdrant"
)

func main() {
	_ = godotenv.Load()
	log := logging.New()
	defer log.Sync()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docchat/config.yaml if not provided)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Assemble components
	var emb domain.Embedder
	var completer domain.Completer
	switch cfg.Provider.Tier {
	case config.TierLocal:
		o := cfg.Provider.Ollama
		timeout := time.Duration(o.TimeoutSecs) * time.Second
		emb = embollama.NewClient(embollama.Config{BaseURL: o.BaseURL, Model: o.EmbedModel, Timeout: timeout})
		completer = llmollama.NewClient(llmollama.Config{BaseURL: o.BaseURL, Model: o.ChatModel, Timeout: timeout})
	case config.TierCloud:
		o := cfg.Provider.OpenAI
		client, err := embopenai.NewClient(embopenai.Config{BaseURL: o.BaseURL, APIKeyEnv: o.APIKeyEnv, Model: o.EmbedModel})
		if err != nil {
			log.Fatalf("cloud embedder init failed: %v", err)
		}
		emb = client
		chat, err := llmopenai.NewClient(llmopenai.Config{BaseURL: o.BaseURL, APIKeyEnv: o.APIKeyEnv, Model: o.ChatModel})
		if err != nil {
			log.Fatalf("cloud chat model init failed: %v", err)
		}
		completer = chat
	default:
		log.Fatalf("unknown provider tier: %s", cfg.Provider.Tier)
	}

	var st domain.VectorStore
	switch cfg.Index.Type {
	case "memory":
		st = memory.NewStore()
	case "qdrant", "":
		q := cfg.Index.Qdrant
		st = qdrant.NewStore(qdrant.Config{URL: q.URL, APIKey: q.APIKey, Collection: q.Collection})
	default:
		log.Fatalf("unknown vector store: %s", cfg.Index.Type)
	}

	if cfg.Upload {
		ing := service.NewIngestor(loader.NewPDFLoader(), chunker.NewWindowChunker(cfg.Chunker.Size, cfg.Chunker.Overlap), emb, st, log, cfg.Ingest.Concurrency)
		n, err := ing.Ingest(context.Background(), cfg.Ingest.Document)
		if err != nil {
			log.Fatalf("ingest failed: %v", err)
		}
		log.Infow("ingest complete", "document", cfg.Ingest.Document, "chunks", n)
	}

	hist := history.NewBuffer(history.DefaultLimit)
	svc := service.NewChatService(emb, st, completer, prompt.NewComposer(cfg.Prompt.TokenBudget), log, cfg.Provider.TopK)

	m := tui.New(svc, hist)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}
