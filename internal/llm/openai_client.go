// ABOUTME: OpenAI client for note embeddings and answer generation
// ABOUTME: Lazily initialized once per process; embedding uses text-embedding-3-small
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/harper/recall/internal/config"
	"github.com/harper/recall/internal/util"
)

// ErrModelUnavailable indicates the OpenAI client could not be
// initialized or the model could not be reached. Embedding callers see
// this directly; answer generation never propagates it.
var ErrModelUnavailable = errors.New("model unavailable")

// Client wraps the OpenAI API for embeddings and chat completions.
// The underlying API client is created once on first use, guarded so
// concurrent first calls do not double-initialize; an initialization
// failure is cached and returned by every subsequent call.
type Client struct {
	apiKey         string
	chatModel      string
	embeddingModel openai.EmbeddingModel
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration

	once    sync.Once
	client  *openai.Client
	initErr error
}

// NewClient creates a Client from configuration. No network calls are
// made until the first embedding or generation request.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:         cfg.OpenAIKey,
		chatModel:      cfg.ChatModel,
		embeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		timeout:        cfg.Timeout,
		maxRetries:     cfg.MaxRetries,
		retryDelay:     cfg.RetryDelay,
	}
}

func (c *Client) init() error {
	c.once.Do(func() {
		if c.apiKey == "" {
			c.initErr = fmt.Errorf("%w: OPENAI_API_KEY not set", ErrModelUnavailable)
			return
		}
		c.client = openai.NewClient(c.apiKey)
	})
	return c.initErr
}

// GenerateEmbedding generates an embedding vector for text, retrying
// transient API failures with exponential backoff. A client that could
// not be initialized fails every call with ErrModelUnavailable; callers
// must not substitute zero vectors.
func (c *Client) GenerateEmbedding(text string) ([]float64, error) {
	if err := c.init(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.Backoff(c.retryDelay, attempt))
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
			Input: []string{text},
			Model: c.embeddingModel,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Data) == 0 {
			lastErr = fmt.Errorf("attempt %d: no embeddings returned", attempt+1)
			continue
		}

		embedding32 := resp.Data[0].Embedding
		embedding64 := make([]float64, len(embedding32))
		for i, v := range embedding32 {
			embedding64[i] = float64(v)
		}
		return embedding64, nil
	}

	return nil, fmt.Errorf("%w: embedding failed after %d attempts: %v",
		ErrModelUnavailable, c.maxRetries+1, lastErr)
}

// GenerateAnswer asks the chat model to answer a question from note
// texts. The second return value reports whether a usable answer was
// produced; every failure mode (no API key, API error, empty or
// malformed response) returns ok=false so the caller can fall back to
// extractive synthesis instead of handling an error.
func (c *Client) GenerateAnswer(question string, notes []string) (string, bool) {
	if err := c.init(); err != nil {
		return "", false
	}
	if len(notes) == 0 {
		return "", false
	}

	prompt := BuildAnswerPrompt(question, notes)

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   200,
		Temperature: 0,
	})
	if err != nil {
		return "", false
	}

	text, ok := ExtractAnswer(resp)
	return text, ok
}

// BuildAnswerPrompt formats the single-turn instruction sent to the
// chat model: the question plus the supplied note texts as a bulleted
// context block.
func BuildAnswerPrompt(question string, notes []string) string {
	return fmt.Sprintf(`You are a helpful assistant.
Answer the question based ONLY on the provided notes.

NOTES:
- %s

QUESTION: %s`, strings.Join(notes, "\n- "), question)
}

// ExtractAnswer validates the completion response shape once at the
// boundary: the first choice's message content is the answer. Missing
// choices or blank content report ok=false.
func ExtractAnswer(resp openai.ChatCompletionResponse) (string, bool) {
	if len(resp.Choices) == 0 {
		return "", false
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", false
	}
	return content, true
}
