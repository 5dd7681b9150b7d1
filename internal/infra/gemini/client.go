package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"vocalcart/internal/domain"
	"vocalcart/internal/infra"
	"vocalcart/internal/infra/llmintent"
)

const (
	DefaultBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	DefaultTextModel  = "gemini-2.5-flash"
	DefaultImageModel = "gemini-2.5-flash-image"
	DefaultTTSModel   = "gemini-2.5-flash-preview-tts"
	DefaultVoice      = "Kore"
)

type Models struct {
	Text  string
	Image string
	TTS   string
	Voice string
}

// Client talks to the Gemini generateContent endpoint for interpretation,
// product images and speech.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	models     Models
	retry      infra.RetryConfig
}

func NewClient(apiKey string, models Models) *Client {
	return NewClientWithURL(apiKey, models, DefaultBaseURL)
}

func NewClientWithURL(apiKey string, models Models, baseURL string) *Client {
	if models.Text == "" {
		models.Text = DefaultTextModel
	}
	if models.Image == "" {
		models.Image = DefaultImageModel
	}
	if models.TTS == "" {
		models.TTS = DefaultTTSModel
	}
	if models.Voice == "" {
		models.Voice = DefaultVoice
	}
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		models:     models,
		retry:      infra.DefaultRetryConfig(),
	}
}

type content struct {
	Parts []part `json:"parts"`
	Role  string `json:"role,omitempty"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type request struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	Temperature        *float64       `json:"temperature,omitempty"`
	ResponseMIMEType   string         `json:"responseMimeType,omitempty"`
	ResponseSchema     map[string]any `json:"responseSchema,omitempty"`
	ResponseModalities []string       `json:"responseModalities,omitempty"`
	SpeechConfig       *speechConfig  `json:"speechConfig,omitempty"`
}

type speechConfig struct {
	VoiceConfig struct {
		PrebuiltVoiceConfig struct {
			VoiceName string `json:"voiceName"`
		} `json:"prebuiltVoiceConfig"`
	} `json:"voiceConfig"`
}

type response struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

func (c *Client) Interpret(ctx context.Context, utterance string, items []domain.ShoppingItem, lang domain.Language) ([]domain.Intent, error) {
	temperature := 0.2
	req := request{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: llmintent.Prompt(utterance, items, lang)}},
		}},
		GenerationConfig: generationConfig{
			Temperature:      &temperature,
			ResponseMIMEType: "application/json",
			ResponseSchema:   llmintent.ResponseSchema(),
		},
	}

	parts, err := c.generate(ctx, c.models.Text, req)
	if err != nil {
		return nil, err
	}

	var text strings.Builder
	for _, p := range parts {
		text.WriteString(p.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return nil, fmt.Errorf("empty response from gemini")
	}

	return llmintent.Parse(text.String())
}

func (c *Client) Suggest(ctx context.Context, items []domain.ShoppingItem, lang domain.Language) ([]string, error) {
	intents, err := c.Interpret(ctx, llmintent.SuggestCommand, items, lang)
	if err != nil {
		return nil, fmt.Errorf("requesting suggestions: %w", err)
	}
	return llmintent.Suggestions(intents), nil
}

func (c *Client) GenerateImage(ctx context.Context, name string) (*domain.Image, error) {
	prompt := fmt.Sprintf("A professional, high-quality product photograph of %s, centered on a clean, plain white background. The image should be clear and well-lit.", name)
	req := request{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"IMAGE"},
		},
	}

	parts, err := c.generate(ctx, c.models.Image, req)
	if err != nil {
		return nil, fmt.Errorf("generating image: %w", err)
	}

	for _, p := range parts {
		if p.InlineData == nil || p.InlineData.Data == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
		if err != nil {
			return nil, fmt.Errorf("decoding image: %w", err)
		}
		mime := p.InlineData.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		return &domain.Image{MIMEType: mime, Data: data}, nil
	}
	return nil, nil
}

// SynthesizeSpeech returns base64 PCM16 mono audio at 24 kHz, or "" when the
// model produced none.
func (c *Client) SynthesizeSpeech(ctx context.Context, text string) (string, error) {
	var speech speechConfig
	speech.VoiceConfig.PrebuiltVoiceConfig.VoiceName = c.models.Voice

	req := request{
		Contents: []content{{Parts: []part{{Text: text}}}},
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig:       &speech,
		},
	}

	parts, err := c.generate(ctx, c.models.TTS, req)
	if err != nil {
		return "", fmt.Errorf("synthesizing speech: %w", err)
	}

	for _, p := range parts {
		if p.InlineData != nil && p.InlineData.Data != "" {
			return p.InlineData.Data, nil
		}
	}
	return "", nil
}

func (c *Client) generate(ctx context.Context, model string, reqBody request) ([]part, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	var result response
	retryErr := infra.WithRetry(ctx, c.retry, func() error {
		url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
		if err != nil {
			return infra.Permanent(fmt.Errorf("creating request: %w", err))
		}

		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			if infra.IsRetryableHTTPStatus(resp.StatusCode) {
				return fmt.Errorf("gemini API error %d: %s (retryable)", resp.StatusCode, string(respBody))
			}
			return infra.Permanent(fmt.Errorf("gemini API error %d: %s", resp.StatusCode, string(respBody)))
		}

		if err = json.Unmarshal(respBody, &result); err != nil {
			return infra.Permanent(fmt.Errorf("decoding response: %w", err))
		}

		return nil
	})

	if retryErr != nil {
		return nil, retryErr
	}

	if result.Error != nil {
		return nil, fmt.Errorf("gemini error: %s", result.Error.Message)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	return result.Candidates[0].Content.Parts, nil
}
