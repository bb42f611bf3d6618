package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/petokpredict/server/internal/domain/models"
)

const (
	apiURL       = "https://api.groq.com/openai/v1/chat/completions"
	DefaultModel = "llama-3.1-8b-instant"
	temperature  = 0.2
	maxTokens    = 1200
)

const systemPrompt = "You are an expert poultry production consultant. Output ONLY strict JSON " +
	"(no prose, no markdown). Use realistic, conservative values. Respect provided inputs " +
	"as hard anchors and keep variations narrow and monotonic."

// Client defines the interface for the AI farm advisor.
type Client interface {
	GenerateAdvice(ctx context.Context, req models.AdviceRequest) (*models.AdvicePayload, error)
}

type groqClient struct {
	httpClient *resty.Client
	model      string
}

// NewClient creates a configured Groq client. model falls back to
// DefaultModel when empty.
func NewClient(apiKey, model string) Client {
	if model == "" {
		model = DefaultModel
	}
	client := resty.New().
		SetHeader("Authorization", "Bearer "+apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	return &groqClient{httpClient: client, model: model}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Messages    []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *groqClient) GenerateAdvice(ctx context.Context, req models.AdviceRequest) (*models.AdvicePayload, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildAdvisorPrompt(req)},
		},
	}

	var respBody chatResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(apiURL)

	if err != nil {
		return nil, fmt.Errorf("groq api call: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("groq api error (%d): %s", resp.StatusCode(), resp.String())
	}
	if len(respBody.Choices) == 0 {
		return nil, fmt.Errorf("empty response from ai")
	}

	return ParseAdvice(respBody.Choices[0].Message.Content)
}

// ParseAdvice extracts the JSON object from a raw model completion. The
// model occasionally wraps its answer in markdown fences or leading
// prose despite instructions, so we strip fences and take the outermost
// braces before unmarshalling.
func ParseAdvice(raw string) (*models.AdvicePayload, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	if start := strings.Index(cleaned, "{"); start >= 0 {
		if end := strings.LastIndex(cleaned, "}"); end > start {
			cleaned = cleaned[start : end+1]
		}
	}

	var payload models.AdvicePayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse ai response: %w", err)
	}
	return &payload, nil
}

func buildAdvisorPrompt(req models.AdviceRequest) string {
	customNeeds, _ := json.Marshal(req.CustomNeeds)
	if req.CustomNeeds == nil {
		customNeeds = []byte("[]")
	}

	ventilation := string(req.Coop.Ventilation)
	if ventilation == "" {
		ventilation = "tidak diketahui"
	}

	return fmt.Sprintf(`Berikan rekomendasi ringkas untuk kebutuhan energi, pemanas, dan vaksin pada peternakan ayam.
Balas dalam JSON dengan struktur:
{
  "basis": "live" atau "carcass",
  "harvest_age_days": number,
  "dressing_pct": number (0-1),
  "process_cost_idr": number,
  "wastage_pct": number (0-0.15),
  "shrinkage_pct": number (0-0.15),
  "heating": {
    "needed": boolean,
    "bulbs": number,
    "watt_per_bulb": number,
    "hours_per_day": number,
    "days": number,
    "other_devices": [string],
    "estimated_cost_idr": number
  },
  "electricity": {
    "kwh": number,
    "cost_idr": number
  },
  "vaccines": {
    "total_cost_idr": number,
    "items": [
      {"name": string, "day": number, "dose": string, "cost_idr": number}
    ]
  },
  "labor_cost_idr": number,
  "overhead_cost_idr": number,
  "transport_cost_idr": number,
  "notes": string
}

Aturan ketat:
- Jaga variasi sempit dan realistis; jangan mengubah input secara drastis.
- Nilai harus dalam rentang wajar dan monoton: harvest_age_days logis terhadap populasi & tipe.
- Jika dimensi kandang kecil dan ventilasi sederhana, minimalkan pemanas.
- Gunakan rupiah dan angka bulat (pembulatan ribuan bila relevan).

Gunakan data berikut sebagai jangkar:
Populasi: %d
Jenis ayam: %s
Detail custom: %s
Dimensi kandang (m): panjang %s, lebar %s, tinggi %s
Ventilasi: %s
`,
		req.Population,
		req.ChickenType,
		customNeeds,
		dimOrDash(req.Coop.LengthM),
		dimOrDash(req.Coop.WidthM),
		dimOrDash(req.Coop.HeightM),
		ventilation,
	)
}

func dimOrDash(v *float64) string {
	if v == nil {
		return "-"
	}
	s := fmt.Sprintf("%.2f", *v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
