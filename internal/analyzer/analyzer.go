// Package analyzer отправляет файл медицинского отчёта в Gemini и разбирает
// ответ модели в структуру Result.
package analyzer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/magabrotheeeer/healthmate/internal/config"
)

// ErrAnalysisFailed любая ошибка сети, ответа или разбора.
var ErrAnalysisFailed = errors.New("analysis failed")

const maxResponseSize = 4 << 20

const prompt = `You are a medical report assistant. Read the attached medical report and answer with a single JSON object with these keys:
"title": short name of the report or test,
"date": date of the report as written in it, or empty string,
"summary": two or three sentences summarizing the findings,
"explanation_en": plain-language explanation in English for a patient,
"explanation_ro": the same explanation in Roman Urdu,
"suggested_questions": array of 3 to 5 questions the patient could ask the doctor.
Do not give a diagnosis. Answer with JSON only.`

// Result разобранный ответ модели. Любое поле может отсутствовать.
type Result struct {
	Title              *string
	Date               *string
	Summary            *string
	ExplanationEN      *string
	ExplanationRO      *string
	SuggestedQuestions []string
}

// Client клиент generateContent API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// New создаёт клиента, таймаут запроса берётся из конфига.
func New(cfg config.Analyzer) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
	}
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string `json:"response_mime_type"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

// Analyze отправляет файл в модель и возвращает разобранный результат.
func (c *Client) Analyze(ctx context.Context, file []byte, mimeType string) (*Result, error) {
	const op = "analyzer.Analyze"

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{
			{Text: prompt},
			{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(file)}},
		}}},
		GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrAnalysisFailed, err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrAnalysisFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error содержит адрес вместе с ключом.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("%s: %w: %w", op, ErrAnalysisFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrAnalysisFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := gjson.GetBytes(raw, "error.message").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("%s: %w: status %d: %s", op, ErrAnalysisFailed, resp.StatusCode, msg)
	}

	text := gjson.GetBytes(raw, "candidates.0.content.parts.0.text")
	if !text.Exists() {
		return nil, fmt.Errorf("%s: %w: empty model response", op, ErrAnalysisFailed)
	}

	result, err := ParseResult(text.String())
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrAnalysisFailed, err)
	}
	return result, nil
}

// ParseResult разбирает JSON из текста модели. Обёртка ```json ... ``` допускается.
func ParseResult(text string) (*Result, error) {
	text = stripFences(text)
	if !gjson.Valid(text) {
		return nil, errors.New("model answer is not valid JSON")
	}
	doc := gjson.Parse(text)
	if !doc.IsObject() {
		return nil, errors.New("model answer is not a JSON object")
	}

	res := &Result{
		Title:         optString(doc, "title"),
		Date:          optString(doc, "date"),
		Summary:       optString(doc, "summary"),
		ExplanationEN: optString(doc, "explanation_en"),
		ExplanationRO: optString(doc, "explanation_ro"),
	}
	for _, q := range doc.Get("suggested_questions").Array() {
		if q.Type == gjson.String && strings.TrimSpace(q.Str) != "" {
			res.SuggestedQuestions = append(res.SuggestedQuestions, q.Str)
		}
	}
	return res, nil
}

func optString(doc gjson.Result, path string) *string {
	v := doc.Get(path)
	if v.Type != gjson.String {
		return nil
	}
	s := v.Str
	return &s
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
