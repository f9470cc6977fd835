package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"cxf-converter/internal/config"
	"cxf-converter/internal/model"
)

var ErrNoMailKey = errors.New("mail api key not configured")

const resultsSubject = "Your Color Conversion Results"

// MailClient talks to a Resend compatible HTTP API.
type MailClient struct {
	baseURL string
	apiKey  string
	from    string
	http    *http.Client
}

type Email struct {
	To      []string
	Subject string
	HTML    string
}

func NewMailClient(cfg config.Config) *MailClient {
	timeoutSec := cfg.MailTimeoutSec
	if timeoutSec <= 0 {
		timeoutSec = 10
	}
	return &MailClient{
		baseURL: cfg.ResendBaseURL,
		apiKey:  cfg.ResendAPIKey,
		from:    cfg.MailFrom,
		http: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
	}
}

// Send returns the provider's message id.
func (c *MailClient) Send(ctx context.Context, msg Email) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", ErrNoMailKey
	}

	b, err := json.Marshal(map[string]interface{}{
		"from":    c.from,
		"to":      msg.To,
		"subject": msg.Subject,
		"html":    msg.HTML,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("mail status=%d: decode response: %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("mail status=%d name=%s message=%s", resp.StatusCode, out.Name, out.Message)
	}
	if out.ID == "" {
		return "", errors.New("mail provider returned empty id")
	}
	return out.ID, nil
}

var resultsEmailTemplate = template.Must(template.New("results").Parse(`<html>
  <head>
    <meta charset="UTF-8" />
    <style>
      body { font-family: 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; background-color: #ffffff; margin: 0; padding: 40px 0; color: #333333; }
      .container { max-width: 768px; margin: 0 auto; }
      h2 { font-size: 22px; text-align: center; color: #111; margin-bottom: 24px; }
      table { border-collapse: collapse; width: 100%; }
      th, td { padding: 8px 12px; text-align: left; }
      th { border-bottom: 2px solid #111; }
    </style>
  </head>
  <body>
    <div class="container">
      <h2>{{.Title}}</h2>
      <table>
        <thead><tr><th>Name</th><th>Color space</th><th>Value</th></tr></thead>
        <tbody>
{{- range .Results}}
{{- $name := .Name}}{{$n := len .Result}}
{{- range $i, $row := .Result}}
          <tr>{{if eq $i 0}}<td rowspan="{{$n}}" style="border-bottom: 1px solid #ddd; font-weight: 600; vertical-align: top;">{{$name}}</td>{{end}}<td style="border-bottom: 1px solid #ddd;">{{$row.Space}}</td><td style="border-bottom: 1px solid #ddd;">{{$row.Value}}</td></tr>
{{- end}}
          <tr><td colspan="3" style="height: 12px;"></td></tr>
{{- end}}
        </tbody>
      </table>
    </div>
  </body>
</html>
`))

// RenderResultsEmail builds the HTML body listing every result row grouped
// by spectrum name.
func RenderResultsEmail(results []model.ConversionResult) (string, error) {
	var buf bytes.Buffer
	err := resultsEmailTemplate.Execute(&buf, struct {
		Title   string
		Results []model.ConversionResult
	}{Title: resultsSubject, Results: results})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
