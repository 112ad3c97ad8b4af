package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"prepay-sim/domain"
	"prepay-sim/report"
)

const defaultAdvisorURL = "https://api.openai.com/v1/chat/completions"

// AdvisorService explains the outcome of a sweep. When no API key is
// configured, or the call fails, it falls back to a fixed template.
type AdvisorService struct {
	client  *resty.Client
	apiKey  string
	apiURL  string
	model   string
	enabled bool
	logger  logrus.FieldLogger
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func NewAdvisorService(apiKey, apiURL string, logger logrus.FieldLogger) *AdvisorService {
	if apiURL == "" {
		apiURL = defaultAdvisorURL
	}
	return &AdvisorService{
		client:  resty.New().SetTimeout(30 * time.Second),
		apiKey:  apiKey,
		apiURL:  apiURL,
		model:   "gpt-4o-mini",
		enabled: apiKey != "",
		logger:  logger,
	}
}

// ExplainSweep describes which prepayment month wins and by how much.
func (s *AdvisorService) ExplainSweep(ctx context.Context, r domain.SweepReport) string {
	if !s.enabled {
		return fallbackExplanation(r)
	}

	explanation, err := s.callLLM(ctx, buildPrompt(r))
	if err != nil {
		s.logger.WithError(err).Warn("advisor call failed, using fallback explanation")
		return fallbackExplanation(r)
	}
	return explanation
}

func buildPrompt(r domain.SweepReport) string {
	p := r.Params
	sum := r.Summary

	var b strings.Builder
	fmt.Fprintf(&b, "A home loan of %s at %.2f%% a year over %d months has an EMI of %s.\n",
		report.FormatIndian(p.LoanPrincipal), p.AnnualLoanRate, p.TenureMonths, report.FormatIndian(sum.EMI))
	fmt.Fprintf(&b, "The house is worth %s and grows %.2f%% a year. A mutual fund starts at %s, receives %s a month and grows %.2f%% a year.\n",
		report.FormatIndian(p.HouseValue), p.HouseAnnualGrowth*100,
		report.FormatIndian(p.FundInitial), report.FormatIndian(p.FundMonthlyAddition), p.FundAnnualGrowth*100)
	fmt.Fprintf(&b, "Without prepaying, final net worth is %s.\n", report.FormatIndian(sum.Baseline.NetWorth))
	fmt.Fprintf(&b, "Using the fund to prepay the loan once in month %d gives the highest final net worth, %s (%s more).\n",
		sum.Best.PrepayMonth, report.FormatIndian(sum.Best.NetWorth), report.FormatIndian(sum.GainOverBaseline))
	fmt.Fprintf(&b, "The worst month to prepay is %d, ending at %s.\n",
		sum.Worst.PrepayMonth, report.FormatIndian(sum.Worst.NetWorth))
	b.WriteString("Explain in 3-4 plain sentences why this month wins, comparing loan interest with fund growth.")
	return b.String()
}

func (s *AdvisorService) callLLM(ctx context.Context, prompt string) (string, error) {
	var out chatResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.apiKey).
		SetBody(chatRequest{
			Model: s.model,
			Messages: []chatMessage{
				{Role: "system", Content: "You are a personal finance advisor. Be concise and use the figures given."},
				{Role: "user", Content: prompt},
			},
			MaxTokens: 300,
		}).
		SetResult(&out).
		Post(s.apiURL)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("advisor API error (status %d): %s", resp.StatusCode(), resp.String())
	}
	if len(out.Choices) == 0 {
		return "", errors.New("advisor API returned no choices")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

func fallbackExplanation(r domain.SweepReport) string {
	sum := r.Summary

	if sum.Best.PrepayMonth == 0 {
		return fmt.Sprintf(
			"Never prepaying gives the highest final net worth, %s, after %d months. The fund grows faster than the loan costs, so keeping it invested beats using it to close the loan early.",
			report.FormatIndian(sum.Baseline.NetWorth), r.Params.TenureMonths)
	}

	closed := "the loan stays open until the end"
	if month, ok := sum.Best.LoanClosedMonth.Month(); ok {
		closed = fmt.Sprintf("the loan closes in month %d and the EMI of %s is invested every month after that",
			month, report.FormatIndian(sum.EMI))
	}
	return fmt.Sprintf(
		"Prepaying in month %d gives the highest final net worth, %s, which is %s more than never prepaying; %s.",
		sum.Best.PrepayMonth, report.FormatIndian(sum.Best.NetWorth),
		report.FormatIndian(sum.GainOverBaseline), closed)
}
