// Package ai implements the AI ports (match analysis, CV assistance,
// interview evaluation) on top of Google's Gemini REST API.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"seekers/internal/domain"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel  = "gemini-1.5-flash"
)

// GeminiClient calls the Gemini generateContent API with JSON-mode responses.
// It implements domain.MatchAnalyzer, domain.CVAssistant, and
// domain.InterviewEvaluator.
type GeminiClient struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiClient creates a Gemini client. An empty model selects the default.
func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = defaultModel
	}
	return &GeminiClient{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

func (g *GeminiClient) callAPI(ctx context.Context, prompt string, maxTokens int) (string, error) {
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", geminiBaseURL, g.model, g.apiKey)

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:      0.1, // low temperature for consistent JSON output
			MaxOutputTokens:  maxTokens,
			ResponseMIMEType: "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if geminiResp.Error != nil {
		return "", fmt.Errorf("gemini API error %d: %s", geminiResp.Error.Code, geminiResp.Error.Message)
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

// AnalyzeMatch scores a profile against a job listing.
func (g *GeminiClient) AnalyzeMatch(ctx context.Context, job *domain.Job, profile *domain.Profile) (*domain.MatchAnalysis, error) {
	prompt := buildMatchPrompt(job, profile)
	text, err := g.callAPI(ctx, prompt, 800)
	if err != nil {
		return nil, err
	}

	var analysis domain.MatchAnalysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse match analysis: %w", err)
	}
	if analysis.MatchScore < 0 {
		analysis.MatchScore = 0
	}
	if analysis.MatchScore > 100 {
		analysis.MatchScore = 100
	}
	return &analysis, nil
}

// EnhanceSummary rewrites the profile summary in a stronger professional voice.
func (g *GeminiClient) EnhanceSummary(ctx context.Context, profile *domain.Profile) (string, error) {
	prompt := fmt.Sprintf(`You are a professional CV writer. Rewrite the candidate summary below
into 2-3 concise, impactful sentences. Keep facts, drop filler.
Respond with JSON: {"summary": "..."}

Candidate: %s
Current summary: %s
Skills: %s
Experience: %s`,
		profile.FullName, profile.Summary, skillNames(profile.Skills), experienceLines(profile.Experience))

	text, err := g.callAPI(ctx, prompt, 400)
	if err != nil {
		return "", err
	}
	var out struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return "", fmt.Errorf("failed to parse enhanced summary: %w", err)
	}
	if out.Summary == "" {
		return "", fmt.Errorf("gemini returned an empty summary")
	}
	return out.Summary, nil
}

// OptimizeDescription turns an experience description into achievement bullets.
func (g *GeminiClient) OptimizeDescription(ctx context.Context, exp *domain.Experience, targetRole string) ([]string, error) {
	prompt := fmt.Sprintf(`You are a professional CV writer. Rewrite the work experience below as
3-5 achievement-oriented bullet points, quantified where plausible.
Target role: %s
Respond with JSON: {"bullets": ["...", "..."]}

Position: %s at %s
Description: %s`,
		targetRole, exp.Title, exp.Company, strings.Join(exp.Description, " "))

	text, err := g.callAPI(ctx, prompt, 500)
	if err != nil {
		return nil, err
	}
	var out struct {
		Bullets []string `json:"bullets"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("failed to parse optimized description: %w", err)
	}
	if len(out.Bullets) == 0 {
		return nil, fmt.Errorf("gemini returned no bullets")
	}
	return out.Bullets, nil
}

// SuggestSkills proposes skills the candidate should add for a target role.
func (g *GeminiClient) SuggestSkills(ctx context.Context, profile *domain.Profile, targetRole string) ([]string, error) {
	prompt := fmt.Sprintf(`Suggest up to 8 resume skills for the target role that the candidate does
not already list. Respond with JSON: {"skills": ["...", "..."]}

Target role: %s
Current skills: %s`,
		targetRole, skillNames(profile.Skills))

	text, err := g.callAPI(ctx, prompt, 300)
	if err != nil {
		return nil, err
	}
	var out struct {
		Skills []string `json:"skills"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("failed to parse suggested skills: %w", err)
	}
	return out.Skills, nil
}

// GenerateHeadline writes a one-line professional headline for the profile.
func (g *GeminiClient) GenerateHeadline(ctx context.Context, profile *domain.Profile) (string, error) {
	prompt := fmt.Sprintf(`Write one professional headline (max 12 words) for this candidate.
Respond with JSON: {"headline": "..."}

Title: %s
Summary: %s
Skills: %s`,
		profile.Title, profile.Summary, skillNames(profile.Skills))

	text, err := g.callAPI(ctx, prompt, 100)
	if err != nil {
		return "", err
	}
	var out struct {
		Headline string `json:"headline"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return "", fmt.Errorf("failed to parse headline: %w", err)
	}
	if out.Headline == "" {
		return "", fmt.Errorf("gemini returned an empty headline")
	}
	return out.Headline, nil
}

// EvaluateInterview grades a finished interview from its question/answer
// transcript.
func (g *GeminiClient) EvaluateInterview(ctx context.Context, rec *domain.InterviewRecord) (*domain.InterviewEvaluation, error) {
	prompt := buildEvaluationPrompt(rec)
	text, err := g.callAPI(ctx, prompt, 1500)
	if err != nil {
		return nil, err
	}

	var eval domain.InterviewEvaluation
	if err := json.Unmarshal([]byte(text), &eval); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation: %w", err)
	}
	if eval.OverallScore < 0 {
		eval.OverallScore = 0
	}
	if eval.OverallScore > 100 {
		eval.OverallScore = 100
	}
	if eval.OverallGrade == "" {
		eval.OverallGrade = gradeFor(eval.OverallScore)
	}
	return &eval, nil
}

func buildEvaluationPrompt(rec *domain.InterviewRecord) string {
	var b strings.Builder
	b.WriteString(`You are a senior technical interviewer. Grade the interview transcript below.
Score each competency 0-100 and the overall performance 0-100 with a letter grade (A+ to F).
Respond with JSON:
{"overallScore": 0, "overallGrade": "B+",
 "evaluations": [{"category": "...", "score": 0, "maxScore": 100, "feedback": "...", "strengths": ["..."], "improvements": ["..."]}],
 "summary": "...", "recommendations": ["..."]}

`)
	fmt.Fprintf(&b, "Position: %s (%s, %s tier)\n\n", rec.Category, rec.Level, rec.Tier)
	for i, a := range rec.Answers {
		fmt.Fprintf(&b, "Q%d: %s\nA%d: %s\n", i+1, a.Question, i+1, a.Transcription)
	}
	return b.String()
}

func gradeFor(score int) string {
	switch {
	case score >= 85:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	default:
		return "D"
	}
}

func buildMatchPrompt(job *domain.Job, profile *domain.Profile) string {
	var b strings.Builder
	b.WriteString(`You are a recruiting assistant. Score how well the candidate fits the job
from 0 to 100 and explain briefly. Respond with JSON:
{"matchScore": 0, "matchExplanation": "...", "matchingPoints": ["..."], "missingPoints": ["..."]}

`)
	fmt.Fprintf(&b, "Job: %s at %s (%s)\n", job.Title, job.Company, job.Location)
	fmt.Fprintf(&b, "Description: %s\n", job.Description)
	if len(job.Requirements) > 0 {
		fmt.Fprintf(&b, "Requirements: %s\n", strings.Join(job.Requirements, "; "))
	}
	fmt.Fprintf(&b, "\nCandidate: %s, %s\n", profile.FullName, profile.Title)
	fmt.Fprintf(&b, "Summary: %s\n", profile.Summary)
	fmt.Fprintf(&b, "Skills: %s\n", skillNames(profile.Skills))
	fmt.Fprintf(&b, "Experience: %s\n", experienceLines(profile.Experience))
	return b.String()
}

func skillNames(skills []domain.Skill) string {
	names := make([]string, len(skills))
	for i, s := range skills {
		names[i] = s.Name
	}
	return strings.Join(names, ", ")
}

func experienceLines(exps []domain.Experience) string {
	lines := make([]string, len(exps))
	for i, e := range exps {
		lines[i] = fmt.Sprintf("%s at %s (%s - %s)", e.Title, e.Company, e.StartDate, e.EndDate)
	}
	return strings.Join(lines, "; ")
}

var (
	_ domain.MatchAnalyzer      = (*GeminiClient)(nil)
	_ domain.CVAssistant        = (*GeminiClient)(nil)
	_ domain.InterviewEvaluator = (*GeminiClient)(nil)
)
