package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const (
	maxAnalyzedChars = 10000
	minAnalyzedChars = 100
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
}

// AIService wraps a chat completion API. Without an API key every call fails
// with ErrAIUnavailable; provider failures wrap ErrAIRequest. Nothing is retried.
type AIService struct {
	client *openai.Client
	cfg    AIConfig
}

func NewAIService(cfg AIConfig) *AIService {
	if cfg.Model == "" {
		cfg.Model = openai.GPT3Dot5Turbo
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1000
	}
	s := &AIService{cfg: cfg}
	if cfg.APIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		s.client = openai.NewClientWithConfig(clientCfg)
	}
	return s
}

func (s *AIService) Configured() bool { return s.client != nil }

// Complete sends the messages and returns the first choice. Zero values for model,
// temperature and maxTokens fall back to the configured defaults.
func (s *AIService) Complete(ctx context.Context, messages []ChatMessage, model string, temperature float32, maxTokens int) (string, error) {
	if s.client == nil {
		return "", ErrAIUnavailable
	}
	if model == "" {
		model = s.cfg.Model
	}
	if temperature == 0 {
		temperature = s.cfg.Temperature
	}
	if maxTokens <= 0 {
		maxTokens = s.cfg.MaxTokens
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		logrus.WithError(err).WithField("model", model).Warn("chat completion failed")
		return "", fmt.Errorf("%w: %v", ErrAIRequest, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrAIRequest)
	}
	return resp.Choices[0].Message.Content, nil
}

// EstimateTokens approximates four characters per token.
func EstimateTokens(text string) int {
	return len(text) / 4
}

func CountMessageTokens(messages []ChatMessage) int {
	total := 0
	for _, m := range messages {
		total += EstimateTokens(m.Role + m.Content)
	}
	return total
}

// ExtractText returns the plain text of every page of a PDF.
func ExtractText(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("%w: unreadable PDF: %v", ErrInvalidInput, err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: extract PDF text: %v", ErrInvalidInput, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("%w: extract PDF text: %v", ErrInvalidInput, err)
	}
	return buf.String(), nil
}

type Summary struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
}

// Summarize asks for a summary and key points of a document text.
func (s *AIService) Summarize(ctx context.Context, text string) (*Summary, error) {
	if s.client == nil {
		return nil, ErrAIUnavailable
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minAnalyzedChars {
		return &Summary{Summary: "PDF appears to be empty or contains only images.", KeyPoints: []string{}}, nil
	}
	text = TruncateText(text, maxAnalyzedChars)

	prompt := "Analyze the following document and provide:\n" +
		"1. A concise summary (2-3 paragraphs)\n" +
		"2. A list of 5-10 key points\n\n" +
		"Document:\n" + text + "\n\n" +
		"Format your response as:\nSUMMARY:\n[your summary here]\n\nKEY POINTS:\n1. [point 1]\n2. [point 2]\n...\n"
	resp, err := s.Complete(ctx, []ChatMessage{
		{Role: openai.ChatMessageRoleSystem, Content: "You are a helpful assistant that analyzes documents and extracts key information."},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}, "", 0, 1500)
	if err != nil {
		return nil, err
	}
	return ParseSummary(resp), nil
}

// TruncateText keeps the first n characters of text and marks the cut.
func TruncateText(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n]) + "... [truncated]"
}

// ParseSummary splits a "SUMMARY: ... KEY POINTS: ..." reply.
func ParseSummary(resp string) *Summary {
	out := &Summary{KeyPoints: []string{}}
	if !strings.Contains(resp, "SUMMARY:") {
		out.Summary = strings.TrimSpace(resp)
		return out
	}
	parts := strings.SplitN(resp, "KEY POINTS:", 2)
	out.Summary = strings.TrimSpace(strings.Replace(parts[0], "SUMMARY:", "", 1))
	if len(parts) < 2 {
		return out
	}
	for _, line := range strings.Split(parts[1], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "-") || startsWithNumber(line) {
			out.KeyPoints = append(out.KeyPoints, line)
		}
	}
	return out
}

func startsWithNumber(line string) bool {
	i := 0
	for i < len(line) && unicode.IsDigit(rune(line[i])) {
		i++
	}
	return i > 0 && i < len(line) && line[i] == '.'
}

// GenerateQuestions asks for n study questions on a course topic.
func (s *AIService) GenerateQuestions(ctx context.Context, course, topic string, n int) ([]string, error) {
	if n <= 0 {
		n = 5
	}
	prompt := fmt.Sprintf("Generate %d study questions for the course %q on the topic: %s\n\n"+
		"Format each question on a new line, numbered 1-%d.\n"+
		"Make the questions challenging but appropriate for the course level.\n", n, course, topic, n)
	resp, err := s.Complete(ctx, []ChatMessage{
		{Role: openai.ChatMessageRoleSystem, Content: "You are an educational assistant that creates study questions."},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}, "", 0, 1000)
	if err != nil {
		return nil, err
	}
	return ParseQuestions(resp, n), nil
}

// ParseQuestions strips numbering from a numbered list reply.
func ParseQuestions(resp string, n int) []string {
	var questions []string
	for _, line := range strings.Split(resp, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if unicode.IsDigit(rune(line[0])) || strings.HasPrefix(line, "Q") {
			if idx := strings.Index(line, "."); idx >= 0 {
				line = strings.TrimSpace(line[idx+1:])
			}
			if line != "" {
				questions = append(questions, line)
			}
		}
	}
	if len(questions) == 0 {
		for _, line := range strings.Split(resp, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				questions = append(questions, line)
			}
		}
	}
	if len(questions) > n {
		questions = questions[:n]
	}
	return questions
}

func (s *AIService) StudyHelp(ctx context.Context, course, topic, question string) (string, error) {
	prompt := fmt.Sprintf("You are a study assistant for the course %q focusing on %q.\n\n"+
		"Student's question: %s\n\n"+
		"Provide a clear, educational answer that helps the student understand the concept.\n", course, topic, question)
	return s.Complete(ctx, []ChatMessage{
		{Role: openai.ChatMessageRoleSystem, Content: "You are a helpful study assistant."},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}, "", 0, 1000)
}

func (s *AIService) CodeAssist(ctx context.Context, code, language, question string) (string, error) {
	if question == "" {
		question = "Please review this code and provide suggestions for improvement."
	}
	prompt := fmt.Sprintf("You are a code assistant. Review this %s code and provide helpful feedback.\n\n"+
		"Code:\n```%s\n%s\n```\n\nQuestion/Request: %s\n\n"+
		"Provide:\n1. Code review comments\n2. Suggestions for improvement\n3. Any potential bugs or issues\n",
		language, language, code, question)
	return s.Complete(ctx, []ChatMessage{
		{Role: openai.ChatMessageRoleSystem, Content: "You are an expert code reviewer and programming assistant."},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}, "", 0, 1500)
}

func (s *AIService) WritingAssist(ctx context.Context, text, requestType string) (string, error) {
	if requestType == "" {
		requestType = "review"
	}
	verb := strings.ToUpper(requestType[:1]) + requestType[1:]
	prompt := fmt.Sprintf("You are a writing assistant. %s the following text:\n\n%s\n\n"+
		"Provide:\n1. Overall feedback\n2. Grammar and style suggestions\n3. Suggestions for improvement\n", verb, text)
	return s.Complete(ctx, []ChatMessage{
		{Role: openai.ChatMessageRoleSystem, Content: "You are a helpful writing assistant."},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}, "", 0, 1500)
}

func (s *AIService) RecommendCourses(ctx context.Context, interests, currentCourses []string) (string, error) {
	current := ""
	if len(currentCourses) > 0 {
		current = "\nCurrent courses: " + strings.Join(currentCourses, ", ")
	}
	prompt := fmt.Sprintf("Based on the following interests, recommend relevant courses or learning paths:\n\n"+
		"Interests: %s\n%s\n\n"+
		"Provide:\n1. Recommended courses\n2. Why these courses are relevant\n3. Suggested learning path\n",
		strings.Join(interests, ", "), current)
	return s.Complete(ctx, []ChatMessage{
		{Role: openai.ChatMessageRoleSystem, Content: "You are an educational advisor that recommends courses."},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}, "", 0, 1000)
}

// SystemPrompt returns the system message for a conversation's assistant type.
func SystemPrompt(assistantType string) string {
	switch assistantType {
	case "study":
		return "You are a helpful study assistant."
	case "code":
		return "You are an expert code assistant and programming mentor."
	case "writing":
		return "You are a writing assistant that helps improve writing quality."
	default:
		return "You are a helpful assistant."
	}
}

// RenderTemplate fills {name} placeholders; unknown placeholders are left as is.
func RenderTemplate(template string, vars map[string]string) string {
	out := template
	for k, v := range vars {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}
