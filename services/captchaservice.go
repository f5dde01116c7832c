package services

import (
	"context"
	"fmt"

	recaptcha "cloud.google.com/go/recaptchaenterprise/v2/apiv1"
	"cloud.google.com/go/recaptchaenterprise/v2/apiv1/recaptchaenterprisepb"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type CaptchaConfig struct {
	Enabled         bool
	ProjectID       string
	SiteKey         string
	CredentialsFile string
	MinScore        float32
}

type AssessmentResult struct {
	Score   float32
	Action  string
	Reasons []string
}

// CaptchaVerifier checks a reCAPTCHA token for an expected action.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, action, userIP, userAgent string) (*AssessmentResult, error)
}

type CaptchaService struct {
	cfg CaptchaConfig
}

func NewCaptchaService(cfg CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: cfg}
}

// Verify returns ErrCaptchaRejected for invalid tokens, mismatched actions or scores
// under the configured minimum. A disabled service accepts everything.
func (s *CaptchaService) Verify(ctx context.Context, token, action, userIP, userAgent string) (*AssessmentResult, error) {
	if !s.cfg.Enabled {
		return &AssessmentResult{Score: 1, Action: action}, nil
	}
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrCaptchaRejected)
	}

	var opts []option.ClientOption
	if s.cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(s.cfg.CredentialsFile))
	}
	client, err := recaptcha.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("recaptcha client: %w", err)
	}
	defer client.Close()

	req := &recaptchaenterprisepb.CreateAssessmentRequest{
		Parent: fmt.Sprintf("projects/%s", s.cfg.ProjectID),
		Assessment: &recaptchaenterprisepb.Assessment{
			Event: &recaptchaenterprisepb.Event{
				Token:         token,
				SiteKey:       s.cfg.SiteKey,
				UserIpAddress: userIP,
				UserAgent:     userAgent,
			},
		},
	}
	response, err := client.CreateAssessment(ctx, req)
	if err != nil {
		if status.Code(err) == codes.InvalidArgument {
			return nil, fmt.Errorf("%w: %v", ErrCaptchaRejected, err)
		}
		return nil, fmt.Errorf("recaptcha assessment: %w", err)
	}

	props := response.GetTokenProperties()
	if props == nil || !props.GetValid() {
		logrus.WithField("reason", props.GetInvalidReason().String()).Warn("recaptcha token invalid")
		return nil, fmt.Errorf("%w: invalid token", ErrCaptchaRejected)
	}
	if action != "" && props.GetAction() != action {
		return nil, fmt.Errorf("%w: action mismatch: expected %s, got %s", ErrCaptchaRejected, action, props.GetAction())
	}

	result := &AssessmentResult{Action: props.GetAction()}
	if risk := response.GetRiskAnalysis(); risk != nil {
		result.Score = risk.GetScore()
		for _, reason := range risk.GetReasons() {
			result.Reasons = append(result.Reasons, reason.String())
		}
	}
	if result.Score < s.cfg.MinScore {
		return result, fmt.Errorf("%w: score %.2f below %.2f", ErrCaptchaRejected, result.Score, s.cfg.MinScore)
	}
	return result, nil
}
