package aws

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

// CloudWatchWriter is an io.Writer that ships log lines to a CloudWatch
// Logs stream. It is handed to the logger as an extra zap sink. Writes
// are synchronous; CloudWatch shipping is only enabled in deployed
// environments where the extra latency is acceptable.
type CloudWatchWriter struct {
	client     *cloudwatchlogs.Client
	group      string
	stream     string
	mu         sync.Mutex
	nextToken  *string
	created    bool
}

// NewCloudWatchWriter creates a writer for the given service name, or
// returns (nil, nil) when CLOUDWATCH_ENABLED is not "true" so callers can
// pass the result straight to the logger.
func NewCloudWatchWriter(ctx context.Context, cfg sdkaws.Config, serviceName string) (*CloudWatchWriter, error) {
	if os.Getenv("CLOUDWATCH_ENABLED") != "true" {
		return nil, nil
	}

	group := os.Getenv("CLOUDWATCH_LOG_GROUP")
	if group == "" {
		group = "/vendora/services"
	}
	stream := fmt.Sprintf("%s-%s", serviceName, time.Now().UTC().Format("2006-01-02"))

	return &CloudWatchWriter{
		client: cloudwatchlogs.NewFromConfig(cfg),
		group:  group,
		stream: stream,
	}, nil
}

func (w *CloudWatchWriter) ensureStream(ctx context.Context) error {
	if w.created {
		return nil
	}
	_, err := w.client.CreateLogStream(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  &w.group,
		LogStreamName: &w.stream,
	})
	if err != nil {
		var exists *types.ResourceAlreadyExistsException
		if !errors.As(err, &exists) {
			return fmt.Errorf("create log stream: %w", err)
		}
	}
	w.created = true
	return nil
}

// Write sends one log entry. Errors are returned so zap can count them,
// but the caller's console core keeps working regardless.
func (w *CloudWatchWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := w.ensureStream(ctx); err != nil {
		return 0, err
	}

	msg := string(p)
	ts := time.Now().UnixMilli()
	out, err := w.client.PutLogEvents(ctx, &cloudwatchlogs.PutLogEventsInput{
		LogGroupName:  &w.group,
		LogStreamName: &w.stream,
		SequenceToken: w.nextToken,
		LogEvents: []types.InputLogEvent{
			{Message: &msg, Timestamp: &ts},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("put log events: %w", err)
	}
	w.nextToken = out.NextSequenceToken
	return len(p), nil
}
