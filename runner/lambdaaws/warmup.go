package lambdaaws

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	// WarmupSource identifies scheduled warmup events
	WarmupSource = "warmup"

	// WarmupDelay keeps this instance busy long enough for the others to start
	WarmupDelay = 75 * time.Millisecond

	// MaxWarmupConcurrency bounds the self-invocations a single warmup event can start
	MaxWarmupConcurrency = 10
)

// WarmupEvent keeps instances warm between V-QUEST requests. It never reaches V-QUEST.
type WarmupEvent struct {
	Source      string `json:"source"`
	Concurrency int    `json:"concurrency"`
}

type WarmupResponse struct {
	Status          string `json:"status"`
	InstancesWarmed int    `json:"instancesWarmed"`
}

// Warmer starts count more warm instances
type Warmer interface {
	Warm(ctx context.Context, count int) error
}

func IsWarmupEvent(event json.RawMessage) (*WarmupEvent, bool) {
	var warmup WarmupEvent
	if err := json.Unmarshal(event, &warmup); err != nil {
		return nil, false
	}

	if warmup.Source != WarmupSource {
		return nil, false
	}

	return &warmup, true
}

func HandleWarmup(ctx context.Context, warmer Warmer, warmup *WarmupEvent, log zerolog.Logger) WarmupResponse {
	instancesWarmed := 1
	count := min(warmup.Concurrency, MaxWarmupConcurrency)

	if count > 0 && warmer != nil {
		if err := warmer.Warm(ctx, count); err != nil {
			log.Warn().Err(err).Int("concurrency", count).Msg("warmup self-invocation failed")
		} else {
			instancesWarmed += count
		}
	}

	select {
	case <-ctx.Done():
	case <-time.After(WarmupDelay):
	}

	return WarmupResponse{Status: "warm", InstancesWarmed: instancesWarmed}
}

// selfInvoker sends asynchronous warmup events to this function
type selfInvoker struct {
	functionName string
}

func newSelfInvoker() *selfInvoker {
	return &selfInvoker{functionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME")}
}

func (s *selfInvoker) Warm(ctx context.Context, count int) error {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return err
	}

	client := lambdasdk.NewFromConfig(cfg)

	// children get concurrency 0 so they do not invoke again
	payload, err := json.Marshal(WarmupEvent{Source: WarmupSource})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	for range count {
		g.Go(func() error {
			_, err := client.Invoke(ctx, &lambdasdk.InvokeInput{
				FunctionName:   aws.String(s.functionName),
				InvocationType: types.InvocationTypeEvent,
				Payload:        payload,
			})

			return err
		})
	}

	return g.Wait()
}
