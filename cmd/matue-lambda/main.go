// Matuê skill - AWS Lambda entrypoint.
//
// The Lambda host invokes the process once per platform request; all
// cross-invocation concurrency is the host's concern. Upstream calls
// inherit the invocation context, so the Lambda deadline bounds every
// stage of the pipeline.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/john-codes/matue-skill/internal/config"
	"github.com/john-codes/matue-skill/internal/log"
	"github.com/john-codes/matue-skill/pkg/alexa"
	"github.com/john-codes/matue-skill/pkg/chat"
	"github.com/john-codes/matue-skill/pkg/skill"
	"github.com/john-codes/matue-skill/pkg/store"
	"github.com/john-codes/matue-skill/pkg/transcode"
	"github.com/john-codes/matue-skill/pkg/tts"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Error("configuration error", "error", err)
		os.Exit(1)
	}
	log.Init(cfg.LogLevel)

	router, err := buildRouter(context.Background(), cfg)
	if err != nil {
		log.Error("startup error", "error", err)
		os.Exit(1)
	}

	lambda.Start(func(ctx context.Context, env alexa.RequestEnvelope) (*alexa.ResponseEnvelope, error) {
		return router.Dispatch(ctx, &env), nil
	})
}

func buildRouter(ctx context.Context, cfg *config.Config) (*alexa.Router, error) {
	logger := log.L()

	chatClient, err := chat.NewClient(
		chat.WithAPIKey(cfg.OpenAIAPIKey),
		chat.WithModel(cfg.ChatModel),
		chat.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	synth, err := tts.NewElevenLabs(
		tts.WithAPIKey(cfg.ElevenLabsAPIKey),
		tts.WithVoice(cfg.ElevenLabsVoiceID),
		tts.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, err
	}

	artifacts, err := store.NewS3(
		store.WithClient(s3.NewFromConfig(awsCfg)),
		store.WithBucket(cfg.BucketName),
		store.WithRegion(cfg.Region),
		store.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	sk, err := skill.New(skill.Config{
		Chat:            chatClient,
		TTS:             synth,
		Transcoder:      transcode.NewFFmpeg(transcode.WithBinary(cfg.FFmpegPath), transcode.WithLogger(logger)),
		Store:           artifacts,
		WelcomeAudioURL: cfg.WelcomeAudioURL,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}

	return sk.Router(), nil
}
