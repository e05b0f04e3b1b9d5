// Matuê skill - self-hosted HTTPS endpoint.
//
// Alternative to the Lambda deployment: Alexa skills can target any HTTPS
// endpoint, and this server doubles as the local development harness.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

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

	app := fiber.New(fiber.Config{
		AppName:               "Matuê Skill",
		DisableStartupMessage: true,
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Post("/v1/alexa", func(c *fiber.Ctx) error {
		var env alexa.RequestEnvelope
		if err := c.BodyParser(&env); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request envelope",
			})
		}
		return c.JSON(router.Dispatch(c.UserContext(), &env))
	})

	log.Info("skill endpoint listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
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
