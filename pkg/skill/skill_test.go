package skill_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/john-codes/matue-skill/pkg/alexa"
	"github.com/john-codes/matue-skill/pkg/chat"
	"github.com/john-codes/matue-skill/pkg/skill"
	"github.com/john-codes/matue-skill/pkg/store"
	"github.com/john-codes/matue-skill/pkg/transcode"
	"github.com/john-codes/matue-skill/pkg/tts"
)

const welcomeURL = "https://john-codes.s3.sa-east-1.amazonaws.com/matue-tts/boas_vindas_alexa.mp3"

type deps struct {
	chat       *chat.Mock
	tts        *tts.Mock
	transcoder *transcode.Mock
	store      *store.Mock
}

func newTestSkill(t *testing.T, mutate func(*skill.Config)) (*alexa.Router, *deps) {
	t.Helper()

	d := &deps{
		chat:       chat.NewMock(),
		tts:        tts.NewMock(),
		transcoder: transcode.NewMock(),
		store:      store.NewMock(),
	}

	cfg := skill.Config{
		Chat:            d.chat,
		TTS:             d.tts,
		Transcoder:      d.transcoder,
		Store:           d.store,
		WelcomeAudioURL: welcomeURL,
	}
	if mutate != nil {
		mutate(&cfg)
	}

	sk, err := skill.New(cfg)
	require.NoError(t, err)
	return sk.Router(), d
}

func launchEnv() *alexa.RequestEnvelope {
	return &alexa.RequestEnvelope{Request: alexa.Request{Type: alexa.TypeLaunchRequest}}
}

func chatEnv(query string) *alexa.RequestEnvelope {
	return &alexa.RequestEnvelope{
		Request: alexa.Request{
			Type: alexa.TypeIntentRequest,
			Intent: &alexa.Intent{
				Name:  alexa.IntentChat,
				Slots: map[string]alexa.Slot{"query": {Name: "query", Value: query}},
			},
		},
	}
}

func intentEnv(name string) *alexa.RequestEnvelope {
	return &alexa.RequestEnvelope{
		Request: alexa.Request{
			Type:   alexa.TypeIntentRequest,
			Intent: &alexa.Intent{Name: name},
		},
	}
}

func speech(resp *alexa.ResponseEnvelope) string {
	if resp == nil || resp.Response.OutputSpeech == nil {
		return ""
	}
	return resp.Response.OutputSpeech.SSML
}

func sessionOpen(t *testing.T, resp *alexa.ResponseEnvelope) {
	t.Helper()
	require.NotNil(t, resp.Response.ShouldEndSession)
	assert.False(t, *resp.Response.ShouldEndSession)
}

func TestDispatchKnownShapes(t *testing.T) {
	router, _ := newTestSkill(t, nil)
	ctx := context.Background()

	t.Run("launch references welcome audio and keeps session open", func(t *testing.T) {
		resp := router.Dispatch(ctx, launchEnv())
		assert.Contains(t, speech(resp), welcomeURL)
		assert.Contains(t, speech(resp), "<audio src=")
		sessionOpen(t, resp)
		require.NotNil(t, resp.Response.Reprompt)
	})

	t.Run("help", func(t *testing.T) {
		resp := router.Dispatch(ctx, intentEnv(alexa.IntentHelp))
		assert.Contains(t, speech(resp), "Pergunte ao Matuê")
		sessionOpen(t, resp)
	})

	t.Run("cancel closes session", func(t *testing.T) {
		resp := router.Dispatch(ctx, intentEnv(alexa.IntentCancel))
		assert.Contains(t, speech(resp), "Valeu, falou!")
		require.NotNil(t, resp.Response.ShouldEndSession)
		assert.True(t, *resp.Response.ShouldEndSession)
	})

	t.Run("stop closes session", func(t *testing.T) {
		resp := router.Dispatch(ctx, intentEnv(alexa.IntentStop))
		assert.Contains(t, speech(resp), "Valeu, falou!")
		require.NotNil(t, resp.Response.ShouldEndSession)
		assert.True(t, *resp.Response.ShouldEndSession)
	})

	t.Run("fallback", func(t *testing.T) {
		resp := router.Dispatch(ctx, intentEnv(alexa.IntentFallback))
		assert.Contains(t, speech(resp), "não entendi")
		sessionOpen(t, resp)
	})

	t.Run("session ended yields empty response", func(t *testing.T) {
		resp := router.Dispatch(ctx, &alexa.RequestEnvelope{
			Request: alexa.Request{Type: alexa.TypeSessionEndedRequest},
		})
		require.NotNil(t, resp)
		assert.Nil(t, resp.Response.OutputSpeech)
	})

	t.Run("unknown request type yields error-handler apology", func(t *testing.T) {
		resp := router.Dispatch(ctx, &alexa.RequestEnvelope{
			Request: alexa.Request{Type: "Connections.Response"},
		})
		assert.Contains(t, speech(resp), "Desculpe, ocorreu um erro. Por favor, tente novamente.")
		sessionOpen(t, resp)
	})
}

func TestChatEmptyQueryProceeds(t *testing.T) {
	router, d := newTestSkill(t, nil)

	env := chatEnv("")
	env.Request.Intent.Slots = nil // platform may omit unfilled slots entirely

	router.Dispatch(context.Background(), env)

	require.Equal(t, 1, d.chat.CallCount())
	assert.Equal(t, "", d.chat.Calls()[0])
	assert.Equal(t, 1, d.tts.CallCount())
}

func TestChatFailureShortCircuits(t *testing.T) {
	router, d := newTestSkill(t, func(cfg *skill.Config) {
		cfg.Chat = chat.WithError(&chat.UpstreamError{StatusCode: 500, Message: "upstream down"})
	})

	resp := router.Dispatch(context.Background(), chatEnv("qual a boa"))

	assert.Contains(t, speech(resp), "Desculpe, ocorreu um erro ao processar sua solicitação.")
	sessionOpen(t, resp)
	assert.Zero(t, d.tts.CallCount(), "TTS must not run after chat failure")
	assert.Zero(t, d.transcoder.CallCount(), "transcoder must not run after chat failure")
	assert.Zero(t, d.store.CallCount(), "store must not run after chat failure")
}

func TestTTSUpstreamFailureDistinctWording(t *testing.T) {
	router, d := newTestSkill(t, func(cfg *skill.Config) {
		cfg.TTS = tts.WithError(&tts.APIError{
			StatusCode: 422,
			Message:    "voice limit reached",
			Provider:   "elevenlabs",
		})
	})

	resp := router.Dispatch(context.Background(), chatEnv("qual a boa"))

	assert.Contains(t, speech(resp), "Desculpe, ocorreu um erro ao gerar o áudio.")
	sessionOpen(t, resp)
	assert.Zero(t, d.transcoder.CallCount(), "transcoder must not run after TTS failure")
	assert.Zero(t, d.store.CallCount(), "store must not run after TTS failure")
}

func TestTTSTransportFailureGenericWording(t *testing.T) {
	// Only a non-success provider status gets the distinct audio wording;
	// transport failures fall back to the generic apology.
	router, _ := newTestSkill(t, func(cfg *skill.Config) {
		cfg.TTS = tts.WithError(tts.WrapError("elevenlabs", errors.New("connection refused")))
	})

	resp := router.Dispatch(context.Background(), chatEnv("qual a boa"))
	assert.Contains(t, speech(resp), "Desculpe, ocorreu um erro ao processar sua solicitação.")
}

func TestTranscodeFailureShortCircuits(t *testing.T) {
	router, d := newTestSkill(t, func(cfg *skill.Config) {
		cfg.Transcoder = transcode.WithError(&transcode.ProcessError{Stage: "launch", Err: errors.New("no such file")})
	})

	resp := router.Dispatch(context.Background(), chatEnv("qual a boa"))

	assert.Contains(t, speech(resp), "Desculpe, ocorreu um erro ao processar sua solicitação.")
	assert.Zero(t, d.store.CallCount(), "store must not run after transcode failure")
}

func TestStoreFailure(t *testing.T) {
	router, _ := newTestSkill(t, func(cfg *skill.Config) {
		cfg.Store = store.WithError(&store.StoreError{Key: "matue-tts/tts/x.mp3", Err: errors.New("access denied")})
	})

	resp := router.Dispatch(context.Background(), chatEnv("qual a boa"))
	assert.Contains(t, speech(resp), "Desculpe, ocorreu um erro ao processar sua solicitação.")
	sessionOpen(t, resp)
}

func TestNewValidation(t *testing.T) {
	_, err := skill.New(skill.Config{})
	assert.ErrorIs(t, err, skill.ErrMissingDependency)

	_, err = skill.New(skill.Config{
		Chat:       chat.NewMock(),
		TTS:        tts.NewMock(),
		Transcoder: transcode.NewMock(),
		Store:      store.NewMock(),
	})
	assert.Error(t, err, "missing welcome audio URL must fail")
}

var uploadedURL = regexp.MustCompile(`https://mybucket\.s3\.sa-east-1\.amazonaws\.com/matue-tts/tts/[0-9a-f-]{36}\.mp3`)

func extractAudioURL(t *testing.T, resp *alexa.ResponseEnvelope) string {
	t.Helper()
	url := uploadedURL.FindString(speech(resp))
	require.NotEmpty(t, url, "expected uploaded audio URL in %q", speech(resp))
	return url
}

func TestEndToEndChat(t *testing.T) {
	transcoded := []byte("mp3-48k-22050")

	router, d := newTestSkill(t, func(cfg *skill.Config) {
		cfg.Chat = &chat.Mock{
			ReplyFunc: func(ctx context.Context, utterance string) (string, error) {
				require.Equal(t, "qual a boa", utterance)
				return "Suave, truta", nil
			},
		}
		cfg.Transcoder = &transcode.Mock{
			TranscodeFunc: func(ctx context.Context, input []byte) ([]byte, error) {
				require.NotEmpty(t, input)
				return transcoded, nil
			},
		}
		cfg.Store = &store.Mock{
			UploadFunc: func(ctx context.Context, data []byte, contentType string) (string, error) {
				assert.Equal(t, transcoded, data)
				assert.Equal(t, "audio/mpeg", contentType)
				return "https://mybucket.s3.sa-east-1.amazonaws.com/matue-tts/tts/0b5e8f5e-9f3a-4bb0-8e9a-1c2d3e4f5a6b.mp3", nil
			},
		}
	})

	resp := router.Dispatch(context.Background(), chatEnv("qual a boa"))

	url := extractAudioURL(t, resp)
	assert.True(t, strings.Contains(speech(resp), `<audio src="`+url+`" />`), "speech: %q", speech(resp))

	require.NotNil(t, resp.Response.Card)
	assert.Equal(t, "Matuê", resp.Response.Card.Title)
	assert.Equal(t, "Suave, truta", resp.Response.Card.Content)

	require.NotNil(t, resp.Response.Reprompt)
	sessionOpen(t, resp)

	assert.Equal(t, []string{"Suave, truta"}, d.tts.Calls())
}

// fakeS3 accepts every PutObject call.
type fakeS3 struct{}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return &s3.PutObjectOutput{}, nil
}

func TestRepeatedInvocationsGetFreshKeys(t *testing.T) {
	// Identical utterances must not reuse artifact keys; only uniqueness
	// is promised, never equality of output.
	artifacts, err := store.NewS3(
		store.WithClient(&fakeS3{}),
		store.WithBucket("mybucket"),
		store.WithRegion("sa-east-1"),
	)
	require.NoError(t, err)

	router, _ := newTestSkill(t, func(cfg *skill.Config) {
		cfg.Store = artifacts
	})

	first := extractAudioURL(t, router.Dispatch(context.Background(), chatEnv("qual a boa")))
	second := extractAudioURL(t, router.Dispatch(context.Background(), chatEnv("qual a boa")))

	assert.NotEqual(t, first, second)
}
