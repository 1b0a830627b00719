package app

import (
	"context"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"
)

// SynthesisRequest describes one text-to-speech call. Zero values fall back
// to the service defaults.
type SynthesisRequest struct {
	Text         string
	VoiceName    string
	LanguageCode string
	SpeakingRate float64
}

// Voice describes an available synthesis voice.
type Voice struct {
	Name                   string   `json:"name"`
	LanguageCodes          []string `json:"languageCodes"`
	Gender                 string   `json:"gender"`
	NaturalSampleRateHertz int32    `json:"naturalSampleRateHertz"`
}

// Synthesizer abstracts the speech provider so tests can run without
// Google credentials.
type Synthesizer interface {
	Synthesize(ctx context.Context, req SynthesisRequest) ([]byte, error)
	Voices(ctx context.Context, languageCode string) ([]Voice, error)
}

// GoogleSynthesizer produces MP3 audio via Google Cloud Text-to-Speech.
type GoogleSynthesizer struct {
	client *texttospeech.Client
}

// NewGoogleSynthesizer builds the client. An empty credentials file falls
// back to application default credentials.
func NewGoogleSynthesizer(ctx context.Context, credentialsFile string) (*GoogleSynthesizer, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("init texttospeech client: %w", err)
	}
	return &GoogleSynthesizer{client: client}, nil
}

func (g *GoogleSynthesizer) Synthesize(ctx context.Context, req SynthesisRequest) ([]byte, error) {
	resp, err := g.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: req.Text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: req.LanguageCode,
			Name:         req.VoiceName,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  req.SpeakingRate,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	return resp.GetAudioContent(), nil
}

func (g *GoogleSynthesizer) Voices(ctx context.Context, languageCode string) ([]Voice, error) {
	resp, err := g.client.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{LanguageCode: languageCode})
	if err != nil {
		return nil, fmt.Errorf("list voices: %w", err)
	}
	voices := make([]Voice, 0, len(resp.GetVoices()))
	for _, v := range resp.GetVoices() {
		voices = append(voices, Voice{
			Name:                   v.GetName(),
			LanguageCodes:          v.GetLanguageCodes(),
			Gender:                 v.GetSsmlGender().String(),
			NaturalSampleRateHertz: v.GetNaturalSampleRateHertz(),
		})
	}
	return voices, nil
}
