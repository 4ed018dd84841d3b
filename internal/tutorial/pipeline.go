package tutorial

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mvaldelvira/corredor/internal/voice"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentSections bounds the synthesis fan-out so a long script does
// not open one connection per section at once.
const maxConcurrentSections = 4

// Manifest is the JSON hand-off to the external video renderer: one audio
// file per section plus the narration text the renderer overlays.
type Manifest struct {
	Slug        string            `json:"slug"`
	Title       string            `json:"title"`
	GeneratedAt time.Time         `json:"generated_at"`
	Sections    []ManifestSection `json:"sections"`
}

type ManifestSection struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	AudioFile string `json:"audio_file"`
	MimeType  string `json:"mime_type"`
}

// Pipeline synthesizes a script's narration and writes the render manifest.
type Pipeline struct {
	synth  voice.Synthesizer
	outDir string
}

func NewPipeline(synth voice.Synthesizer, outDir string) *Pipeline {
	return &Pipeline{synth: synth, outDir: outDir}
}

// Run fills the script with vars, synthesizes every section, writes the
// audio files under <outDir>/<slug>/ and returns the manifest it wrote
// alongside them. Sections are synthesized concurrently; the first failure
// cancels the rest and nothing partial is reported as success.
func (p *Pipeline) Run(ctx context.Context, script *Script, vars map[string]string) (*Manifest, error) {
	filled, err := script.Fill(vars)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(p.outDir, filled.Slug)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	sections := make([]ManifestSection, len(filled.Sections))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSections)
	for i, sec := range filled.Sections {
		g.Go(func() error {
			resp, err := p.synth.Synthesize(gctx, voice.SynthesizeRequest{
				Text:  sec.Text,
				Voice: filled.Voice,
			})
			if err != nil {
				return fmt.Errorf("section %s: %w", sec.ID, err)
			}

			name := fmt.Sprintf("%02d-%s%s", i+1, sec.ID, audioExt(resp.MimeType))
			if err := os.WriteFile(filepath.Join(dir, name), resp.Audio, 0644); err != nil {
				return fmt.Errorf("section %s: writing audio: %w", sec.ID, err)
			}

			sections[i] = ManifestSection{
				ID:        sec.ID,
				Text:      sec.Text,
				AudioFile: name,
				MimeType:  resp.MimeType,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m := &Manifest{
		Slug:        filled.Slug,
		Title:       filled.Title,
		GeneratedAt: time.Now().UTC(),
		Sections:    sections,
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), data, 0644); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}
	return m, nil
}

func audioExt(mimeType string) string {
	switch mimeType {
	case "audio/wav", "audio/x-wav":
		return ".wav"
	case "audio/ogg":
		return ".ogg"
	default:
		return ".mp3"
	}
}
