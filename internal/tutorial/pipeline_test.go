package tutorial

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mvaldelvira/corredor/internal/voice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSynth struct {
	mu    sync.Mutex
	texts []string
	fail  map[string]error
}

func (f *fakeSynth) Synthesize(ctx context.Context, req voice.SynthesizeRequest) (*voice.SynthesizeResponse, error) {
	f.mu.Lock()
	f.texts = append(f.texts, req.Text)
	f.mu.Unlock()
	if err, ok := f.fail[req.Text]; ok {
		return nil, err
	}
	return &voice.SynthesizeResponse{
		Audio:    []byte("audio:" + req.Text),
		MimeType: "audio/mpeg",
	}, nil
}

func (f *fakeSynth) Available(ctx context.Context) bool { return true }

func TestPipeline_Run(t *testing.T) {
	script := &Script{
		Slug:  "primeros-pasos",
		Title: "Primeros pasos",
		Voice: "es-female-1",
		Sections: []Section{
			{ID: "bienvenida", Text: "Hola {{agent_name}}."},
			{ID: "tablero", Text: "Este es el tablero."},
		},
	}

	synth := &fakeSynth{}
	outDir := t.TempDir()
	p := NewPipeline(synth, outDir)

	m, err := p.Run(context.Background(), script, map[string]string{"agent_name": "Marta"})
	require.NoError(t, err)

	require.Len(t, m.Sections, 2)
	// Section order in the manifest follows the script, regardless of which
	// synthesis call finished first.
	assert.Equal(t, "bienvenida", m.Sections[0].ID)
	assert.Equal(t, "Hola Marta.", m.Sections[0].Text)
	assert.Equal(t, "01-bienvenida.mp3", m.Sections[0].AudioFile)
	assert.Equal(t, "02-tablero.mp3", m.Sections[1].AudioFile)

	dir := filepath.Join(outDir, "primeros-pasos")
	audio, err := os.ReadFile(filepath.Join(dir, "01-bienvenida.mp3"))
	require.NoError(t, err)
	assert.Equal(t, []byte("audio:Hola Marta."), audio)

	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	require.NoError(t, err)
	var onDisk Manifest
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, m.Sections, onDisk.Sections)
	assert.False(t, onDisk.GeneratedAt.IsZero())
}

func TestPipeline_RunSectionFailure(t *testing.T) {
	script := &Script{
		Slug: "fallo",
		Sections: []Section{
			{ID: "uno", Text: "primera"},
			{ID: "dos", Text: "segunda"},
		},
	}

	synthErr := errors.New("synthesis backend down")
	synth := &fakeSynth{fail: map[string]error{"segunda": synthErr}}
	outDir := t.TempDir()
	p := NewPipeline(synth, outDir)

	_, err := p.Run(context.Background(), script, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, synthErr)
	assert.ErrorContains(t, err, "section dos")

	// No manifest is written for a partial run.
	_, statErr := os.Stat(filepath.Join(outDir, "fallo", "manifest.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestPipeline_RunUnfilledVar(t *testing.T) {
	script := &Script{
		Slug:     "vars",
		Sections: []Section{{ID: "s", Text: "Hola {{quien}}"}},
	}

	synth := &fakeSynth{}
	p := NewPipeline(synth, t.TempDir())

	_, err := p.Run(context.Background(), script, nil)
	require.Error(t, err)
	// Nothing was synthesized.
	assert.Empty(t, synth.texts)
}
