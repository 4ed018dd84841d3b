package tutorial

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScript = `
title: Primeros pasos
voice: es-female-1
sections:
  - id: bienvenida
    text: "Hola {{agent_name}}, bienvenido a {{agency}}."
  - id: tablero
    text: "Arrastra un contacto entre columnas para cambiar su etapa."
`

func writeScript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScript(t *testing.T) {
	s, err := LoadScript(writeScript(t, "primeros-pasos.yaml", sampleScript))
	require.NoError(t, err)
	assert.Equal(t, "primeros-pasos", s.Slug) // falls back to the file name
	assert.Equal(t, "Primeros pasos", s.Title)
	require.Len(t, s.Sections, 2)
	assert.Equal(t, "bienvenida", s.Sections[0].ID)
}

func TestLoadScript_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no sections", "title: vacío\n"},
		{"missing id", "sections:\n  - text: hola\n"},
		{"duplicate id", "sections:\n  - id: a\n    text: x\n  - id: a\n    text: y\n"},
		{"bad yaml", "sections: [unclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript(writeScript(t, "bad.yaml", tt.content))
			assert.Error(t, err)
		})
	}
}

func TestScript_Vars(t *testing.T) {
	s, err := LoadScript(writeScript(t, "s.yaml", sampleScript))
	require.NoError(t, err)
	assert.Equal(t, []string{"agency", "agent_name"}, s.Vars())
}

func TestScript_Fill(t *testing.T) {
	s, err := LoadScript(writeScript(t, "s.yaml", sampleScript))
	require.NoError(t, err)

	filled, err := s.Fill(map[string]string{
		"agent_name": "Marta",
		"agency":     "Inmobiliaria Sol",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hola Marta, bienvenido a Inmobiliaria Sol.", filled.Sections[0].Text)
	// The original is untouched.
	assert.Contains(t, s.Sections[0].Text, "{{agent_name}}")
}

func TestScript_FillMissingVar(t *testing.T) {
	s, err := LoadScript(writeScript(t, "s.yaml", sampleScript))
	require.NoError(t, err)

	_, err = s.Fill(map[string]string{"agent_name": "Marta"})
	assert.ErrorContains(t, err, "{{agency}}")
}

func TestListScripts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.yml", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x: 1"), 0644))
	}

	paths, err := ListScripts(dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "a.yml"), paths[0])
	assert.Equal(t, filepath.Join(dir, "b.yaml"), paths[1])
}
