// Package wavsink stores encoded PCM sessions as WAV files in a directory.
package wavsink

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Dir is a pcm.Sink backed by a filesystem directory. Stored sessions become
// 16-bit stereo WAV files; the returned handle is the file path.
type Dir struct {
	root string
}

// NewDir creates the directory if needed and returns a sink writing into it.
func NewDir(root string) (*Dir, error) {
	err := os.MkdirAll(root, 0o755)
	if err != nil {
		return nil, fmt.Errorf("wavsink: failed to create %s: %w", root, err)
	}
	return &Dir{root: root}, nil
}

// Store writes interleaved stereo 16-bit samples as a WAV file named name
// inside the sink directory and returns its path.
func (d *Dir) Store(name string, data []int, sampleRate int) (string, error) {
	path := filepath.Join(d.root, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("wavsink: failed to create %s: %w", path, err)
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 2, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 2,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}

	err = enc.Write(buf)
	if err != nil {
		f.Close()
		return "", fmt.Errorf("wavsink: failed to write %s: %w", path, err)
	}

	err = enc.Close()
	if err != nil {
		f.Close()
		return "", fmt.Errorf("wavsink: failed to finalize %s: %w", path, err)
	}

	err = f.Close()
	if err != nil {
		return "", fmt.Errorf("wavsink: failed to close %s: %w", path, err)
	}

	return path, nil
}
