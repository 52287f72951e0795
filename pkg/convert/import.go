package convert

import (
	"fmt"
	"os"

	"github.com/Faultbox/midgard-3ds/pkg/formats"
	"github.com/Faultbox/midgard-3ds/pkg/scene"
)

// Import decodes a 3DS file and converts it into a scene.
func Import(data []byte, opts Options) (*scene.Scene, error) {
	log := opts.logger()

	doc, err := formats.ParseTDS(data, formats.ParseOptions{
		Logger:       log,
		NameEncoding: opts.NameEncoding,
	})
	if err != nil {
		return nil, err
	}
	if err := formats.PostProcess(doc, log); err != nil {
		return nil, err
	}
	formats.ResolveDefaultMaterial(doc, opts.DefaultMaterial, log)

	s, err := Convert(doc, opts)
	if err != nil {
		return nil, err
	}
	if !opts.SkipMasterScale {
		ApplyMasterScale(s, doc.MasterScale, log)
	}
	return s, nil
}

// ImportFile reads and imports a 3DS file from disk.
func ImportFile(path string, opts Options) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading 3DS file: %w", err)
	}
	return Import(data, opts)
}
