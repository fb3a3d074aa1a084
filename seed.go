package paracletic

import (
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"github.com/opd-ai/go-paracletic/internal"
)

const (
	// seedSize is the seed length below which explicit seeds are hashed.
	seedSize = 32

	// entropyMaterialSize is the length of entropy-derived seed material.
	entropyMaterialSize = 2*seedSize + 8 + 4

	keyTag  = "|key"
	initTag = "|init"
)

// seedMaterial derives the material the initial key and state are built
// from. An explicit seed shorter than seedSize is hashed; a longer one is
// used verbatim. Without a seed, the material mixes OS entropy, the
// auxiliary entropy stream, the wall clock and the process ID.
func seedMaterial(cfg *Config, suite internal.Suite) ([]byte, error) {
	if cfg.Seed != nil {
		if len(cfg.Seed) < seedSize {
			sum := suite.Sum256(cfg.Seed)
			return sum[:], nil
		}
		return append([]byte(nil), cfg.Seed...), nil
	}

	return entropyMaterial(cfg, time.Now().UnixNano(), os.Getpid())
}

// entropyMaterial reads 32 bytes from the OS source and 32 from the
// auxiliary source and returns os ‖ aux ‖ be64(now) ‖ be32(pid).
func entropyMaterial(cfg *Config, now int64, pid int) ([]byte, error) {
	src := cfg.Entropy
	if src == nil {
		src = internal.OSEntropy
	}
	osBytes, err := internal.ReadEntropy(src, seedSize)
	if err != nil {
		return nil, fmt.Errorf("%w: os source: %v", ErrEntropy, err)
	}

	aux := cfg.AuxEntropy
	if aux == nil {
		aux, err = internal.NewAuxEntropy(src)
		if err != nil {
			return nil, fmt.Errorf("%w: aux source: %v", ErrEntropy, err)
		}
	}
	auxBytes, err := internal.ReadEntropy(aux, seedSize)
	if err != nil {
		return nil, fmt.Errorf("%w: aux source: %v", ErrEntropy, err)
	}

	m := make([]byte, 0, entropyMaterialSize)
	m = append(m, osBytes...)
	m = append(m, auxBytes...)
	m = binary.BigEndian.AppendUint64(m, uint64(now))
	m = binary.BigEndian.AppendUint32(m, uint32(pid))
	return m, nil
}

// seed installs the initial key, state and counter derived from material.
func (g *Generator) seed(material []byte) {
	g.key = g.suite.Sum256(material, []byte(keyTag))

	noiseSrc := g.suite.Sum512(material, []byte(initTag))
	noise := digestVector(noiseSrc[:], noiseScale)
	for i := range g.state {
		g.state[i] = 1.0/Dim + noise[i]
	}
	g.ctr = counter{}
}
