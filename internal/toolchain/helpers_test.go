package toolchain

import (
	"github.com/danieljhkim/vcenv/internal/regstore"
)

// countingReader records how often the store was consulted.
type countingReader struct {
	regstore.Reader
	calls int
}

func (c *countingReader) ReadString(p regstore.Path, name string) (string, error) {
	c.calls++
	return c.Reader.ReadString(p, name)
}

func (c *countingReader) ReadInt(p regstore.Path, name string) (uint32, error) {
	c.calls++
	return c.Reader.ReadInt(p, name)
}

// rawValue is what fullStore writes for a role: a directory with trailing
// separator noise that Normalize must strip.
func rawValue(role Role) string {
	return `C:\` + string(role) + `\ `
}

func cleanValue(role Role) string {
	return `C:\` + string(role)
}

// fullStore answers every store-backed fragment of p under edition ed and
// records the given update level.
func fullStore(p *Profile, ed Edition, level uint32) *regstore.MemStore {
	s := regstore.NewMemStore()
	for _, f := range p.Fragments {
		if f.Source.Derive != "" {
			continue
		}
		s.SetString(f.Source.path(ed), f.Source.Value, rawValue(f.Role))
	}
	s.SetInt(p.Update.Source.path(ed), p.Update.Source.Value, level)
	return s
}
